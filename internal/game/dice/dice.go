// Package dice provides the randomness abstraction used by the arena battle engine:
// uniform weapon damage rolls and the percentile roll behind the opponent's skill trigger.
package dice

// Source is the randomness provider for all rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float in [0, 1).
	Float64() float64
}

// Uniform maps a Source draw onto the closed interval [min, max].
//
// Precondition: min <= max.
// Postcondition: min <= result <= max. The result is not rounded.
func Uniform(src Source, min, max float64) float64 {
	if min > max {
		panic("dice: Uniform precondition violated: min must be <= max")
	}
	v := min + (max-min)*src.Float64()
	if v > max {
		v = max
	}
	return v
}

// Percent returns a roll in [1, 100].
//
// Postcondition: 1 <= result <= 100.
func Percent(src Source) int {
	return src.Intn(100) + 1
}
