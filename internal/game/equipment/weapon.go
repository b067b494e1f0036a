// Package equipment provides the weapon and armor catalog used to equip arena fighters.
package equipment

import (
	"errors"
	"fmt"
)

// WeaponDef defines the static properties of a weapon loaded from the catalog.
//
// Invariant: 0 <= MinDamage <= MaxDamage after Validate succeeds.
type WeaponDef struct {
	ID            int
	Name          string
	MinDamage     float64
	MaxDamage     float64
	StaminaPerHit float64
}

// Roller draws a uniform float in a closed interval.
type Roller interface {
	Uniform(min, max float64) float64
}

// Damage samples the raw damage of one hit, uniformly in [MinDamage, MaxDamage].
// The sample is re-drawn on every call and is not rounded.
//
// Precondition: r must be non-nil.
// Postcondition: MinDamage <= result <= MaxDamage.
func (w *WeaponDef) Damage(r Roller) float64 {
	return r.Uniform(w.MinDamage, w.MaxDamage)
}

// Validate checks that the WeaponDef satisfies its invariants.
// Precondition: w is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (w *WeaponDef) Validate() error {
	var errs []error
	if w.ID <= 0 {
		errs = append(errs, errors.New("id must be > 0"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if w.MinDamage < 0 {
		errs = append(errs, errors.New("min_damage must be >= 0"))
	}
	if w.MinDamage > w.MaxDamage {
		errs = append(errs, fmt.Errorf("min_damage %v must not exceed max_damage %v", w.MinDamage, w.MaxDamage))
	}
	if w.StaminaPerHit < 0 {
		errs = append(errs, errors.New("stamina_per_hit must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon validation failed: %v", errs)
	}
	return nil
}
