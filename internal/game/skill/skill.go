// Package skill defines the closed set of once-per-match special moves.
package skill

import (
	"fmt"
	"sort"
)

// ID identifies a skill variant.
type ID string

const (
	// FuryPunch is the warrior's skill.
	FuryPunch ID = "fury_punch"
	// HardShot is the thief's skill.
	HardShot ID = "hard_shot"
)

// Def holds the constants of one skill variant.
type Def struct {
	ID      ID
	Name    string
	Stamina float64 // cost paid by the user
	Damage  float64 // dealt to the target, not mitigated by armor
}

var table = map[ID]*Def{
	FuryPunch: {ID: FuryPunch, Name: "Fury Punch", Stamina: 6, Damage: 12},
	HardShot:  {ID: HardShot, Name: "Hard Shot", Stamina: 5, Damage: 15},
}

// Lookup returns the Def for id.
//
// Postcondition: ok is true iff id names a known skill.
func Lookup(id ID) (*Def, bool) {
	d, ok := table[id]
	return d, ok
}

// All returns every skill Def ordered by ID.
func All() []*Def {
	out := make([]*Def, 0, len(table))
	for _, d := range table {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Fighter is the part of a combatant a skill reads and mutates.
type Fighter interface {
	Name() string
	Stamina() float64
	SpendStamina(amount float64)
	// TakeDamage subtracts amount from health unconditionally.
	TakeDamage(amount float64)
}

// CanAfford reports whether user has strictly more stamina than the skill costs.
// Stamina exactly equal to the cost is not enough.
func (d *Def) CanAfford(user Fighter) bool {
	return user.Stamina() > d.Stamina
}

// Use applies the skill from user to target and describes the outcome.
// Without enough stamina nothing changes; otherwise the user pays the cost
// and the target loses Damage health.
//
// Precondition: user and target must be non-nil.
func (d *Def) Use(user, target Fighter) string {
	if !d.CanAfford(user) {
		return fmt.Sprintf("%s tried to use %s but did not have enough stamina.", user.Name(), d.Name)
	}
	user.SpendStamina(d.Stamina)
	target.TakeDamage(d.Damage)
	return fmt.Sprintf("%s uses %s and deals %g damage to the opponent.", user.Name(), d.Name, d.Damage)
}
