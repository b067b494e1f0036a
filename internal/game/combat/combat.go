// Package combat implements arena fighters: equipment, basic attacks with
// stamina-gated armor mitigation, and the once-per-match skill.
package combat

import (
	"errors"
	"fmt"
	"math"

	"github.com/cory-johannsen/arena/internal/game/equipment"
	"github.com/cory-johannsen/arena/internal/game/ruleset"
)

// Role distinguishes the player-controlled fighter from the autonomous opponent.
type Role int

const (
	RolePlayer Role = iota
	RoleOpponent
)

// String returns a human-readable role label.
func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleOpponent:
		return "opponent"
	default:
		return "unknown"
	}
}

// ErrNotEquipped is returned when a fighter enters a match without both a
// weapon and an armor.
var ErrNotEquipped = errors.New("combat: fighter is not fully equipped")

// SkillTriggerThreshold is the exclusive upper bound of the percentile roll
// that makes the opponent use its skill: a roll of 1-9 triggers it.
const SkillTriggerThreshold = 10

// MsgSkillAlreadyUsed is returned by UseSkillOnce after the first attempt.
const MsgSkillAlreadyUsed = "Skill has already been used"

// Roller is the randomness a fighter draws on.
type Roller interface {
	// Uniform returns a float in [min, max].
	Uniform(min, max float64) float64
	// Percent returns an int in [1, 100].
	Percent() int
}

// Combatant is one fighter in a match.
//
// CurrentHP starts at the class max health and may go negative; the fighter is
// defeated once it is <= 0. CurrentStamina starts at the class max stamina and
// is never raised above it by regeneration.
type Combatant struct {
	CurrentHP      float64
	CurrentStamina float64

	name      string
	role      Role
	class     *ruleset.Class
	weapon    *equipment.WeaponDef
	armor     *equipment.ArmorDef
	skillUsed bool
	roller    Roller
}

// NewCombatant creates a fighter at full health and stamina with nothing equipped.
//
// Precondition: class must be non-nil with a resolved Skill; roller must be non-nil.
// Postcondition: CurrentHP == class.MaxHealth; CurrentStamina == class.MaxStamina.
func NewCombatant(name string, role Role, class *ruleset.Class, roller Roller) *Combatant {
	if class == nil || class.Skill == nil {
		panic("combat: NewCombatant precondition violated: class with a resolved skill is required")
	}
	if roller == nil {
		panic("combat: NewCombatant precondition violated: roller must be non-nil")
	}
	return &Combatant{
		CurrentHP:      class.MaxHealth,
		CurrentStamina: class.MaxStamina,
		name:           name,
		role:           role,
		class:          class,
		roller:         roller,
	}
}

// Name returns the fighter's display name.
func (c *Combatant) Name() string { return c.name }

// Role returns whether this is the player or the opponent.
func (c *Combatant) Role() Role { return c.role }

// Class returns the shared, read-only class definition.
func (c *Combatant) Class() *ruleset.Class { return c.class }

// Weapon returns the equipped weapon or nil.
func (c *Combatant) Weapon() *equipment.WeaponDef { return c.weapon }

// Armor returns the equipped armor or nil.
func (c *Combatant) Armor() *equipment.ArmorDef { return c.armor }

// SkillUsed reports whether the once-per-match skill has been attempted.
func (c *Combatant) SkillUsed() bool { return c.skillUsed }

// Ready reports whether both a weapon and an armor are equipped.
func (c *Combatant) Ready() bool { return c.weapon != nil && c.armor != nil }

// CheckReady returns an error wrapping ErrNotEquipped naming the missing slot.
func (c *Combatant) CheckReady() error {
	switch {
	case c.weapon == nil:
		return fmt.Errorf("%w: %s has no weapon", ErrNotEquipped, c.name)
	case c.armor == nil:
		return fmt.Errorf("%w: %s has no armor", ErrNotEquipped, c.name)
	}
	return nil
}

// Defeated reports whether health has dropped to zero or below.
func (c *Combatant) Defeated() bool { return c.CurrentHP <= 0 }

// HealthPoints returns CurrentHP rounded to one decimal place for display.
func (c *Combatant) HealthPoints() float64 { return roundTenth(c.CurrentHP) }

// StaminaPoints returns CurrentStamina rounded to one decimal place for display.
func (c *Combatant) StaminaPoints() float64 { return roundTenth(c.CurrentStamina) }

// Stamina returns the current stamina.
func (c *Combatant) Stamina() float64 { return c.CurrentStamina }

// SpendStamina subtracts amount from the current stamina.
func (c *Combatant) SpendStamina(amount float64) { c.CurrentStamina -= amount }

// TakeDamage subtracts amount from health unconditionally.
func (c *Combatant) TakeDamage(amount float64) { c.CurrentHP -= amount }

// RegenerateStamina adds amount to stamina, clamped at the class max stamina.
//
// Postcondition: CurrentStamina <= Class().MaxStamina.
func (c *Combatant) RegenerateStamina(amount float64) {
	c.CurrentStamina = math.Min(c.CurrentStamina+amount, c.class.MaxStamina)
}

// EquipWeapon sets the weapon and returns a confirmation.
//
// Precondition: w must be non-nil.
func (c *Combatant) EquipWeapon(w *equipment.WeaponDef) string {
	if w == nil {
		panic("combat: EquipWeapon precondition violated: weapon must be non-nil")
	}
	c.weapon = w
	return fmt.Sprintf("%s equipped with weapon %s", c.name, w.Name)
}

// EquipArmor sets the armor and returns a confirmation.
//
// Precondition: a must be non-nil.
func (c *Combatant) EquipArmor(a *equipment.ArmorDef) string {
	if a == nil {
		panic("combat: EquipArmor precondition violated: armor must be non-nil")
	}
	c.armor = a
	return fmt.Sprintf("%s equipped with armor %s", c.name, a.Name)
}

func (c *Combatant) mustBeReady() {
	if !c.Ready() {
		panic(fmt.Sprintf("combat: %s precondition violated: weapon and armor must be equipped", c.name))
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
