package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/equipment"
	"github.com/cory-johannsen/arena/internal/game/ruleset"
)

// ErrIncompleteSelection is returned when a fighter selection is missing a
// field, or a fight is requested before both fighters are chosen.
var ErrIncompleteSelection = errors.New("session: incomplete selection")

// Selection is a drafted fighter: display name plus the names of its class,
// weapon and armor.
type Selection struct {
	Name   string
	Class  string
	Weapon string
	Armor  string
}

// Armory assembles fighters from the shared read-only catalogs.
type Armory struct {
	Equipment *equipment.Catalog
	Classes   *ruleset.Registry
	Roller    combat.Roller
}

// NewArmory bundles the catalogs and roller used to build fighters.
//
// Precondition: all arguments must be non-nil.
func NewArmory(eq *equipment.Catalog, classes *ruleset.Registry, roller combat.Roller) *Armory {
	if eq == nil || classes == nil || roller == nil {
		panic("session: NewArmory precondition violated: catalog, registry and roller must be non-nil")
	}
	return &Armory{Equipment: eq, Classes: classes, Roller: roller}
}

// Build creates a fully equipped fighter for role from sel and returns the
// equip confirmations in weapon, armor order.
//
// Postcondition: on success the fighter is Ready; on error it is nil and err
// wraps ErrIncompleteSelection, ruleset.ErrUnknownClass,
// equipment.ErrUnknownWeapon or equipment.ErrUnknownArmor.
func (a *Armory) Build(sel Selection, role combat.Role) (*combat.Combatant, []string, error) {
	class, weapon, armor, err := a.resolve(sel)
	if err != nil {
		return nil, nil, err
	}
	f := combat.NewCombatant(strings.TrimSpace(sel.Name), role, class, a.Roller)
	msgs := []string{f.EquipWeapon(weapon), f.EquipArmor(armor)}
	return f, msgs, nil
}

func (a *Armory) resolve(sel Selection) (*ruleset.Class, *equipment.WeaponDef, *equipment.ArmorDef, error) {
	if strings.TrimSpace(sel.Name) == "" {
		return nil, nil, nil, fmt.Errorf("%w: name is required", ErrIncompleteSelection)
	}
	class, err := a.Classes.RequireClass(sel.Class)
	if err != nil {
		return nil, nil, nil, err
	}
	weapon, err := a.Equipment.RequireWeapon(sel.Weapon)
	if err != nil {
		return nil, nil, nil, err
	}
	armor, err := a.Equipment.RequireArmor(sel.Armor)
	if err != nil {
		return nil, nil, nil, err
	}
	return class, weapon, armor, nil
}
