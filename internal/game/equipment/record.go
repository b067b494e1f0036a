package equipment

import (
	"fmt"
	"math"
	"strings"
)

// weaponRecord and armorRecord mirror one catalog entry as written. Pointer
// fields distinguish an absent key from an explicit zero.
type weaponRecord struct {
	ID            *float64 `yaml:"id"`
	Name          string   `yaml:"name"`
	MinDamage     *float64 `yaml:"min_damage"`
	MaxDamage     *float64 `yaml:"max_damage"`
	StaminaPerHit *float64 `yaml:"stamina_per_hit"`
}

type armorRecord struct {
	ID             *float64 `yaml:"id"`
	Name           string   `yaml:"name"`
	Defence        *float64 `yaml:"defence"`
	StaminaPerTurn *float64 `yaml:"stamina_per_turn"`
}

// toDef converts the record once every required field is present.
//
// Postcondition: Returns an error naming each missing field, or a WeaponDef
// that still needs Validate.
func (r *weaponRecord) toDef() (*WeaponDef, error) {
	missing := missingFields(
		field{"id", r.ID},
		field{"min_damage", r.MinDamage},
		field{"max_damage", r.MaxDamage},
		field{"stamina_per_hit", r.StaminaPerHit},
	)
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	id, err := identity(*r.ID)
	if err != nil {
		return nil, err
	}
	return &WeaponDef{
		ID:            id,
		Name:          r.Name,
		MinDamage:     *r.MinDamage,
		MaxDamage:     *r.MaxDamage,
		StaminaPerHit: *r.StaminaPerHit,
	}, nil
}

// toDef converts the record once every required field is present.
//
// Postcondition: Returns an error naming each missing field, or an ArmorDef
// that still needs Validate.
func (r *armorRecord) toDef() (*ArmorDef, error) {
	missing := missingFields(
		field{"id", r.ID},
		field{"defence", r.Defence},
		field{"stamina_per_turn", r.StaminaPerTurn},
	)
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	id, err := identity(*r.ID)
	if err != nil {
		return nil, err
	}
	return &ArmorDef{
		ID:             id,
		Name:           r.Name,
		Defence:        *r.Defence,
		StaminaPerTurn: *r.StaminaPerTurn,
	}, nil
}

type field struct {
	key   string
	value *float64
}

// missingFields returns the keys of absent fields in argument order.
func missingFields(fields ...field) []string {
	var out []string
	for _, f := range fields {
		if f.value == nil {
			out = append(out, f.key)
		}
	}
	return out
}

// identity rejects fractional ids instead of truncating them.
func identity(v float64) (int, error) {
	if v != math.Trunc(v) || math.IsInf(v, 0) || v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("id %v must be an integer", v)
	}
	return int(v), nil
}
