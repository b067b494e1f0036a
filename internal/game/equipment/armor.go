package equipment

import (
	"errors"
	"fmt"
)

// ArmorDef defines the static properties of an armor piece loaded from the catalog.
type ArmorDef struct {
	ID             int
	Name           string
	Defence        float64
	StaminaPerTurn float64 // paid by the wearer each time it absorbs a hit
}

// Validate reports an error if the ArmorDef is missing required fields or contains illegal values.
// Precondition: a is non-nil.
// Postcondition: Returns nil iff the def is well-formed.
func (a *ArmorDef) Validate() error {
	var errs []error
	if a.ID <= 0 {
		errs = append(errs, errors.New("id must be > 0"))
	}
	if a.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if a.Defence < 0 {
		errs = append(errs, errors.New("defence must be >= 0"))
	}
	if a.StaminaPerTurn < 0 {
		errs = append(errs, errors.New("stamina_per_turn must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("armor validation failed: %v", errs)
	}
	return nil
}
