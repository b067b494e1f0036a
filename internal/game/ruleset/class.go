// Package ruleset holds the fixed table of unit class archetypes fighters are built from.
package ruleset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/arena/internal/game/skill"
)

// ErrClassLoad is matched by every error returned from LoadClasses and ParseClasses.
var ErrClassLoad = errors.New("class table load failed")

//go:embed classes.yaml
var defaultClasses []byte

// Class defines a playable unit class. Classes are immutable after loading and
// shared by reference between every fighter of that class.
//
// Invariant: after validation Skill is the Def named by SkillID.
type Class struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	MaxHealth   float64    `yaml:"max_health"`
	MaxStamina  float64    `yaml:"max_stamina"`
	Attack      float64    `yaml:"attack"`  // multiplier on weapon damage
	Armor       float64    `yaml:"armor"`   // multiplier on worn armor defence
	Stamina     float64    `yaml:"stamina"` // multiplier on worn armor upkeep
	SkillID     skill.ID   `yaml:"skill"`
	Skill       *skill.Def `yaml:"-"`
}

// validate checks numeric invariants and resolves SkillID.
func (c *Class) validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if c.MaxHealth <= 0 {
		errs = append(errs, errors.New("max_health must be > 0"))
	}
	if c.MaxStamina <= 0 {
		errs = append(errs, errors.New("max_stamina must be > 0"))
	}
	if c.Attack < 0 || c.Armor < 0 || c.Stamina < 0 {
		errs = append(errs, errors.New("multipliers must be >= 0"))
	}
	def, ok := skill.Lookup(c.SkillID)
	if !ok {
		errs = append(errs, fmt.Errorf("skill %q is not a known skill", c.SkillID))
	}
	if len(errs) > 0 {
		return fmt.Errorf("class validation failed: %v", errs)
	}
	c.Skill = def
	return nil
}

// ParseClasses decodes a YAML list of classes. source names the data in errors.
//
// Postcondition: Returns every class validated with its Skill resolved, or an
// error matching ErrClassLoad.
func ParseClasses(data []byte, source string) ([]*Class, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var classes []*Class
	if err := dec.Decode(&classes); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrClassLoad, source, err)
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("%w: %s defines no classes", ErrClassLoad, source)
	}
	for i, c := range classes {
		if c == nil {
			return nil, fmt.Errorf("%w: %s: entry %d is empty", ErrClassLoad, source, i)
		}
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: entry %d: %v", ErrClassLoad, source, i, err)
		}
	}
	return classes, nil
}

// LoadClasses reads and parses the class file at path.
//
// Precondition: path must be a readable file.
// Postcondition: Returns all parsed classes or an error matching ErrClassLoad.
func LoadClasses(path string) ([]*Class, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrClassLoad, path, err)
	}
	return ParseClasses(data, path)
}

// DefaultClasses parses the built-in class table.
//
// Postcondition: Returns the built-in classes; a failure here is a build defect.
func DefaultClasses() []*Class {
	classes, err := ParseClasses(defaultClasses, "built-in classes")
	if err != nil {
		panic("ruleset: built-in class table is invalid: " + err.Error())
	}
	return classes
}
