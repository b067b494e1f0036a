package equipment

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrCatalogLoad is matched by every error returned from Load and Parse.
var ErrCatalogLoad = errors.New("equipment catalog load failed")

// ErrUnknownWeapon is returned by RequireWeapon when no weapon has the given name.
var ErrUnknownWeapon = errors.New("unknown weapon")

// ErrUnknownArmor is returned by RequireArmor when no armor has the given name.
var ErrUnknownArmor = errors.New("unknown armor")

// LoadError describes why a catalog source could not be loaded.
// errors.Is(err, ErrCatalogLoad) holds for every LoadError.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("equipment: loading %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is reports whether target is ErrCatalogLoad.
func (e *LoadError) Is(target error) bool { return target == ErrCatalogLoad }

// catalogFile is the on-disk shape: two named lists.
type catalogFile struct {
	Weapons []*weaponRecord `yaml:"weapons"`
	Armors  []*armorRecord  `yaml:"armors"`
}

// Catalog is the immutable, loaded-once set of weapons and armors.
// Returned definitions are shared and must be treated as read-only.
// All methods are safe for concurrent use.
type Catalog struct {
	weapons     []*WeaponDef
	armors      []*ArmorDef
	weaponIndex map[string]*WeaponDef
	armorIndex  map[string]*ArmorDef
}

// Load reads and validates the catalog file at path. JSON and YAML are both accepted.
//
// Precondition: path must name a readable file.
// Postcondition: Returns a complete Catalog, or a *LoadError and no partial catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return Parse(data, path)
}

// Parse decodes and validates catalog data. source names the data in errors.
//
// Unknown fields, wrong field types, missing required fields, fractional ids,
// missing lists, invalid definitions and duplicate names are all rejected.
//
// Postcondition: Returns a complete Catalog, or a *LoadError and no partial catalog.
func Parse(data []byte, source string) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f catalogFile
	if err := dec.Decode(&f); err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("decoding: %w", err)}
	}
	c, err := newCatalog(f)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return c, nil
}

func newCatalog(f catalogFile) (*Catalog, error) {
	if len(f.Weapons) == 0 {
		return nil, errors.New("weapons list must be present and non-empty")
	}
	if len(f.Armors) == 0 {
		return nil, errors.New("armors list must be present and non-empty")
	}

	c := &Catalog{
		weapons:     make([]*WeaponDef, 0, len(f.Weapons)),
		armors:      make([]*ArmorDef, 0, len(f.Armors)),
		weaponIndex: make(map[string]*WeaponDef, len(f.Weapons)),
		armorIndex:  make(map[string]*ArmorDef, len(f.Armors)),
	}
	for i, rec := range f.Weapons {
		if rec == nil {
			return nil, fmt.Errorf("weapons[%d]: empty entry", i)
		}
		w, err := rec.toDef()
		if err != nil {
			return nil, fmt.Errorf("weapons[%d]: %w", i, err)
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("weapons[%d]: %w", i, err)
		}
		if _, dup := c.weaponIndex[w.Name]; dup {
			return nil, fmt.Errorf("weapons[%d]: duplicate name %q", i, w.Name)
		}
		c.weaponIndex[w.Name] = w
		c.weapons = append(c.weapons, w)
	}
	for i, rec := range f.Armors {
		if rec == nil {
			return nil, fmt.Errorf("armors[%d]: empty entry", i)
		}
		a, err := rec.toDef()
		if err != nil {
			return nil, fmt.Errorf("armors[%d]: %w", i, err)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("armors[%d]: %w", i, err)
		}
		if _, dup := c.armorIndex[a.Name]; dup {
			return nil, fmt.Errorf("armors[%d]: duplicate name %q", i, a.Name)
		}
		c.armorIndex[a.Name] = a
		c.armors = append(c.armors, a)
	}
	return c, nil
}

// Weapon returns the WeaponDef with the given name.
//
// Postcondition: ok is true iff the name is in the catalog.
func (c *Catalog) Weapon(name string) (*WeaponDef, bool) {
	w, ok := c.weaponIndex[name]
	return w, ok
}

// Armor returns the ArmorDef with the given name.
//
// Postcondition: ok is true iff the name is in the catalog.
func (c *Catalog) Armor(name string) (*ArmorDef, bool) {
	a, ok := c.armorIndex[name]
	return a, ok
}

// RequireWeapon is Weapon for callers that must reject a miss.
//
// Postcondition: err wraps ErrUnknownWeapon iff the name is not in the catalog.
func (c *Catalog) RequireWeapon(name string) (*WeaponDef, error) {
	if w, ok := c.Weapon(name); ok {
		return w, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownWeapon, name)
}

// RequireArmor is Armor for callers that must reject a miss.
//
// Postcondition: err wraps ErrUnknownArmor iff the name is not in the catalog.
func (c *Catalog) RequireArmor(name string) (*ArmorDef, error) {
	if a, ok := c.Armor(name); ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownArmor, name)
}

// WeaponNames returns weapon names in catalog order.
func (c *Catalog) WeaponNames() []string {
	out := make([]string, 0, len(c.weapons))
	for _, w := range c.weapons {
		out = append(out, w.Name)
	}
	return out
}

// ArmorNames returns armor names in catalog order.
func (c *Catalog) ArmorNames() []string {
	out := make([]string, 0, len(c.armors))
	for _, a := range c.armors {
		out = append(out, a.Name)
	}
	return out
}
