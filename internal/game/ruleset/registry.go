package ruleset

import (
	"errors"
	"fmt"
)

// ErrUnknownClass is returned by RequireClass when no class has the given name.
var ErrUnknownClass = errors.New("unknown class")

// Registry provides lookup of classes by name. It is populated at startup and
// read-only afterwards, so concurrent lookups are safe once registration ends.
type Registry struct {
	classes map[string]*Class
	order   []string
}

// NewRegistry returns an empty Registry.
//
// Postcondition: Returns a non-nil *Registry ready to accept registrations.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*Class)}
}

// NewRegistryFrom builds a Registry holding classes in the given order.
//
// Postcondition: Returns an error if two classes share a name.
func NewRegistryFrom(classes []*Class) (*Registry, error) {
	r := NewRegistry()
	for _, c := range classes {
		if _, dup := r.classes[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate class %q", ErrClassLoad, c.Name)
		}
		r.Register(c)
	}
	return r, nil
}

// DefaultRegistry returns a Registry holding the built-in classes.
func DefaultRegistry() *Registry {
	r, err := NewRegistryFrom(DefaultClasses())
	if err != nil {
		panic("ruleset: built-in class table is invalid: " + err.Error())
	}
	return r
}

// Register adds a Class to the registry.
//
// Precondition: c must be non-nil with a non-empty Name and a resolved Skill.
// Postcondition: c is retrievable via Class(c.Name); re-registering a name replaces
// the class but keeps its original position in ClassNames.
func (r *Registry) Register(c *Class) {
	if c == nil {
		panic("Registry.Register: precondition violated: class must be non-nil")
	}
	if c.Name == "" {
		panic("Registry.Register: precondition violated: class name must be non-empty")
	}
	if c.Skill == nil {
		panic("Registry.Register: precondition violated: class skill must be resolved")
	}
	if _, exists := r.classes[c.Name]; !exists {
		r.order = append(r.order, c.Name)
	}
	r.classes[c.Name] = c
}

// Class returns the Class with the given name, if registered.
//
// Postcondition: Returns the registered Class and true, or nil and false if not found.
func (r *Registry) Class(name string) (*Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// RequireClass is Class for callers that must reject a miss.
//
// Postcondition: err wraps ErrUnknownClass iff name is not registered.
func (r *Registry) RequireClass(name string) (*Class, error) {
	if c, ok := r.Class(name); ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownClass, name)
}

// ClassNames returns class names in registration order.
func (r *Registry) ClassNames() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
