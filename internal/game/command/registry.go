package command

import (
	"fmt"
	"strings"
)

// Registry maps command names and aliases to Command definitions.
type Registry struct {
	ordered []*Command
	byName  map[string]*Command // name or alias → command
}

// NewRegistry creates a Registry populated with the given commands.
//
// Precondition: No two commands may share a canonical name or alias.
// Postcondition: Returns a Registry or an error on name/alias collisions.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Command)}
	for i := range cmds {
		cmd := &cmds[i]
		for _, key := range append([]string{cmd.Name}, cmd.Aliases...) {
			if existing, ok := r.byName[key]; ok {
				return nil, fmt.Errorf("command key %q used by both %q and %q", key, existing.Name, cmd.Name)
			}
			r.byName[key] = cmd
		}
		r.ordered = append(r.ordered, cmd)
	}
	return r, nil
}

// DefaultRegistry creates a Registry with all built-in commands.
//
// Postcondition: Returns a Registry with all built-in commands registered.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a command by name or alias, case-insensitively.
//
// Postcondition: Returns (command, true) if found, or (nil, false).
func (r *Registry) Resolve(input string) (*Command, bool) {
	cmd, ok := r.byName[strings.ToLower(input)]
	return cmd, ok
}

// Commands returns all registered commands in registration order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Available returns the commands usable on the screen for category, followed
// by the system commands, in registration order.
func (r *Registry) Available(category string) []*Command {
	var out []*Command
	for _, cmd := range r.ordered {
		if cmd.Category == category {
			out = append(out, cmd)
		}
	}
	for _, cmd := range r.ordered {
		if cmd.Category == CategorySystem && category != CategorySystem {
			out = append(out, cmd)
		}
	}
	return out
}
