package spritepack

import (
	"fmt"
	"strings"
)

// packerPriority orders variants fastest first.
var packerPriority = []string{"wide", "scalar"}

// Registry holds the packer variants this machine can run.
type Registry struct {
	packers map[string]Packer
}

// NewRegistry creates a registry, probing every variant for availability.
func NewRegistry() *Registry {
	r := &Registry{packers: make(map[string]Packer)}

	all := []Packer{
		widePacker{},
		scalarPacker{},
	}
	for _, p := range all {
		if p.Available() {
			r.packers[p.Name()] = p
		}
	}

	return r
}

// Get returns the named variant, or ErrUnknownPacker.
func (r *Registry) Get(name string) (Packer, error) {
	p, ok := r.packers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPacker, name)
	}

	return p, nil
}

// Best returns the fastest available variant.
func (r *Registry) Best() (Packer, error) {
	for _, name := range packerPriority {
		if p, ok := r.packers[name]; ok {
			return p, nil
		}
	}

	return nil, ErrNoPacker
}

// Names returns the available variant names in priority order.
func (r *Registry) Names() []string {
	var out []string
	for _, name := range packerPriority {
		if _, ok := r.packers[name]; ok {
			out = append(out, name)
		}
	}

	return out
}

// String summarizes the available variants.
func (r *Registry) String() string {
	names := r.Names()
	if len(names) == 0 {
		return "no packers available"
	}

	return fmt.Sprintf("packers: %s", strings.Join(names, ", "))
}
