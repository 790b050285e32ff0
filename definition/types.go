package definition

import (
	"fmt"
	"reflect"
)

// TypeRegistry maps the type names used in definition files to Go types.
type TypeRegistry struct {
	entries map[string]reflect.Type
}

// NewTypeRegistry returns an empty type registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{entries: map[string]reflect.Type{}}
}

// RegisterType registers T under name. An empty name registers T under its
// Go type name.
func RegisterType[T any](r *TypeRegistry, name string) error {
	return r.Register(name, reflect.TypeFor[T]())
}

// Register registers t under name.
func (r *TypeRegistry) Register(name string, t reflect.Type) error {
	if len(name) == 0 {
		name = t.Name()
	}
	if len(name) == 0 {
		return fmt.Errorf("definition: unnamed type %s needs a registration name", t)
	}
	if prev, ok := r.entries[name]; ok && prev != t {
		return fmt.Errorf("definition: type name %s already registered for %s", name, prev)
	}

	r.entries[name] = t
	return nil
}

// Lookup returns the type registered under name.
func (r *TypeRegistry) Lookup(name string) (reflect.Type, bool) {
	t, ok := r.entries[name]
	return t, ok
}
