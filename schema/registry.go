package schema

import "fmt"

// Registry holds the named definitions of a schema. It is built once and
// then shared read-only across any number of concurrent coercions.
type Registry struct {
	classes map[string]*Class
	enums   map[string]*Enum
	aliases map[string]*Alias

	classOrder []string
	enumOrder  []string
	aliasOrder []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		classes: map[string]*Class{},
		enums:   map[string]*Enum{},
		aliases: map[string]*Alias{},
	}
}

// AddClass registers a class. Names are unique across classes, enums and
// aliases.
func (r *Registry) AddClass(c *Class) error {
	if err := r.claim(c.Name); err != nil {
		return err
	}
	r.classes[c.Name] = c
	r.classOrder = append(r.classOrder, c.Name)
	return nil
}

// AddEnum registers an enum.
func (r *Registry) AddEnum(e *Enum) error {
	if err := r.claim(e.Name); err != nil {
		return err
	}
	r.enums[e.Name] = e
	r.enumOrder = append(r.enumOrder, e.Name)
	return nil
}

// AddAlias registers a type alias.
func (r *Registry) AddAlias(a *Alias) error {
	if err := r.claim(a.Name); err != nil {
		return err
	}
	r.aliases[a.Name] = a
	r.aliasOrder = append(r.aliasOrder, a.Name)
	return nil
}

// MustAdd registers definitions and panics on a duplicate name. It is meant
// for schemas declared in code.
func (r *Registry) MustAdd(defs ...any) *Registry {
	for _, d := range defs {
		var err error
		switch x := d.(type) {
		case *Class:
			err = r.AddClass(x)
		case *Enum:
			err = r.AddEnum(x)
		case *Alias:
			err = r.AddAlias(x)
		default:
			err = fmt.Errorf("schema: unsupported definition %T", d)
		}
		if err != nil {
			panic(err)
		}
	}
	return r
}

func (r *Registry) claim(name string) error {
	if name == "" {
		return fmt.Errorf("schema: empty definition name")
	}
	if _, ok := r.classes[name]; ok {
		return fmt.Errorf("schema: duplicate definition %q", name)
	}
	if _, ok := r.enums[name]; ok {
		return fmt.Errorf("schema: duplicate definition %q", name)
	}
	if _, ok := r.aliases[name]; ok {
		return fmt.Errorf("schema: duplicate definition %q", name)
	}
	return nil
}

func (r *Registry) FindClass(name string) (*Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}

func (r *Registry) FindEnum(name string) (*Enum, bool) {
	e, ok := r.enums[name]
	return e, ok
}

func (r *Registry) FindAlias(name string) (*Alias, bool) {
	a, ok := r.aliases[name]
	return a, ok
}

// Lookup resolves a bare name into a reference type.
func (r *Registry) Lookup(name string) (*FieldType, bool) {
	switch {
	case r.classes[name] != nil:
		return ClassRef(name), true
	case r.enums[name] != nil:
		return EnumRef(name), true
	case r.aliases[name] != nil:
		return AliasRef(name), true
	}
	return nil, false
}

// Classes returns classes in declaration order.
func (r *Registry) Classes() []*Class {
	out := make([]*Class, len(r.classOrder))
	for i, n := range r.classOrder {
		out[i] = r.classes[n]
	}
	return out
}

// Enums returns enums in declaration order.
func (r *Registry) Enums() []*Enum {
	out := make([]*Enum, len(r.enumOrder))
	for i, n := range r.enumOrder {
		out[i] = r.enums[n]
	}
	return out
}

// Aliases returns aliases in declaration order.
func (r *Registry) Aliases() []*Alias {
	out := make([]*Alias, len(r.aliasOrder))
	for i, n := range r.aliasOrder {
		out[i] = r.aliases[n]
	}
	return out
}

// DefaultTarget picks the first declared class, else the first enum.
func (r *Registry) DefaultTarget() (*FieldType, error) {
	if len(r.classOrder) > 0 {
		return ClassRef(r.classOrder[0]), nil
	}
	if len(r.enumOrder) > 0 {
		return EnumRef(r.enumOrder[0]), nil
	}
	return nil, fmt.Errorf("schema: no class or enum declared")
}

// Constraints returns the definition-level constraints of a named type.
func (r *Registry) Constraints(t *FieldType) []Constraint {
	switch t.Kind {
	case KindClass:
		if c, ok := r.classes[t.Name]; ok {
			return c.Constraints
		}
	case KindEnum:
		if e, ok := r.enums[t.Name]; ok {
			return e.Constraints
		}
	}
	return nil
}
