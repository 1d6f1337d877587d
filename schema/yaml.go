package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a schema:
//
//	enums:
//	  - name: Color
//	    values: [RED, {name: GREEN, alias: g}]
//	classes:
//	  - name: Person
//	    fields:
//	      - {name: age, type: int?, checks: [{label: adult, expr: "this >= 18"}]}
//	aliases:
//	  - {name: Tree, type: TreeNode}
type Document struct {
	Enums   []enumDoc  `yaml:"enums"`
	Classes []classDoc `yaml:"classes"`
	Aliases []aliasDoc `yaml:"aliases"`
}

type constraintDoc struct {
	Label string `yaml:"label"`
	Expr  string `yaml:"expr"`
}

// UnmarshalYAML accepts a bare expression string as shorthand.
func (d *constraintDoc) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		d.Expr = n.Value
		return nil
	}
	type plain constraintDoc
	return n.Decode((*plain)(d))
}

type enumValueDoc struct {
	Name        string `yaml:"name"`
	Alias       string `yaml:"alias"`
	Description string `yaml:"description"`
	Skip        bool   `yaml:"skip"`
}

// UnmarshalYAML accepts a bare value name as shorthand.
func (d *enumValueDoc) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		d.Name = n.Value
		return nil
	}
	type plain enumValueDoc
	return n.Decode((*plain)(d))
}

type enumDoc struct {
	Name    string          `yaml:"name"`
	Values  []enumValueDoc  `yaml:"values"`
	Checks  []constraintDoc `yaml:"checks"`
	Asserts []constraintDoc `yaml:"asserts"`
}

type fieldDoc struct {
	Name        string          `yaml:"name"`
	Type        string          `yaml:"type"`
	Alias       string          `yaml:"alias"`
	Description string          `yaml:"description"`
	Skip        bool            `yaml:"skip"`
	Checks      []constraintDoc `yaml:"checks"`
	Asserts     []constraintDoc `yaml:"asserts"`
}

type classDoc struct {
	Name    string          `yaml:"name"`
	Fields  []fieldDoc      `yaml:"fields"`
	Checks  []constraintDoc `yaml:"checks"`
	Asserts []constraintDoc `yaml:"asserts"`
}

type aliasDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadFile reads a YAML schema document from disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	return LoadYAML(data)
}

// LoadYAML builds a Registry from one or more YAML documents. Type
// expressions are resolved after every definition is known, so classes may
// reference each other and aliases may reference themselves.
func LoadYAML(data []byte) (*Registry, error) {
	var docs []Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var d Document
		if err := dec.Decode(&d); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parse schema: %w", err)
		}
		docs = append(docs, d)
	}

	reg := NewRegistry()
	// First pass: names.
	for _, d := range docs {
		for _, e := range d.Enums {
			en := &Enum{Name: e.Name, Constraints: constraintsOf(e.Checks, e.Asserts)}
			for _, v := range e.Values {
				en.Values = append(en.Values, EnumValue(v))
			}
			if err := reg.AddEnum(en); err != nil {
				return nil, err
			}
		}
		for _, c := range d.Classes {
			if err := reg.AddClass(&Class{Name: c.Name, Constraints: constraintsOf(c.Checks, c.Asserts)}); err != nil {
				return nil, err
			}
		}
		for _, a := range d.Aliases {
			if err := reg.AddAlias(&Alias{Name: a.Name}); err != nil {
				return nil, err
			}
		}
	}
	// Second pass: type expressions.
	for _, d := range docs {
		for _, c := range d.Classes {
			cls, _ := reg.FindClass(c.Name)
			for _, f := range c.Fields {
				t, err := ParseType(f.Type, reg.Lookup)
				if err != nil {
					return nil, fmt.Errorf("class %s field %s: %w", c.Name, f.Name, err)
				}
				if cs := constraintsOf(f.Checks, f.Asserts); len(cs) > 0 {
					t = t.With(cs...)
				}
				cls.Fields = append(cls.Fields, Field{
					Name:        f.Name,
					Type:        t,
					Alias:       f.Alias,
					Description: f.Description,
					Skip:        f.Skip,
				})
			}
		}
		for _, a := range d.Aliases {
			t, err := ParseType(a.Type, reg.Lookup)
			if err != nil {
				return nil, fmt.Errorf("alias %s: %w", a.Name, err)
			}
			al, _ := reg.FindAlias(a.Name)
			al.Target = t
		}
	}
	return reg, nil
}

func constraintsOf(checks, asserts []constraintDoc) []Constraint {
	var out []Constraint
	for _, c := range checks {
		out = append(out, Check(c.Label, c.Expr))
	}
	for _, a := range asserts {
		out = append(out, Constraint{Level: LevelAssert, Expr: a.Expr, Label: a.Label})
	}
	return out
}
