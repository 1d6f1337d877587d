// Package jsonschema describes the JSON a successful coercion renders
// (ValueWithFlags.MarshalJSON) as a JSON Schema document.
package jsonschema

import (
	"fmt"

	j "github.com/goccy/go-json"

	"github.com/reoring/jsonish/schema"
)

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	// Core
	Type        any    `json:"type,omitempty"` // string, or []string when nullable
	Description string `json:"description,omitempty"`
	Const       any    `json:"const,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Ref         string `json:"$ref,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items       *Schema   `json:"items,omitempty"`
	PrefixItems []*Schema `json:"prefixItems,omitempty"`
	MinItems    *int      `json:"minItems,omitempty"`
	MaxItems    *int      `json:"maxItems,omitempty"`

	// Union
	AnyOf []*Schema `json:"anyOf,omitempty"`

	Defs map[string]*Schema `json:"$defs,omitempty"`
}

// Export describes target. Every class, enum and alias reachable from it
// becomes a $defs entry referenced by name, so recursive aliases terminate.
func Export(reg *schema.Registry, target *schema.FieldType) (*Schema, error) {
	x := &exporter{reg: reg, defs: map[string]*Schema{}}
	root, err := x.shape(target)
	if err != nil {
		return nil, err
	}
	if len(x.defs) > 0 {
		root.Defs = x.defs
	}
	return root, nil
}

// MarshalIndent renders s for people.
func MarshalIndent(s *Schema) ([]byte, error) {
	return j.MarshalIndent(s, "", "  ")
}

type exporter struct {
	reg  *schema.Registry
	defs map[string]*Schema
}

func (x *exporter) shape(t *schema.FieldType) (*Schema, error) {
	switch t.Kind {
	case schema.KindPrimitive:
		return primitive(t.Primitive), nil
	case schema.KindLiteral:
		return &Schema{Const: t.Literal}, nil
	case schema.KindEnum, schema.KindClass, schema.KindAlias:
		if err := x.define(t); err != nil {
			return nil, err
		}
		return &Schema{Ref: "#/$defs/" + t.Name}, nil
	case schema.KindList:
		elem, err := x.shape(t.Elem)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: elem}, nil
	case schema.KindTuple:
		out := &Schema{Type: "array", MinItems: ptr(len(t.Items)), MaxItems: ptr(len(t.Items))}
		for _, it := range t.Items {
			s, err := x.shape(it)
			if err != nil {
				return nil, err
			}
			out.PrefixItems = append(out.PrefixItems, s)
		}
		return out, nil
	case schema.KindMap:
		// Keys always render as strings.
		val, err := x.shape(t.Value)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: val}, nil
	case schema.KindOptional:
		elem, err := x.shape(t.Elem)
		if err != nil {
			return nil, err
		}
		if s, ok := elem.Type.(string); ok && elem.Ref == "" && len(elem.AnyOf) == 0 {
			elem.Type = []string{s, "null"}
			return elem, nil
		}
		return &Schema{AnyOf: []*Schema{elem, {Type: "null"}}}, nil
	case schema.KindUnion:
		out := &Schema{}
		for _, it := range t.Items {
			s, err := x.shape(it)
			if err != nil {
				return nil, err
			}
			out.AnyOf = append(out.AnyOf, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("jsonschema: unsupported type %s", t)
}

func (x *exporter) define(t *schema.FieldType) error {
	if _, ok := x.defs[t.Name]; ok {
		return nil
	}
	def := &Schema{}
	// Registered before descending so self references stop here.
	x.defs[t.Name] = def

	switch t.Kind {
	case schema.KindEnum:
		e, ok := x.reg.FindEnum(t.Name)
		if !ok {
			return fmt.Errorf("jsonschema: unknown enum %s", t.Name)
		}
		def.Type = "string"
		for _, v := range e.Values {
			if !v.Skip {
				def.Enum = append(def.Enum, v.Name)
			}
		}
	case schema.KindClass:
		c, ok := x.reg.FindClass(t.Name)
		if !ok {
			return fmt.Errorf("jsonschema: unknown class %s", t.Name)
		}
		def.Type = "object"
		def.Properties = map[string]*Schema{}
		def.AdditionalProperties = false
		for _, f := range c.Fields {
			if f.Skip {
				continue
			}
			ps, err := x.shape(f.Type)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", c.Name, f.Name, err)
			}
			ps.Description = f.Description
			def.Properties[f.Name] = ps
			// Optional fields still render, as null.
			def.Required = append(def.Required, f.Name)
		}
	case schema.KindAlias:
		a, ok := x.reg.FindAlias(t.Name)
		if !ok {
			return fmt.Errorf("jsonschema: unknown alias %s", t.Name)
		}
		s, err := x.shape(a.Target)
		if err != nil {
			return err
		}
		*def = *s
	}
	return nil
}

func primitive(p schema.Primitive) *Schema {
	switch p {
	case schema.PrimNull:
		return &Schema{Type: "null"}
	case schema.PrimBool:
		return &Schema{Type: "boolean"}
	case schema.PrimInt:
		return &Schema{Type: "integer"}
	case schema.PrimFloat:
		return &Schema{Type: "number"}
	}
	return &Schema{Type: "string"}
}

func ptr(n int) *int { return &n }
