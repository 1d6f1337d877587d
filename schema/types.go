// Package schema is the read-only view of a resolved type graph that the
// coercion engine targets: classes, enums, recursive aliases and the
// FieldType shapes that reference them.
package schema

import (
	"strconv"
	"strings"
)

// TypeKind identifies a FieldType shape.
type TypeKind int

const (
	KindPrimitive TypeKind = iota
	KindEnum
	KindClass
	KindList
	KindMap
	KindTuple
	KindUnion
	KindOptional
	KindAlias
	KindLiteral
)

// Primitive enumerates scalar types.
type Primitive int

const (
	PrimNull Primitive = iota
	PrimBool
	PrimInt
	PrimFloat
	PrimString
)

func (p Primitive) String() string {
	switch p {
	case PrimNull:
		return "null"
	case PrimBool:
		return "bool"
	case PrimInt:
		return "int"
	case PrimFloat:
		return "float"
	case PrimString:
		return "string"
	}
	return "unknown"
}

// FieldType is a node of the type graph. Named shapes (enum, class, alias)
// are references resolved through a Registry.
type FieldType struct {
	Kind      TypeKind
	Primitive Primitive
	Name      string       // enum, class or alias name
	Elem      *FieldType   // list and optional element
	Key       *FieldType   // map key
	Value     *FieldType   // map value
	Items     []*FieldType // tuple elements, union members
	Literal   any          // string, int64 or bool

	Constraints []Constraint
}

func prim(p Primitive) *FieldType { return &FieldType{Kind: KindPrimitive, Primitive: p} }

func Null() *FieldType   { return prim(PrimNull) }
func Bool() *FieldType   { return prim(PrimBool) }
func Int() *FieldType    { return prim(PrimInt) }
func Float() *FieldType  { return prim(PrimFloat) }
func String() *FieldType { return prim(PrimString) }

func EnumRef(name string) *FieldType  { return &FieldType{Kind: KindEnum, Name: name} }
func ClassRef(name string) *FieldType { return &FieldType{Kind: KindClass, Name: name} }
func AliasRef(name string) *FieldType { return &FieldType{Kind: KindAlias, Name: name} }

func ListOf(elem *FieldType) *FieldType     { return &FieldType{Kind: KindList, Elem: elem} }
func OptionalOf(elem *FieldType) *FieldType { return &FieldType{Kind: KindOptional, Elem: elem} }
func MapOf(k, v *FieldType) *FieldType      { return &FieldType{Kind: KindMap, Key: k, Value: v} }
func TupleOf(items ...*FieldType) *FieldType {
	return &FieldType{Kind: KindTuple, Items: items}
}
func UnionOf(items ...*FieldType) *FieldType {
	return &FieldType{Kind: KindUnion, Items: items}
}

// LiteralOf builds a literal type. Ints are normalized to int64.
func LiteralOf(v any) *FieldType {
	switch x := v.(type) {
	case int:
		v = int64(x)
	case int32:
		v = int64(x)
	}
	return &FieldType{Kind: KindLiteral, Literal: v}
}

// With returns a shallow copy of t carrying additional constraints.
func (t *FieldType) With(cs ...Constraint) *FieldType {
	cp := *t
	cp.Constraints = append(append([]Constraint{}, t.Constraints...), cs...)
	return &cp
}

// IsOptional reports whether the type admits null without further context:
// optional types, null itself, and unions with a null member.
func (t *FieldType) IsOptional() bool {
	switch t.Kind {
	case KindOptional:
		return true
	case KindPrimitive:
		return t.Primitive == PrimNull
	case KindUnion:
		for _, it := range t.Items {
			if it.IsOptional() {
				return true
			}
		}
	}
	return false
}

// String renders the type in schema notation: int[], map<string, int>,
// (int, string), A | B, int?, "lit".
func (t *FieldType) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindPrimitive:
		return t.Primitive.String()
	case KindEnum, KindClass, KindAlias:
		return t.Name
	case KindList:
		return wrapUnion(t.Elem) + "[]"
	case KindOptional:
		return wrapUnion(t.Elem) + "?"
	case KindMap:
		return "map<" + t.Key.String() + ", " + t.Value.String() + ">"
	case KindTuple:
		parts := make([]string, len(t.Items))
		for i, it := range t.Items {
			parts[i] = it.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindUnion:
		parts := make([]string, len(t.Items))
		for i, it := range t.Items {
			parts[i] = it.String()
		}
		return strings.Join(parts, " | ")
	case KindLiteral:
		switch l := t.Literal.(type) {
		case string:
			return strconv.Quote(l)
		case int64:
			return strconv.FormatInt(l, 10)
		case bool:
			return strconv.FormatBool(l)
		}
	}
	return "unknown"
}

func wrapUnion(t *FieldType) string {
	if t.Kind == KindUnion {
		return "(" + t.String() + ")"
	}
	return t.String()
}

// ConstraintLevel distinguishes non-fatal checks from fatal asserts.
type ConstraintLevel int

const (
	LevelCheck ConstraintLevel = iota
	LevelAssert
)

func (l ConstraintLevel) String() string {
	if l == LevelAssert {
		return "assert"
	}
	return "check"
}

// Constraint is an expression evaluated against a coerced value bound as
// `this`.
type Constraint struct {
	Level ConstraintLevel
	Expr  string
	Label string
}

// Check builds a non-fatal constraint.
func Check(label, expr string) Constraint {
	return Constraint{Level: LevelCheck, Expr: expr, Label: label}
}

// Assert builds a fatal constraint.
func Assert(expr string) Constraint { return Constraint{Level: LevelAssert, Expr: expr} }

// Field is a class member.
type Field struct {
	Name        string
	Type        *FieldType
	Alias       string
	Description string
	// Skip excludes the field from matching and from results.
	Skip bool
}

// RenderedName is the key a model is told to produce.
func (f Field) RenderedName() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// Class is a named record type.
type Class struct {
	Name        string
	Fields      []Field
	Constraints []Constraint
}

// EnumValue is one member of an enum.
type EnumValue struct {
	Name        string
	Alias       string
	Description string
	Skip        bool
}

// RenderedName is the spelling a model is told to produce.
func (v EnumValue) RenderedName() string {
	if v.Alias != "" {
		return v.Alias
	}
	return v.Name
}

// Enum is a named closed set of values.
type Enum struct {
	Name        string
	Values      []EnumValue
	Constraints []Constraint
}

// Alias is a named, possibly self-referential type.
type Alias struct {
	Name   string
	Target *FieldType
}
