package jsonish

import (
	j "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/reoring/jsonish/value"
)

// ResultKind is the shape of a coerced value.
type ResultKind int

const (
	ResultNull ResultKind = iota
	ResultBool
	ResultInt
	ResultFloat
	ResultString
	ResultEnum
	ResultClass
	ResultList
	ResultMap
)

func (k ResultKind) String() string {
	switch k {
	case ResultNull:
		return "null"
	case ResultBool:
		return "bool"
	case ResultInt:
		return "int"
	case ResultFloat:
		return "float"
	case ResultString:
		return "string"
	case ResultEnum:
		return "enum"
	case ResultClass:
		return "class"
	case ResultList:
		return "list"
	case ResultMap:
		return "map"
	}
	return "unknown"
}

// ValueWithFlags is a typed coercion result. Every node owns its flags and
// completion state. Union selections are the chosen member's value carrying
// a union_match flag.
type ValueWithFlags struct {
	Kind ResultKind

	Bool  bool
	Int   int64
	Float float64
	Str   string // string value, or the value name of an enum

	Name    string // enum or class name
	Fields  []Field
	Entries []Entry
	Items   []*ValueWithFlags // list and tuple elements

	Flags      []Flag
	Completion value.Completion
}

// Field is one resolved class field.
type Field struct {
	Name  string
	Value *ValueWithFlags
}

// Entry is one map entry.
type Entry struct {
	Key   string
	Value *ValueWithFlags
}

func (v *ValueWithFlags) addFlag(f Flag) { v.Flags = append(v.Flags, f) }

// HasFlag reports whether the node itself carries a flag of kind k.
func (v *ValueWithFlags) HasFlag(k FlagKind) bool {
	for _, f := range v.Flags {
		if f.Kind == k {
			return true
		}
	}
	return false
}

// Field returns the class field called name.
func (v *ValueWithFlags) Field(name string) (*ValueWithFlags, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Walk visits every node depth-first with its scope relative to root.
func (v *ValueWithFlags) Walk(root Scope, fn func(Scope, *ValueWithFlags)) {
	fn(root, v)
	for _, f := range v.Fields {
		f.Value.Walk(root.Field(f.Name), fn)
	}
	for _, e := range v.Entries {
		e.Value.Walk(root.Key(e.Key), fn)
	}
	for i, it := range v.Items {
		it.Walk(root.Index(i), fn)
	}
}

// Score sums the flags of the whole tree.
func (v *ValueWithFlags) Score() Score {
	var s Score
	v.Walk(Scope{}, func(_ Scope, n *ValueWithFlags) {
		for _, f := range n.Flags {
			s.add(f)
		}
	})
	return s
}

// Plain projects the result onto plain Go values: nil, bool, int64,
// float64, string, []any and *orderedmap.OrderedMap[string, any]. Enums
// project to their value name. Flags are dropped.
func (v *ValueWithFlags) Plain() any {
	switch v.Kind {
	case ResultNull:
		return nil
	case ResultBool:
		return v.Bool
	case ResultInt:
		return v.Int
	case ResultFloat:
		return v.Float
	case ResultString, ResultEnum:
		return v.Str
	case ResultClass:
		m := orderedmap.New[string, any]()
		for _, f := range v.Fields {
			m.Set(f.Name, f.Value.Plain())
		}
		return m
	case ResultMap:
		m := orderedmap.New[string, any]()
		for _, e := range v.Entries {
			m.Set(e.Key, e.Value.Plain())
		}
		return m
	case ResultList:
		out := make([]any, len(v.Items))
		for i, it := range v.Items {
			out[i] = it.Plain()
		}
		return out
	}
	return nil
}

// MarshalJSON renders the plain projection with field order preserved.
func (v *ValueWithFlags) MarshalJSON() ([]byte, error) {
	return j.Marshal(v.Plain())
}

func newNull() *ValueWithFlags { return &ValueWithFlags{Kind: ResultNull} }

// childrenCompletion is Incomplete when any child node is.
func childrenCompletion(nodes ...*ValueWithFlags) value.Completion {
	for _, n := range nodes {
		if n != nil && n.Completion == value.Incomplete {
			return value.Incomplete
		}
	}
	return value.Complete
}
