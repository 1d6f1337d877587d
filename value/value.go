// Package value defines the loosely-typed tree produced by the flexible
// parser before any schema is applied.
package value

import (
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies a Value variant.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindMarkdown
	KindAnyOf
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindMarkdown:
		return "markdown"
	case KindAnyOf:
		return "any_of"
	default:
		return "unknown"
	}
}

// Completion records whether the source text closed a value.
type Completion int

const (
	Complete Completion = iota
	Incomplete
)

func (c Completion) String() string {
	if c == Incomplete {
		return "incomplete"
	}
	return "complete"
}

// Object is an insertion-ordered map of keys to values.
type Object = orderedmap.OrderedMap[string, *Value]

// NewObject returns an empty Object.
func NewObject() *Object { return orderedmap.New[string, *Value]() }

// Value is a node of the parsed tree. Values are immutable once built.
type Value struct {
	kind  Kind
	state Completion

	b     bool
	text  string // String content, Number text, Markdown content, AnyOf raw text
	lang  string // Markdown language tag
	items []*Value
	obj   *Object
	inner *Value
}

// Null returns a null value.
func Null() *Value { return &Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) *Value { return &Value{kind: KindBool, b: b} }

// Number returns a number that keeps its source text.
func Number(text string, state Completion) *Value {
	return &Value{kind: KindNumber, text: text, state: state}
}

// String returns a string value.
func String(s string, state Completion) *Value {
	return &Value{kind: KindString, text: s, state: state}
}

// Array returns an array. The array is Incomplete when state says so or any
// item is Incomplete.
func Array(items []*Value, state Completion) *Value {
	for _, it := range items {
		if it.Completion() == Incomplete {
			state = Incomplete
			break
		}
	}
	return &Value{kind: KindArray, items: items, state: state}
}

// ObjectOf wraps an ordered map as a value. The object is Incomplete when
// state says so or any member is Incomplete.
func ObjectOf(obj *Object, state Completion) *Value {
	if obj == nil {
		obj = NewObject()
	}
	for p := obj.Oldest(); p != nil; p = p.Next() {
		if p.Value.Completion() == Incomplete {
			state = Incomplete
			break
		}
	}
	return &Value{kind: KindObject, obj: obj, state: state}
}

// Markdown records a fenced code block with its raw content and the value
// parsed from that content.
func Markdown(lang, content string, inner *Value, state Completion) *Value {
	if inner != nil && inner.Completion() == Incomplete {
		state = Incomplete
	}
	return &Value{kind: KindMarkdown, lang: lang, text: content, inner: inner, state: state}
}

// AnyOf records several viable readings of raw. It is Incomplete only when
// every candidate is.
func AnyOf(candidates []*Value, raw string) *Value {
	state := Complete
	if len(candidates) > 0 {
		state = Incomplete
		for _, c := range candidates {
			if c.Completion() == Complete {
				state = Complete
				break
			}
		}
	}
	return &Value{kind: KindAnyOf, items: candidates, text: raw, state: state}
}

func (v *Value) Kind() Kind             { return v.kind }
func (v *Value) Completion() Completion { return v.state }

// AsBool returns the boolean of a Bool value.
func (v *Value) AsBool() bool { return v.b }

// Text returns the string content, number text, markdown content or AnyOf
// raw text depending on the kind.
func (v *Value) Text() string { return v.text }

// Lang returns the language tag of a Markdown value.
func (v *Value) Lang() string { return v.lang }

// Items returns array items or AnyOf candidates.
func (v *Value) Items() []*Value { return v.items }

// Object returns the members of an Object value.
func (v *Value) Object() *Object { return v.obj }

// Inner returns the parsed content of a Markdown value.
func (v *Value) Inner() *Value { return v.inner }

// Get looks up a member of an Object value.
func (v *Value) Get(key string) (*Value, bool) {
	if v.kind != KindObject || v.obj == nil {
		return nil, false
	}
	return v.obj.Get(key)
}

// TypeName describes the value for diagnostics, e.g. "object{a, b}".
func (v *Value) TypeName() string {
	if v == nil {
		return "<absent>"
	}
	switch v.kind {
	case KindObject:
		keys := make([]string, 0, v.obj.Len())
		for p := v.obj.Oldest(); p != nil; p = p.Next() {
			keys = append(keys, p.Key)
		}
		return "object{" + strings.Join(keys, ", ") + "}"
	case KindArray:
		return "array[" + strconv.Itoa(len(v.items)) + "]"
	case KindMarkdown:
		return "markdown:" + v.lang
	case KindAnyOf:
		parts := make([]string, len(v.items))
		for i, c := range v.items {
			parts[i] = c.TypeName()
		}
		return "any_of(" + strings.Join(parts, ", ") + ")"
	default:
		return v.kind.String()
	}
}

// String renders the tree in a compact debug form. Incomplete nodes are
// suffixed with "~".
func (v *Value) String() string {
	b := &strings.Builder{}
	v.write(b)
	return b.String()
}

func (v *Value) write(b *strings.Builder) {
	if v == nil {
		b.WriteString("<absent>")
		return
	}
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		b.WriteString(v.text)
	case KindString:
		b.WriteString(strconv.Quote(v.text))
	case KindArray:
		b.WriteByte('[')
		for i, it := range v.items {
			if i > 0 {
				b.WriteString(", ")
			}
			it.write(b)
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		i := 0
		for p := v.obj.Oldest(); p != nil; p = p.Next() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(p.Key))
			b.WriteString(": ")
			p.Value.write(b)
			i++
		}
		b.WriteByte('}')
	case KindMarkdown:
		b.WriteString("markdown(")
		b.WriteString(v.lang)
		b.WriteString(", ")
		v.inner.write(b)
		b.WriteByte(')')
	case KindAnyOf:
		b.WriteString("any_of(")
		for i, c := range v.items {
			if i > 0 {
				b.WriteString(" | ")
			}
			c.write(b)
		}
		b.WriteString(")")
	}
	if v.state == Incomplete && v.kind != KindAnyOf {
		b.WriteByte('~')
	}
}
