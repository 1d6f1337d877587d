package jsonish

import (
	"strconv"
	"strings"
)

type scopeKind uint8

const (
	scopeField scopeKind = iota
	scopeIndex
	scopeKey
)

type scopePart struct {
	kind  scopeKind
	name  string
	index int
}

// Scope is the path from the coercion root to the current node. It renders
// as `MyClass.items[2].name` for people and as a JSON Pointer for tools.
// Extending a Scope never mutates the receiver.
type Scope struct {
	root  string
	parts []scopePart
}

// RootScope starts a path at the named target type. name may be empty.
func RootScope(name string) Scope { return Scope{root: name} }

func (s Scope) Field(name string) Scope {
	return s.with(scopePart{kind: scopeField, name: name})
}

func (s Scope) Index(i int) Scope {
	return s.with(scopePart{kind: scopeIndex, index: i})
}

// Key addresses a map entry.
func (s Scope) Key(k string) Scope {
	return s.with(scopePart{kind: scopeKey, name: k})
}

func (s Scope) with(p scopePart) Scope {
	parts := make([]scopePart, len(s.parts), len(s.parts)+1)
	copy(parts, s.parts)
	return Scope{root: s.root, parts: append(parts, p)}
}

func (s Scope) String() string {
	b := &strings.Builder{}
	b.WriteString(s.root)
	for _, p := range s.parts {
		switch p.kind {
		case scopeField:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(p.name)
		case scopeIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(p.index))
			b.WriteByte(']')
		case scopeKey:
			b.WriteByte('[')
			b.WriteString(strconv.Quote(p.name))
			b.WriteByte(']')
		}
	}
	if b.Len() == 0 {
		return "<root>"
	}
	return b.String()
}

// Pointer renders the path as an RFC 6901 JSON Pointer. The root type name
// is not part of the pointer.
func (s Scope) Pointer() string {
	if len(s.parts) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, p := range s.parts {
		b.WriteByte('/')
		if p.kind == scopeIndex {
			b.WriteString(strconv.Itoa(p.index))
			continue
		}
		// escape '~' -> '~0', '/' -> '~1' per RFC6901
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(p.name, "~", "~0"), "/", "~1"))
	}
	return b.String()
}
