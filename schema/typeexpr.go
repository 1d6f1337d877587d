package schema

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseType parses a type expression such as `map<string, Item[]>?` or
// `"a" | "b" | int`. Bare names are resolved with resolve; primitives are
// built in.
func ParseType(src string, resolve func(name string) (*FieldType, bool)) (*FieldType, error) {
	p := &typeParser{src: src, resolve: resolve}
	t, err := p.union()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

type typeParser struct {
	src     string
	pos     int
	resolve func(string) (*FieldType, bool)
}

func (p *typeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("schema: type %q at %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) eat(s string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *typeParser) union() (*FieldType, error) {
	first, err := p.postfix()
	if err != nil {
		return nil, err
	}
	items := []*FieldType{first}
	for p.eat("|") {
		next, err := p.postfix()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	if len(items) == 1 {
		return first, nil
	}
	return UnionOf(items...), nil
}

func (p *typeParser) postfix() (*FieldType, error) {
	t, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.eat("[]"):
			t = ListOf(t)
		case p.eat("?"):
			t = OptionalOf(t)
		default:
			return t, nil
		}
	}
}

func (p *typeParser) primary() (*FieldType, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, p.errorf("unexpected end of type")
	}
	switch c := p.src[p.pos]; {
	case c == '(':
		p.pos++
		items := []*FieldType{}
		for {
			t, err := p.union()
			if err != nil {
				return nil, err
			}
			items = append(items, t)
			if p.eat(",") {
				continue
			}
			if !p.eat(")") {
				return nil, p.errorf("expected ')'")
			}
			break
		}
		if len(items) == 1 {
			return items[0], nil
		}
		return TupleOf(items...), nil
	case c == '"':
		end := strings.IndexByte(p.src[p.pos+1:], '"')
		if end < 0 {
			return nil, p.errorf("unterminated string literal")
		}
		lit := p.src[p.pos+1 : p.pos+1+end]
		p.pos += end + 2
		return LiteralOf(lit), nil
	case c == '-' || (c >= '0' && c <= '9'):
		start := p.pos
		p.pos++
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
		}
		n, err := strconv.ParseInt(p.src[start:p.pos], 10, 64)
		if err != nil {
			return nil, p.errorf("bad int literal: %v", err)
		}
		return LiteralOf(n), nil
	}
	name := p.ident()
	if name == "" {
		return nil, p.errorf("expected a type")
	}
	switch name {
	case "int":
		return Int(), nil
	case "float":
		return Float(), nil
	case "bool":
		return Bool(), nil
	case "string":
		return String(), nil
	case "null":
		return Null(), nil
	case "true", "false":
		return LiteralOf(name == "true"), nil
	case "map":
		if !p.eat("<") {
			return nil, p.errorf("expected '<' after map")
		}
		k, err := p.union()
		if err != nil {
			return nil, err
		}
		if !p.eat(",") {
			return nil, p.errorf("expected ',' in map")
		}
		v, err := p.union()
		if err != nil {
			return nil, err
		}
		if !p.eat(">") {
			return nil, p.errorf("expected '>' closing map")
		}
		return MapOf(k, v), nil
	}
	if p.resolve != nil {
		if t, ok := p.resolve(name); ok {
			return t, nil
		}
	}
	return nil, p.errorf("unknown type %q", name)
}

func (p *typeParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if r == '_' || unicode.IsLetter(r) || (p.pos > start && unicode.IsDigit(r)) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}
