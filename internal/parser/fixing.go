package parser

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/reoring/jsonish/value"
)

// MaxNesting bounds container nesting in lenient parsing.
const MaxNesting = 512

// ErrTooDeep reports input nested beyond MaxNesting.
var ErrTooDeep = errors.New("parser: nesting too deep")

type position int

const (
	inTop position = iota
	inObject
	inArray
)

// fixer is a tolerant recursive-descent reader for JSON-like text. It
// accepts unquoted keys and values, single- and back-quoted strings,
// trailing commas and comments, and closes anything left open at the end
// of input, marking those nodes Incomplete.
type fixer struct {
	src   string
	pos   int
	depth int
}

// fixParse reads the first value in src. It returns nil when src holds no
// value at all.
func fixParse(src string) (*value.Value, error) {
	f := &fixer{src: src}
	return f.value(inTop)
}

func (f *fixer) eof() bool { return f.pos >= len(f.src) }

func (f *fixer) peek(off int) byte {
	if f.pos+off >= len(f.src) {
		return 0
	}
	return f.src[f.pos+off]
}

func (f *fixer) skipTrivia() {
	for !f.eof() {
		switch c := f.src[f.pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			f.pos++
		case c == '/' && f.peek(1) == '/', c == '#':
			for !f.eof() && f.src[f.pos] != '\n' {
				f.pos++
			}
		case c == '/' && f.peek(1) == '*':
			end := strings.Index(f.src[f.pos+2:], "*/")
			if end < 0 {
				f.pos = len(f.src)
				return
			}
			f.pos += end + 4
		default:
			return
		}
	}
}

func (f *fixer) value(at position) (*value.Value, error) {
	f.skipTrivia()
	if f.eof() {
		return nil, nil
	}
	switch c := f.src[f.pos]; c {
	case '{':
		return f.object()
	case '[':
		return f.array()
	case '"', '\'', '`':
		s, state := f.quoted(c, at)
		return value.String(s, state), nil
	default:
		return f.bare(at), nil
	}
}

func (f *fixer) enter() error {
	f.depth++
	if f.depth > MaxNesting {
		return ErrTooDeep
	}
	return nil
}

func (f *fixer) object() (*value.Value, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	defer func() { f.depth-- }()
	f.pos++
	obj := value.NewObject()
	for {
		f.skipTrivia()
		if f.eof() {
			return value.ObjectOf(obj, value.Incomplete), nil
		}
		switch f.src[f.pos] {
		case '}', ']':
			f.pos++
			return value.ObjectOf(obj, value.Complete), nil
		case ',':
			f.pos++
			continue
		}
		key, ok := f.key()
		if !ok {
			return value.ObjectOf(obj, value.Incomplete), nil
		}
		f.skipTrivia()
		if f.eof() {
			return value.ObjectOf(obj, value.Incomplete), nil
		}
		switch f.src[f.pos] {
		case ':':
			f.pos++
		case ',', '}':
			// key without a value
			continue
		}
		v, err := f.value(inObject)
		if err != nil {
			return nil, err
		}
		if v == nil {
			if f.eof() {
				return value.ObjectOf(obj, value.Incomplete), nil
			}
			continue
		}
		obj.Set(key, v)
	}
}

// key reads an object key. ok is false when input ends inside the key.
func (f *fixer) key() (string, bool) {
	switch c := f.src[f.pos]; c {
	case '"', '\'', '`':
		s, state := f.quoted(c, inObject)
		return s, state == value.Complete
	}
	start := f.pos
	for !f.eof() {
		c := f.src[f.pos]
		if c == ':' || c == ',' || c == '}' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			break
		}
		f.pos++
	}
	if f.eof() {
		return "", false
	}
	return f.src[start:f.pos], true
}

func (f *fixer) array() (*value.Value, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	defer func() { f.depth-- }()
	f.pos++
	var items []*value.Value
	for {
		f.skipTrivia()
		if f.eof() {
			return value.Array(items, value.Incomplete), nil
		}
		switch f.src[f.pos] {
		case ']', '}':
			f.pos++
			return value.Array(items, value.Complete), nil
		case ',':
			f.pos++
			continue
		}
		v, err := f.value(inArray)
		if err != nil {
			return nil, err
		}
		if v == nil {
			if f.eof() {
				return value.Array(items, value.Incomplete), nil
			}
			f.pos++
			continue
		}
		items = append(items, v)
	}
}

// quoted reads a string opened by q. Inside containers a quote only closes
// the string when what follows is structural, so unescaped quotes inside
// prose survive.
func (f *fixer) quoted(q byte, at position) (string, value.Completion) {
	f.pos++
	b := &strings.Builder{}
	for !f.eof() {
		c := f.src[f.pos]
		switch {
		case c == '\\':
			if f.pos+1 >= len(f.src) {
				f.pos++
				return b.String(), value.Incomplete
			}
			f.escape(b)
		case c == q:
			if at != inTop && !f.closesAt(f.pos+1) {
				b.WriteByte(c)
				f.pos++
				continue
			}
			f.pos++
			return b.String(), value.Complete
		default:
			b.WriteByte(c)
			f.pos++
		}
	}
	return b.String(), value.Incomplete
}

func (f *fixer) closesAt(i int) bool {
	for i < len(f.src) && (f.src[i] == ' ' || f.src[i] == '\t') {
		i++
	}
	if i >= len(f.src) {
		return true
	}
	switch f.src[i] {
	case ',', '}', ']', ':', '\n', '\r':
		return true
	}
	return false
}

func (f *fixer) escape(b *strings.Builder) {
	c := f.src[f.pos+1]
	f.pos += 2
	switch c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'u':
		r, ok := f.hex4()
		if !ok {
			b.WriteString(`\u`)
			return
		}
		if utf16.IsSurrogate(r) && f.peek(0) == '\\' && f.peek(1) == 'u' {
			save := f.pos
			f.pos += 2
			if r2, ok := f.hex4(); ok {
				r = utf16.DecodeRune(r, r2)
			} else {
				f.pos = save
			}
		}
		b.WriteRune(r)
	default:
		b.WriteByte(c)
	}
}

func (f *fixer) hex4() (rune, bool) {
	if f.pos+4 > len(f.src) {
		return 0, false
	}
	n, err := strconv.ParseUint(f.src[f.pos:f.pos+4], 16, 32)
	if err != nil {
		return 0, false
	}
	f.pos += 4
	return rune(n), true
}

// bare reads an unquoted scalar up to the terminator of its position.
// Numbers and words ending exactly at end of input are Incomplete because a
// stream may still extend them.
func (f *fixer) bare(at position) *value.Value {
	start := f.pos
	for !f.eof() {
		c := f.src[f.pos]
		if c == '\n' || c == '\r' {
			break
		}
		if (at == inObject && (c == ',' || c == '}')) || (at == inArray && (c == ',' || c == ']')) {
			break
		}
		if c == '/' && (f.peek(1) == '/' || f.peek(1) == '*') {
			break
		}
		if c == '#' && f.pos > start && (f.src[f.pos-1] == ' ' || f.src[f.pos-1] == '\t') {
			break
		}
		f.pos++
	}
	tok := strings.TrimSpace(f.src[start:f.pos])
	if tok == "" {
		return nil
	}
	state := value.Complete
	if f.eof() {
		state = value.Incomplete
	}
	switch tok {
	case "true", "True":
		return value.Bool(true)
	case "false", "False":
		return value.Bool(false)
	case "null", "None":
		return value.Null()
	}
	if IsNumber(tok) {
		return value.Number(strings.TrimPrefix(tok, "+"), state)
	}
	return value.String(tok, state)
}

// IsNumber reports whether s is a plain decimal number: optional sign,
// digits, optional fraction and exponent. Tokens with any trailing text are
// not numbers.
func IsNumber(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '-' || s[i] == '+') {
			i++
		}
		exp := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}
