package jsonish

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/reoring/jsonish/internal/match"
	"github.com/reoring/jsonish/internal/parser"
	"github.com/reoring/jsonish/schema"
	"github.com/reoring/jsonish/value"
)

func (c *parsingContext) coercePrimitive(t *schema.FieldType, v *value.Value) (*ValueWithFlags, *ParsingError) {
	var res *ValueWithFlags
	switch t.Primitive {
	case schema.PrimNull:
		res = toNull(v)
	case schema.PrimBool:
		res = toBool(v)
	case schema.PrimInt:
		res = toInt(v)
	case schema.PrimFloat:
		res = toFloat(v)
	case schema.PrimString:
		res = toString(v)
	}
	if res == nil {
		return nil, c.mismatch(t, v)
	}
	res.Completion = v.Completion()
	return res, nil
}

func toNull(v *value.Value) *ValueWithFlags {
	switch v.Kind() {
	case value.KindNull:
		return newNull()
	case value.KindString:
		switch strings.ToLower(strings.TrimSpace(v.Text())) {
		case "", "null", "none":
			res := newNull()
			res.addFlag(Flag{Kind: FlagStringToNull, Detail: v.Text()})
			return res
		}
	}
	return nil
}

func toBool(v *value.Value) *ValueWithFlags {
	switch v.Kind() {
	case value.KindBool:
		return &ValueWithFlags{Kind: ResultBool, Bool: v.AsBool()}
	case value.KindString:
		var b bool
		switch strings.ToLower(strings.TrimSpace(v.Text())) {
		case "true":
			b = true
		case "false":
		default:
			return nil
		}
		res := &ValueWithFlags{Kind: ResultBool, Bool: b}
		res.addFlag(Flag{Kind: FlagStringToBool, Detail: v.Text()})
		return res
	}
	return nil
}

func toInt(v *value.Value) *ValueWithFlags {
	var (
		text  string
		flags []Flag
	)
	switch v.Kind() {
	case value.KindNumber:
		text = v.Text()
	case value.KindString:
		n, ok := numericText(v.Text())
		if !ok {
			return nil
		}
		text = n
		flags = append(flags, Flag{Kind: FlagStringToNumber, Detail: v.Text()})
	default:
		return nil
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return &ValueWithFlags{Kind: ResultInt, Int: n, Flags: flags}
	}
	f, ok := parseFloat(text)
	if !ok {
		return nil
	}
	r := math.Round(f)
	if r < math.MinInt64 || r >= math.MaxInt64 {
		return nil
	}
	if r != f {
		flags = append(flags, Flag{Kind: FlagFloatToInt, Detail: text})
	}
	return &ValueWithFlags{Kind: ResultInt, Int: int64(r), Flags: flags}
}

func toFloat(v *value.Value) *ValueWithFlags {
	switch v.Kind() {
	case value.KindNumber:
		if f, ok := parseFloat(v.Text()); ok {
			return &ValueWithFlags{Kind: ResultFloat, Float: f}
		}
	case value.KindString:
		n, ok := numericText(v.Text())
		if !ok {
			return nil
		}
		if f, ok := parseFloat(n); ok {
			res := &ValueWithFlags{Kind: ResultFloat, Float: f}
			res.addFlag(Flag{Kind: FlagStringToNumber, Detail: v.Text()})
			return res
		}
	}
	return nil
}

func toString(v *value.Value) *ValueWithFlags {
	res := &ValueWithFlags{Kind: ResultString}
	switch v.Kind() {
	case value.KindString:
		res.Str = v.Text()
	case value.KindNumber:
		res.Str = v.Text()
		res.addFlag(Flag{Kind: FlagNumberToString})
	case value.KindBool:
		res.Str = strconv.FormatBool(v.AsBool())
		res.addFlag(Flag{Kind: FlagBoolToString})
	case value.KindObject, value.KindArray:
		b, err := j.Marshal(plainOf(v))
		if err != nil {
			return nil
		}
		res.Str = string(b)
		res.addFlag(Flag{Kind: FlagJSONToString})
	default:
		return nil
	}
	return res
}

var (
	thousands = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)
	fraction  = regexp.MustCompile(`^([+-]?\d+)\s*/\s*(\d+)$`)
	embedded  = regexp.MustCompile(`[+-]?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?(?:[eE][+-]?\d+)?`)
)

// numericText normalizes numeric prose such as " 1,234.5 " or "3/4" to a
// plain decimal literal. Text that is not a number as a whole yields its
// first numeric run, so "30 years" and "$1,234" read as 30 and 1234.
func numericText(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if thousands.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}
	if m := fraction.FindStringSubmatch(s); m != nil {
		num, err1 := strconv.ParseFloat(m[1], 64)
		den, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil || den == 0 {
			return "", false
		}
		return strconv.FormatFloat(num/den, 'g', -1, 64), true
	}
	if !parser.IsNumber(s) {
		s = strings.ReplaceAll(embedded.FindString(s), ",", "")
		if !parser.IsNumber(s) {
			return "", false
		}
	}
	return strings.TrimPrefix(s, "+"), true
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// coerceLiteral accepts a value equal to the literal. String literals go
// through the matcher so casing and surrounding prose are tolerated.
func (c *parsingContext) coerceLiteral(t *schema.FieldType, v *value.Value) (*ValueWithFlags, *ParsingError) {
	switch lit := t.Literal.(type) {
	case string:
		text, ok := scalarText(v)
		if !ok {
			return nil, c.mismatch(t, v)
		}
		r, err := match.Match(text, []match.Candidate{{Name: lit, Aliases: []string{lit}}})
		if err != nil {
			return nil, c.mismatch(t, v)
		}
		res := &ValueWithFlags{Kind: ResultString, Str: lit, Completion: v.Completion()}
		if f, ok := matchFlag(r.Kind); ok {
			res.addFlag(f)
		}
		return res, nil
	case int64:
		res := toInt(v)
		if res == nil || res.Int != lit {
			return nil, c.mismatch(t, v)
		}
		res.Completion = v.Completion()
		return res, nil
	case bool:
		res := toBool(v)
		if res == nil || res.Bool != lit {
			return nil, c.mismatch(t, v)
		}
		res.Completion = v.Completion()
		return res, nil
	}
	return nil, c.mismatch(t, v)
}

// scalarText is the text the matcher sees for a scalar value.
func scalarText(v *value.Value) (string, bool) {
	switch v.Kind() {
	case value.KindString, value.KindNumber:
		return v.Text(), true
	case value.KindBool:
		return strconv.FormatBool(v.AsBool()), true
	}
	return "", false
}

func matchFlag(k match.Kind) (Flag, bool) {
	switch k {
	case match.CaseInsensitive:
		return Flag{Kind: FlagEnumCaseInsensitive}, true
	case match.Substring:
		return Flag{Kind: FlagEnumSubstring}, true
	case match.Fuzzy:
		return Flag{Kind: FlagEnumFuzzy}, true
	}
	return Flag{}, false
}

// plainOf projects a parsed value onto plain Go values for rendering.
// Ambiguous parses use their first reading.
func plainOf(v *value.Value) any {
	switch v.Kind() {
	case value.KindBool:
		return v.AsBool()
	case value.KindNumber:
		if n, err := strconv.ParseInt(v.Text(), 10, 64); err == nil {
			return n
		}
		if f, ok := parseFloat(v.Text()); ok {
			return f
		}
		return v.Text()
	case value.KindString:
		return v.Text()
	case value.KindArray:
		out := make([]any, len(v.Items()))
		for i, it := range v.Items() {
			out[i] = plainOf(it)
		}
		return out
	case value.KindObject:
		m := orderedmap.New[string, any]()
		for p := v.Object().Oldest(); p != nil; p = p.Next() {
			m.Set(p.Key, plainOf(p.Value))
		}
		return m
	case value.KindMarkdown:
		if v.Inner() != nil {
			return plainOf(v.Inner())
		}
		return v.Text()
	case value.KindAnyOf:
		if len(v.Items()) > 0 {
			return plainOf(v.Items()[0])
		}
		return v.Text()
	}
	return nil
}
