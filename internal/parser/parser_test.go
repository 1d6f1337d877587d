package parser

import (
	"strings"
	"testing"

	"github.com/reoring/jsonish/value"
)

func TestParse_Stages(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "strict_object", input: `{"a": 1, "b": [true, null]}`, want: `any_of({"a": 1, "b": [true, null]})`},
		{name: "strict_string", input: `"hello"`, want: `"hello"`},
		{name: "strict_number", input: ` 42 `, want: `any_of(42)`},
		{name: "bare_text", input: "  RED  ", want: `"RED"`},
		{name: "blank", input: " \n ", want: `""`},
		{name: "prose_with_object", input: `Sure! Here you go: {"x": 1} hope it helps`, want: `any_of({"x": 1})`},
		{name: "two_objects", input: `{"id": 1} and {"id": 2}`, want: `any_of({"id": 1} | {"id": 2} | [{"id": 1}, {"id": 2}])`},
		{name: "single_quoted", input: `'it works'`, want: `any_of("it works")`},
		{name: "fenced", input: "text\n```json\n{\"a\": 1}\n```\nmore", want: `any_of(markdown(json, any_of({"a": 1})))`},
		{name: "fenced_unterminated", input: "```json\n{\"a\": [1,", want: `any_of(markdown(json, any_of({"a": [1]~}~))~)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_TruncatedStream(t *testing.T) {
	got, err := Parse(`{"a": 1, "b": [1,2,`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Kind() != value.KindAnyOf || len(got.Items()) != 1 {
		t.Fatalf("expected single candidate, got %s", got)
	}
	obj := got.Items()[0]
	if obj.Completion() != value.Incomplete {
		t.Fatalf("root should be incomplete")
	}
	a, _ := obj.Get("a")
	if a.Completion() != value.Complete || a.Text() != "1" {
		t.Fatalf("a should be a complete 1, got %s", a)
	}
	b, _ := obj.Get("b")
	if b.Kind() != value.KindArray || len(b.Items()) != 2 || b.Completion() != value.Incomplete {
		t.Fatalf("b should be an incomplete [1,2], got %s", b)
	}
}

func TestFixParse_Leniency(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "unquoted_keys", input: `{name: "Ann", age: 3}`, want: `{"name": "Ann", "age": 3}`},
		{name: "single_quotes", input: `{'k': 'v'}`, want: `{"k": "v"}`},
		{name: "trailing_commas", input: `{"a": [1, 2,], }`, want: `{"a": [1, 2]}`},
		{name: "comments", input: "{\n// note\n\"a\": 1, /* x */ \"b\": 2 # tail\n}", want: `{"a": 1, "b": 2}`},
		{name: "barewords", input: `[true, False, null, None]`, want: `[true, false, null, null]`},
		{name: "unquoted_value", input: `{city: New York, zip: 10001}`, want: `{"city": "New York", "zip": 10001}`},
		{name: "number_with_suffix", input: `{"n": 12abc}`, want: `{"n": "12abc"}`},
		{name: "inner_quotes", input: `{"q": "he said "hi" twice"}`, want: `{"q": "he said \"hi\" twice"}`},
		{name: "escapes", input: `{"s": "a\nbé\""}`, want: `{"s": "a\nbé\""}`},
		{name: "truncated_string", input: `{"s": "hal`, want: `{"s": "hal"~}~`},
		{name: "truncated_number", input: `[1, 23`, want: `[1, 23~]~`},
		{name: "truncated_key", input: `{"a": 1, "b`, want: `{"a": 1}~`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fixParse(tt.input)
			if err != nil {
				t.Fatalf("fixParse: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("fixParse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestFixParse_TooDeep(t *testing.T) {
	_, err := Parse(strings.Repeat("[", MaxNesting+5))
	if err != ErrTooDeep {
		t.Fatalf("expected ErrTooDeep, got %v", err)
	}
}

func TestIsNumber(t *testing.T) {
	for _, s := range []string{"1", "-2.5", "+3", "1e10", "0.5E-3", ".5"} {
		if !IsNumber(s) {
			t.Fatalf("IsNumber(%q) = false", s)
		}
	}
	for _, s := range []string{"", "-", "1e", "12abc", "1.2.3", "NaN", "0x10"} {
		if IsNumber(s) {
			t.Fatalf("IsNumber(%q) = true", s)
		}
	}
}

func TestFindStructures(t *testing.T) {
	segs := findStructures(`} noise {"a": "}"} [1, [2]] {"open": [`)
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	if !segs[0].closed || !segs[1].closed || segs[2].closed {
		t.Fatalf("unexpected closed flags: %+v", segs)
	}
}

func TestFindStructures_Quotes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single_quoted_closer", input: `{'a': 'x}', 'b': 1}`, want: []string{`{'a': 'x}', 'b': 1}`}},
		{name: "backtick_closer", input: "{`a`: `}`, b: 2}", want: []string{"{`a`: `}`, b: 2}"}},
		{name: "escaped_quote", input: `{'a': 'it\'s }'}`, want: []string{`{'a': 'it\'s }'}`}},
		{name: "in_prose", input: `Here: {'a': 'x}', 'b': 1} done`, want: []string{`{'a': 'x}', 'b': 1}`}},
		{name: "apostrophe_in_bare_value", input: `{a: don't, b: 1} {c: 2}`, want: []string{`{a: don't, b: 1}`, `{c: 2}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := findStructures(tt.input)
			var got []string
			for _, s := range segs {
				if !s.closed {
					t.Fatalf("segment %q left open", tt.input[s.start:s.end])
				}
				got = append(got, tt.input[s.start:s.end])
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Fatalf("segments = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_SingleQuotedStructureInProse(t *testing.T) {
	got, err := Parse(`Here: {'a': 'x}', 'b': 1} done`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := `any_of({"a": "x}", "b": 1})`; got.String() != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
