package expr_test

import (
	"testing"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/reoring/jsonish/internal/expr"
)

func TestEvaluate(t *testing.T) {
	person := orderedmap.New[string, any]()
	person.Set("name", "Ann")
	person.Set("age", int64(31))

	tests := []struct {
		name string
		src  string
		this any
		want bool
	}{
		{name: "int_compare", src: "this >= 18", this: int64(21), want: true},
		{name: "int_compare_false", src: "this >= 18", this: int64(7), want: false},
		{name: "float", src: "this < 1.5", this: 1.25, want: true},
		{name: "string_fn", src: `lower(this) == "red"`, this: "RED", want: true},
		{name: "length", src: "length(this) == 3", this: []any{int64(1), "a", true}, want: true},
		{name: "object_attr", src: `this.name == "Ann" && this.age > 30`, this: person, want: true},
		{name: "can_regex", src: `can(regex("^[a-z]+$", this))`, this: "abc", want: true},
		{name: "can_regex_false", src: `can(regex("^[a-z]+$", this))`, this: "ABC", want: false},
		{name: "null_subject", src: "this == null", this: nil, want: true},
	}
	ev := expr.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ev.Evaluate(tt.src, tt.this)
			if err != nil {
				t.Fatalf("Evaluate(%q): %v", tt.src, err)
			}
			if got != tt.want {
				t.Fatalf("Evaluate(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	ev := expr.New()
	for _, src := range []string{"this >", "this + 1", `this.missing == 1`} {
		if _, err := ev.Evaluate(src, int64(1)); err == nil {
			t.Fatalf("Evaluate(%q): expected error", src)
		}
	}
}

func TestToCty_Unsupported(t *testing.T) {
	if _, err := expr.ToCty(struct{}{}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}
