package jsonish_test

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/reoring/jsonish"
	"github.com/reoring/jsonish/schema"
	"github.com/reoring/jsonish/value"
)

func TestParse_Object(t *testing.T) {
	v, err := jsonish.Parse(`{"a": 1}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v.Kind() != value.KindAnyOf || len(v.Items()) != 1 {
		t.Fatalf("expected one reading, got %s", v)
	}
	if obj := v.Items()[0]; obj.Kind() != value.KindObject {
		t.Fatalf("kind = %v, want object", obj.Kind())
	}
}

func TestValidateResult(t *testing.T) {
	reg := testRegistry()
	tests := []struct {
		name   string
		target *schema.FieldType
		input  string
		want   string
	}{
		{"enum_unquoted", schema.EnumRef("Color"), "r", "RED"},
		{"string_unquoted", schema.String(), `"hi"`, "hi"},
		{"class_json", schema.ClassRef("Pair"), `{"a": 1, "b": [2, "3"]}`, `{"a":1,"b":[2,3]}`},
		{"list_json", schema.ListOf(schema.Int()), `[1, 2]`, `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jsonish.ValidateResult(reg, tt.target, tt.input, false)
			if err != nil {
				t.Fatalf("ValidateResult: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCoerceAll_KeepsOrder(t *testing.T) {
	texts := []string{"1", "x", "3"}
	out, err := jsonish.CoerceAll(context.Background(), testRegistry(), schema.Int(), texts, jsonish.Options{}, 2)
	if err != nil {
		t.Fatalf("CoerceAll: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("len = %d", len(out))
	}
	if out[0].Err != nil || out[0].Value.Int != 1 {
		t.Fatalf("out[0] = %+v", out[0])
	}
	if out[1].Err == nil {
		t.Fatalf("out[1] should fail")
	}
	if out[2].Err != nil || out[2].Value.Int != 3 {
		t.Fatalf("out[2] = %+v", out[2])
	}
}

func TestCoerceAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := jsonish.CoerceAll(ctx, testRegistry(), schema.Int(), []string{"1", "2"}, jsonish.Options{}, 1)
	if err == nil {
		t.Fatalf("expected context error")
	}
}

func TestOptions_Logger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	opts := jsonish.Options{Logger: zap.New(core)}
	mustFrom(t, testRegistry(), schema.ClassRef("Pair"), `{"a": 1, "b": []}`, opts)

	entries := logs.FilterMessage("coercing").All()
	if len(entries) < 3 {
		t.Fatalf("expected an entry per step, got %d", len(entries))
	}
	scopes := map[string]bool{}
	for _, e := range entries {
		scopes[e.ContextMap()["scope"].(string)] = true
	}
	for _, s := range []string{"Pair", "Pair.a", "Pair.b"} {
		if !scopes[s] {
			t.Fatalf("no entry for scope %s; got %v", s, scopes)
		}
	}
}

type recordingEvaluator struct {
	reject string
	seen   []any
}

func (r *recordingEvaluator) Evaluate(expr string, this any) (bool, error) {
	r.seen = append(r.seen, this)
	return expr != r.reject, nil
}

func TestOptions_Evaluator(t *testing.T) {
	ev := &recordingEvaluator{reject: "nope"}
	opts := jsonish.Options{Evaluator: ev}
	reg := testRegistry()

	res := mustFrom(t, reg, schema.Int().With(schema.Check("ok", "fine")), "7", opts)
	if !res.HasFlag(jsonish.FlagConstraintResult) || len(ev.seen) != 1 || ev.seen[0] != int64(7) {
		t.Fatalf("evaluator not consulted: flags=%v seen=%v", res.Flags, ev.seen)
	}

	pe := mustFail(t, reg, schema.Int().With(schema.Assert("nope")), "7", opts)
	if pe.Code != jsonish.CodeAssertFailed || pe.Expr != "nope" {
		t.Fatalf("got %s (%s)", pe.Code, pe.Expr)
	}
}
