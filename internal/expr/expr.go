// Package expr evaluates constraint expressions written in HCL expression
// syntax. The value under test is bound to the variable `this`.
package expr

import (
	"fmt"
	"math"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/tryfunc"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Evaluator compiles and runs constraint expressions. It keeps no state
// between calls and is safe for concurrent use.
type Evaluator struct {
	funcs map[string]function.Function
}

// New returns an Evaluator with the default function table.
func New() *Evaluator {
	return &Evaluator{funcs: map[string]function.Function{
		"length":    stdlib.LengthFunc,
		"strlen":    stdlib.StrlenFunc,
		"upper":     stdlib.UpperFunc,
		"lower":     stdlib.LowerFunc,
		"contains":  stdlib.ContainsFunc,
		"regex":     stdlib.RegexFunc,
		"regexall":  stdlib.RegexAllFunc,
		"abs":       stdlib.AbsoluteFunc,
		"min":       stdlib.MinFunc,
		"max":       stdlib.MaxFunc,
		"keys":      stdlib.KeysFunc,
		"values":    stdlib.ValuesFunc,
		"trimspace": stdlib.TrimSpaceFunc,
		"join":      stdlib.JoinFunc,
		"can":       tryfunc.CanFunc,
		"try":       tryfunc.TryFunc,
	}}
}

// Evaluate runs src with this bound to the plain value. The expression must
// produce a known bool.
func (e *Evaluator) Evaluate(src string, this any) (bool, error) {
	x, diags := hclsyntax.ParseExpression([]byte(src), "constraint", hcl.Pos{Line: 1, Column: 1, Byte: 0})
	if diags.HasErrors() {
		return false, fmt.Errorf("parse %q: %s", src, diags.Error())
	}
	subject, err := ToCty(this)
	if err != nil {
		return false, err
	}
	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"this": subject},
		Functions: e.funcs,
	}
	v, diags := x.Value(ctx)
	if diags.HasErrors() {
		return false, fmt.Errorf("evaluate %q: %s", src, diags.Error())
	}
	if !v.IsKnown() || v.IsNull() {
		return false, fmt.Errorf("evaluate %q: result is not a known value", src)
	}
	if !v.Type().Equals(cty.Bool) {
		return false, fmt.Errorf("evaluate %q: result is %s, not bool", src, v.Type().FriendlyName())
	}
	return v.True(), nil
}

// ToCty converts a plain value (nil, bool, int64, float64, string, []any,
// ordered or builtin string-keyed maps) into a cty value.
func ToCty(v any) (cty.Value, error) {
	switch x := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case bool:
		return cty.BoolVal(x), nil
	case int:
		return cty.NumberIntVal(int64(x)), nil
	case int64:
		return cty.NumberIntVal(x), nil
	case float64:
		if math.IsNaN(x) {
			return cty.NilVal, fmt.Errorf("expr: NaN has no cty representation")
		}
		return cty.NumberFloatVal(x), nil
	case string:
		return cty.StringVal(x), nil
	case []any:
		if len(x) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, len(x))
		for _, e := range x {
			cv, err := ToCty(e)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, cv)
		}
		return cty.TupleVal(elems), nil
	case *orderedmap.OrderedMap[string, any]:
		attrs := make(map[string]cty.Value, x.Len())
		for p := x.Oldest(); p != nil; p = p.Next() {
			cv, err := ToCty(p.Value)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[p.Key] = cv
		}
		return cty.ObjectVal(attrs), nil
	case map[string]any:
		attrs := make(map[string]cty.Value, len(x))
		for k, e := range x {
			cv, err := ToCty(e)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[k] = cv
		}
		return cty.ObjectVal(attrs), nil
	}
	return cty.NilVal, fmt.Errorf("expr: unsupported value type %T", v)
}
