package jsonish

import (
	"go.uber.org/zap"

	"github.com/reoring/jsonish/i18n"
	"github.com/reoring/jsonish/schema"
)

// applyConstraints evaluates constraints in declaration order. Checks are
// recorded on res whether they pass or fail. The first failing assertion
// discards res.
func (c *parsingContext) applyConstraints(res *ValueWithFlags, cs []schema.Constraint) (*ValueWithFlags, *ParsingError) {
	if len(cs) == 0 {
		return res, nil
	}
	this := res.Plain()
	for _, k := range cs {
		ok, err := c.rt.eval.Evaluate(k.Expr, this)
		if err != nil {
			c.rt.log.Debug("constraint evaluation failed",
				zap.String("scope", c.scope.String()),
				zap.String("expr", k.Expr),
				zap.Error(err),
			)
		}
		passed := err == nil && ok
		switch k.Level {
		case schema.LevelCheck:
			res.addFlag(Flag{Kind: FlagConstraintResult, Label: k.Label, Expr: k.Expr, Passed: passed})
		case schema.LevelAssert:
			if !passed {
				return nil, &ParsingError{
					Scope:   c.scope,
					Code:    CodeAssertFailed,
					Expr:    k.Expr,
					Message: i18n.T(CodeAssertFailed, map[string]string{"expr": k.Expr}),
				}
			}
		}
	}
	return res, nil
}
