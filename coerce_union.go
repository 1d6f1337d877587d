package jsonish

import (
	"go.uber.org/zap"

	"github.com/reoring/jsonish/i18n"
	"github.com/reoring/jsonish/schema"
	"github.com/reoring/jsonish/value"
)

// coerceUnion tries every member and keeps the success with the lowest
// Score. Ties go to the member declared first.
func (c *parsingContext) coerceUnion(t *schema.FieldType, v *value.Value) (*ValueWithFlags, *ParsingError) {
	var (
		best      *ValueWithFlags
		bestScore Score
		bestIdx   = -1
		errs      []*ParsingError
	)
	for i, m := range t.Items {
		res, err := c.coerce(m, v)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if s := res.Score(); best == nil || s.Less(bestScore) {
			best, bestScore, bestIdx = res, s, i
		}
	}
	if best == nil {
		names := make([]string, len(t.Items))
		for i, m := range t.Items {
			names[i] = m.String()
		}
		return nil, &ParsingError{
			Scope:      c.scope,
			Code:       CodeNoCandidateMatched,
			Target:     t.String(),
			Message:    i18n.T(CodeNoCandidateMatched, map[string]string{"target": t.String(), "got": v.TypeName()}),
			Candidates: names,
			Causes:     errs,

			aggregate: true,
		}
	}
	c.rt.log.Debug("union member selected",
		zap.String("scope", c.scope.String()),
		zap.Int("index", bestIdx),
		zap.Int("total", len(t.Items)),
	)
	best.addFlag(Flag{Kind: FlagUnionMatch, Index: bestIdx, Total: len(t.Items), Detail: t.Items[bestIdx].String()})
	return best, nil
}

// coerceOptional turns null or absence into Null and absorbs non-fatal
// failures of the element type as a flagged Null.
func (c *parsingContext) coerceOptional(t *schema.FieldType, v *value.Value) (*ValueWithFlags, *ParsingError) {
	if v == nil || isNullish(v) {
		return newNull(), nil
	}
	res, err := c.coerce(t.Elem, v)
	if err == nil {
		return res, nil
	}
	if fatal(err) {
		return nil, err
	}
	n := newNull()
	n.addFlag(Flag{Kind: FlagDefaultFromFailedOptional, Cause: err})
	return n, nil
}

// coerceAlias resolves one level of a named alias. Each resolution counts
// toward the depth limit.
func (c *parsingContext) coerceAlias(t *schema.FieldType, v *value.Value) (*ValueWithFlags, *ParsingError) {
	a, ok := c.rt.reg.FindAlias(t.Name)
	if !ok {
		return nil, c.mismatch(t, v)
	}
	next, err := c.descend(t)
	if err != nil {
		return nil, err
	}
	return next.coerce(a.Target, v)
}
