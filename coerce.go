package jsonish

import (
	"go.uber.org/zap"

	"github.com/reoring/jsonish/i18n"
	"github.com/reoring/jsonish/schema"
	"github.com/reoring/jsonish/value"
)

// coerce maps v onto t and then applies the constraints attached to t. A
// nil v means the value is absent from its parent object.
func (c *parsingContext) coerce(t *schema.FieldType, v *value.Value) (*ValueWithFlags, *ParsingError) {
	c.rt.log.Debug("coercing",
		zap.String("scope", c.scope.String()),
		zap.String("target", t.String()),
		zap.String("current", v.TypeName()),
	)
	res, err := c.coerceShape(t, v)
	if err != nil {
		return nil, err
	}
	if len(t.Constraints) == 0 || (t.Kind == schema.KindOptional && res.Kind == ResultNull) {
		return res, nil
	}
	return c.applyConstraints(res, t.Constraints)
}

func (c *parsingContext) coerceShape(t *schema.FieldType, v *value.Value) (*ValueWithFlags, *ParsingError) {
	switch t.Kind {
	case schema.KindOptional:
		return c.coerceOptional(t, v)
	case schema.KindUnion:
		return c.coerceUnion(t, v)
	case schema.KindAlias:
		return c.coerceAlias(t, v)
	}

	if v == nil {
		if isPrim(t, schema.PrimNull) {
			return newNull(), nil
		}
		return nil, c.mismatch(t, v)
	}

	switch v.Kind() {
	case value.KindMarkdown:
		if isPrim(t, schema.PrimString) {
			return c.coerceShape(t, value.String(v.Text(), v.Completion()))
		}
		if v.Inner() == nil {
			return nil, c.mismatch(t, v)
		}
		res, err := c.coerceShape(t, v.Inner())
		if err != nil {
			return nil, err
		}
		res.addFlag(Flag{Kind: FlagFromMarkdown, Detail: v.Lang()})
		return res, nil
	case value.KindAnyOf:
		return c.coerceAnyOf(t, v)
	}

	if v.Completion() == value.Incomplete && !c.rt.allowPartials {
		return nil, c.incomplete(t, v)
	}

	switch t.Kind {
	case schema.KindPrimitive:
		return c.coercePrimitive(t, v)
	case schema.KindLiteral:
		return c.coerceLiteral(t, v)
	case schema.KindEnum:
		return c.coerceEnum(t, v)
	case schema.KindClass:
		return c.coerceClass(t, v)
	case schema.KindList:
		return c.coerceList(t, v)
	case schema.KindTuple:
		return c.coerceTuple(t, v)
	case schema.KindMap:
		return c.coerceMap(t, v)
	}
	return nil, c.mismatch(t, v)
}

// coerceAnyOf picks among the readings of an ambiguous parse. String
// targets take the first string reading or else the raw text. Other targets
// try every reading and keep the best scoring success. The raw text is a
// last resort: never after a fatal failure, and never for a container
// target when a structured reading was available.
func (c *parsingContext) coerceAnyOf(t *schema.FieldType, v *value.Value) (*ValueWithFlags, *ParsingError) {
	raw := value.String(v.Text(), v.Completion())
	if isPrim(t, schema.PrimString) {
		for _, cand := range v.Items() {
			if cand.Kind() == value.KindString {
				return c.coerceShape(t, cand)
			}
		}
		res, err := c.coerceShape(t, raw)
		if err != nil {
			return nil, err
		}
		res.addFlag(Flag{Kind: FlagStringFromRaw})
		return res, nil
	}

	var (
		best      *ValueWithFlags
		bestScore Score
		errs      []*ParsingError
	)
	for _, cand := range v.Items() {
		res, err := c.coerceShape(t, cand)
		if err != nil {
			if fatal(err) {
				return nil, err
			}
			errs = append(errs, err)
			continue
		}
		if s := res.Score(); best == nil || s.Less(bestScore) {
			best, bestScore = res, s
		}
	}
	if best != nil {
		return best, nil
	}

	if !(isContainer(t) && hasStructure(v)) {
		res, err := c.coerceShape(t, raw)
		if err == nil {
			return res, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 1 {
		return nil, errs[0]
	}
	return nil, &ParsingError{
		Scope:   c.scope,
		Code:    CodeTypeMismatch,
		Target:  t.String(),
		Message: i18n.T(CodeTypeMismatch, map[string]string{"target": t.String(), "got": v.TypeName()}),
		Causes:  errs,

		aggregate: true,
	}
}

func isContainer(t *schema.FieldType) bool {
	switch t.Kind {
	case schema.KindClass, schema.KindList, schema.KindTuple, schema.KindMap:
		return true
	}
	return false
}

// hasStructure reports whether some reading of v is an object or array.
func hasStructure(v *value.Value) bool {
	if v == nil {
		return false
	}
	switch v.Kind() {
	case value.KindObject, value.KindArray:
		return true
	case value.KindMarkdown:
		return hasStructure(v.Inner())
	case value.KindAnyOf:
		for _, cand := range v.Items() {
			if hasStructure(cand) {
				return true
			}
		}
	}
	return false
}

func isPrim(t *schema.FieldType, p schema.Primitive) bool {
	return t.Kind == schema.KindPrimitive && t.Primitive == p
}

// isNullish reports an explicit null, including an unambiguous parse of
// the text "null".
func isNullish(v *value.Value) bool {
	if v == nil {
		return false
	}
	switch v.Kind() {
	case value.KindNull:
		return true
	case value.KindAnyOf:
		if len(v.Items()) == 0 {
			return false
		}
		for _, cand := range v.Items() {
			if cand.Kind() != value.KindNull {
				return false
			}
		}
		return true
	}
	return false
}
