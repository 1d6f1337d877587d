package jsonish

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/reoring/jsonish/i18n"
	"github.com/reoring/jsonish/internal/expr"
	"github.com/reoring/jsonish/schema"
	"github.com/reoring/jsonish/value"
)

var defaultEvaluator Evaluator = expr.New()

// session holds what stays fixed for one top-level coercion.
type session struct {
	reg           *schema.Registry
	allowPartials bool
	maxDepth      int
	log           *zap.Logger
	eval          Evaluator
}

// parsingContext is extended by copy when descending, so siblings never see
// each other's scope or depth.
type parsingContext struct {
	rt    *session
	scope Scope
	depth int
}

func newContext(reg *schema.Registry, target *schema.FieldType, opts Options) *parsingContext {
	rt := &session{
		reg:           reg,
		allowPartials: opts.AllowPartials,
		maxDepth:      opts.MaxDepth,
		log:           opts.Logger,
		eval:          opts.Evaluator,
	}
	if rt.maxDepth <= 0 {
		rt.maxDepth = DefaultMaxDepth
	}
	if rt.log == nil {
		rt.log = zap.NewNop()
	}
	if rt.eval == nil {
		rt.eval = defaultEvaluator
	}
	return &parsingContext{rt: rt, scope: RootScope(rootName(target))}
}

func rootName(t *schema.FieldType) string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case schema.KindClass, schema.KindEnum, schema.KindAlias:
		return t.Name
	}
	return ""
}

func (c *parsingContext) at(s Scope) *parsingContext {
	cp := *c
	cp.scope = s
	return &cp
}

func (c *parsingContext) field(name string) *parsingContext { return c.at(c.scope.Field(name)) }
func (c *parsingContext) index(i int) *parsingContext       { return c.at(c.scope.Index(i)) }
func (c *parsingContext) key(k string) *parsingContext      { return c.at(c.scope.Key(k)) }

// descend counts one level of alias resolution or class nesting.
func (c *parsingContext) descend(t *schema.FieldType) (*parsingContext, *ParsingError) {
	if c.depth+1 > c.rt.maxDepth {
		limit := strconv.Itoa(c.rt.maxDepth)
		return nil, &ParsingError{
			Scope:   c.scope,
			Code:    CodeRecursionLimitExceeded,
			Target:  t.String(),
			Message: i18n.T(CodeRecursionLimitExceeded, map[string]string{"limit": limit, "target": t.String()}),
		}
	}
	cp := *c
	cp.depth++
	return &cp, nil
}

func (c *parsingContext) mismatch(t *schema.FieldType, v *value.Value) *ParsingError {
	return &ParsingError{
		Scope:   c.scope,
		Code:    CodeTypeMismatch,
		Target:  t.String(),
		Message: i18n.T(CodeTypeMismatch, map[string]string{"target": t.String(), "got": v.TypeName()}),
	}
}

func (c *parsingContext) missing(f schema.Field) *ParsingError {
	return &ParsingError{
		Scope:   c.scope,
		Code:    CodeMissingRequiredField,
		Target:  f.Type.String(),
		Field:   f.Name,
		Message: i18n.T(CodeMissingRequiredField, map[string]string{"field": f.Name}),
	}
}

func (c *parsingContext) incomplete(t *schema.FieldType, v *value.Value) *ParsingError {
	return &ParsingError{
		Scope:   c.scope,
		Code:    CodeUnparsable,
		Target:  t.String(),
		Raw:     v.String(),
		Message: i18n.T("incomplete", map[string]string{"target": t.String()}),
	}
}

// fatal reports errors that no optional, map entry or partial list may
// absorb.
func fatal(err *ParsingError) bool {
	if err.Code == CodeAssertFailed || err.Code == CodeRecursionLimitExceeded {
		return true
	}
	for _, c := range err.Causes {
		if fatal(c) {
			return true
		}
	}
	return false
}
