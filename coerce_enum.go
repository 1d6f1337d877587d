package jsonish

import (
	"errors"
	"strconv"

	"github.com/reoring/jsonish/i18n"
	"github.com/reoring/jsonish/internal/match"
	"github.com/reoring/jsonish/schema"
	"github.com/reoring/jsonish/value"
)

func (c *parsingContext) coerceEnum(t *schema.FieldType, v *value.Value) (*ValueWithFlags, *ParsingError) {
	e, ok := c.rt.reg.FindEnum(t.Name)
	if !ok {
		return nil, c.mismatch(t, v)
	}
	text, ok := scalarText(v)
	if !ok {
		return nil, c.mismatch(t, v)
	}

	r, err := match.Match(text, enumCandidates(e))
	if err != nil {
		pe := &ParsingError{
			Scope:   c.scope,
			Code:    CodeNoCandidateMatched,
			Target:  t.String(),
			Message: i18n.T(CodeNoCandidateMatched, map[string]string{"target": e.Name, "got": strconv.Quote(text)}),
		}
		var nm *match.NoMatchError
		if errors.As(err, &nm) {
			pe.Candidates = nm.Tried
			if len(nm.Ambiguous) > 0 {
				pe.Candidates = nm.Ambiguous
			}
		}
		return nil, pe
	}

	res := &ValueWithFlags{Kind: ResultEnum, Name: e.Name, Str: r.Name, Completion: v.Completion()}
	if f, ok := matchFlag(r.Kind); ok {
		res.addFlag(f)
	}
	for _, ev := range e.Values {
		if ev.Name != r.Name {
			continue
		}
		switch r.Alias {
		case ev.Name:
		case ev.Alias:
			res.addFlag(Flag{Kind: FlagEnumAlias, Detail: ev.Alias})
		default:
			res.addFlag(Flag{Kind: FlagEnumDescription, Detail: r.Alias})
		}
		break
	}
	return c.applyConstraints(res, c.rt.reg.Constraints(t))
}

// enumCandidates lists, per value, its name, alias, description and the
// "alias: description" form a model tends to echo back.
func enumCandidates(e *schema.Enum) []match.Candidate {
	out := make([]match.Candidate, 0, len(e.Values))
	for _, ev := range e.Values {
		if ev.Skip {
			continue
		}
		aliases := []string{ev.Name}
		if ev.Alias != "" && ev.Alias != ev.Name {
			aliases = append(aliases, ev.Alias)
		}
		if ev.Description != "" {
			aliases = append(aliases, ev.Description, ev.RenderedName()+": "+ev.Description)
		}
		out = append(out, match.Candidate{Name: ev.Name, Aliases: aliases})
	}
	return out
}
