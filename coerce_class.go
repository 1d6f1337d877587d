package jsonish

import (
	"strings"

	"github.com/reoring/jsonish/i18n"
	"github.com/reoring/jsonish/schema"
	"github.com/reoring/jsonish/value"
)

type keyMatch int

const (
	keyAbsent keyMatch = iota
	keyExact
	keyAlias
	keyFolded
)

func (c *parsingContext) coerceClass(t *schema.FieldType, v *value.Value) (*ValueWithFlags, *ParsingError) {
	cls, ok := c.rt.reg.FindClass(t.Name)
	if !ok {
		return nil, c.mismatch(t, v)
	}
	cc, perr := c.descend(t)
	if perr != nil {
		return nil, perr
	}

	fields := make([]schema.Field, 0, len(cls.Fields))
	for _, f := range cls.Fields {
		if !f.Skip {
			fields = append(fields, f)
		}
	}

	if v.Kind() != value.KindObject {
		if len(fields) != 1 {
			return nil, c.mismatch(t, v)
		}
		// A lone field may be given without its key.
		f := fields[0]
		fv, err := cc.field(f.Name).coerce(f.Type, v)
		if err != nil {
			return nil, err
		}
		res := &ValueWithFlags{
			Kind:       ResultClass,
			Name:       cls.Name,
			Fields:     []Field{{Name: f.Name, Value: fv}},
			Completion: fv.Completion,
		}
		res.addFlag(Flag{Kind: FlagImpliedKey, Detail: f.Name})
		return cc.applyConstraints(res, c.rt.reg.Constraints(t))
	}

	obj := v.Object()
	partial := c.rt.allowPartials && v.Completion() == value.Incomplete
	used := make(map[string]bool, obj.Len())
	res := &ValueWithFlags{Kind: ResultClass, Name: cls.Name, Completion: v.Completion()}
	var errs []*ParsingError

	for _, f := range fields {
		fc := cc.field(f.Name)
		key, raw, how := lookupField(obj, f, used)
		if how == keyAbsent {
			switch {
			case f.Type.IsOptional():
				n := newNull()
				n.addFlag(Flag{Kind: FlagOptionalDefaultFromNoValue, Detail: f.Name})
				res.Fields = append(res.Fields, Field{Name: f.Name, Value: n})
			case partial:
				res.Fields = append(res.Fields, Field{Name: f.Name, Value: pending(f.Name, nil)})
			default:
				errs = append(errs, fc.missing(f))
			}
			continue
		}
		used[key] = true

		fv, err := fc.coerce(f.Type, raw)
		if err != nil {
			// A value still being streamed may not fit yet.
			if partial && raw.Completion() == value.Incomplete && !fatal(err) {
				res.Fields = append(res.Fields, Field{Name: f.Name, Value: pending(f.Name, err)})
				continue
			}
			errs = append(errs, err)
			continue
		}
		if how == keyFolded {
			fv.addFlag(Flag{Kind: FlagKeyCaseInsensitive, Detail: key})
		}
		res.Fields = append(res.Fields, Field{Name: f.Name, Value: fv})
	}

	switch len(errs) {
	case 0:
	case 1:
		return nil, errs[0]
	default:
		return nil, &ParsingError{
			Scope:   cc.scope,
			Code:    CodeTypeMismatch,
			Target:  t.String(),
			Message: i18n.T(CodeTypeMismatch, map[string]string{"target": t.String(), "got": v.TypeName()}),
			Causes:  errs,

			aggregate: true,
		}
	}

	for p := obj.Oldest(); p != nil; p = p.Next() {
		if !used[p.Key] {
			res.addFlag(Flag{Kind: FlagExtraKey, Detail: p.Key})
		}
	}
	for _, f := range res.Fields {
		if f.Value.Completion == value.Incomplete {
			res.Completion = value.Incomplete
		}
	}
	return cc.applyConstraints(res, c.rt.reg.Constraints(t))
}

// lookupField finds the object key for f: its name, then its alias, then
// either of them ignoring case and surrounding whitespace.
func lookupField(obj *value.Object, f schema.Field, used map[string]bool) (string, *value.Value, keyMatch) {
	if raw, ok := obj.Get(f.Name); ok && !used[f.Name] {
		return f.Name, raw, keyExact
	}
	if f.Alias != "" {
		if raw, ok := obj.Get(f.Alias); ok && !used[f.Alias] {
			return f.Alias, raw, keyAlias
		}
	}
	for p := obj.Oldest(); p != nil; p = p.Next() {
		if used[p.Key] {
			continue
		}
		k := strings.TrimSpace(p.Key)
		if strings.EqualFold(k, f.Name) || (f.Alias != "" && strings.EqualFold(k, f.Alias)) {
			return p.Key, p.Value, keyFolded
		}
	}
	return "", nil, keyAbsent
}

// pending stands in for a required field the stream has not delivered yet.
func pending(name string, cause *ParsingError) *ValueWithFlags {
	n := newNull()
	n.Completion = value.Incomplete
	n.addFlag(Flag{Kind: FlagPendingField, Detail: name, Cause: cause})
	return n
}
