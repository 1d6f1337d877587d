package jsonish

import (
	"github.com/reoring/jsonish/i18n"
	"github.com/reoring/jsonish/schema"
	"github.com/reoring/jsonish/value"
)

// coerceMap drops failing entries with a flag. It fails only when every
// entry fails or an entry fails fatally.
func (c *parsingContext) coerceMap(t *schema.FieldType, v *value.Value) (*ValueWithFlags, *ParsingError) {
	if v.Kind() != value.KindObject {
		return nil, c.mismatch(t, v)
	}
	keyType := t.Key
	if keyType == nil {
		keyType = schema.String()
	}
	res := &ValueWithFlags{Kind: ResultMap, Completion: v.Completion()}
	var errs []*ParsingError
	obj := v.Object()
	for p := obj.Oldest(); p != nil; p = p.Next() {
		kc := c.key(p.Key)
		kv, err := kc.coerce(keyType, value.String(p.Key, value.Complete))
		if err == nil && kv.Kind != ResultString && kv.Kind != ResultEnum {
			err = kc.mismatch(keyType, value.String(p.Key, value.Complete))
		}
		var vv *ValueWithFlags
		if err == nil {
			vv, err = kc.coerce(t.Value, p.Value)
		}
		if err != nil {
			if fatal(err) {
				return nil, err
			}
			errs = append(errs, err)
			res.addFlag(Flag{Kind: FlagMapEntryDropped, Detail: p.Key, Cause: err})
			continue
		}
		// key conversions are reported on the map node
		res.Flags = append(res.Flags, kv.Flags...)
		res.Entries = append(res.Entries, Entry{Key: kv.Str, Value: vv})
		if vv.Completion == value.Incomplete {
			res.Completion = value.Incomplete
		}
	}
	if obj.Len() > 0 && len(res.Entries) == 0 {
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
	return res, nil
}
