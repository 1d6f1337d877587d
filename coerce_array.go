package jsonish

import (
	"strconv"

	"github.com/reoring/jsonish/schema"
	"github.com/reoring/jsonish/value"
)

// coerceList fails on the first failing element. While a stream is still
// open, a failing last element is dropped instead since it may simply be
// cut short.
func (c *parsingContext) coerceList(t *schema.FieldType, v *value.Value) (*ValueWithFlags, *ParsingError) {
	if v.Kind() != value.KindArray {
		return nil, c.mismatch(t, v)
	}
	items := v.Items()
	res := &ValueWithFlags{Kind: ResultList, Items: make([]*ValueWithFlags, 0, len(items)), Completion: v.Completion()}
	partial := c.rt.allowPartials && v.Completion() == value.Incomplete
	for i, it := range items {
		ev, err := c.index(i).coerce(t.Elem, it)
		if err != nil {
			if partial && i == len(items)-1 && !fatal(err) {
				res.addFlag(Flag{Kind: FlagArrayItemDropped, Detail: strconv.Itoa(i), Cause: err})
				continue
			}
			return nil, err
		}
		res.Items = append(res.Items, ev)
	}
	if childrenCompletion(res.Items...) == value.Incomplete {
		res.Completion = value.Incomplete
	}
	return res, nil
}

func (c *parsingContext) coerceTuple(t *schema.FieldType, v *value.Value) (*ValueWithFlags, *ParsingError) {
	if v.Kind() != value.KindArray || len(v.Items()) != len(t.Items) {
		return nil, c.mismatch(t, v)
	}
	res := &ValueWithFlags{Kind: ResultList, Items: make([]*ValueWithFlags, len(t.Items)), Completion: v.Completion()}
	for i, it := range v.Items() {
		ev, err := c.index(i).coerce(t.Items[i], it)
		if err != nil {
			return nil, err
		}
		res.Items[i] = ev
	}
	if childrenCompletion(res.Items...) == value.Incomplete {
		res.Completion = value.Incomplete
	}
	return res, nil
}
