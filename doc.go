// Package jsonish turns loosely structured model output into typed values
// described by a schema.
//
// The work happens in two stages:
//
//   - Parse reads arbitrary text (prose, markdown fences, JSON with missing
//     quotes or commas, streams cut off mid-value) into a value.Value tree
//     that may keep several readings side by side.
//   - Coerce maps that tree onto a schema.FieldType, producing a
//     ValueWithFlags whose flags record every conversion, default and
//     constraint result, or a *ParsingError explaining every alternative
//     that was tried.
//
// Design policy:
//   - Keep only public APIs in the root package; implementation lives under
//     internal/ (parser, matcher, expression evaluator).
//   - Soft failures become flags on the returned value. Only conditions with
//     no schema-sanctioned fallback surface as errors.
//   - The registry is read-only during coercion, so independent calls may
//     share it across goroutines (see CoerceAll).
//
// Typical usage:
//
//	reg, _ := schema.LoadFile("schema.yaml")
//	target, _ := reg.Lookup("Person")
//	res, err := jsonish.FromString(reg, target, modelOutput, jsonish.Options{AllowPartials: true})
//	if pe, ok := jsonish.AsParsingError(err); ok {
//		for _, is := range pe.Issues() { ... }
//	}
//	data, _ := res.MarshalJSON()
package jsonish
