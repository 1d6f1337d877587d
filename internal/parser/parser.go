// Package parser turns raw model output into a value.Value tree. It never
// rejects non-empty text: ambiguous readings are kept side by side in an
// AnyOf so the coercer, which knows the target type, can choose.
package parser

import (
	"strings"

	"github.com/reoring/jsonish/value"
)

// Parse reads text through the staged pipeline: strict JSON, markdown
// fences, embedded structures, quoted strings, and finally the bare trimmed
// text. The only error is ErrTooDeep.
func Parse(text string) (*value.Value, error) {
	return parse(text, true)
}

func parse(text string, fences bool) (*value.Value, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return value.String("", value.Complete), nil
	}

	if v, ok := parseStrict(trimmed); ok {
		if v.Kind() == value.KindString {
			return v, nil
		}
		return value.AnyOf([]*value.Value{v}, trimmed), nil
	}

	if fences {
		if blocks := findFences(trimmed); len(blocks) > 0 {
			cands := make([]*value.Value, 0, len(blocks))
			for _, b := range blocks {
				if b.content == "" && !b.closed {
					continue
				}
				inner, err := parse(b.content, false)
				if err != nil {
					return nil, err
				}
				state := value.Complete
				if !b.closed {
					state = value.Incomplete
				}
				cands = append(cands, value.Markdown(b.lang, b.content, inner, state))
			}
			if len(cands) > 0 {
				return value.AnyOf(cands, trimmed), nil
			}
		}
	}

	if segs := findStructures(trimmed); len(segs) > 0 {
		cands := make([]*value.Value, 0, len(segs)+1)
		for _, s := range segs {
			v, err := fixParse(trimmed[s.start:s.end])
			if err != nil {
				return nil, err
			}
			if v != nil {
				cands = append(cands, v)
			}
		}
		if len(cands) > 1 {
			all := append([]*value.Value{}, cands...)
			cands = append(cands, value.Array(all, value.Complete))
		}
		if len(cands) > 0 {
			return value.AnyOf(cands, trimmed), nil
		}
	}

	switch trimmed[0] {
	case '"', '\'', '`':
		v, err := fixParse(trimmed)
		if err != nil {
			return nil, err
		}
		if v != nil && v.Kind() == value.KindString {
			return value.AnyOf([]*value.Value{v}, trimmed), nil
		}
	}

	return value.String(trimmed, value.Complete), nil
}
