package jsonish

import (
	"context"
	"errors"
	"runtime"

	j "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/reoring/jsonish/i18n"
	"github.com/reoring/jsonish/internal/parser"
	"github.com/reoring/jsonish/schema"
	"github.com/reoring/jsonish/value"
)

// Parse reads raw text into a value tree. It fails only when the input
// nests deeper than the parser allows.
func Parse(text string) (*value.Value, error) {
	v, err := parser.Parse(text)
	if err != nil {
		return nil, unparsable(RootScope(""), "value", text, err)
	}
	return v, nil
}

// Coerce maps an already parsed value onto target. The registry is only
// read, so concurrent calls may share it.
func Coerce(reg *schema.Registry, target *schema.FieldType, v *value.Value, opts Options) (*ValueWithFlags, error) {
	c := newContext(reg, target, opts)
	res, pe := c.coerce(target, v)
	if pe != nil {
		return nil, pe
	}
	return res, nil
}

// FromString parses text and coerces it onto target.
func FromString(reg *schema.Registry, target *schema.FieldType, text string, opts Options) (*ValueWithFlags, error) {
	v, err := parser.Parse(text)
	if err != nil {
		return nil, unparsable(RootScope(rootName(target)), target.String(), text, err)
	}
	return Coerce(reg, target, v, opts)
}

// ValidateResult coerces text and renders the plain result as JSON. A
// top-level string or enum is returned without quotes.
func ValidateResult(reg *schema.Registry, target *schema.FieldType, text string, allowPartials bool) (string, error) {
	res, err := FromString(reg, target, text, Options{AllowPartials: allowPartials})
	if err != nil {
		return "", err
	}
	if res.Kind == ResultString || res.Kind == ResultEnum {
		return res.Str, nil
	}
	b, err := j.Marshal(res)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// BatchResult is the outcome for one input of CoerceAll.
type BatchResult struct {
	Value *ValueWithFlags
	Err   error
}

// CoerceAll runs FromString for every text on at most workers goroutines
// (<= 0 means GOMAXPROCS). Results keep input order and carry per-input
// errors. The returned error is non-nil only when ctx ends first.
func CoerceAll(ctx context.Context, reg *schema.Registry, target *schema.FieldType, texts []string, opts Options, workers int) ([]BatchResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]BatchResult, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, text := range texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := FromString(reg, target, text, opts)
			out[i] = BatchResult{Value: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}

func unparsable(scope Scope, target, raw string, cause error) *ParsingError {
	msg := i18n.T(CodeUnparsable, map[string]string{"target": target})
	if errors.Is(cause, parser.ErrTooDeep) {
		msg += ": " + cause.Error()
	}
	return &ParsingError{Scope: scope, Code: CodeUnparsable, Target: target, Raw: raw, Message: msg}
}
