package jsonish

import "go.uber.org/zap"

// DefaultMaxDepth bounds alias resolution and class descent when
// Options.MaxDepth is not set. Resolving an alias and entering a class each
// count one level, so a recursive alias over a class spends two levels per
// nesting and stops after about 128 of them.
const DefaultMaxDepth = 256

// Evaluator runs a constraint expression against the plain projection of a
// candidate value (see ValueWithFlags.Plain). It must report a non-bool
// result as an error.
type Evaluator interface {
	Evaluate(expr string, this any) (bool, error)
}

// Options bundles coercion options.
type Options struct {
	// AllowPartials accepts Incomplete input (a truncated stream) and fills
	// what is missing with pending defaults. When false any Incomplete node
	// fails with CodeUnparsable.
	AllowPartials bool
	// MaxDepth bounds recursion in alias and class levels; <= 0 means
	// DefaultMaxDepth.
	MaxDepth int
	// Logger receives one Debug entry per coercion step. nil disables logging.
	Logger *zap.Logger
	// Evaluator overrides the built-in HCL expression evaluator.
	Evaluator Evaluator
}
