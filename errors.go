package jsonish

import (
	"errors"
	"fmt"
	"strings"
)

// ParsingError codes.
const (
	CodeTypeMismatch           = "type_mismatch"
	CodeNoCandidateMatched     = "no_candidate_matched"
	CodeAssertFailed           = "assert_failed"
	CodeRecursionLimitExceeded = "recursion_limit_exceeded"
	CodeMissingRequiredField   = "missing_required_field"
	CodeUnparsable             = "unparsable"
)

// ParsingError is a structured coercion failure. Errors of alternatives
// that were tried (union members, AnyOf readings, failing fields) are kept
// in Causes so the top-level error explains every attempt.
type ParsingError struct {
	Scope   Scope
	Code    string
	Target  string // notation of the target type
	Message string

	Expr       string   // failed assertion (CodeAssertFailed)
	Field      string   // missing field (CodeMissingRequiredField)
	Raw        string   // offending input text (CodeUnparsable)
	Candidates []string // candidates tried (CodeNoCandidateMatched)
	Causes     []*ParsingError

	// aggregate marks errors that only group the failures in Causes.
	aggregate bool
}

// Error renders `scope: reason; tried: [...]` with causes indented below.
func (e *ParsingError) Error() string {
	b := &strings.Builder{}
	e.write(b, 0)
	return b.String()
}

func (e *ParsingError) write(b *strings.Builder, depth int) {
	if depth > 0 {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString("- ")
	}
	fmt.Fprintf(b, "%s: %s", e.Scope, e.Message)
	if len(e.Candidates) > 0 {
		fmt.Fprintf(b, "; tried: [%s]", strings.Join(e.Candidates, ", "))
	}
	for _, c := range e.Causes {
		b.WriteByte('\n')
		c.write(b, depth+1)
	}
}

// Unwrap exposes causes to errors.Is and errors.As.
func (e *ParsingError) Unwrap() []error {
	if len(e.Causes) == 0 {
		return nil
	}
	out := make([]error, len(e.Causes))
	for i, c := range e.Causes {
		out[i] = c
	}
	return out
}

// Issues flattens the error tree. Errors that merely group their causes
// (exhausted unions, classes with several failing fields) are left out in
// favor of the causes themselves.
func (e *ParsingError) Issues() Issues {
	var out Issues
	var walk func(*ParsingError)
	walk = func(pe *ParsingError) {
		if !pe.aggregate || len(pe.Causes) == 0 {
			out = append(out, Issue{Path: pe.Scope.Pointer(), Scope: pe.Scope.String(), Code: pe.Code, Message: pe.Message})
		}
		for _, c := range pe.Causes {
			walk(c)
		}
	}
	walk(e)
	return out
}

// AsParsingError extracts a *ParsingError from err using errors.As.
func AsParsingError(err error) (*ParsingError, bool) {
	if err == nil {
		return nil, false
	}
	var pe *ParsingError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// Issue is one flattened failure.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/name).
	Scope   string // display path (for example: Order.items[2].name).
	Code    string
	Message string
}

// Issues is a flattened list of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. type_mismatch at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}
