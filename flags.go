package jsonish

import (
	"fmt"
	"strconv"
)

// FlagKind names how a value was obtained.
type FlagKind string

const (
	// Conversions: the value needed a best-effort conversion.
	FlagStringToNumber      FlagKind = "string_to_number"
	FlagStringToBool        FlagKind = "string_to_bool"
	FlagStringToNull        FlagKind = "string_to_null"
	FlagNumberToString      FlagKind = "number_to_string"
	FlagBoolToString        FlagKind = "bool_to_string"
	FlagFloatToInt          FlagKind = "float_to_int"
	FlagJSONToString        FlagKind = "json_to_string"
	FlagStringFromRaw       FlagKind = "string_from_raw"
	FlagImpliedKey          FlagKind = "implied_key"
	FlagEnumCaseInsensitive FlagKind = "enum_case_insensitive"
	FlagEnumDescription     FlagKind = "enum_description"
	FlagEnumSubstring       FlagKind = "enum_substring"
	FlagEnumFuzzy           FlagKind = "enum_fuzzy"
	FlagKeyCaseInsensitive  FlagKind = "key_case_insensitive"

	// Defaults: something was filled in or dropped.
	FlagOptionalDefaultFromNoValue FlagKind = "optional_default_from_no_value"
	FlagDefaultFromFailedOptional  FlagKind = "default_from_failed_optional"
	FlagPendingField               FlagKind = "pending_field"
	FlagArrayItemDropped           FlagKind = "array_item_dropped"
	FlagMapEntryDropped            FlagKind = "map_entry_dropped"

	FlagExtraKey         FlagKind = "extra_key"
	FlagConstraintResult FlagKind = "constraint_result"

	// Informational: recorded for callers, never scored.
	FlagEnumAlias    FlagKind = "enum_alias"
	FlagFromMarkdown FlagKind = "from_markdown"
	FlagUnionMatch   FlagKind = "union_match"
)

// FlagCategory groups flag kinds for scoring.
type FlagCategory int

const (
	CategoryConversion FlagCategory = iota
	CategoryDefault
	CategoryExtraKey
	CategoryConstraint
	CategoryInfo
)

func (k FlagKind) Category() FlagCategory {
	switch k {
	case FlagOptionalDefaultFromNoValue, FlagDefaultFromFailedOptional, FlagPendingField,
		FlagArrayItemDropped, FlagMapEntryDropped:
		return CategoryDefault
	case FlagExtraKey:
		return CategoryExtraKey
	case FlagConstraintResult:
		return CategoryConstraint
	case FlagEnumAlias, FlagFromMarkdown, FlagUnionMatch:
		return CategoryInfo
	}
	return CategoryConversion
}

// Flag is an annotation on a result node. Only the fields relevant to Kind
// are set.
type Flag struct {
	Kind FlagKind
	// Detail carries the source text, matched alias or key involved.
	Detail string

	// constraint_result
	Label  string
	Expr   string
	Passed bool

	// union_match
	Index int
	Total int

	// Cause explains a dropped item or a failed optional.
	Cause *ParsingError
}

func (f Flag) String() string {
	switch f.Kind {
	case FlagConstraintResult:
		state := "failed"
		if f.Passed {
			state = "passed"
		}
		if f.Label != "" {
			return fmt.Sprintf("check %s (%s) %s", f.Label, f.Expr, state)
		}
		return fmt.Sprintf("check (%s) %s", f.Expr, state)
	case FlagUnionMatch:
		return fmt.Sprintf("union_match %d/%d %s", f.Index+1, f.Total, f.Detail)
	}
	if f.Detail != "" {
		return string(f.Kind) + " " + strconv.Quote(f.Detail)
	}
	return string(f.Kind)
}

// Score counts the best-effort work behind a result. Lower is better.
type Score struct {
	Conversions  int
	Defaults     int
	ExtraKeys    int
	FailedChecks int
}

func (s *Score) add(f Flag) {
	switch f.Kind.Category() {
	case CategoryConversion:
		s.Conversions++
	case CategoryDefault:
		s.Defaults++
	case CategoryExtraKey:
		s.ExtraKeys++
	case CategoryConstraint:
		if !f.Passed {
			s.FailedChecks++
		}
	}
}

// Less reports whether s ranks strictly better than o.
func (s Score) Less(o Score) bool {
	if s.Conversions != o.Conversions {
		return s.Conversions < o.Conversions
	}
	if s.Defaults != o.Defaults {
		return s.Defaults < o.Defaults
	}
	if s.ExtraKeys != o.ExtraKeys {
		return s.ExtraKeys < o.ExtraKeys
	}
	return s.FailedChecks < o.FailedChecks
}
