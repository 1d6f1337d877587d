package jsonish_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/reoring/jsonish"
	"github.com/reoring/jsonish/i18n"
	"github.com/reoring/jsonish/schema"
)

func TestParsingError_Rendering(t *testing.T) {
	u := schema.UnionOf(schema.ClassRef("A"), schema.ClassRef("B"))
	pe := mustFail(t, testRegistry(), u, `{"y": true}`, jsonish.Options{})

	msg := pe.Error()
	if !strings.HasPrefix(msg, "<root>: ") || !strings.Contains(msg, "tried: [A, B]") {
		t.Fatalf("unexpected rendering:\n%s", msg)
	}
	if lines := strings.Split(msg, "\n"); len(lines) < 3 || !strings.HasPrefix(lines[1], "  - ") {
		t.Fatalf("causes should be indented below the root:\n%s", msg)
	}
}

func TestParsingError_AsThroughWrapping(t *testing.T) {
	_, err := jsonish.FromString(testRegistry(), schema.Int(), "abc", jsonish.Options{})
	wrapped := fmt.Errorf("batch item 3: %w", err)
	pe, ok := jsonish.AsParsingError(wrapped)
	if !ok || pe.Code != jsonish.CodeTypeMismatch {
		t.Fatalf("AsParsingError failed: %v", wrapped)
	}
	if _, ok := jsonish.AsParsingError(errors.New("other")); ok {
		t.Fatalf("plain errors are not ParsingErrors")
	}
}

func TestParsingError_UnwrapCauses(t *testing.T) {
	u := schema.UnionOf(schema.Int(), schema.Bool())
	_, err := jsonish.FromString(testRegistry(), u, "abc", jsonish.Options{})
	pe, _ := jsonish.AsParsingError(err)
	if len(pe.Unwrap()) != 2 {
		t.Fatalf("expected two causes, got %d", len(pe.Unwrap()))
	}
	if !errors.Is(err, pe.Causes[1]) {
		t.Fatalf("errors.Is should reach nested causes")
	}
}

func TestParsingError_Localized(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")
	pe := mustFail(t, testRegistry(), schema.ClassRef("Pair"), `{"a": 1}`, jsonish.Options{})
	if !strings.Contains(pe.Message, "必須フィールド b") {
		t.Fatalf("message = %q", pe.Message)
	}
}

func TestIssues_Summary(t *testing.T) {
	iss := jsonish.Issues{
		{Path: "/a", Code: jsonish.CodeTypeMismatch},
		{Path: "/b", Code: jsonish.CodeMissingRequiredField},
		{Path: "/c", Code: jsonish.CodeTypeMismatch},
		{Path: "/d", Code: jsonish.CodeTypeMismatch},
	}
	want := "type_mismatch at /a; missing_required_field at /b; type_mismatch at /c; ... (total 4)"
	if got := iss.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
