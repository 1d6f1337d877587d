package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	data := map[string]string{"target": "int", "got": "string"}
	if msg := T("type_mismatch", data); msg != "expected int, got string" {
		t.Fatalf("unexpected english message %q", msg)
	}

	SetLanguage("ja")
	if msg := T("type_mismatch", data); msg != "int を期待しましたが string でした" {
		t.Fatalf("unexpected japanese message %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCode(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown codes should echo, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if msg := T("unparsable", nil); msg != "X:unparsable" {
		t.Fatalf("custom translator not used, got %q", msg)
	}
}
