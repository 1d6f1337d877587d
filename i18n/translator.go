package i18n

import (
	"sort"
	"strings"
)

// Translator retrieves localized messages for ParsingError codes.
// data fills {placeholders} in the message, for example "target" or "got".
type Translator interface {
	Message(code string, data map[string]string) string
}

var catalog = map[string]map[string]string{
	"en": {
		"type_mismatch":            "expected {target}, got {got}",
		"no_candidate_matched":     "no candidate of {target} matched {got}",
		"assert_failed":            "assertion failed: {expr}",
		"recursion_limit_exceeded": "recursion depth exceeded {limit} while coercing {target}",
		"missing_required_field":   "missing required field {field}",
		"unparsable":               "could not parse input as {target}",
		"incomplete":               "input ended before {target} was complete",
	},
	"ja": {
		"type_mismatch":            "{target} を期待しましたが {got} でした",
		"no_candidate_matched":     "{got} に一致する {target} の候補がありません",
		"assert_failed":            "アサーションに失敗しました: {expr}",
		"recursion_limit_exceeded": "{target} の変換中に再帰の深さが {limit} を超えました",
		"missing_required_field":   "必須フィールド {field} がありません",
		"unparsable":               "入力を {target} として解析できません",
		"incomplete":               "{target} が完結する前に入力が終わりました",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := catalog[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 {
		return msg
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
