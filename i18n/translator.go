package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "path", "key" or "max").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var catalog = map[string]map[string]string{
	"en": {
		"invalid_type":     "{path} does not accept a {got} model (expected {expected})",
		"invalid_format":   "value of type {got} does not match format {format}",
		"unknown_key":      "{path} has no part called \"{key}\" (available: {available})",
		"multiple_keys":    "{path} accepts exactly one branch (got {keys})",
		"out_of_range":     "index {index} is outside the range of {path} (max {max})",
		"invalid_symbol":   "invalid symbol {symbol} at offset {offset}",
		"parse_error":      "malformed input: {reason}",
		"invalid_key":      "part keys must be non-empty",
		"duplicate_key":    "{path} already has a part called {key}",
		"already_attached": "{key} is already a part of {parent}",
		"empty_choice":     "{path} needs at least one branch",
		"invalid_schema":   "invalid schema document: {reason}",
	},
	"ja": {
		"invalid_type":     "{path} は {got} のモデルを受け付けません ({expected} が必要です)",
		"invalid_format":   "{got} 型の値は形式 {format} と一致しません",
		"unknown_key":      "{path} に \"{key}\" という要素はありません (候補: {available})",
		"multiple_keys":    "{path} では分岐を一つだけ指定できます ({keys})",
		"out_of_range":     "インデックス {index} は {path} の範囲外です (最大 {max})",
		"invalid_symbol":   "オフセット {offset} に不正な記号 {symbol} があります",
		"parse_error":      "入力を解析できません: {reason}",
		"invalid_key":      "要素のキーは空にできません",
		"duplicate_key":    "{path} には既に {key} という要素があります",
		"already_attached": "{key} は既に {parent} の要素です",
		"empty_choice":     "{path} には少なくとも一つの分岐が必要です",
		"invalid_schema":   "スキーマ定義が不正です: {reason}",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := catalog[t.lang][code]
	if !ok {
		return code
	}
	return expand(tmpl, data)
}

// expand replaces {name} placeholders with data values. Unknown
// placeholders are left as-is.
func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// holder boxes a Translator so implementations of different concrete types
// can share one atomic.Pointer.
type holder struct{ tr Translator }

var current atomic.Pointer[holder]

func init() { current.Store(&holder{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja"). It is
// safe to call while other goroutines produce messages; configure it once at
// startup so messages stay consistent.
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	current.Store(&holder{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). A nil tr restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(&holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return current.Load().tr.Message(code, data) }
