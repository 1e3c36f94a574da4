// Package i18n holds the static English and Urdu message tables.
package i18n

import (
	"golang.org/x/text/language"
)

// Supported language codes.
const (
	English = "en"
	Urdu    = "ur"
)

// Default is used when nothing better matches.
const Default = English

var matcher = language.NewMatcher([]language.Tag{language.English, language.Urdu})

var supported = []string{English, Urdu}

// Locale describes one table as served to clients.
type Locale struct {
	Lang     string            `json:"lang"`
	Dir      string            `json:"dir"`
	Messages map[string]string `json:"messages"`
}

// Supported returns the available language codes.
func Supported() []string {
	return append([]string(nil), supported...)
}

// IsSupported reports whether lang has a table.
func IsSupported(lang string) bool {
	_, ok := tables[lang]
	return ok
}

// Translate returns the message for key in lang. Unknown keys, and
// unknown languages, yield the key itself.
func Translate(lang, key string) string {
	if msg, ok := tables[lang][key]; ok {
		return msg
	}
	return key
}

// Direction is "rtl" for Urdu and "ltr" otherwise.
func Direction(lang string) string {
	if lang == Urdu {
		return "rtl"
	}
	return "ltr"
}

// Get returns a copy of the table for lang.
func Get(lang string) (*Locale, bool) {
	table, ok := tables[lang]
	if !ok {
		return nil, false
	}
	messages := make(map[string]string, len(table))
	for k, v := range table {
		messages[k] = v
	}
	return &Locale{Lang: lang, Dir: Direction(lang), Messages: messages}, true
}

// Negotiate picks a supported language from an Accept-Language header.
func Negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	return supported[idx]
}
