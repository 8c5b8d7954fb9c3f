// Package translate renders subtitle cues into another language through
// the chat completion client. Cues are translated in small batches with a
// per-cue fallback, so a single bad reply never loses the rest of the
// transcript.
package translate

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var supportedTags = []language.Tag{
	language.English,
	language.Russian,
	language.Spanish,
	language.French,
	language.German,
	language.Italian,
	language.Chinese,
	language.Japanese,
}

// Language is one selectable translation target.
type Language struct {
	Code string
	Name string
}

// Languages lists the supported translation targets with English display
// names.
func Languages() []Language {
	namer := display.English.Tags()
	languages := make([]Language, 0, len(supportedTags))
	for _, tag := range supportedTags {
		languages = append(languages, Language{
			Code: tag.String(),
			Name: namer.Name(tag),
		})
	}
	return languages
}

// Normalize reduces a language code to its base ("en-US" -> "en"). Unknown
// codes come back unchanged in lowercase.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	base, _ := tag.Base()
	return base.String()
}

// Supported reports whether the code maps to a supported target language.
func Supported(code string) bool {
	normalized := Normalize(code)
	for _, tag := range supportedTags {
		if tag.String() == normalized {
			return true
		}
	}
	return false
}

// DisplayName returns the English name of a language code, or the code
// itself when unknown.
func DisplayName(code string) string {
	normalized := Normalize(code)
	tag, err := language.Parse(normalized)
	if err != nil {
		return code
	}
	return display.English.Tags().Name(tag)
}
