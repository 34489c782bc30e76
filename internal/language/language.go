package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Namer renders language codes as display names in one locale.
type Namer struct {
	names display.Namer
	title cases.Caser
}

// NewNamer returns a Namer for the BCP 47 locale tag. Locales without CLDR
// display data fall back to English names.
func NewNamer(locale string) (*Namer, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = "en"
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	names := display.Languages(tag)
	if names == nil {
		names = display.English.Languages()
	}
	return &Namer{
		names: names,
		title: cases.Title(tag),
	}, nil
}

// DisplayName returns the localized name for code, or the capitalized code
// when no name is known. Blank input yields "".
func (n *Namer) DisplayName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if tag, ok := Parse(code); ok {
		if name := strings.TrimSpace(n.names.Name(tag)); name != "" {
			return name
		}
	}
	return n.title.String(code)
}

// Parse resolves a reported language code into a tag. Both ISO 639-2 codes
// ("eng") and BCP 47 tags ("en-US") are accepted.
func Parse(code string) (language.Tag, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return language.Und, false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

var english, _ = NewNamer("en")

// DisplayName returns the English display name for code.
func DisplayName(code string) string {
	return english.DisplayName(code)
}
