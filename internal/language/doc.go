// Package language turns the language codes reported by mediainfo and
// mkvmerge (ISO 639-1, ISO 639-2, or BCP 47 tags) into display names.
//
// Names come from the CLDR tables in golang.org/x/text/language/display,
// rendered in the configured locale. Codes the tables cannot name fall back
// to the capitalized code so a track never shows up without a language label.
package language
