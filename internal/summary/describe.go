package summary

import (
	"fmt"
	"strings"

	"mozaik/internal/language"
	"mozaik/internal/track"
)

const (
	// Separator joins the fragments of a track description.
	Separator = " • "
	// DefaultMarker flags a default track.
	DefaultMarker = "✅ Default"
	// ForcedMarker flags a forced track.
	ForcedMarker = "⚠️ Forced"
)

// LanguageNamer resolves language codes to display names.
type LanguageNamer interface {
	DisplayName(code string) string
}

type englishNamer struct{}

func (englishNamer) DisplayName(code string) string { return language.DisplayName(code) }

// Describer builds track descriptions.
type Describer struct {
	names LanguageNamer
}

// NewDescriber returns a Describer. A nil namer uses English names.
func NewDescriber(names LanguageNamer) *Describer {
	if names == nil {
		names = englishNamer{}
	}
	return &Describer{names: names}
}

// Describe joins the fragments of t with Separator. overallBitRate is used
// for video tracks that carry no bitrate of their own.
func (d *Describer) Describe(t track.Track, overallBitRate track.Text) string {
	return strings.Join(d.Fragments(t, overallBitRate), Separator)
}

// Fragments returns the ordered description fragments for t. Blank
// fragments are never emitted.
func (d *Describer) Fragments(t track.Track, overallBitRate track.Text) []string {
	var parts fragments
	switch t.Kind {
	case track.KindVideo:
		parts.add(t.CodecName())
		if bitRate, ok := t.BitRate.Or(overallBitRate).NonEmpty(); ok {
			parts.add(FormatVideoBitrate(bitRate), true)
		}
		width, wok := t.Width.NonEmpty()
		height, hok := t.Height.NonEmpty()
		if wok && hok {
			parts.add(width+"x"+height, true)
		}
		parts.add(HDRTags(t.HDRCompatibility, t.HDRFormat), true)

	case track.KindAudio:
		parts.add(audioName(t))
		parts.add(t.Title.NonEmpty())
		if bitRate, ok := t.BitRate.NonEmpty(); ok {
			parts.add(FormatAudioBitrate(bitRate), true)
		}
		parts.add(t.CompressionMode.Or(t.BitRateMode).NonEmpty())
		if t.Default.IsYes() {
			parts.add(DefaultMarker, true)
		}
		parts.add(d.languageName(t))

	case track.KindSubtitle:
		parts.add(t.CodecName())
		if title, ok := t.Title.NonEmpty(); ok {
			parts.add(title, true)
		} else {
			parts.add(d.languageName(t))
		}
		if t.Source == track.SourceMKVMerge && t.Default.IsYes() {
			parts.add(DefaultMarker, true)
		}
		if t.Forced.IsYes() {
			parts.add(ForcedMarker, true)
		}

	default:
		parts.add(t.CodecName())
		parts.add(t.Title.NonEmpty())
	}
	return parts
}

// LanguageName returns the display name of the track language, or "" when
// the track carries none.
func (d *Describer) LanguageName(t track.Track) string {
	name, _ := d.languageName(t)
	return name
}

func (d *Describer) languageName(t track.Track) (string, bool) {
	code, ok := t.Language.NonEmpty()
	if !ok {
		return "", false
	}
	name := d.names.DisplayName(code)
	return name, name != ""
}

func audioName(t track.Track) (string, bool) {
	format, hasFormat := t.CodecName()
	commercial, hasCommercial := t.CommercialName.NonEmpty()
	switch {
	case hasFormat && hasCommercial:
		return fmt.Sprintf("%s (%s)", format, commercial), true
	case hasFormat:
		return format, true
	default:
		return commercial, hasCommercial
	}
}

type fragments []string

func (f *fragments) add(value string, ok bool) {
	if !ok {
		return
	}
	if value = strings.TrimSpace(value); value != "" {
		*f = append(*f, value)
	}
}
