package mkvmerge

import (
	"strings"

	"mozaik/internal/track"
)

// Track converts the manifest entry into the schema-neutral model.
func (t Track) Track() track.Track {
	out := track.Track{
		Source:   track.SourceMKVMerge,
		ID:       t.ID,
		Kind:     kindOf(t.Type),
		Codec:    t.Codec,
		Title:    t.Properties.TrackName,
		Language: t.Properties.Language,
		BitRate:  t.Properties.TagBPS,
		Default:  track.FlagFromBool(t.Properties.DefaultTrack),
		Forced:   track.FlagFromBool(t.Properties.ForcedTrack),
	}
	if _, ok := out.Language.NonEmpty(); !ok {
		if ietf, ok := t.Properties.LanguageIETF.NonEmpty(); ok {
			out.Language = track.Some(ietf)
		}
	}
	if dims, ok := t.Properties.PixelDimensions.NonEmpty(); ok {
		if w, h, found := strings.Cut(dims, "x"); found {
			out.Width = track.Some(strings.TrimSpace(w))
			out.Height = track.Some(strings.TrimSpace(h))
		}
	}
	return out
}

// Tracks adapts every manifest entry, preserving manifest order.
func (m *Manifest) Tracks() []track.Track {
	if m == nil {
		return nil
	}
	out := make([]track.Track, 0, len(m.Entries))
	for _, t := range m.Entries {
		out = append(out, t.Track())
	}
	return out
}

func kindOf(value string) track.Kind {
	switch value {
	case TypeVideo:
		return track.KindVideo
	case TypeAudio:
		return track.KindAudio
	case TypeSubtitles:
		return track.KindSubtitle
	default:
		return track.KindOther
	}
}
