package extract

import (
	"fmt"
	"strings"

	"mozaik/internal/track"
)

const undeterminedLanguage = "und"

// Extension returns the file extension (without the leading dot) for a
// track of the given kind and codec. Codec matching is a case-insensitive
// substring test.
func Extension(kind track.Kind, codec string) string {
	codec = strings.ToLower(strings.TrimSpace(codec))
	has := func(needles ...string) bool {
		for _, needle := range needles {
			if strings.Contains(codec, needle) {
				return true
			}
		}
		return false
	}
	switch kind {
	case track.KindVideo:
		switch {
		case codec == "":
			return "video"
		case has("h.264", "avc"):
			return "mp4"
		case has("h.265", "hevc"):
			return "mkv"
		default:
			return "video.mkv"
		}
	case track.KindAudio:
		switch {
		case has("aac"):
			return "m4a"
		case has("ac-3"):
			return "ac3"
		case has("truehd"):
			return "thd"
		default:
			return "audio"
		}
	case track.KindSubtitle:
		return "srt"
	default:
		return "bin"
	}
}

// Filename returns the destination base name for t:
// track_{id}.{language or "und"}.{extension}.
func Filename(t track.Track) string {
	codec, _ := t.CodecName()
	lang := strings.ReplaceAll(t.LanguageOr(undeterminedLanguage), "/", "_")
	return fmt.Sprintf("track_%d.%s.%s", t.ID, lang, Extension(t.Kind, codec))
}
