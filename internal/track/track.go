package track

import "strings"

// Kind classifies a track independently of the schema that reported it.
type Kind int

const (
	KindOther Kind = iota
	KindGeneral
	KindVideo
	KindAudio
	KindSubtitle
	KindMenu
)

func (k Kind) String() string {
	switch k {
	case KindGeneral:
		return "general"
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindSubtitle:
		return "subtitles"
	case KindMenu:
		return "menu"
	default:
		return "other"
	}
}

// Label returns a capitalized display name for the kind.
func (k Kind) Label() string {
	switch k {
	case KindSubtitle:
		return "Subtitle"
	default:
		s := k.String()
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

// ParseKind maps a kind name from either schema ("Video", "video", "Text",
// "subtitles", ...) onto a Kind. Unknown names become KindOther.
func ParseKind(value string) Kind {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "general":
		return KindGeneral
	case "video":
		return KindVideo
	case "audio":
		return KindAudio
	case "text", "subtitles", "subtitle":
		return KindSubtitle
	case "menu":
		return KindMenu
	default:
		return KindOther
	}
}

// Source records which probe schema a Track was converted from.
type Source int

const (
	SourceUnknown Source = iota
	SourceMediaInfo
	SourceMKVMerge
)

func (s Source) String() string {
	switch s {
	case SourceMediaInfo:
		return "mediainfo"
	case SourceMKVMerge:
		return "mkvmerge"
	default:
		return "unknown"
	}
}

// Track is the schema-neutral view of one elementary stream (or the
// container-level General node).
type Track struct {
	Source Source
	// ID is the mkvmerge track id for SourceMKVMerge and the position within
	// the mediainfo track list for SourceMediaInfo.
	ID   int
	Kind Kind

	Codec            Text
	Format           Text
	CommercialName   Text
	Title            Text
	Language         Text
	BitRate          Text
	BitRateMode      Text
	CompressionMode  Text
	Width            Text
	Height           Text
	HDRFormat        Text
	HDRCompatibility Text
	IMDB             Text

	Default Flag
	Forced  Flag

	Extra Extra
}

// LanguageOr returns the track language, or fallback when the language is
// absent or blank.
func (t Track) LanguageOr(fallback string) string {
	if lang, ok := t.Language.NonEmpty(); ok {
		return lang
	}
	return fallback
}

// CodecName returns the best available codec description: the codec string
// for mkvmerge tracks, the format name for mediainfo tracks.
func (t Track) CodecName() (string, bool) {
	if codec, ok := t.Codec.NonEmpty(); ok && t.Source == SourceMKVMerge {
		return codec, true
	}
	if format, ok := t.Format.NonEmpty(); ok {
		return format, true
	}
	return t.Codec.NonEmpty()
}
