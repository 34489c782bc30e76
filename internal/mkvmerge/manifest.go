package mkvmerge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"mozaik/internal/track"
)

// Track type discriminators reported by mkvmerge.
const (
	TypeVideo     = "video"
	TypeAudio     = "audio"
	TypeSubtitles = "subtitles"
	TypeOther     = "other"
)

// Properties holds the per-track properties Mozaik reads.
type Properties struct {
	PixelDimensions        track.Text `json:"pixel_dimensions"`
	TagBPS                 track.Text `json:"tag_bps"`
	TrackName              track.Text `json:"track_name"`
	Language               track.Text `json:"language"`
	LanguageIETF           track.Text `json:"language_ietf"`
	CodecID                track.Text `json:"codec_id"`
	DefaultTrack           *bool      `json:"default_track"`
	ForcedTrack            *bool      `json:"forced_track"`
	AudioChannels          int        `json:"audio_channels"`
	AudioSamplingFrequency int        `json:"audio_sampling_frequency"`
	Number                 int        `json:"number"`
}

// Track is one entry of the manifest's tracks array.
type Track struct {
	ID   int
	Type string
	// RawType is the discriminator as mkvmerge reported it.
	RawType    string
	Codec      track.Text
	Properties Properties
}

// ContainerProperties carries the container-level properties used by the overview.
type ContainerProperties struct {
	Title              track.Text `json:"title"`
	DurationNS         *int64     `json:"duration"`
	MuxingApplication  track.Text `json:"muxing_application"`
	WritingApplication track.Text `json:"writing_application"`
}

// Container describes the probed file as a whole.
type Container struct {
	Type       string              `json:"type"`
	Recognized bool                `json:"recognized"`
	Supported  bool                `json:"supported"`
	Properties ContainerProperties `json:"properties"`
}

// Manifest is a decoded `mkvmerge -J` report.
type Manifest struct {
	FileName  string
	Container Container
	Entries   []Track
	Chapters  int
	Warnings  []string
	Errors    []string
}

// DecodeError reports a payload that is not a usable mkvmerge manifest.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode mkvmerge: %s: %v", e.Reason, e.Err)
	}
	return "decode mkvmerge: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrDuplicateID reports two tracks sharing one id.
var ErrDuplicateID = errors.New("duplicate track id")

type document struct {
	FileName  string            `json:"file_name"`
	Container Container         `json:"container"`
	Tracks    []json.RawMessage `json:"tracks"`
	Chapters  []struct {
		NumEntries int `json:"num_entries"`
	} `json:"chapters"`
	Warnings []string        `json:"warnings"`
	Errors   []string        `json:"errors"`
	Media    json.RawMessage `json:"media"`
}

type rawTrack struct {
	ID         *int       `json:"id"`
	Type       *string    `json:"type"`
	Codec      track.Text `json:"codec"`
	Properties Properties `json:"properties"`
}

// Decode parses an mkvmerge identification report.
func Decode(data []byte) (*Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DecodeError{Reason: "empty payload"}
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Reason: "malformed JSON", Err: err}
	}
	if doc.Tracks == nil {
		if doc.Media != nil {
			return nil, &DecodeError{Reason: `found a mediainfo "media" report, expected mkvmerge identification`}
		}
		return nil, &DecodeError{Reason: `missing "tracks" array`}
	}

	manifest := &Manifest{
		FileName:  doc.FileName,
		Container: doc.Container,
		Entries:   make([]Track, 0, len(doc.Tracks)),
		Warnings:  doc.Warnings,
		Errors:    doc.Errors,
	}
	for _, chapter := range doc.Chapters {
		manifest.Chapters += chapter.NumEntries
	}

	seen := make(map[int]struct{}, len(doc.Tracks))
	for i, raw := range doc.Tracks {
		var entry rawTrack
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, &DecodeError{Reason: fmt.Sprintf("track %d", i), Err: err}
		}
		if entry.ID == nil {
			return nil, &DecodeError{Reason: fmt.Sprintf(`track %d missing "id"`, i)}
		}
		if entry.Type == nil {
			return nil, &DecodeError{Reason: fmt.Sprintf(`track %d missing "type"`, i)}
		}
		if _, dup := seen[*entry.ID]; dup {
			return nil, &DecodeError{Reason: fmt.Sprintf("track %d", i), Err: fmt.Errorf("%w %d", ErrDuplicateID, *entry.ID)}
		}
		seen[*entry.ID] = struct{}{}
		manifest.Entries = append(manifest.Entries, Track{
			ID:         *entry.ID,
			Type:       normalizeType(*entry.Type),
			RawType:    *entry.Type,
			Codec:      entry.Codec,
			Properties: entry.Properties,
		})
	}
	return manifest, nil
}

func normalizeType(value string) string {
	switch value {
	case TypeVideo, TypeAudio, TypeSubtitles:
		return value
	default:
		return TypeOther
	}
}

// Lookup returns the track with the given id.
func (m *Manifest) Lookup(id int) (Track, bool) {
	if m == nil {
		return Track{}, false
	}
	for _, t := range m.Entries {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}

// IDs returns every track id in manifest order.
func (m *Manifest) IDs() []int {
	if m == nil {
		return nil
	}
	ids := make([]int, 0, len(m.Entries))
	for _, t := range m.Entries {
		ids = append(ids, t.ID)
	}
	return ids
}

// Count returns the number of tracks of the given type.
func (m *Manifest) Count(kind string) int {
	if m == nil {
		return 0
	}
	count := 0
	for _, t := range m.Entries {
		if t.Type == kind {
			count++
		}
	}
	return count
}
