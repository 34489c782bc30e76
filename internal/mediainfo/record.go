package mediainfo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"mozaik/internal/track"
)

// Node type discriminators reported in the "@type" field.
const (
	TypeGeneral = "General"
	TypeVideo   = "Video"
	TypeAudio   = "Audio"
	TypeText    = "Text"
	TypeMenu    = "Menu"
)

// Node is one entry of the media.track array.
type Node struct {
	Type string `json:"@type"`

	Title              track.Text  `json:"Title"`
	Duration           track.Text  `json:"Duration"`
	Format             track.Text  `json:"Format"`
	FormatVersion      track.Text  `json:"Format_Version"`
	FormatProfile      track.Text  `json:"Format_Profile"`
	CodecID            track.Text  `json:"CodecID"`
	BitRate            track.Text  `json:"BitRate"`
	BitRateMode        track.Text  `json:"BitRate_Mode"`
	Width              track.Text  `json:"Width"`
	Height             track.Text  `json:"Height"`
	DisplayAspectRatio track.Text  `json:"DisplayAspectRatio"`
	FrameRate          track.Text  `json:"FrameRate"`
	FrameRateMode      track.Text  `json:"FrameRate_Mode"`
	ColorSpace         track.Text  `json:"ColorSpace"`
	ChromaSubsampling  track.Text  `json:"ChromaSubsampling"`
	BitDepth           track.Text  `json:"BitDepth"`
	ChannelLayout      track.Text  `json:"ChannelLayout"`
	Channels           track.Text  `json:"Channel(s)"`
	SamplingRate       track.Text  `json:"SamplingRate"`
	Language           track.Text  `json:"Language"`
	ServiceKind        track.Text  `json:"ServiceKind"`
	Default            track.Text  `json:"Default"`
	Forced             track.Text  `json:"Forced"`
	EncodedDate        track.Text  `json:"Encoded_Date"`
	EncodedApplication track.Text  `json:"Encoded_Application"`
	EncodedLibrary     track.Text  `json:"Encoded_Library"`
	FileSize           track.Text  `json:"FileSize"`
	OverallBitRate     track.Text  `json:"OverallBitRate"`
	Movie              track.Text  `json:"Movie"`
	StreamSize         track.Text  `json:"StreamSize"`
	FileExtension      track.Text  `json:"FileExtension"`
	IMDB               track.Text  `json:"IMDB"`
	TMDB               track.Text  `json:"TMDB"`
	CommercialName     track.Text  `json:"Format_Commercial_IfAny"`
	HDRFormat          track.Text  `json:"HDR_Format"`
	HDRCompatibility   track.Text  `json:"HDR_Format_Compatibility"`
	LanguageMore       track.Text  `json:"Language_More"`
	CompressionMode    track.Text  `json:"Compression_Mode"`
	Extra              track.Extra `json:"extra"`
}

// Record is a decoded mediainfo report.
type Record struct {
	Ref   string
	Nodes []Node
}

type document struct {
	Media *struct {
		Ref   string            `json:"@ref"`
		Track []json.RawMessage `json:"track"`
	} `json:"media"`
}

// DecodeError reports a payload that is not a usable mediainfo report.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode mediainfo: %s: %v", e.Reason, e.Err)
	}
	return "decode mediainfo: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrMultipleGeneral reports a report that carries more than one General node.
var ErrMultipleGeneral = errors.New("more than one General track")

// Decode parses a mediainfo JSON report. Unknown fields are ignored and
// absent attributes stay unset.
func Decode(data []byte) (*Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DecodeError{Reason: "empty payload"}
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Reason: "malformed JSON", Err: err}
	}
	if doc.Media == nil {
		return nil, &DecodeError{Reason: `missing "media" object`}
	}

	record := &Record{Ref: doc.Media.Ref, Nodes: make([]Node, 0, len(doc.Media.Track))}
	generals := 0
	for i, raw := range doc.Media.Track {
		var node Node
		if err := json.Unmarshal(raw, &node); err != nil {
			return nil, &DecodeError{Reason: fmt.Sprintf("track %d", i), Err: err}
		}
		if node.Type == "" {
			return nil, &DecodeError{Reason: fmt.Sprintf(`track %d missing "@type"`, i)}
		}
		if node.Type == TypeGeneral {
			generals++
			if generals > 1 {
				return nil, &DecodeError{Reason: fmt.Sprintf("track %d", i), Err: ErrMultipleGeneral}
			}
		}
		record.Nodes = append(record.Nodes, node)
	}
	return record, nil
}

// General returns the container-level node, if present.
func (r *Record) General() (Node, bool) {
	for _, node := range r.Nodes {
		if node.Type == TypeGeneral {
			return node, true
		}
	}
	return Node{}, false
}

// Menu returns the first menu node, if present.
func (r *Record) Menu() (Node, bool) {
	for _, node := range r.Nodes {
		if node.Type == TypeMenu {
			return node, true
		}
	}
	return Node{}, false
}

// VideoTracks returns all Video nodes in report order.
func (r *Record) VideoTracks() []Node { return r.byType(TypeVideo) }

// AudioTracks returns all Audio nodes in report order.
func (r *Record) AudioTracks() []Node { return r.byType(TypeAudio) }

// SubtitleTracks returns all Text nodes in report order.
func (r *Record) SubtitleTracks() []Node { return r.byType(TypeText) }

func (r *Record) byType(kind string) []Node {
	var out []Node
	for _, node := range r.Nodes {
		if node.Type == kind {
			out = append(out, node)
		}
	}
	return out
}
