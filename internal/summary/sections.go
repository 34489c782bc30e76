package summary

import (
	"fmt"

	"mozaik/internal/mediainfo"
	"mozaik/internal/track"
)

// Limits caps how many audio and subtitle tracks a listing shows. Zero
// means no cap.
type Limits struct {
	Audio    int
	Subtitle int
}

// Row is one described track.
type Row struct {
	Kind     track.Kind `json:"-"`
	Type     string     `json:"type"`
	Index    int        `json:"index"`
	Language string     `json:"language,omitempty"`
	Detail   string     `json:"detail"`
}

// Section lists the tracks of one kind. Hidden counts tracks left out by
// the preview limit.
type Section struct {
	Kind   track.Kind `json:"-"`
	Label  string     `json:"label"`
	Rows   []Row      `json:"rows"`
	Hidden int        `json:"hidden,omitempty"`
}

// MoreHint describes the hidden tracks, e.g. "3 more audio tracks".
func (s Section) MoreHint() string {
	if s.Hidden <= 0 {
		return ""
	}
	noun := "audio track"
	if s.Kind == track.KindSubtitle {
		noun = "subtitle track"
	} else if s.Kind == track.KindVideo {
		noun = "video track"
	}
	if s.Hidden > 1 {
		noun += "s"
	}
	return fmt.Sprintf("%d more %s", s.Hidden, noun)
}

// Sections describes the video, audio and subtitle tracks of record in
// report order. Limits are ignored when all is true.
func (d *Describer) Sections(record *mediainfo.Record, limits Limits, all bool) []Section {
	if record == nil {
		return nil
	}
	var overall track.Text
	if general, ok := record.General(); ok {
		overall = general.OverallBitRate
	}

	tracks := record.Tracks()
	sections := []Section{
		{Kind: track.KindVideo, Label: track.KindVideo.Label()},
		{Kind: track.KindAudio, Label: track.KindAudio.Label()},
		{Kind: track.KindSubtitle, Label: track.KindSubtitle.Label()},
	}
	caps := map[track.Kind]int{track.KindAudio: limits.Audio, track.KindSubtitle: limits.Subtitle}
	for i := range sections {
		section := &sections[i]
		limit := caps[section.Kind]
		for _, t := range tracks {
			if t.Kind != section.Kind {
				continue
			}
			if !all && limit > 0 && len(section.Rows) >= limit {
				section.Hidden++
				continue
			}
			section.Rows = append(section.Rows, Row{
				Kind:     t.Kind,
				Type:     t.Kind.String(),
				Index:    t.ID,
				Language: d.LanguageName(t),
				Detail:   d.Describe(t, overall),
			})
		}
	}
	return sections
}
