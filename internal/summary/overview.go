package summary

import (
	"strconv"
	"strings"

	"mozaik/internal/mediainfo"
	"mozaik/internal/track"
)

const imdbTitleURL = "https://www.imdb.com/title/"

// ResolveIMDB returns the IMDb identifier of t, preferring the direct IMDB
// attribute over the vendor extension map. Blank values count as absent.
func ResolveIMDB(t track.Track) (string, bool) {
	if id, ok := t.IMDB.NonEmpty(); ok {
		return id, true
	}
	if id, ok := t.Extra.Lookup("IMDB"); ok {
		if id = strings.TrimSpace(id); id != "" {
			return id, true
		}
	}
	return "", false
}

// IMDBURL returns the title page for an IMDb identifier.
func IMDBURL(id string) string {
	return imdbTitleURL + id + "/"
}

// Field is one labelled overview line.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Overview holds the container-level facts of a mediainfo report. Empty
// strings mean the report did not carry the value.
type Overview struct {
	Container string `json:"container,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Muxer     string `json:"muxer,omitempty"`
	Title     string `json:"title,omitempty"`
	Date      string `json:"date,omitempty"`
	Size      string `json:"size,omitempty"`
	FrameRate string `json:"frame_rate,omitempty"`
	IMDBID    string `json:"imdb_id,omitempty"`
	IMDBURL   string `json:"imdb_url,omitempty"`
	Chapters  int    `json:"chapters"`

	VideoTracks    int `json:"video_tracks"`
	AudioTracks    int `json:"audio_tracks"`
	SubtitleTracks int `json:"subtitle_tracks"`
}

// BuildOverview reads the General node and track counts of record.
func BuildOverview(record *mediainfo.Record) Overview {
	if record == nil {
		return Overview{}
	}
	overview := Overview{
		VideoTracks:    len(record.VideoTracks()),
		AudioTracks:    len(record.AudioTracks()),
		SubtitleTracks: len(record.SubtitleTracks()),
	}
	if menu, ok := record.Menu(); ok {
		overview.Chapters = ChapterCount(menu)
	}
	general, ok := record.General()
	if !ok {
		return overview
	}

	overview.Container, _ = general.Format.NonEmpty()
	if duration, ok := general.Duration.NonEmpty(); ok {
		overview.Duration = FormatDuration(duration)
	}
	overview.Muxer, _ = general.EncodedApplication.NonEmpty()
	overview.Title, _ = general.Title.Or(general.Movie).NonEmpty()
	overview.Date, _ = general.EncodedDate.NonEmpty()
	if size, ok := general.FileSize.NonEmpty(); ok {
		overview.Size, _ = FormatFileSize(size)
	}
	if rate, ok := general.FrameRate.NonEmpty(); ok {
		overview.FrameRate = FormatFrameRate(rate)
	}
	if id, ok := ResolveIMDB(general.Track(0)); ok {
		overview.IMDBID = id
		overview.IMDBURL = IMDBURL(id)
	}
	return overview
}

// ChapterCount counts the chapter marks of a menu node. mediainfo reports
// each mark as an extra entry keyed by its timestamp, e.g. "_00_10_00_000".
func ChapterCount(menu mediainfo.Node) int {
	count := 0
	for _, key := range menu.Extra.Keys() {
		if strings.HasPrefix(key, "_") {
			count++
		}
	}
	return count
}

// Fields returns the populated overview lines in display order.
func (o Overview) Fields() []Field {
	chapters := ""
	if o.Chapters > 0 {
		chapters = strconv.Itoa(o.Chapters)
	}
	candidates := []Field{
		{"Container", o.Container},
		{"Duration", o.Duration},
		{"Muxed with", o.Muxer},
		{"Title", o.Title},
		{"Date", o.Date},
		{"File size", o.Size},
		{"Frame rate", o.FrameRate},
		{"Chapters", chapters},
		{"IMDb", o.IMDBURL},
	}
	fields := make([]Field, 0, len(candidates))
	for _, field := range candidates {
		if field.Value != "" {
			fields = append(fields, field)
		}
	}
	return fields
}
