package mkvmerge_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"mozaik/internal/mkvmerge"
	"mozaik/internal/probe"
	"mozaik/internal/track"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "movie.json"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func TestDecodeFixture(t *testing.T) {
	manifest, err := mkvmerge.Decode(loadFixture(t))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if manifest.FileName != "/movies/Sample.mkv" {
		t.Fatalf("unexpected file name %q", manifest.FileName)
	}
	if manifest.Container.Type != "Matroska" || !manifest.Container.Recognized {
		t.Fatalf("unexpected container %+v", manifest.Container)
	}
	if d := manifest.Container.Properties.DurationNS; d == nil || *d != 7384250000000 {
		t.Fatalf("unexpected duration %v", d)
	}
	if manifest.Chapters != 12 {
		t.Fatalf("expected 12 chapters, got %d", manifest.Chapters)
	}
	if got := manifest.IDs(); !slices.Equal(got, []int{0, 1, 2, 3, 5, 7}) {
		t.Fatalf("unexpected ids %v", got)
	}
	if manifest.Count(mkvmerge.TypeAudio) != 2 || manifest.Count(mkvmerge.TypeSubtitles) != 2 {
		t.Fatalf("unexpected counts audio=%d subs=%d", manifest.Count(mkvmerge.TypeAudio), manifest.Count(mkvmerge.TypeSubtitles))
	}

	buttons, ok := manifest.Lookup(7)
	if !ok {
		t.Fatal("expected track 7")
	}
	if buttons.Type != mkvmerge.TypeOther || buttons.RawType != "buttons" {
		t.Fatalf("unknown type should map to other, got %q (%q)", buttons.Type, buttons.RawType)
	}
	if _, ok := manifest.Lookup(4); ok {
		t.Fatal("track 4 should not exist")
	}
	if _, ok := manifest.Lookup(5); !ok {
		t.Fatal("expected track 5")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "  "},
		{"malformed", `{"tracks":[`},
		{"mediainfo report", `{"media":{"@ref":"a.mkv","track":[{"@type":"General"}]}}`},
		{"missing tracks", `{"container":{"type":"Matroska"}}`},
		{"missing id", `{"tracks":[{"type":"video","codec":"AVC"}]}`},
		{"missing type", `{"tracks":[{"id":0,"codec":"AVC"}]}`},
		{"string id", `{"tracks":[{"id":"0","type":"video"}]}`},
		{"duplicate id", `{"tracks":[{"id":1,"type":"video"},{"id":1,"type":"audio"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mkvmerge.Decode([]byte(tt.data))
			var decodeErr *mkvmerge.DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected DecodeError, got %v", err)
			}
		})
	}

	_, err := mkvmerge.Decode([]byte(`{"tracks":[{"id":1,"type":"video"},{"id":1,"type":"audio"}]}`))
	if !errors.Is(err, mkvmerge.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestDecodeToleratesMissingProperties(t *testing.T) {
	manifest, err := mkvmerge.Decode([]byte(`{"tracks":[{"id":3,"type":"audio"}]}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	adapted := manifest.Tracks()[0]
	if adapted.Codec.Set || adapted.Language.Set || adapted.Default != track.FlagUnset {
		t.Fatalf("expected unset attributes, got %+v", adapted)
	}
	if adapted.LanguageOr("und") != "und" {
		t.Fatalf("expected und fallback, got %q", adapted.LanguageOr("und"))
	}
}

func TestTracksAdaptEntries(t *testing.T) {
	manifest, err := mkvmerge.Decode(loadFixture(t))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	tracks := manifest.Tracks()
	if len(tracks) != 6 {
		t.Fatalf("expected 6 tracks, got %d", len(tracks))
	}

	video := tracks[0]
	if video.Source != track.SourceMKVMerge || video.Kind != track.KindVideo {
		t.Fatalf("unexpected video track %+v", video)
	}
	if video.Width.Value != "3840" || video.Height.Value != "2160" {
		t.Fatalf("unexpected dimensions %qx%q", video.Width.Value, video.Height.Value)
	}
	if video.BitRate.Value != "15300000" || !video.Default.IsYes() || video.Forced != track.FlagNo {
		t.Fatalf("unexpected video properties %+v", video)
	}
	if name, _ := video.CodecName(); name != "HEVC/H.265/MPEG-H" {
		t.Fatalf("unexpected codec name %q", name)
	}

	surround := tracks[1]
	if surround.Title.Value != "Surround 5.1" || surround.Language.Value != "eng" {
		t.Fatalf("unexpected audio track %+v", surround)
	}

	signs := tracks[4]
	if signs.ID != 5 || signs.Kind != track.KindSubtitle || !signs.Forced.IsYes() {
		t.Fatalf("unexpected subtitle track %+v", signs)
	}
	if signs.Language.Value != "fr-CA" {
		t.Fatalf("expected IETF language fallback, got %q", signs.Language.Value)
	}
	if signs.Default != track.FlagUnset {
		t.Fatalf("absent default_track should stay unset, got %v", signs.Default)
	}

	if tracks[5].Kind != track.KindOther {
		t.Fatalf("expected other kind, got %v", tracks[5].Kind)
	}
}

type stubCapturer struct {
	output []byte
	err    error
	args   []string
}

func (s *stubCapturer) Capture(_ context.Context, _ string, args ...string) ([]byte, error) {
	s.args = append([]string(nil), args...)
	return s.output, s.err
}

func TestIdentify(t *testing.T) {
	stub := &stubCapturer{output: loadFixture(t)}
	client, err := mkvmerge.NewClient("mkvmerge", stub, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	manifest, err := client.Identify(context.Background(), "/movies/Sample.mkv")
	if err != nil {
		t.Fatalf("Identify returned error: %v", err)
	}
	if strings.Join(stub.args, " ") != "-J /movies/Sample.mkv" {
		t.Fatalf("unexpected args %v", stub.args)
	}
	if len(manifest.Entries) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(manifest.Entries))
	}
}

func TestIdentifyAcceptsWarningExit(t *testing.T) {
	stub := &stubCapturer{
		output: []byte(`{"tracks":[{"id":0,"type":"video","codec":"AVC/H.264/MPEG-4p10"}],"warnings":["odd timestamps"]}`),
		err:    &probe.ExitError{Binary: "mkvmerge", Code: 1},
	}
	client, _ := mkvmerge.NewClient("mkvmerge", stub, nil)
	manifest, err := client.Identify(context.Background(), "a.mkv")
	if err != nil {
		t.Fatalf("exit 1 should still produce a manifest: %v", err)
	}
	if len(manifest.Warnings) != 1 {
		t.Fatalf("expected warning to be kept, got %v", manifest.Warnings)
	}
}

func TestIdentifyFailures(t *testing.T) {
	tests := []struct {
		name string
		stub *stubCapturer
	}{
		{"exit 2", &stubCapturer{output: []byte(`{"tracks":[]}`), err: &probe.ExitError{Binary: "mkvmerge", Code: 2}}},
		{"exit 1 without output", &stubCapturer{err: &probe.ExitError{Binary: "mkvmerge", Code: 1}}},
		{"not found", &stubCapturer{err: probe.ErrExecutableNotFound}},
		{"unrecognized", &stubCapturer{output: []byte(`{"tracks":[],"errors":["The type of file 'a.txt' could not be recognized."]}`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := mkvmerge.NewClient("mkvmerge", tt.stub, nil)
			if _, err := client.Identify(context.Background(), "a.mkv"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
