package mediainfo_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mozaik/internal/logging"
	"mozaik/internal/mediainfo"
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
	record, err := mediainfo.Decode(loadFixture(t))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if record.Ref != "/movies/Sample.mkv" {
		t.Fatalf("unexpected ref %q", record.Ref)
	}

	general, ok := record.General()
	if !ok {
		t.Fatal("expected General node")
	}
	if general.Format.Value != "Matroska" || general.OverallBitRate.Value != "5816000" {
		t.Fatalf("unexpected general node: %+v", general)
	}
	if v, ok := general.Extra.Lookup("IMDB"); !ok || v != "tt0111161" {
		t.Fatalf("expected IMDB in extra, got %q,%v", v, ok)
	}
	if general.IMDB.Set {
		t.Fatal("direct IMDB field should be unset")
	}

	if got := len(record.VideoTracks()); got != 1 {
		t.Fatalf("expected 1 video track, got %d", got)
	}
	if got := len(record.AudioTracks()); got != 3 {
		t.Fatalf("expected 3 audio tracks, got %d", got)
	}
	if got := len(record.SubtitleTracks()); got != 2 {
		t.Fatalf("expected 2 subtitle tracks, got %d", got)
	}
	if _, ok := record.Menu(); !ok {
		t.Fatal("expected menu node")
	}

	frAudio := record.AudioTracks()[2]
	if v, ok := frAudio.CommercialName.Get(); !ok || v != "" {
		t.Fatalf("expected present-but-empty commercial name, got %q,%v", v, ok)
	}
	if frAudio.Title.Set {
		t.Fatal("absent title should stay unset")
	}
}

func TestDecodeAcceptsNumericAttributes(t *testing.T) {
	data := []byte(`{"media":{"track":[{"@type":"General","FileSize":1073741824,"Duration":60.5,"Unexpected":{"deep":true}}]}}`)
	record, err := mediainfo.Decode(data)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	general, _ := record.General()
	if general.FileSize.Value != "1073741824" || general.Duration.Value != "60.5" {
		t.Fatalf("numeric attributes not preserved: %+v", general)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"malformed", `{"media":`},
		{"missing media", `{"tracks":[{"id":0,"type":"video"}]}`},
		{"missing type", `{"media":{"track":[{"Format":"AVC"}]}}`},
		{"non-string type", `{"media":{"track":[{"@type":3}]}}`},
		{"two generals", `{"media":{"track":[{"@type":"General"},{"@type":"General"}]}}`},
		{"array root", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mediainfo.Decode([]byte(tt.data))
			var decodeErr *mediainfo.DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected DecodeError, got %v", err)
			}
		})
	}

	_, err := mediainfo.Decode([]byte(`{"media":{"track":[{"@type":"General"},{"@type":"General"}]}}`))
	if !errors.Is(err, mediainfo.ErrMultipleGeneral) {
		t.Fatalf("expected ErrMultipleGeneral, got %v", err)
	}
}

func TestTracksAdaptNodes(t *testing.T) {
	record, err := mediainfo.Decode(loadFixture(t))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	tracks := record.Tracks()
	if len(tracks) != len(record.Nodes) {
		t.Fatalf("expected %d tracks, got %d", len(record.Nodes), len(tracks))
	}
	video := tracks[1]
	if video.Source != track.SourceMediaInfo || video.Kind != track.KindVideo || video.ID != 1 {
		t.Fatalf("unexpected video track: %+v", video)
	}
	if video.HDRCompatibility.Value != "HDR10 / HDR10" {
		t.Fatalf("unexpected HDR compatibility %q", video.HDRCompatibility.Value)
	}
	if !video.Default.IsYes() || video.Forced != track.FlagNo {
		t.Fatalf("unexpected flags default=%v forced=%v", video.Default, video.Forced)
	}
	signs := tracks[6]
	if signs.Kind != track.KindSubtitle || !signs.Forced.IsYes() {
		t.Fatalf("unexpected subtitle track: %+v", signs)
	}
	if frAudio := tracks[4]; frAudio.Default != track.FlagNo || frAudio.Forced != track.FlagUnset {
		t.Fatalf("unexpected flags on french audio: %+v", frAudio)
	}
}

type stubCapturer struct {
	output []byte
	err    error
	binary string
	args   []string
}

func (s *stubCapturer) Capture(_ context.Context, binary string, args ...string) ([]byte, error) {
	s.binary = binary
	s.args = append([]string(nil), args...)
	return s.output, s.err
}

func TestProbeRunsMediaInfoAndKeepsRawPayload(t *testing.T) {
	fixture := loadFixture(t)
	stub := &stubCapturer{output: fixture}
	client, err := mediainfo.NewClient("mediainfo", stub, logging.NewNop())
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	result, err := client.Probe(context.Background(), "/movies/Sample.mkv")
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}
	if stub.binary != "mediainfo" {
		t.Fatalf("unexpected binary %q", stub.binary)
	}
	if len(stub.args) != 2 || stub.args[0] != "--Output=JSON" || stub.args[1] != "/movies/Sample.mkv" {
		t.Fatalf("unexpected args %v", stub.args)
	}
	if !bytes.Equal(result.RawJSON(), fixture) {
		t.Fatal("raw payload should be preserved verbatim")
	}
	raw := result.RawJSON()
	raw[0] = 'X'
	if bytes.Equal(result.RawJSON(), raw) {
		t.Fatal("RawJSON should return a copy")
	}
}

func TestProbePropagatesRunnerErrors(t *testing.T) {
	client, err := mediainfo.NewClient("mediainfo", &stubCapturer{err: probe.ErrEmptyOutput}, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := client.Probe(context.Background(), "/movies/Sample.mkv"); !errors.Is(err, probe.ErrEmptyOutput) {
		t.Fatalf("expected ErrEmptyOutput, got %v", err)
	}
	if _, err := client.Probe(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestProbeRejectsMalformedOutput(t *testing.T) {
	client, _ := mediainfo.NewClient("mediainfo", &stubCapturer{output: []byte("not json")}, nil)
	_, err := client.Probe(context.Background(), "/movies/Sample.mkv")
	var decodeErr *mediainfo.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestNewClientValidatesInputs(t *testing.T) {
	if _, err := mediainfo.NewClient("", &stubCapturer{}, nil); err == nil {
		t.Fatal("expected error for empty binary")
	}
	if _, err := mediainfo.NewClient("mediainfo", nil, nil); err == nil {
		t.Fatal("expected error for nil runner")
	}
}
