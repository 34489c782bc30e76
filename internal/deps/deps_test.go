package deps

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Path != present {
		t.Fatalf("unexpected resolved path %q", results[0].Path)
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected blank command status %#v", results[2])
	}
	if len(Unavailable(results)) != 2 {
		t.Fatalf("expected 2 unavailable requirements, got %d", len(Unavailable(results)))
	}
}

type versionStub map[string]string

func (v versionStub) Capture(_ context.Context, binary string, _ ...string) ([]byte, error) {
	out, ok := v[binary]
	if !ok {
		return nil, errors.New("exit status 1")
	}
	return []byte(out), nil
}

func TestCheckerReadsVersions(t *testing.T) {
	checker := Checker{
		LookPath: func(name string) (string, error) { return "/usr/bin/" + name, nil },
		Versions: versionStub{
			"mediainfo": "MediaInfo Command line,\nMediaInfoLib - v24.06\n",
			"mkvmerge":  "mkvmerge v82.0 ('I'm The President') 64-bit\n",
		},
	}
	results := checker.Check(context.Background(), []Requirement{
		{Name: "MediaInfo", Command: "mediainfo", VersionArgs: []string{"--Version"}},
		{Name: "mkvmerge", Command: "mkvmerge", VersionArgs: []string{"--version"}},
		{Name: "mkvextract", Command: "mkvextract", VersionArgs: []string{"--version"}},
		{Name: "Optional", Command: "other", Optional: true},
	})
	if results[0].Version != "24.06" || results[1].Version != "82.0" {
		t.Fatalf("unexpected versions %q %q", results[0].Version, results[1].Version)
	}
	if !results[2].Available || results[2].Version != "" || results[2].Detail != "version unavailable" {
		t.Fatalf("version failure should not mark binary unavailable: %#v", results[2])
	}
	if results[3].Version != "" {
		t.Fatalf("requirements without version args should not be probed: %#v", results[3])
	}
}

func TestParseVersion(t *testing.T) {
	tests := map[string]string{
		"mkvextract v82.0 ('I'm The President') 64-bit": "82.0",
		"MediaInfoLib - v24.06":                         "24.06",
		"tool 1.2.3-beta":                               "1.2.3",
		"\n  custom build\n":                            "custom build",
		"":                                              "",
	}
	for in, want := range tests {
		if got := ParseVersion(in); got != want {
			t.Errorf("ParseVersion(%q) = %q, want %q", in, got, want)
		}
	}
}
