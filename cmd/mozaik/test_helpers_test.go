package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// fakeTools stands in for mediainfo, mkvmerge and mkvextract. Stream writes
// a small file for every planned destination except those in skip.
type fakeTools struct {
	mediainfo []byte
	mkvmerge  []byte
	skip      map[string]bool
	exitErr   error

	mu      sync.Mutex
	streams [][]string
}

type fakeExitError struct{ code int }

func (e fakeExitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }
func (e fakeExitError) ExitCode() int { return e.code }

func (f *fakeTools) Output(_ context.Context, binary string, args []string) ([]byte, []byte, error) {
	version := len(args) == 1 && strings.EqualFold(args[0], "--version")
	switch filepath.Base(binary) {
	case "mediainfo":
		if version {
			return []byte("MediaInfo Command line,\nMediaInfoLib - v24.06\n"), nil, nil
		}
		return f.mediainfo, nil, nil
	case "mkvmerge":
		if version {
			return []byte("mkvmerge v82.0 ('I'm The President') 64-bit\n"), nil, nil
		}
		return f.mkvmerge, nil, nil
	case "mkvextract":
		return []byte("mkvextract v82.0 ('I'm The President') 64-bit\n"), nil, nil
	}
	return nil, nil, fmt.Errorf("unexpected binary %s", binary)
}

func (f *fakeTools) Stream(_ context.Context, binary string, args []string, onLine func(string)) error {
	f.mu.Lock()
	f.streams = append(f.streams, append([]string(nil), args...))
	f.mu.Unlock()
	if filepath.Base(binary) != "mkvextract" || len(args) < 3 || args[0] != "tracks" {
		return fmt.Errorf("unexpected stream %s %v", binary, args)
	}
	for _, spec := range args[2:] {
		_, path, ok := strings.Cut(spec, ":")
		if !ok {
			return fmt.Errorf("bad track spec %q", spec)
		}
		if f.skip[filepath.Base(path)] {
			continue
		}
		if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
			return err
		}
	}
	for _, line := range []string{"Extracting track 1 with the CodecID 'A_EAC3'", "Progress: 50%", "Progress: 100%"} {
		if onLine != nil {
			onLine(line)
		}
	}
	return f.exitErr
}

func (f *fakeTools) streamCalls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.streams
}

func resolveAll(name string) (string, error) { return "/usr/bin/" + filepath.Base(name), nil }

type cliTestEnv struct {
	tools      *fakeTools
	lookPath   func(string) (string, error)
	configPath string
	outputDir  string
	input      string
	logs       bytes.Buffer
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("MOZAIK_MEDIAINFO", "")
	t.Setenv("MOZAIK_MKVMERGE", "")
	t.Setenv("MOZAIK_MKVEXTRACT", "")

	env := &cliTestEnv{
		tools: &fakeTools{
			mediainfo: readFixture(t, "mediainfo"),
			mkvmerge:  readFixture(t, "mkvmerge"),
		},
		lookPath:   resolveAll,
		configPath: filepath.Join(base, "mozaik.toml"),
		outputDir:  filepath.Join(base, "out"),
		input:      filepath.Join(base, "Sample.mkv"),
	}
	config := fmt.Sprintf("[output]\ndir = %q\n\n[logging]\nlevel = \"debug\"\n", env.outputDir)
	if err := os.WriteFile(env.configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(env.input, []byte("matroska"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return env
}

func readFixture(t *testing.T, pkg string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "internal", pkg, "testdata", "movie.json"))
	if err != nil {
		t.Fatalf("read %s fixture: %v", pkg, err)
	}
	return data
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand(withExecutor(e.tools), withLookPath(e.lookPath), withLogWriter(&e.logs))
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--config", e.configPath}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}

func requireErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}
}
