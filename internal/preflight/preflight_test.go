package preflight

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mozaik/internal/config"
	"mozaik/internal/deps"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckOutputDirectory_Missing(t *testing.T) {
	result := CheckOutputDirectory(filepath.Join(t.TempDir(), "a", "b"))
	if !result.Passed {
		t.Fatalf("missing dir under a writable parent should pass, got: %s", result.Detail)
	}
}

func TestCheckOutputDirectory_UnderFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckOutputDirectory(filepath.Join(f, "out"))
	if result.Passed {
		t.Fatal("expected failure when the parent is a file")
	}
}

func TestRunAll(t *testing.T) {
	cfg := config.Default()
	cfg.Tools = config.Tools{MediaInfo: "mediainfo", MKVMerge: "mkvmerge", MKVExtract: "mkvextract"}
	cfg.Output.Dir = t.TempDir()

	checker := deps.Checker{LookPath: func(name string) (string, error) {
		if name == "mkvextract" {
			return "", errors.New("not found")
		}
		return "/usr/bin/" + name, nil
	}}
	report := RunAll(context.Background(), &cfg, checker)
	if len(report.Binaries) != 3 || len(report.Checks) != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.OK() {
		t.Fatal("report should fail when mkvextract is missing")
	}
	if !report.Checks[0].Passed {
		t.Fatalf("output dir check failed: %s", report.Checks[0].Detail)
	}

	checker.LookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	if !RunAll(context.Background(), &cfg, checker).OK() {
		t.Fatal("report should pass when every binary resolves")
	}
	if got := RunAll(context.Background(), nil, checker); len(got.Binaries) != 0 {
		t.Fatal("nil config should produce an empty report")
	}
}
