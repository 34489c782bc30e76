package preflight

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"mozaik/internal/config"
	"mozaik/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckOutputDirectory verifies that extracted tracks can be written to
// path. A missing directory passes when its nearest existing ancestor is
// writable, since extraction creates it.
func CheckOutputDirectory(path string) Result {
	const name = "Output directory"
	if _, err := os.Stat(path); err == nil || !errors.Is(err, fs.ErrNotExist) {
		return CheckDirectoryAccess(name, path)
	}
	parent := filepath.Dir(path)
	for {
		if _, err := os.Stat(parent); err == nil {
			break
		}
		next := filepath.Dir(parent)
		if next == parent {
			break
		}
		parent = next
	}
	ancestor := CheckDirectoryAccess(name, parent)
	if !ancestor.Passed {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot be created: %s)", path, ancestor.Detail)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckSystemDeps evaluates the media tools configured in cfg. Both the
// doctor command and the probing commands use this to avoid duplicating
// the requirements list.
func CheckSystemDeps(ctx context.Context, cfg *config.Config, checker deps.Checker) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "MediaInfo",
			Command:     cfg.Tools.MediaInfo,
			Description: "Required for metadata inspection (analyze, raw)",
			VersionArgs: []string{"--Version"},
		},
		{
			Name:        "mkvmerge",
			Command:     cfg.Tools.MKVMerge,
			Description: "Required for track listing (tracks, extract)",
			VersionArgs: []string{"--version"},
		},
		{
			Name:        "mkvextract",
			Command:     cfg.Tools.MKVExtract,
			Description: "Required for track extraction",
			VersionArgs: []string{"--version"},
		},
	}
	return checker.Check(ctx, requirements)
}
