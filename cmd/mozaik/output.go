package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mozaik/internal/config"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// resolveSaveTarget turns a --save-json/--output value into a file path.
// Existing directories and values ending in a separator receive the
// configured raw JSON file name.
func resolveSaveTarget(target, defaultName string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", errors.New("output path required")
	}
	expanded, err := config.ExpandPath(target)
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(target, "/") || strings.HasSuffix(target, string(filepath.Separator)) {
		return filepath.Join(expanded, defaultName), nil
	}
	info, err := os.Stat(expanded)
	switch {
	case err == nil && info.IsDir():
		return filepath.Join(expanded, defaultName), nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("check output path: %w", err)
	}
	return expanded, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
