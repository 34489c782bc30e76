package mkvmerge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"mozaik/internal/logging"
	"mozaik/internal/probe"
)

// Capturer runs a probe binary and returns its stdout.
type Capturer interface {
	Capture(ctx context.Context, binary string, args ...string) ([]byte, error)
}

// Client runs mkvmerge identification through a Capturer.
type Client struct {
	binary string
	runner Capturer
	logger *slog.Logger
}

// NewClient constructs an mkvmerge client.
func NewClient(binary string, runner Capturer, logger *slog.Logger) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("mkvmerge binary required")
	}
	if runner == nil {
		return nil, errors.New("mkvmerge runner required")
	}
	return &Client{
		binary: binary,
		runner: runner,
		logger: logging.NewComponentLogger(logger, "mkvmerge"),
	}, nil
}

// Identify runs `mkvmerge -J <path>` and decodes the manifest.
//
// mkvmerge exits with status 1 when it only emitted warnings; the manifest
// is still decoded in that case.
func (c *Client) Identify(ctx context.Context, path string) (*Manifest, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("mkvmerge identify: empty path")
	}
	output, err := c.runner.Capture(ctx, c.binary, "-J", path)
	if err != nil {
		if probe.ExitCode(err) != 1 || len(output) == 0 {
			return nil, fmt.Errorf("mkvmerge identify: %w", err)
		}
		logging.WarnWithContext(c.logger, "mkvmerge exited with warnings", "mkvmerge_warning",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "manifest may be incomplete"),
		)
	}

	manifest, err := Decode(output)
	if err != nil {
		return nil, err
	}
	for _, warning := range manifest.Warnings {
		logging.WarnWithContext(c.logger, "mkvmerge warning", "mkvmerge_warning",
			logging.String("path", path),
			logging.String("warning", warning),
		)
	}
	if len(manifest.Errors) > 0 {
		return nil, fmt.Errorf("mkvmerge identify: %s", strings.Join(manifest.Errors, "; "))
	}
	c.logger.Debug("mkvmerge manifest decoded",
		logging.String("path", path),
		logging.Int("tracks", len(manifest.Entries)),
	)
	return manifest, nil
}
