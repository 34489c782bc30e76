package mediainfo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"mozaik/internal/logging"
)

// Capturer runs a probe binary and returns its stdout.
type Capturer interface {
	Capture(ctx context.Context, binary string, args ...string) ([]byte, error)
}

// Result pairs the decoded record with the payload mediainfo produced.
type Result struct {
	Record *Record
	raw    []byte
}

// RawJSON returns the payload exactly as mediainfo wrote it.
func (r *Result) RawJSON() []byte {
	if r == nil {
		return nil
	}
	return append([]byte(nil), r.raw...)
}

// Client runs mediainfo through a Capturer.
type Client struct {
	binary string
	runner Capturer
	logger *slog.Logger
}

// NewClient constructs a mediainfo client.
func NewClient(binary string, runner Capturer, logger *slog.Logger) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("mediainfo binary required")
	}
	if runner == nil {
		return nil, errors.New("mediainfo runner required")
	}
	return &Client{
		binary: binary,
		runner: runner,
		logger: logging.NewComponentLogger(logger, "mediainfo"),
	}, nil
}

// Probe runs `mediainfo --Output=JSON <path>` and decodes the report.
func (c *Client) Probe(ctx context.Context, path string) (*Result, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("mediainfo probe: empty path")
	}
	output, err := c.runner.Capture(ctx, c.binary, "--Output=JSON", path)
	if err != nil {
		return nil, fmt.Errorf("mediainfo probe: %w", err)
	}
	record, err := Decode(output)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("mediainfo report decoded",
		logging.String("path", path),
		logging.Int("tracks", len(record.Nodes)),
	)
	return &Result{Record: record, raw: append([]byte(nil), output...)}, nil
}
