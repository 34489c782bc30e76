package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"

	"mozaik/internal/logging"
	"mozaik/internal/probe"
)

// LockPath returns the lock file guarding extractions into dir. It lives in
// the temporary directory so the output directory only ever holds tracks.
func LockPath(dir string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(dir)))
	return filepath.Join(os.TempDir(), "mozaik-extract-"+hex.EncodeToString(sum[:8])+".lock")
}

const outputTailLines = 20

// progressLogBucket is the percentage step between logged progress lines.
const progressLogBucket = 10

var (
	// ErrEmptyPlan reports a Run call without anything to extract.
	ErrEmptyPlan = errors.New("extraction plan is empty")
	// ErrDirectoryBusy reports another extraction writing to the same directory.
	ErrDirectoryBusy = errors.New("another extraction is using the output directory")
)

var progressPattern = regexp.MustCompile(`(?i)progress:\s*(\d{1,3})%`)

// Status classifies a finished extraction.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusWarnings  Status = "warnings"
	StatusPartial   Status = "partial"
	StatusFailed    Status = "failed"
)

// OK reports whether every planned file was produced.
func (s Status) OK() bool {
	return s == StatusSucceeded || s == StatusWarnings
}

// Update is one line of tool output. Percent is set when the line reports
// progress.
type Update struct {
	Line        string
	Percent     int
	HasProgress bool
}

// Outcome reports what happened to one planned entry.
type Outcome struct {
	Entry
	Written bool
	Size    int64
}

// BytesWritten sums the sizes of the written destinations.
func (r *Result) BytesWritten() int64 {
	var total int64
	for _, outcome := range r.Outcomes {
		if outcome.Written {
			total += outcome.Size
		}
	}
	return total
}

// HumanSize renders the written size, or "-" when nothing was written.
func (o Outcome) HumanSize() string {
	if !o.Written {
		return "-"
	}
	return humanize.IBytes(uint64(max(o.Size, 0)))
}

// Result describes a finished extraction.
type Result struct {
	Status   Status
	ExitCode int
	Err      error
	Outcomes []Outcome
	Output   []string
	Elapsed  time.Duration
}

// Missing returns the entries whose destination was not written.
func (r *Result) Missing() []Entry {
	var missing []Entry
	for _, outcome := range r.Outcomes {
		if !outcome.Written {
			missing = append(missing, outcome.Entry)
		}
	}
	return missing
}

// Streamer runs a binary and forwards its output line by line.
type Streamer interface {
	Stream(ctx context.Context, binary string, args []string, onLine func(string)) error
}

// Extractor runs mkvextract.
type Extractor struct {
	binary  string
	runner  Streamer
	timeout time.Duration
	logger  *slog.Logger
}

// NewExtractor constructs an Extractor. A zero timeout disables the deadline.
func NewExtractor(binary string, runner Streamer, timeout time.Duration, logger *slog.Logger) (*Extractor, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("mkvextract binary required")
	}
	if runner == nil {
		return nil, errors.New("mkvextract runner required")
	}
	return &Extractor{
		binary:  binary,
		runner:  runner,
		timeout: timeout,
		logger:  logging.NewComponentLogger(logger, "extract"),
	}, nil
}

// Run extracts plan from input. The returned error covers failures to start
// (empty plan, output directory, lock); tool failures are reported through
// Result.Status and Result.Err. onUpdate may be nil and is never called
// after Run returns.
func (e *Extractor) Run(ctx context.Context, input string, plan Plan, onUpdate func(Update)) (*Result, error) {
	if plan.Empty() {
		return nil, ErrEmptyPlan
	}
	logger := logging.WithContext(ctx, e.logger)
	if err := os.MkdirAll(plan.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(LockPath(plan.Dir))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire extraction lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryBusy, plan.Dir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release extraction lock", logging.Error(err))
		}
	}()

	runCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	// Outputs from an earlier run would otherwise count as written.
	for _, entry := range plan.Entries {
		if err := os.Remove(entry.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("remove stale output %s: %w", entry.Path, err)
		}
	}

	logger.Info("extraction started",
		logging.String("input", input),
		logging.String("output_dir", plan.Dir),
		logging.Int("tracks", len(plan.Entries)),
	)

	tail := make([]string, 0, outputTailLines)
	sampler := logging.NewProgressSampler(progressLogBucket)
	started := time.Now()
	runErr := e.runner.Stream(runCtx, e.binary, plan.Args(input), func(line string) {
		if len(tail) == outputTailLines {
			tail = append(tail[:0], tail[1:]...)
		}
		tail = append(tail, line)
		update := Update{Line: line}
		if m := progressPattern.FindStringSubmatch(line); m != nil {
			if pct, err := strconv.Atoi(m[1]); err == nil && pct <= 100 {
				update.Percent = pct
				update.HasProgress = true
			}
		}
		switch {
		case !update.HasProgress:
			logger.Debug("mkvextract output", logging.String("line", line))
		case sampler.ShouldLog(float64(update.Percent), "extract"):
			logger.Debug("extraction progress", logging.Int("percent", update.Percent))
		}
		if onUpdate != nil {
			onUpdate(update)
		}
	})

	result := &Result{
		ExitCode: 0,
		Err:      runErr,
		Output:   tail,
		Elapsed:  time.Since(started),
		Outcomes: collectOutcomes(plan.Entries),
	}
	if runErr != nil {
		result.ExitCode = probe.ExitCode(runErr)
	}
	result.Status = classify(result)

	attrs := []logging.Attr{
		logging.String("status", string(result.Status)),
		logging.Int("exit_code", result.ExitCode),
		logging.Duration("elapsed", result.Elapsed),
		logging.Int("missing", len(result.Missing())),
		logging.Int64("bytes_written", result.BytesWritten()),
	}
	switch result.Status {
	case StatusSucceeded:
		logger.Info("extraction finished", logging.Args(attrs...)...)
	case StatusWarnings, StatusPartial:
		logging.WarnWithContext(logger, "extraction finished with problems", "extract_incomplete", attrs...)
	default:
		attrs = append(attrs, logging.Error(runErr))
		logging.ErrorWithContext(logger, "extraction failed", "extract_failed", attrs...)
	}
	return result, nil
}

func collectOutcomes(entries []Entry) []Outcome {
	outcomes := make([]Outcome, 0, len(entries))
	for _, entry := range entries {
		outcome := Outcome{Entry: entry}
		if info, err := os.Stat(entry.Path); err == nil && info.Mode().IsRegular() {
			outcome.Written = true
			outcome.Size = info.Size()
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// classify maps exit status and written outputs onto a Status. mkvextract
// exits 1 when it finished with warnings and 2 on errors.
func classify(r *Result) Status {
	written := 0
	for _, outcome := range r.Outcomes {
		if outcome.Written {
			written++
		}
	}
	switch {
	case r.Err != nil && r.ExitCode != 1:
		return StatusFailed
	case written < len(r.Outcomes):
		if written == 0 {
			return StatusFailed
		}
		return StatusPartial
	case r.ExitCode == 1:
		return StatusWarnings
	default:
		return StatusSucceeded
	}
}
