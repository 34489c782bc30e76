package probe

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"mozaik/internal/logging"
)

// outputTailLines bounds how much streamed output an ExitError carries.
const outputTailLines = 20

// Option configures a Runner.
type Option func(*Runner)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(r *Runner) {
		if exec != nil {
			r.exec = exec
		}
	}
}

// WithLookPath replaces binary resolution (primarily for tests).
func WithLookPath(fn func(string) (string, error)) Option {
	return func(r *Runner) {
		if fn != nil {
			r.lookPath = fn
		}
	}
}

// WithLogger sets the runner's logging destination.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logging.NewComponentLogger(logger, "probe")
	}
}

// Runner executes external tools with timeout and exit-status handling.
type Runner struct {
	exec     Executor
	lookPath func(string) (string, error)
	timeout  time.Duration
	logger   *slog.Logger
}

// NewRunner constructs a Runner. A zero timeout disables the Capture deadline.
func NewRunner(timeout time.Duration, opts ...Option) *Runner {
	r := &Runner{
		exec:     commandExecutor{},
		lookPath: exec.LookPath,
		timeout:  timeout,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the absolute path of binary or ErrExecutableNotFound.
func (r *Runner) Resolve(binary string) (string, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return "", fmt.Errorf("%w: no binary configured", ErrExecutableNotFound)
	}
	resolved, err := r.lookPath(binary)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, binary)
	}
	return resolved, nil
}

// Capture runs binary to completion and returns its full stdout.
//
// When the process exits non-zero the captured stdout is still returned
// alongside an *ExitError so callers can accept tools that report warnings
// through exit status.
func (r *Runner) Capture(ctx context.Context, binary string, args ...string) ([]byte, error) {
	resolved, err := r.Resolve(binary)
	if err != nil {
		return nil, err
	}

	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	started := time.Now()
	r.logger.Debug("running probe",
		logging.String("binary", resolved),
		logging.String("args", strings.Join(args, " ")),
	)
	stdout, stderr, runErr := r.exec.Output(runCtx, resolved, args)
	r.logger.Debug("probe finished",
		logging.String("binary", resolved),
		logging.Duration("elapsed", time.Since(started)),
		logging.Int("stdout_bytes", len(stdout)),
	)

	if runErr != nil {
		classified := classify(runCtx, binary, runErr, string(stderr))
		var exitErr *ExitError
		if !errors.As(classified, &exitErr) {
			return nil, classified
		}
		if len(stdout) == 0 {
			return nil, classified
		}
		if !utf8.Valid(stdout) {
			return nil, fmt.Errorf("%s: %w", binary, ErrEncoding)
		}
		return stdout, classified
	}

	if len(stdout) == 0 {
		return nil, fmt.Errorf("%s: %w", binary, ErrEmptyOutput)
	}
	if !utf8.Valid(stdout) {
		return nil, fmt.Errorf("%s: %w", binary, ErrEncoding)
	}
	return stdout, nil
}

// Stream runs binary and forwards each non-empty output line to onLine.
// The caller's context bounds the run; Stream itself applies no deadline.
// Stream returns only after the last callback has completed.
func (r *Runner) Stream(ctx context.Context, binary string, args []string, onLine func(string)) error {
	resolved, err := r.Resolve(binary)
	if err != nil {
		return err
	}

	tail := make([]string, 0, outputTailLines)
	forward := func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}
		if len(tail) == outputTailLines {
			tail = append(tail[:0], tail[1:]...)
		}
		tail = append(tail, line)
		if onLine != nil {
			onLine(line)
		}
	}

	r.logger.Debug("streaming command",
		logging.String("binary", resolved),
		logging.Int("arg_count", len(args)),
	)
	if err := r.exec.Stream(ctx, resolved, args, forward); err != nil {
		return classify(ctx, binary, err, strings.Join(tail, "\n"))
	}
	return nil
}

type exitCoder interface {
	ExitCode() int
}

func classify(ctx context.Context, binary string, err error, output string) error {
	if errors.Is(err, ErrOutputOverflow) {
		return fmt.Errorf("%s: %w", binary, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return fmt.Errorf("%s: %w", binary, ErrTimeout)
		}
		return fmt.Errorf("%s: %w", binary, ctxErr)
	}
	var coder exitCoder
	if errors.As(err, &coder) && coder.ExitCode() >= 0 {
		return &ExitError{Binary: binary, Code: coder.ExitCode(), Output: output}
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrExecutableNotFound, binary)
	}
	return fmt.Errorf("%w: %s: %w", ErrLaunch, binary, err)
}
