package probe

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExecutableNotFound reports that the configured binary could not be resolved.
	ErrExecutableNotFound = errors.New("executable not found")
	// ErrLaunch reports that the process could not be started.
	ErrLaunch = errors.New("process launch failed")
	// ErrEmptyOutput reports that the process exited without writing to stdout.
	ErrEmptyOutput = errors.New("empty output")
	// ErrEncoding reports that stdout was not valid UTF-8 text.
	ErrEncoding = errors.New("output is not valid UTF-8")
	// ErrTimeout reports that the process exceeded its deadline and was killed.
	ErrTimeout = errors.New("timed out")
	// ErrOutputOverflow reports a streamed output line longer than the scanner limit.
	ErrOutputOverflow = errors.New("output line too long")
)

// ExitError describes a process that ran but exited with a non-zero status.
type ExitError struct {
	Binary string
	Code   int
	Output string
}

func (e *ExitError) Error() string {
	detail := strings.TrimSpace(e.Output)
	if detail == "" {
		return fmt.Sprintf("%s exited with status %d", e.Binary, e.Code)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Binary, e.Code, detail)
}

// ExitCode returns the exit status carried by err, or -1 when err is not an ExitError.
func ExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}
