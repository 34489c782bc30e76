package deps

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Requirement defines an external dependency Mozaik relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	// VersionArgs, when set, are passed to the binary to read its version.
	VersionArgs []string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Path        string
	Version     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// VersionReader runs a binary and returns its stdout.
type VersionReader interface {
	Capture(ctx context.Context, binary string, args ...string) ([]byte, error)
}

// Checker resolves requirements against the system.
type Checker struct {
	LookPath func(string) (string, error)
	Versions VersionReader
}

// CheckBinaries evaluates the provided requirements with exec.LookPath and
// no version probing.
func CheckBinaries(requirements []Requirement) []Status {
	return Checker{}.Check(context.Background(), requirements)
}

// Check evaluates requirements and reports availability. Version lookups are
// best effort: a binary that resolves but fails to report a version is still
// available.
func (c Checker) Check(ctx context.Context, requirements []Requirement) []Status {
	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := lookPath(cmd)
		if err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = resolved
		if c.Versions != nil && len(req.VersionArgs) > 0 {
			if out, err := c.Versions.Capture(ctx, cmd, req.VersionArgs...); len(out) > 0 {
				status.Version = ParseVersion(string(out))
			} else if err != nil {
				status.Detail = "version unavailable"
			}
		}
		results = append(results, status)
	}
	return results
}

var versionPattern = regexp.MustCompile(`\bv?(\d+(?:\.\d+)+)\b`)

// ParseVersion returns the first dotted version number in out, e.g. "82.0"
// from "mkvmerge v82.0 ('I'm The President') 64-bit". Output without a
// version number yields its first non-empty line.
func ParseVersion(out string) string {
	if m := versionPattern.FindStringSubmatch(out); m != nil {
		return m[1]
	}
	for line := range strings.Lines(out) {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// Unavailable returns the required dependencies that are missing.
func Unavailable(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
