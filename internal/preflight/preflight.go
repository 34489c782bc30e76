package preflight

import (
	"context"

	"mozaik/internal/config"
	"mozaik/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Report bundles the binary and filesystem checks.
type Report struct {
	Binaries []deps.Status
	Checks   []Result
}

// OK reports whether every required binary is present and every check passed.
func (r Report) OK() bool {
	if len(deps.Unavailable(r.Binaries)) > 0 {
		return false
	}
	for _, check := range r.Checks {
		if !check.Passed {
			return false
		}
	}
	return true
}

// RunAll executes all preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, checker deps.Checker) Report {
	if cfg == nil {
		return Report{}
	}
	report := Report{Binaries: CheckSystemDeps(ctx, cfg, checker)}

	dir, err := cfg.OutputDir()
	if err != nil {
		report.Checks = append(report.Checks, Result{Name: "Output directory", Detail: err.Error()})
	} else {
		report.Checks = append(report.Checks, CheckOutputDirectory(dir))
	}
	return report
}
