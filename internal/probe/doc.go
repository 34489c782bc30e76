// Package probe runs the external media tools Mozaik wraps and classifies
// their failures.
//
// Runner.Capture is the request/response path used by the metadata probes:
// it waits for the child process to exit, hands back the full stdout buffer,
// and maps launch failures, empty output, invalid UTF-8, timeouts, and
// non-zero exit codes onto the sentinels in errors.go. Runner.Stream is the
// extraction path: it forwards merged stdout/stderr line by line and only
// returns after every reader goroutine has finished, so callbacks never race
// the caller's completion handling.
//
// Command execution sits behind the Executor interface so tests can script
// tool output without real binaries.
package probe
