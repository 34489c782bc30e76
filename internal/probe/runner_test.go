package probe_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"mozaik/internal/probe"
)

type fakeExitError struct{ code int }

func (e fakeExitError) Error() string { return "exit status" }
func (e fakeExitError) ExitCode() int { return e.code }

type fakeExecutor struct {
	stdout []byte
	stderr []byte
	err    error
	lines  []string
	block  bool

	gotBinary string
	gotArgs   []string
}

func (f *fakeExecutor) Output(ctx context.Context, binary string, args []string) ([]byte, []byte, error) {
	f.gotBinary = binary
	f.gotArgs = append([]string(nil), args...)
	if f.block {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}
	return f.stdout, f.stderr, f.err
}

func (f *fakeExecutor) Stream(ctx context.Context, binary string, args []string, onLine func(string)) error {
	f.gotBinary = binary
	f.gotArgs = append([]string(nil), args...)
	for _, line := range f.lines {
		onLine(line)
	}
	return f.err
}

func resolveAll(name string) (string, error) { return "/usr/bin/" + name, nil }

func newRunner(exec *fakeExecutor, timeout time.Duration) *probe.Runner {
	return probe.NewRunner(timeout, probe.WithExecutor(exec), probe.WithLookPath(resolveAll))
}

func TestCaptureReturnsStdout(t *testing.T) {
	exec := &fakeExecutor{stdout: []byte(`{"media":{}}`)}
	out, err := newRunner(exec, time.Second).Capture(context.Background(), "mediainfo", "--Output=JSON", "/tmp/a.mkv")
	if err != nil {
		t.Fatalf("Capture returned error: %v", err)
	}
	if string(out) != `{"media":{}}` {
		t.Fatalf("unexpected output %q", out)
	}
	if exec.gotBinary != "/usr/bin/mediainfo" {
		t.Fatalf("expected resolved binary, got %q", exec.gotBinary)
	}
	if strings.Join(exec.gotArgs, " ") != "--Output=JSON /tmp/a.mkv" {
		t.Fatalf("unexpected args %v", exec.gotArgs)
	}
}

func TestCaptureClassifiesFailures(t *testing.T) {
	tests := []struct {
		name string
		exec *fakeExecutor
		want error
	}{
		{"empty output", &fakeExecutor{}, probe.ErrEmptyOutput},
		{"invalid utf8", &fakeExecutor{stdout: []byte{0xff, 0xfe, 0xfd}}, probe.ErrEncoding},
		{"launch failure", &fakeExecutor{err: errors.New("permission denied")}, probe.ErrLaunch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newRunner(tt.exec, time.Second).Capture(context.Background(), "mediainfo")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCaptureMissingBinary(t *testing.T) {
	runner := probe.NewRunner(time.Second,
		probe.WithExecutor(&fakeExecutor{}),
		probe.WithLookPath(func(string) (string, error) { return "", errors.New("not found") }),
	)
	if _, err := runner.Capture(context.Background(), "mkvmerge", "-J"); !errors.Is(err, probe.ErrExecutableNotFound) {
		t.Fatalf("expected ErrExecutableNotFound, got %v", err)
	}
	if _, err := runner.Resolve("  "); !errors.Is(err, probe.ErrExecutableNotFound) {
		t.Fatalf("expected ErrExecutableNotFound for blank binary, got %v", err)
	}
}

func TestCaptureNonZeroExitKeepsStdout(t *testing.T) {
	exec := &fakeExecutor{
		stdout: []byte(`{"tracks":[]}`),
		stderr: []byte("Warning: something odd"),
		err:    fakeExitError{code: 1},
	}
	out, err := newRunner(exec, time.Second).Capture(context.Background(), "mkvmerge", "-J", "a.mkv")
	if string(out) != `{"tracks":[]}` {
		t.Fatalf("expected stdout to survive a non-zero exit, got %q", out)
	}
	var exitErr *probe.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.Code != 1 || !strings.Contains(exitErr.Output, "something odd") {
		t.Fatalf("unexpected exit error %+v", exitErr)
	}
	if probe.ExitCode(err) != 1 {
		t.Fatalf("ExitCode = %d", probe.ExitCode(err))
	}
}

func TestCaptureNonZeroExitWithoutStdout(t *testing.T) {
	exec := &fakeExecutor{stderr: []byte("boom"), err: fakeExitError{code: 2}}
	out, err := newRunner(exec, time.Second).Capture(context.Background(), "mkvmerge")
	if out != nil {
		t.Fatalf("expected no output, got %q", out)
	}
	if probe.ExitCode(err) != 2 {
		t.Fatalf("expected exit code 2, got %v", err)
	}
	if probe.ExitCode(errors.New("other")) != -1 {
		t.Fatal("ExitCode should be -1 for foreign errors")
	}
}

func TestCaptureTimeout(t *testing.T) {
	exec := &fakeExecutor{block: true}
	_, err := newRunner(exec, 10*time.Millisecond).Capture(context.Background(), "mediainfo")
	if !errors.Is(err, probe.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestStreamForwardsTrimmedLines(t *testing.T) {
	exec := &fakeExecutor{lines: []string{"Extracting track 1", "  ", "Progress: 50%  ", "Progress: 100%"}}
	var got []string
	err := newRunner(exec, 0).Stream(context.Background(), "mkvextract", []string{"tracks", "in.mkv", "1:/out/a"}, func(line string) {
		got = append(got, line)
	})
	if err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}
	want := []string{"Extracting track 1", "Progress: 50%", "Progress: 100%"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected lines %q", got)
	}
}

func TestStreamExitErrorCarriesTail(t *testing.T) {
	lines := make([]string, 0, 30)
	for i := range 30 {
		lines = append(lines, "line "+string(rune('a'+i%26)))
	}
	lines = append(lines, "Error: no space left")
	exec := &fakeExecutor{lines: lines, err: fakeExitError{code: 2}}
	err := newRunner(exec, 0).Stream(context.Background(), "mkvextract", nil, nil)
	var exitErr *probe.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	tail := strings.Split(exitErr.Output, "\n")
	if len(tail) != 20 {
		t.Fatalf("expected 20 tail lines, got %d", len(tail))
	}
	if tail[len(tail)-1] != "Error: no space left" {
		t.Fatalf("unexpected last tail line %q", tail[len(tail)-1])
	}
}

func TestStreamCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &fakeExecutor{err: errors.New("signal: killed")}
	err := newRunner(exec, 0).Stream(ctx, "mkvextract", nil, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestStreamReportsOutputOverflow(t *testing.T) {
	exec := &fakeExecutor{err: fmt.Errorf("%w: exceeds 1048576 bytes", probe.ErrOutputOverflow)}
	err := newRunner(exec, 0).Stream(context.Background(), "mkvextract", nil, nil)
	if !errors.Is(err, probe.ErrOutputOverflow) {
		t.Fatalf("expected ErrOutputOverflow, got %v", err)
	}
	if errors.Is(err, probe.ErrLaunch) || errors.Is(err, probe.ErrTimeout) {
		t.Fatalf("overflow misclassified: %v", err)
	}
}
