package probe

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"
)

const (
	// maxLineBytes caps a single streamed output line.
	maxLineBytes    = 1024 * 1024
	streamWaitDelay = 5 * time.Second
)

// Executor abstracts command execution for testability.
type Executor interface {
	// Output runs binary to completion and returns its stdout and stderr.
	Output(ctx context.Context, binary string, args []string) ([]byte, []byte, error)
	// Stream runs binary and forwards every stdout/stderr line to onLine.
	Stream(ctx context.Context, binary string, args []string, onLine func(string)) error
}

type commandExecutor struct{}

func (commandExecutor) Output(ctx context.Context, binary string, args []string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.WaitDelay = streamWaitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

func (commandExecutor) Stream(ctx context.Context, binary string, args []string, onLine func(string)) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd := exec.CommandContext(runCtx, binary, args...) //nolint:gosec
	// Descendants that inherit the output pipes must not hold Wait open.
	cmd.WaitDelay = streamWaitDelay
	stdoutR, stdoutW := io.Pipe()
	stderrR, stderrW := io.Pipe()
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW
	if err := cmd.Start(); err != nil {
		return err
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once
	var mu sync.Mutex

	forward := func(line string) {
		if onLine == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		onLine(line)
	}

	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		scanner.Split(scanLinesOrCarriage)
		for scanner.Scan() {
			forward(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
			cancel()
		}
		// The writer side blocks until every byte is consumed.
		_, _ = io.Copy(io.Discard, r)
	}

	wg.Add(2)
	go scan(stdoutR)
	go scan(stderrR)

	waitErr := cmd.Wait()
	_ = stdoutW.Close()
	_ = stderrW.Close()
	wg.Wait()

	if scanErr != nil {
		if errors.Is(scanErr, bufio.ErrTooLong) {
			return fmt.Errorf("%w: exceeds %d bytes", ErrOutputOverflow, maxLineBytes)
		}
		return fmt.Errorf("scan output: %w", scanErr)
	}
	return waitErr
}

// scanLinesOrCarriage splits on '\n' or '\r' so progress lines that redraw in
// place still arrive one update at a time.
func scanLinesOrCarriage(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
