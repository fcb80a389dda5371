package toolexec

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"mediadesk/internal/logging"
	"mediadesk/internal/services"
)

// MaxLogChars bounds the diagnostic text returned from streamed runs.
const MaxLogChars = 8000

const maxLineBytes = 1024 * 1024

// Output is the result of a successful streamed run.
type Output struct {
	Log       string
	Truncated bool
}

// ToolError reports a spawn failure or non-zero exit. It matches
// services.ErrExternalTool under errors.Is.
type ToolError struct {
	Binary    string
	ExitCode  int
	Log       string
	Truncated bool
	Err       error
}

func (e *ToolError) Error() string {
	name := filepath.Base(e.Binary)
	var b strings.Builder
	b.WriteString(services.ErrExternalTool.Error())
	b.WriteString(": ")
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, "%s exited with code %d", name, e.ExitCode)
	} else {
		fmt.Fprintf(&b, "%s failed to run", name)
		if e.Err != nil {
			b.WriteString(": ")
			b.WriteString(e.Err.Error())
		}
	}
	if log := strings.TrimSpace(e.Log); log != "" {
		b.WriteString(": ")
		b.WriteString(log)
	}
	return b.String()
}

func (e *ToolError) Unwrap() error { return e.Err }

func (e *ToolError) Is(target error) bool { return target == services.ErrExternalTool }

// Runner executes external tools.
type Runner struct {
	Logger *slog.Logger
}

// New returns a runner logging under the toolexec component.
func New(logger *slog.Logger) *Runner {
	return &Runner{Logger: logging.NewComponentLogger(logger, "toolexec")}
}

func (r *Runner) logger() *slog.Logger {
	if r == nil || r.Logger == nil {
		return logging.NewNop()
	}
	return r.Logger
}

// RunCapture runs binary and returns everything it wrote to standard output.
func (r *Runner) RunCapture(ctx context.Context, binary string, args []string) ([]byte, error) {
	logger := r.logger()
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	logger.Debug("tool finished",
		logging.String("binary", binary),
		logging.Strings("args", args),
		logging.Duration("elapsed", time.Since(start)),
		logging.Bool("success", err == nil),
	)
	if err != nil {
		tail, truncated := TailLog(strings.TrimSpace(stderr.String()), MaxLogChars)
		return nil, &ToolError{
			Binary:    binary,
			ExitCode:  exitCode(err),
			Log:       tail,
			Truncated: truncated,
			Err:       err,
		}
	}
	return stdout.Bytes(), nil
}

// RunStreamed runs binary, consuming its standard error incrementally. The
// returned log is the tail of everything the tool wrote to standard error.
func (r *Runner) RunStreamed(ctx context.Context, binary string, args []string) (Output, error) {
	logger := r.logger()
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Output{}, &ToolError{Binary: binary, ExitCode: -1, Err: fmt.Errorf("stderr pipe: %w", err)}
	}

	logger.Info("starting tool",
		logging.String("binary", binary),
		logging.Strings("args", args),
	)
	start := time.Now()
	if err := cmd.Start(); err != nil {
		return Output{}, &ToolError{Binary: binary, ExitCode: -1, Err: err}
	}

	var accumulated bytes.Buffer
	tee := io.TeeReader(stderr, &accumulated)
	scanner := bufio.NewScanner(tee)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	scanner.Split(scanLinesOrCarriageReturns)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		logger.Debug("tool output", logging.String("binary", filepath.Base(binary)), logging.String("line", line))
	}
	if scanErr := scanner.Err(); scanErr != nil {
		logger.Warn("tool output scan stopped", logging.Error(scanErr))
		_, _ = io.Copy(io.Discard, tee)
	}

	waitErr := cmd.Wait()
	log, truncated := TailLog(accumulated.String(), MaxLogChars)
	elapsed := time.Since(start)
	if waitErr != nil {
		logger.Warn("tool failed",
			logging.String("binary", binary),
			logging.Int("exit_code", exitCode(waitErr)),
			logging.Duration("elapsed", elapsed),
		)
		return Output{}, &ToolError{
			Binary:    binary,
			ExitCode:  exitCode(waitErr),
			Log:       log,
			Truncated: truncated,
			Err:       waitErr,
		}
	}
	logger.Info("tool completed",
		logging.String("binary", binary),
		logging.Duration("elapsed", elapsed),
	)
	return Output{Log: log, Truncated: truncated}, nil
}

// TailLog keeps the last limit characters of log. The boolean reports
// whether anything was dropped.
func TailLog(log string, limit int) (string, bool) {
	if limit <= 0 {
		return "", log != ""
	}
	runes := []rune(log)
	if len(runes) <= limit {
		return log, false
	}
	return string(runes[len(runes)-limit:]), true
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// scanLinesOrCarriageReturns splits on \n or \r so ffmpeg progress updates,
// which rewrite a single line with \r, arrive as separate tokens.
func scanLinesOrCarriageReturns(data []byte, atEOF bool) (int, []byte, error) {
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
