package toolexec

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediadesk/internal/services"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tool")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRunCaptureReturnsStdout(t *testing.T) {
	script := writeScript(t, "echo '{\"ok\":true}'\necho noise 1>&2\n")
	out, err := New(nil).RunCapture(context.Background(), script, nil)
	if err != nil {
		t.Fatalf("RunCapture: %v", err)
	}
	if strings.TrimSpace(string(out)) != `{"ok":true}` {
		t.Fatalf("unexpected stdout %q", out)
	}
}

func TestRunCaptureFailureCarriesStderr(t *testing.T) {
	script := writeScript(t, "echo 'bad input' 1>&2\nexit 3\n")
	_, err := New(nil).RunCapture(context.Background(), script, nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected *ToolError, got %T", err)
	}
	if toolErr.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", toolErr.ExitCode)
	}
	if !strings.Contains(err.Error(), "bad input") {
		t.Fatalf("expected stderr in message, got %q", err.Error())
	}
}

func TestRunCaptureMissingBinary(t *testing.T) {
	_, err := New(nil).RunCapture(context.Background(), filepath.Join(t.TempDir(), "missing"), nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if services.Kind(err) != "tool_execution" {
		t.Fatalf("unexpected kind %q", services.Kind(err))
	}
}

func TestRunCaptureClosesStdin(t *testing.T) {
	script := writeScript(t, "if read line; then echo got; else echo eof; fi\n")
	out, err := New(nil).RunCapture(context.Background(), script, nil)
	if err != nil {
		t.Fatalf("RunCapture: %v", err)
	}
	if strings.TrimSpace(string(out)) != "eof" {
		t.Fatalf("expected closed stdin, got %q", out)
	}
}

func TestRunStreamedAccumulatesStderr(t *testing.T) {
	script := writeScript(t, "echo first 1>&2\nprintf 'frame=1\\rframe=2\\n' 1>&2\necho stdout-ignored\n")
	out, err := New(nil).RunStreamed(context.Background(), script, []string{"-y"})
	if err != nil {
		t.Fatalf("RunStreamed: %v", err)
	}
	if !strings.Contains(out.Log, "first") || !strings.Contains(out.Log, "frame=2") {
		t.Fatalf("unexpected log %q", out.Log)
	}
	if strings.Contains(out.Log, "stdout-ignored") {
		t.Fatalf("stdout must not be part of the log: %q", out.Log)
	}
	if out.Truncated {
		t.Fatal("short log must not be truncated")
	}
}

func TestRunStreamedNonZeroExit(t *testing.T) {
	script := writeScript(t, "echo 'Invalid argument' 1>&2\nexit 1\n")
	_, err := New(nil).RunStreamed(context.Background(), script, nil)
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected *ToolError, got %v", err)
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatal("ToolError must match ErrExternalTool")
	}
	if toolErr.ExitCode != 1 || !strings.Contains(toolErr.Log, "Invalid argument") {
		t.Fatalf("unexpected tool error %#v", toolErr)
	}
}

func TestRunStreamedTruncatesLongLogs(t *testing.T) {
	script := writeScript(t, "i=0\nwhile [ $i -lt 2000 ]; do echo \"line-$i-padding\" 1>&2; i=$((i+1)); done\necho END 1>&2\n")
	out, err := New(nil).RunStreamed(context.Background(), script, nil)
	if err != nil {
		t.Fatalf("RunStreamed: %v", err)
	}
	if !out.Truncated {
		t.Fatal("expected truncation")
	}
	if len([]rune(out.Log)) != MaxLogChars {
		t.Fatalf("expected %d chars, got %d", MaxLogChars, len([]rune(out.Log)))
	}
	if !strings.HasSuffix(strings.TrimSpace(out.Log), "END") {
		t.Fatal("expected the tail of the log to be kept")
	}
}

func TestTailLog(t *testing.T) {
	if got, truncated := TailLog("abc", 5); got != "abc" || truncated {
		t.Fatalf("unexpected %q %v", got, truncated)
	}
	if got, truncated := TailLog("abcdef", 3); got != "def" || !truncated {
		t.Fatalf("unexpected %q %v", got, truncated)
	}
	if got, truncated := TailLog("héllo", 4); got != "éllo" || !truncated {
		t.Fatalf("unexpected %q %v", got, truncated)
	}
}
