package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"mediadesk/internal/api"
	"mediadesk/internal/services"
	"mediadesk/internal/testsupport"
)

func TestBrowseCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.root, "movie.mkv"), 12)
	testsupport.WriteFile(t, filepath.Join(env.root, "movie.en.srt"), 3)
	if err := os.Mkdir(filepath.Join(env.root, "extras"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	out, _, err := runCLI(t, []string{"browse"}, env.configPath)
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	requireContains(t, out, env.root)
	requireContains(t, out, "movie.mkv")
	requireContains(t, out, "subtitle")
	requireContains(t, out, "extras")

	out, _, err = runCLI(t, []string{"browse", "--json", env.root}, env.configPath)
	if err != nil {
		t.Fatalf("browse --json: %v", err)
	}
	var resp api.BrowseResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode browse json: %v\n%s", err, out)
	}
	if len(resp.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %+v", resp.Entries)
	}
}

func TestBrowseCommandOutsideRoots(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"browse", filepath.Join(env.root, "..")}, env.configPath)
	if !errors.Is(err, services.ErrOutOfBounds) {
		t.Fatalf("expected out of bounds error, got %v", err)
	}
}

func TestProbeCommand(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.StubFFprobe(testsupport.ProbeJSON("subrip", "eng")))
	input := filepath.Join(env.root, "movie.mkv")
	testsupport.WriteFile(t, input, 4)

	out, _, err := runCLI(t, []string{"probe", input}, env.configPath)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	var resp api.ProbeResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode probe json: %v\n%s", err, out)
	}
	if resp.Meta.Height != 1080 {
		t.Fatalf("expected height 1080, got %d", resp.Meta.Height)
	}
	if len(resp.Meta.Subtitles) != 1 || resp.Meta.Subtitles[0].Language != "eng" {
		t.Fatalf("unexpected subtitles: %+v", resp.Meta.Subtitles)
	}
}

func TestProbeCommandRaw(t *testing.T) {
	payload := testsupport.ProbeJSON("subrip", "eng")
	env := setupCLITestEnv(t, testsupport.StubFFprobe(payload))
	input := filepath.Join(env.root, "movie.mkv")
	testsupport.WriteFile(t, input, 4)

	out, _, err := runCLI(t, []string{"probe", "--raw", input}, env.configPath)
	if err != nil {
		t.Fatalf("probe --raw: %v", err)
	}
	if strings.TrimSpace(out) != strings.TrimSpace(payload) {
		t.Fatalf("expected unmodified ffprobe output, got:\n%s", out)
	}
}

func TestProbeCommandFailureExitsNonZero(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.StubFailingFFprobe("moov atom not found"))
	input := filepath.Join(env.root, "broken.mp4")
	testsupport.WriteFile(t, input, 4)

	out, _, err := runCLI(t, []string{"probe", input}, env.configPath)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected tool error, got %v", err)
	}
	requireContains(t, out, "moov atom not found")
}

func TestProbeCommandRejectsDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"probe", env.root}, env.configPath)
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.StubFFprobe("{}"), testsupport.StubFFmpeg())

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, "FFprobe")
	requireContains(t, out, "yes")
	requireContains(t, out, env.root)
}

func TestCheckCommandMissingTool(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Tools.FFmpeg = filepath.Join(testsupport.BaseDir(env.cfg), "missing", "ffmpeg")
	env.cfg.Tools.FFprobe = env.cfg.Tools.FFmpeg
	writeTestConfig(t, env.configPath, env.cfg)

	out, _, err := runCLI(t, []string{"check", "--json"}, env.configPath)
	if err == nil {
		t.Fatal("expected check to fail when tools are missing")
	}
	requireContains(t, out, `"available": false`)
}

func TestServeRefusesSecondInstance(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.MkdirAll(env.cfg.Paths.StateDir, 0o755); err != nil {
		t.Fatalf("mkdir state: %v", err)
	}
	lock := flock.New(env.cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil || !ok {
		t.Fatalf("take lock: ok=%v err=%v", ok, err)
	}
	defer lock.Unlock() //nolint:errcheck

	_, _, err = runCLI(t, []string{"serve"}, env.configPath)
	if err == nil {
		t.Fatal("expected serve to refuse while the lock is held")
	}
	requireContains(t, err.Error(), "already running")
}
