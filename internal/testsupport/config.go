package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"mediadesk/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The single default media root is created on disk; options run afterwards.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Roots = []string{filepath.Join(base, "media")}
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Server.Port = 0
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	builder.mkdir(cfgVal.Paths.Roots[0])

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithRoots replaces the media roots with the named directories under the
// test base directory. No names means no roots at all.
func WithRoots(names ...string) ConfigOption {
	return func(b *configBuilder) {
		roots := make([]string, 0, len(names))
		for _, name := range names {
			root := filepath.Join(b.baseDir, name)
			b.mkdir(root)
			roots = append(roots, root)
		}
		b.cfg.Paths.Roots = roots
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, ffmpeg and ffprobe are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe"}
		}
		binDir := b.binDir()
		for _, name := range names {
			b.writeScript(filepath.Join(binDir, name), "exit 0\n")
		}
		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}

// MediaRoot returns the first configured media root.
func MediaRoot(cfg *config.Config) string {
	if len(cfg.Paths.Roots) == 0 {
		return ""
	}
	return cfg.Paths.Roots[0]
}

func (b *configBuilder) binDir() string {
	dir := filepath.Join(b.baseDir, "bin")
	b.mkdir(dir)
	return dir
}

func (b *configBuilder) mkdir(dir string) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		b.t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func (b *configBuilder) writeScript(path, body string) {
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		b.t.Fatalf("write stub %s: %v", path, err)
	}
}
