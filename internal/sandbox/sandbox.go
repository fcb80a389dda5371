package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mediadesk/internal/services"
)

// Sandbox validates paths against an immutable list of roots.
type Sandbox struct {
	roots []string
}

// New constructs a sandbox over the provided roots. Roots are cleaned and made
// absolute; blank entries are ignored. The slice is copied so callers cannot
// mutate the allow-list after construction.
func New(roots []string) *Sandbox {
	cleaned := make([]string, 0, len(roots))
	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			continue
		}
		cleaned = append(cleaned, filepath.Clean(abs))
	}
	return &Sandbox{roots: cleaned}
}

// Roots returns a copy of the configured roots.
func (s *Sandbox) Roots() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.roots...)
}

// Resolve turns a raw path into an absolute path inside one of the roots.
// An empty raw path resolves to the first root.
func (s *Sandbox) Resolve(raw string) (string, error) {
	if s == nil || len(s.roots) == 0 {
		return "", services.Wrap(services.ErrConfiguration, "sandbox", "resolve", "no media roots configured", nil)
	}
	if strings.TrimSpace(raw) == "" {
		return s.roots[0], nil
	}
	if strings.ContainsRune(raw, 0) {
		return "", services.Wrap(services.ErrOutOfBounds, "sandbox", "resolve", "path contains NUL byte", nil)
	}
	candidate, err := filepath.Abs(raw)
	if err != nil {
		return "", services.Wrap(services.ErrOutOfBounds, "sandbox", "resolve", fmt.Sprintf("cannot normalize %q", raw), err)
	}
	candidate = filepath.Clean(candidate)
	for _, root := range s.roots {
		if Within(root, candidate) {
			return candidate, nil
		}
	}
	return "", services.Wrap(services.ErrOutOfBounds, "sandbox", "resolve", fmt.Sprintf("%q is outside the allowed roots", raw), nil)
}

// ResolveAll resolves each raw path in order, failing on the first violation.
func (s *Sandbox) ResolveAll(raws ...string) ([]string, error) {
	resolved := make([]string, 0, len(raws))
	for _, raw := range raws {
		path, err := s.Resolve(raw)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, path)
	}
	return resolved, nil
}

// Within reports whether candidate equals root or lies strictly beneath it.
// Both arguments must already be absolute and cleaned.
func Within(root, candidate string) bool {
	if candidate == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(os.PathSeparator)) {
		prefix += string(os.PathSeparator)
	}
	return strings.HasPrefix(candidate, prefix)
}
