package sandbox_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mediadesk/internal/sandbox"
	"mediadesk/internal/services"
)

func TestResolveWithoutRootsIsConfigError(t *testing.T) {
	for _, raw := range []string{"", "/", "/media", "relative/path", "../.."} {
		_, err := sandbox.New(nil).Resolve(raw)
		if !errors.Is(err, services.ErrConfiguration) {
			t.Fatalf("Resolve(%q) with no roots: expected configuration error, got %v", raw, err)
		}
	}
	var nilBox *sandbox.Sandbox
	if _, err := nilBox.Resolve("/media"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("nil sandbox: expected configuration error, got %v", err)
	}
	if _, err := sandbox.New([]string{"", "  "}).Resolve("/x"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("blank roots: expected configuration error, got %v", err)
	}
}

func TestResolveDefaultsToFirstRoot(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	box := sandbox.New([]string{first, second})

	got, err := box.Resolve("")
	if err != nil {
		t.Fatalf("Resolve empty: %v", err)
	}
	if got != first {
		t.Fatalf("expected first root %q, got %q", first, got)
	}
}

func TestResolveBoundary(t *testing.T) {
	root := filepath.Join(t.TempDir(), "media")
	other := t.TempDir()
	box := sandbox.New([]string{root, other})

	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{raw: root, want: root, ok: true},
		{raw: root + string(os.PathSeparator), want: root, ok: true},
		{raw: filepath.Join(root, "show", "ep1.mkv"), want: filepath.Join(root, "show", "ep1.mkv"), ok: true},
		{raw: root + "/show/../ep2.mkv", want: filepath.Join(root, "ep2.mkv"), ok: true},
		{raw: root + "/./a/./b", want: filepath.Join(root, "a", "b"), ok: true},
		{raw: filepath.Join(other, "x.srt"), want: filepath.Join(other, "x.srt"), ok: true},
		{raw: root + "/..", ok: false},
		{raw: root + "/../media-evil/a.mp4", ok: false},
		{raw: root + "-evil", ok: false},
		{raw: root + "evil/a.mkv", ok: false},
		{raw: filepath.Dir(root), ok: false},
		{raw: "/etc/passwd", ok: false},
		{raw: root + "/a\x00b", ok: false},
	}
	for _, tc := range cases {
		got, err := box.Resolve(tc.raw)
		if tc.ok {
			if err != nil {
				t.Fatalf("Resolve(%q): unexpected error %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tc.raw, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, services.ErrOutOfBounds) {
			t.Fatalf("Resolve(%q): expected out of bounds error, got %q, %v", tc.raw, got, err)
		}
	}
}

func TestResolveSiblingPrefixRejected(t *testing.T) {
	base := t.TempDir()
	box := sandbox.New([]string{filepath.Join(base, "a", "b")})
	if _, err := box.Resolve(filepath.Join(base, "a", "bb")); !errors.Is(err, services.ErrOutOfBounds) {
		t.Fatalf("expected sibling prefix to be rejected, got %v", err)
	}
	if _, err := box.Resolve(filepath.Join(base, "a", "bb", "c")); !errors.Is(err, services.ErrOutOfBounds) {
		t.Fatalf("expected sibling prefix child to be rejected, got %v", err)
	}
}

func TestResolveRelativePathUsesWorkingDirectory(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)
	box := sandbox.New([]string{root})

	got, err := box.Resolve("clips/a.mp4")
	if err != nil {
		t.Fatalf("Resolve relative: %v", err)
	}
	if got != filepath.Join(root, "clips", "a.mp4") {
		t.Fatalf("unexpected resolution %q", got)
	}
	if _, err := box.Resolve("../escape.mp4"); !errors.Is(err, services.ErrOutOfBounds) {
		t.Fatalf("expected relative escape to be rejected, got %v", err)
	}
}

func TestResolveAllStopsAtFirstViolation(t *testing.T) {
	root := t.TempDir()
	box := sandbox.New([]string{root})

	paths, err := box.ResolveAll(filepath.Join(root, "a"), filepath.Join(root, "b"))
	if err != nil || len(paths) != 2 {
		t.Fatalf("ResolveAll: %v %v", paths, err)
	}
	if _, err := box.ResolveAll(filepath.Join(root, "a"), "/outside"); !errors.Is(err, services.ErrOutOfBounds) {
		t.Fatalf("expected out of bounds error, got %v", err)
	}
}

func TestFilesystemRootAcceptsEverything(t *testing.T) {
	box := sandbox.New([]string{string(os.PathSeparator)})
	if _, err := box.Resolve("/srv/media/a.mkv"); err != nil {
		t.Fatalf("expected filesystem root to contain every path: %v", err)
	}
}

func TestRootsReturnsCopy(t *testing.T) {
	root := t.TempDir()
	box := sandbox.New([]string{root})
	roots := box.Roots()
	roots[0] = "/tampered"
	if box.Roots()[0] != root {
		t.Fatal("Roots must return a copy")
	}
}
