package services_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"mediadesk/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "ffmpeg", "burn", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"ffmpeg", "burn", "failed", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutMarkerDefaultsToIO(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected io marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestKindClassification(t *testing.T) {
	cases := map[error]string{
		services.Wrap(services.ErrConfiguration, "sandbox", "resolve", "no roots", nil): "config",
		services.Wrap(services.ErrOutOfBounds, "sandbox", "resolve", "", nil):           "out_of_bounds",
		services.Wrap(services.ErrInvalidInput, "fileops", "apply", "", nil):            "invalid_input",
		services.Wrap(services.ErrNoSubtitles, "mediaops", "extract", "", nil):          "no_subtitles",
		services.Wrap(services.ErrIO, "fileops", "copy", "", nil):                       "io",
		services.Wrap(services.ErrExternalTool, "toolexec", "run", "", nil):             "tool_execution",
		services.Wrap(services.ErrParse, "ffprobe", "decode", "", nil):                  "parse",
		fmt.Errorf("outer: %w", services.ErrOutOfBounds):                                "out_of_bounds",
		errors.New("unclassified"):                                                      "internal",
	}
	for err, want := range cases {
		if got := services.Kind(err); got != want {
			t.Fatalf("Kind(%v) = %q, want %q", err, got, want)
		}
	}
	if services.Kind(nil) != "" {
		t.Fatal("expected empty kind for nil error")
	}
}

func TestHTTPStatusCollapsesToBadRequest(t *testing.T) {
	for _, marker := range []error{services.ErrOutOfBounds, services.ErrExternalTool, errors.New("x")} {
		if status := services.HTTPStatus(marker); status != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d", marker, status)
		}
	}
	if status := services.HTTPStatus(nil); status != http.StatusOK {
		t.Fatalf("expected 200 for nil, got %d", status)
	}
}
