package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediadesk/internal/config"
)

const ffmpegArgsFile = "ffmpeg-args.txt"

// StubFFprobe installs an ffprobe stand-in that prints payload and exits 0.
func StubFFprobe(payload string) ConfigOption {
	return func(b *configBuilder) {
		data := filepath.Join(b.baseDir, "ffprobe.json")
		if err := os.WriteFile(data, []byte(payload), 0o644); err != nil {
			b.t.Fatalf("write ffprobe payload: %v", err)
		}
		script := filepath.Join(b.binDir(), "ffprobe")
		b.writeScript(script, fmt.Sprintf("cat '%s'\n", data))
		b.cfg.Tools.FFprobe = script
	}
}

// StubFailingFFprobe installs an ffprobe stand-in that writes message to
// stderr and exits 1.
func StubFailingFFprobe(message string) ConfigOption {
	return func(b *configBuilder) {
		script := filepath.Join(b.binDir(), "ffprobe")
		b.writeScript(script, fmt.Sprintf("echo '%s' 1>&2\nexit 1\n", message))
		b.cfg.Tools.FFprobe = script
	}
}

// StubFFmpeg installs an ffmpeg stand-in that records its argv, one argument
// per line, writes a placeholder to its last argument (the output path), and
// exits 0.
func StubFFmpeg() ConfigOption {
	return func(b *configBuilder) {
		argsFile := filepath.Join(b.baseDir, ffmpegArgsFile)
		script := filepath.Join(b.binDir(), "ffmpeg")
		body := fmt.Sprintf(`: > '%[1]s'
for a in "$@"; do printf '%%s\n' "$a" >> '%[1]s'; done
for last in "$@"; do :; done
echo "stub ffmpeg done" 1>&2
printf 'stub' > "$last"
exit 0
`, argsFile)
		b.writeScript(script, body)
		b.cfg.Tools.FFmpeg = script
	}
}

// StubFailingFFmpeg installs an ffmpeg stand-in that records its argv, writes
// message to stderr, and exits with code.
func StubFailingFFmpeg(code int, message string) ConfigOption {
	return func(b *configBuilder) {
		argsFile := filepath.Join(b.baseDir, ffmpegArgsFile)
		script := filepath.Join(b.binDir(), "ffmpeg")
		body := fmt.Sprintf(`: > '%[1]s'
for a in "$@"; do printf '%%s\n' "$a" >> '%[1]s'; done
echo '%[2]s' 1>&2
exit %[3]d
`, argsFile, message, code)
		b.writeScript(script, body)
		b.cfg.Tools.FFmpeg = script
	}
}

// FFmpegArgs returns the argv recorded by the ffmpeg stub, or nil when the
// stub never ran.
func FFmpegArgs(t testing.TB, cfg *config.Config) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(BaseDir(cfg), ffmpegArgsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read ffmpeg args: %v", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}

// ProbeJSON renders a minimal ffprobe document with one 1080p video stream
// followed by subtitle streams of the given codecs and languages, alternating
// codec and language: ProbeJSON("subrip", "eng", "ass", "fre").
func ProbeJSON(subtitles ...string) string {
	streams := []string{
		`{"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080}`,
		`{"index": 1, "codec_name": "aac", "codec_type": "audio", "tags": {"language": "eng"}}`,
	}
	for i := 0; i+1 < len(subtitles); i += 2 {
		streams = append(streams, fmt.Sprintf(
			`{"index": %d, "codec_name": %q, "codec_type": "subtitle", "tags": {"language": %q}}`,
			len(streams), subtitles[i], subtitles[i+1],
		))
	}
	return fmt.Sprintf(`{"streams": [%s], "format": {"format_name": "matroska,webm", "duration": "10.0", "size": "4", "nb_streams": %d}}`,
		strings.Join(streams, ", "), len(streams))
}
