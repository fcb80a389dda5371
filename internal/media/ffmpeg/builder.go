package ffmpeg

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Plan is a fully built tool invocation.
type Plan struct {
	Binary string   `json:"binary"`
	Args   []string `json:"args"`
	Output string   `json:"output"`
}

// CommandLine renders the plan for logs and dry runs. It is not shell-safe.
func (p Plan) CommandLine() string {
	parts := append([]string{p.Binary}, p.Args...)
	return strings.Join(parts, " ")
}

// HEVCOptions controls the NVENC HEVC encode.
type HEVCOptions struct {
	Bitrate string
	Preset  string
	GOP     int
	Quality int
}

// MP4Options controls the libx264 MP4 encode.
type MP4Options struct {
	CRF          int
	Preset       string
	AudioBitrate string
}

const (
	burnCRF    = 20
	burnPreset = "medium"
)

var subtitleExtensions = map[string]string{
	"subrip":            ".srt",
	"ass":               ".ass",
	"ssa":               ".ssa",
	"webvtt":            ".vtt",
	"mov_text":          ".srt",
	"dvd_subtitle":      ".sub",
	"hdmv_pgs_subtitle": ".sup",
}

// SubtitleExtension maps a subtitle codec name to the extension of its
// stream-copied file. Unknown codecs fall back to .srt.
func SubtitleExtension(codec string) string {
	if ext, ok := subtitleExtensions[strings.ToLower(strings.TrimSpace(codec))]; ok {
		return ext
	}
	return ".srt"
}

func preamble(input string) []string {
	return []string{"-hide_banner", "-nostdin", "-y", "-i", input}
}

// ExtractArgs copies the subtitle stream at ordinal without re-encoding.
func ExtractArgs(input string, ordinal int, output string) []string {
	args := preamble(input)
	args = append(args,
		"-map", fmt.Sprintf("0:s:%d", ordinal),
		"-c:s", "copy",
		output,
	)
	return args
}

var filterEscaper = strings.NewReplacer(
	`:`, `\:`,
	`,`, `\,`,
	`[`, `\[`,
	`]`, `\]`,
	`'`, `\'`,
)

// EscapeFilterPath prepares a path for embedding in a filter-graph argument.
// Backslashes become forward slashes first so the escapes added afterwards
// survive.
func EscapeFilterPath(path string) string {
	return filterEscaper.Replace(strings.ReplaceAll(path, `\`, "/"))
}

// SubtitleFilter returns the video filter that renders subtitles. .ass files
// use the ass filter; everything else goes through the subtitles filter.
func SubtitleFilter(subtitles string) string {
	name := "subtitles"
	if strings.EqualFold(filepath.Ext(subtitles), ".ass") {
		name = "ass"
	}
	quoted := strings.ReplaceAll(EscapeFilterPath(subtitles), `\'`, `'\''`)
	return fmt.Sprintf("%s='%s'", name, quoted)
}

var mp4Family = map[string]bool{".mp4": true, ".m4v": true, ".mov": true}

// muxerFlags returns the MP4-family muxer options for output. Other
// containers get none; hvc1 tagging only applies to HEVC video.
func muxerFlags(output string, hevc bool) []string {
	if !mp4Family[strings.ToLower(filepath.Ext(output))] {
		return nil
	}
	var flags []string
	if hevc {
		flags = append(flags, "-tag:v", "hvc1")
	}
	return append(flags, "-movflags", "+faststart")
}

// BurnArgs re-renders the video with subtitles drawn in and copies audio.
func BurnArgs(input, subtitles, output string) []string {
	args := preamble(input)
	args = append(args,
		"-vf", SubtitleFilter(subtitles),
		"-map", "0:v:0",
		"-map", "0:a?",
		"-c:v", "libx264",
		"-preset", burnPreset,
		"-crf", strconv.Itoa(burnCRF),
		"-pix_fmt", "yuv420p",
		"-c:a", "copy",
	)
	args = append(args, muxerFlags(output, false)...)
	return append(args, output)
}

// HEVCArgs maps every input stream and encodes video with hevc_nvenc in
// constant-quality VBR mode capped at the bitrate. Audio and subtitles are
// stream-copied. MP4-family outputs are tagged hvc1 with faststart.
func HEVCArgs(input, output string, opts HEVCOptions) []string {
	args := preamble(input)
	args = append(args,
		"-map", "0",
		"-c:v", "hevc_nvenc",
		"-preset", opts.Preset,
		"-rc", "vbr",
		"-cq", strconv.Itoa(opts.Quality),
		"-b:v", "0",
		"-maxrate", opts.Bitrate,
		"-bufsize", DoubleRate(opts.Bitrate),
		"-g", strconv.Itoa(opts.GOP),
		"-c:a", "copy",
		"-c:s", "copy",
		"-map_metadata", "0",
		"-map_chapters", "0",
	)
	args = append(args, muxerFlags(output, true)...)
	return append(args, output)
}

// MP4Args encodes to H.264 High profile with AAC audio and mov_text
// subtitles. Audio and subtitle maps are optional so sources without them
// still encode.
func MP4Args(input, output string, opts MP4Options) []string {
	args := preamble(input)
	args = append(args,
		"-map", "0:v:0",
		"-map", "0:a?",
		"-map", "0:s?",
		"-c:v", "libx264",
		"-preset", opts.Preset,
		"-crf", strconv.Itoa(opts.CRF),
		"-profile:v", "high",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", opts.AudioBitrate,
		"-c:s", "mov_text",
		"-map_metadata", "0",
		"-map_chapters", "0",
	)
	args = append(args, muxerFlags(output, false)...)
	return append(args, output)
}

var ratePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)([kKmMgG]?)$`)

// DoubleRate doubles an ffmpeg rate such as "8M" or "4500k". Values it
// cannot parse are returned unchanged.
func DoubleRate(rate string) string {
	rate = strings.TrimSpace(rate)
	m := ratePattern.FindStringSubmatch(rate)
	if m == nil {
		return rate
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return rate
	}
	return strconv.FormatFloat(value*2, 'f', -1, 64) + m[2]
}

func splitBase(input string) (dir, base string) {
	dir = filepath.Dir(input)
	name := filepath.Base(input)
	return dir, strings.TrimSuffix(name, filepath.Ext(name))
}

// ExtractOutputPath returns <dir>/<base>.<lang><ext>.
func ExtractOutputPath(input, lang, ext string) string {
	dir, base := splitBase(input)
	return filepath.Join(dir, base+"."+lang+ext)
}

// BurnOutputPath returns <dir>/<base>.burnin.mp4.
func BurnOutputPath(input string) string {
	dir, base := splitBase(input)
	return filepath.Join(dir, base+".burnin.mp4")
}

// TranscodeOutputPath returns <dir>/<base>-<height>p<suffix><ext>. With an
// unknown height the height segment is dropped. A name that would overwrite
// the input gains a -transcoded marker.
func TranscodeOutputPath(input string, height int, suffix, ext string) string {
	dir, base := splitBase(input)
	name := base
	if height > 0 {
		name += fmt.Sprintf("-%dp", height)
	}
	out := filepath.Join(dir, name+suffix+ext)
	if out == filepath.Clean(input) {
		out = filepath.Join(dir, name+"-transcoded"+suffix+ext)
	}
	return out
}
