package mediainfo

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"

	"mediadesk/internal/language"
	"mediadesk/internal/logging"
	"mediadesk/internal/media/ffprobe"
	"mediadesk/internal/services"
	"mediadesk/internal/toolexec"
)

// Format summarizes container metadata.
type Format struct {
	Name      string  `json:"formatName"`
	Duration  float64 `json:"duration"`
	Size      int64   `json:"size"`
	BitRate   int64   `json:"bitRate"`
	NBStreams int     `json:"nbStreams"`

	VideoStreams    int `json:"videoStreams"`
	AudioStreams    int `json:"audioStreams"`
	SubtitleStreams int `json:"subtitleStreams"`
}

// Stream describes one container stream.
type Stream struct {
	CodecType    string `json:"codecType"`
	CodecName    string `json:"codecName"`
	TypeIndex    int    `json:"index"`
	StreamIndex  int    `json:"streamIndex"`
	Language     string `json:"language"`
	LanguageName string `json:"languageName"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Channels     int    `json:"channels,omitempty"`
}

// Subtitle identifies a subtitle stream by ordinal.
type Subtitle struct {
	Ordinal     int    `json:"ordinal"`
	StreamIndex int    `json:"streamIndex"`
	Codec       string `json:"codec"`
	Language    string `json:"language"`
}

// Report is the probe result for one file.
type Report struct {
	Format    *Format    `json:"format,omitempty"`
	Streams   []Stream   `json:"streams"`
	Subtitles []Subtitle `json:"subtitles"`
	Height    int        `json:"height,omitempty"`
	Error     string     `json:"error,omitempty"`
	Detail    string     `json:"detail,omitempty"`
}

// OK reports whether the probe produced metadata.
func (r Report) OK() bool {
	return r.Error == ""
}

// Subtitle returns the subtitle stream at ordinal.
func (r Report) Subtitle(ordinal int) (Subtitle, bool) {
	if ordinal < 0 || ordinal >= len(r.Subtitles) {
		return Subtitle{}, false
	}
	return r.Subtitles[ordinal], true
}

// Prober runs ffprobe and builds reports.
type Prober struct {
	runner ffprobe.Runner
	binary string
	logger *slog.Logger
}

// NewProber constructs a prober using binary (default "ffprobe").
func NewProber(runner ffprobe.Runner, binary string, logger *slog.Logger) *Prober {
	return &Prober{
		runner: runner,
		binary: binary,
		logger: logging.NewComponentLogger(logger, "mediainfo"),
	}
}

// Probe inspects path. Failures are recorded in the report's Error and
// Detail fields rather than returned.
func (p *Prober) Probe(ctx context.Context, path string) Report {
	report, err := p.ProbeStrict(ctx, path)
	if err == nil {
		return report
	}
	p.logger.Warn("probe failed",
		logging.String("path", path),
		logging.String("kind", services.Kind(err)),
		logging.Error(err),
	)
	report = Report{Streams: []Stream{}, Subtitles: []Subtitle{}}
	switch {
	case errors.Is(err, services.ErrParse):
		report.Error = "failed to parse ffprobe output"
	default:
		report.Error = "ffprobe failed"
	}
	report.Detail = failureDetail(err)
	return report
}

// ProbeStrict inspects path and returns tool and parse failures as errors.
func (p *Prober) ProbeStrict(ctx context.Context, path string) (Report, error) {
	result, err := ffprobe.Inspect(ctx, p.runner, p.binary, path)
	if err != nil {
		return Report{}, err
	}
	return Build(result), nil
}

// Build converts parsed ffprobe output into a report.
func Build(result ffprobe.Result) Report {
	report := Report{
		Format: &Format{
			Name:      result.Format.FormatName,
			Duration:  finite(result.DurationSeconds()),
			Size:      result.SizeBytes(),
			BitRate:   result.BitRate(),
			NBStreams: result.Format.NBStreams,

			VideoStreams:    result.VideoStreamCount(),
			AudioStreams:    result.AudioStreamCount(),
			SubtitleStreams: len(result.SubtitleStreams()),
		},
		Streams:   make([]Stream, 0, len(result.Streams)),
		Subtitles: []Subtitle{},
		Height:    result.VideoHeight(),
	}
	perType := make(map[string]int)
	for _, s := range result.Streams {
		codecType := strings.ToLower(strings.TrimSpace(s.CodecType))
		lang := language.FromTags(s.Tags)
		stream := Stream{
			CodecType:    codecType,
			CodecName:    s.CodecName,
			TypeIndex:    perType[codecType],
			StreamIndex:  s.Index,
			Language:     lang,
			LanguageName: language.DisplayName(lang),
			Width:        s.Width,
			Height:       s.Height,
			Channels:     s.Channels,
		}
		perType[codecType]++
		report.Streams = append(report.Streams, stream)
		if codecType == "subtitle" {
			report.Subtitles = append(report.Subtitles, Subtitle{
				Ordinal:     stream.TypeIndex,
				StreamIndex: s.Index,
				Codec:       s.CodecName,
				Language:    lang,
			})
		}
	}
	return report
}

func failureDetail(err error) string {
	var toolErr *toolexec.ToolError
	if errors.As(err, &toolErr) && strings.TrimSpace(toolErr.Log) != "" {
		return strings.TrimSpace(toolErr.Log)
	}
	return err.Error()
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
