package mediaops

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mediadesk/internal/catalog"
	"mediadesk/internal/config"
	"mediadesk/internal/logging"
	"mediadesk/internal/media/ffmpeg"
	"mediadesk/internal/mediainfo"
	"mediadesk/internal/sandbox"
	"mediadesk/internal/services"
	"mediadesk/internal/toolexec"
)

// Runner executes a planned ffmpeg invocation.
type Runner interface {
	RunStreamed(ctx context.Context, binary string, args []string) (toolexec.Output, error)
}

// Prober supplies stream metadata for planning.
type Prober interface {
	ProbeStrict(ctx context.Context, path string) (mediainfo.Report, error)
}

// ExtractRequest selects a subtitle stream by ordinal. A nil StreamIndex
// selects the first subtitle stream.
type ExtractRequest struct {
	Input       string
	StreamIndex *int
	Output      string
}

// BurnRequest renders Subtitles into Input.
type BurnRequest struct {
	Input     string
	Subtitles string
	Output    string
}

// HEVCRequest overrides the configured HEVC defaults where set.
type HEVCRequest struct {
	Input   string
	Output  string
	Bitrate string
	Preset  string
	GOP     *int
}

// MP4Request overrides the configured MP4 defaults where set.
type MP4Request struct {
	Input        string
	Output       string
	CRF          *int
	Preset       string
	AudioBitrate string
}

// ExtractResult reports the written subtitle file and the stream it came from.
type ExtractResult struct {
	Output string             `json:"output"`
	Stream mediainfo.Subtitle `json:"stream"`
	Log    string             `json:"-"`
}

// RunResult reports the output of an encode along with the tail of the tool log.
type RunResult struct {
	Output       string `json:"output"`
	Log          string `json:"log"`
	LogTruncated bool   `json:"logTruncated"`
}

// Service plans and runs media operations.
type Service struct {
	cfg    *config.Config
	box    *sandbox.Sandbox
	lister *catalog.Lister
	prober Prober
	runner Runner
	logger *slog.Logger
}

// New constructs the service. All collaborators are required.
func New(cfg *config.Config, box *sandbox.Sandbox, lister *catalog.Lister, prober Prober, runner Runner, logger *slog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		box:    box,
		lister: lister,
		prober: prober,
		runner: runner,
		logger: logging.NewComponentLogger(logger, "mediaops"),
	}
}

// PlanExtract builds the subtitle extraction command.
func (s *Service) PlanExtract(ctx context.Context, req ExtractRequest) (ffmpeg.Plan, mediainfo.Subtitle, error) {
	input, err := s.resolveVideo("extract", req.Input)
	if err != nil {
		return ffmpeg.Plan{}, mediainfo.Subtitle{}, err
	}
	report, err := s.prober.ProbeStrict(ctx, input)
	if err != nil {
		return ffmpeg.Plan{}, mediainfo.Subtitle{}, err
	}
	if len(report.Subtitles) == 0 {
		return ffmpeg.Plan{}, mediainfo.Subtitle{}, services.Wrap(services.ErrNoSubtitles, "mediaops", "extract", fmt.Sprintf("%s has no subtitle streams", input), nil)
	}

	ordinal := 0
	if req.StreamIndex != nil {
		ordinal = *req.StreamIndex
	}
	stream, ok := report.Subtitle(ordinal)
	if !ok {
		stream = report.Subtitles[0]
	}

	output := ffmpeg.ExtractOutputPath(input, stream.Language, ffmpeg.SubtitleExtension(stream.Codec))
	if strings.TrimSpace(req.Output) != "" {
		if output, err = s.box.Resolve(req.Output); err != nil {
			return ffmpeg.Plan{}, mediainfo.Subtitle{}, err
		}
	}
	plan := ffmpeg.Plan{
		Binary: s.cfg.FFmpegBinary(),
		Args:   ffmpeg.ExtractArgs(input, stream.Ordinal, output),
		Output: output,
	}
	return plan, stream, nil
}

// ExtractSubtitles copies one subtitle stream out of a video file.
func (s *Service) ExtractSubtitles(ctx context.Context, req ExtractRequest) (ExtractResult, error) {
	plan, stream, err := s.PlanExtract(ctx, req)
	if err != nil {
		return ExtractResult{}, err
	}
	out, err := s.execute(ctx, "extract", plan)
	if err != nil {
		return ExtractResult{}, err
	}
	return ExtractResult{Output: plan.Output, Stream: stream, Log: out.Log}, nil
}

// PlanBurn builds the subtitle burn-in command.
func (s *Service) PlanBurn(_ context.Context, req BurnRequest) (ffmpeg.Plan, error) {
	input, err := s.resolveRequired("burn", "input", req.Input)
	if err != nil {
		return ffmpeg.Plan{}, err
	}
	subtitles, err := s.resolveRequired("burn", "subtitles", req.Subtitles)
	if err != nil {
		return ffmpeg.Plan{}, err
	}
	if !s.lister.IsSubtitle(subtitles) {
		return ffmpeg.Plan{}, services.Wrap(services.ErrInvalidInput, "mediaops", "burn", fmt.Sprintf("%s is not a recognized subtitle file", subtitles), nil)
	}
	output, err := s.resolveOutput(req.Output, ffmpeg.BurnOutputPath(input))
	if err != nil {
		return ffmpeg.Plan{}, err
	}
	return ffmpeg.Plan{
		Binary: s.cfg.FFmpegBinary(),
		Args:   ffmpeg.BurnArgs(input, subtitles, output),
		Output: output,
	}, nil
}

// BurnSubtitles renders a subtitle file into the video.
func (s *Service) BurnSubtitles(ctx context.Context, req BurnRequest) (RunResult, error) {
	plan, err := s.PlanBurn(ctx, req)
	if err != nil {
		return RunResult{}, err
	}
	return s.run(ctx, "burn", plan)
}

// PlanHEVC builds the NVENC HEVC transcode command.
func (s *Service) PlanHEVC(ctx context.Context, req HEVCRequest) (ffmpeg.Plan, error) {
	input, err := s.resolveVideo("transcode_hevc", req.Input)
	if err != nil {
		return ffmpeg.Plan{}, err
	}
	opts := ffmpeg.HEVCOptions{
		Bitrate: firstNonEmpty(req.Bitrate, s.cfg.HEVC.Bitrate),
		Preset:  firstNonEmpty(req.Preset, s.cfg.HEVC.Preset),
		GOP:     s.cfg.HEVC.GOP,
		Quality: s.cfg.HEVC.Quality,
	}
	if req.GOP != nil {
		opts.GOP = *req.GOP
	}
	if opts.GOP <= 0 {
		return ffmpeg.Plan{}, services.Wrap(services.ErrInvalidInput, "mediaops", "transcode_hevc", fmt.Sprintf("gop must be positive, got %d", opts.GOP), nil)
	}
	if err := validateToken("transcode_hevc", "bitrate", opts.Bitrate); err != nil {
		return ffmpeg.Plan{}, err
	}
	if err := validateToken("transcode_hevc", "preset", opts.Preset); err != nil {
		return ffmpeg.Plan{}, err
	}

	output, err := s.transcodeOutput(ctx, input, req.Output, "-HEVC", ".mkv")
	if err != nil {
		return ffmpeg.Plan{}, err
	}
	return ffmpeg.Plan{
		Binary: s.cfg.FFmpegBinary(),
		Args:   ffmpeg.HEVCArgs(input, output, opts),
		Output: output,
	}, nil
}

// TranscodeHEVC re-encodes the input to HEVC in a Matroska container.
func (s *Service) TranscodeHEVC(ctx context.Context, req HEVCRequest) (RunResult, error) {
	plan, err := s.PlanHEVC(ctx, req)
	if err != nil {
		return RunResult{}, err
	}
	return s.run(ctx, "transcode_hevc", plan)
}

// PlanMP4 builds the H.264 MP4 transcode command.
func (s *Service) PlanMP4(ctx context.Context, req MP4Request) (ffmpeg.Plan, error) {
	input, err := s.resolveVideo("transcode_mp4", req.Input)
	if err != nil {
		return ffmpeg.Plan{}, err
	}
	opts := ffmpeg.MP4Options{
		CRF:          s.cfg.MP4.CRF,
		Preset:       firstNonEmpty(req.Preset, s.cfg.MP4.Preset),
		AudioBitrate: firstNonEmpty(req.AudioBitrate, s.cfg.MP4.AudioBitrate),
	}
	if req.CRF != nil {
		opts.CRF = *req.CRF
	}
	if opts.CRF < 0 || opts.CRF > 51 {
		return ffmpeg.Plan{}, services.Wrap(services.ErrInvalidInput, "mediaops", "transcode_mp4", fmt.Sprintf("crf must be between 0 and 51, got %d", opts.CRF), nil)
	}
	if err := validateToken("transcode_mp4", "preset", opts.Preset); err != nil {
		return ffmpeg.Plan{}, err
	}
	if err := validateToken("transcode_mp4", "audioBitrate", opts.AudioBitrate); err != nil {
		return ffmpeg.Plan{}, err
	}

	output, err := s.transcodeOutput(ctx, input, req.Output, "", ".mp4")
	if err != nil {
		return ffmpeg.Plan{}, err
	}
	return ffmpeg.Plan{
		Binary: s.cfg.FFmpegBinary(),
		Args:   ffmpeg.MP4Args(input, output, opts),
		Output: output,
	}, nil
}

// TranscodeMP4 re-encodes the input to H.264/AAC in an MP4 container.
func (s *Service) TranscodeMP4(ctx context.Context, req MP4Request) (RunResult, error) {
	plan, err := s.PlanMP4(ctx, req)
	if err != nil {
		return RunResult{}, err
	}
	return s.run(ctx, "transcode_mp4", plan)
}

func (s *Service) run(ctx context.Context, operation string, plan ffmpeg.Plan) (RunResult, error) {
	out, err := s.execute(ctx, operation, plan)
	if err != nil {
		return RunResult{}, err
	}
	return RunResult{Output: plan.Output, Log: out.Log, LogTruncated: out.Truncated}, nil
}

func (s *Service) execute(ctx context.Context, operation string, plan ffmpeg.Plan) (toolexec.Output, error) {
	if _, ok := services.OperationFromContext(ctx); !ok {
		ctx = services.WithOperation(ctx, operation)
	}
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("running media operation", logging.String("output", plan.Output))
	logger.Debug("media command", logging.String("command", plan.CommandLine()))
	out, err := s.runner.RunStreamed(ctx, plan.Binary, plan.Args)
	if err != nil {
		logger.Warn("media operation failed",
			logging.String("kind", services.Kind(err)),
			logging.Error(err),
		)
		return toolexec.Output{}, err
	}
	return out, nil
}

// transcodeOutput resolves an explicit output or derives the default from the
// source height. Only the default needs a probe.
func (s *Service) transcodeOutput(ctx context.Context, input, raw, suffix, ext string) (string, error) {
	if strings.TrimSpace(raw) != "" {
		return s.box.Resolve(raw)
	}
	report, err := s.prober.ProbeStrict(ctx, input)
	if err != nil {
		return "", err
	}
	return ffmpeg.TranscodeOutputPath(input, report.Height, suffix, ext), nil
}

func (s *Service) resolveOutput(raw, fallback string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return s.box.Resolve(raw)
}

func (s *Service) resolveRequired(operation, field, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", services.Wrap(services.ErrInvalidInput, "mediaops", operation, field+" is required", nil)
	}
	return s.box.Resolve(raw)
}

func (s *Service) resolveVideo(operation, raw string) (string, error) {
	input, err := s.resolveRequired(operation, "input", raw)
	if err != nil {
		return "", err
	}
	if !s.lister.IsVideo(input) {
		return "", services.Wrap(services.ErrInvalidInput, "mediaops", operation, fmt.Sprintf("%s is not a recognized video file", input), nil)
	}
	return input, nil
}

func validateToken(operation, field, value string) error {
	if strings.TrimSpace(value) == "" || strings.ContainsAny(value, " \t\r\n") {
		return services.Wrap(services.ErrInvalidInput, "mediaops", operation, fmt.Sprintf("%s must be a single non-empty token, got %q", field, value), nil)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
