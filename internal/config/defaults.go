package config

const (
	defaultStateDir           = "~/.local/share/mediadesk"
	defaultBind               = "127.0.0.1"
	defaultPort               = 8787
	defaultFFmpegBinary       = "ffmpeg"
	defaultFFprobeBinary      = "ffprobe"
	defaultHEVCBitrate        = "8M"
	defaultHEVCPreset         = "p5"
	defaultHEVCGOP            = 240
	defaultHEVCQuality        = 23
	defaultMP4CRF             = 20
	defaultMP4Preset          = "medium"
	defaultMP4AudioBitrate    = "192k"
	defaultTranslateBatchSize = 100
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

var (
	defaultVideoExtensions = []string{
		".mp4", ".mkv", ".avi", ".mov", ".m4v", ".webm", ".ts", ".wmv", ".flv", ".mpg", ".mpeg",
	}
	defaultSubtitleExtensions = []string{
		".srt", ".ass", ".ssa", ".vtt", ".sub", ".sup",
	}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Server: Server{
			Bind: defaultBind,
			Port: defaultPort,
		},
		Media: Media{
			VideoExtensions:    append([]string(nil), defaultVideoExtensions...),
			SubtitleExtensions: append([]string(nil), defaultSubtitleExtensions...),
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		HEVC: HEVC{
			Bitrate: defaultHEVCBitrate,
			Preset:  defaultHEVCPreset,
			GOP:     defaultHEVCGOP,
			Quality: defaultHEVCQuality,
		},
		MP4: MP4{
			CRF:          defaultMP4CRF,
			Preset:       defaultMP4Preset,
			AudioBitrate: defaultMP4AudioBitrate,
		},
		Translate: Translate{
			BatchSize: defaultTranslateBatchSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
