package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeServer(); err != nil {
		return err
	}
	c.normalizeMedia()
	c.normalizeTools()
	c.normalizeEncoders()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("MEDIA_ROOTS"); ok && strings.TrimSpace(value) != "" {
		c.Paths.Roots = strings.Split(value, ",")
	}
	roots := make([]string, 0, len(c.Paths.Roots))
	seen := make(map[string]struct{}, len(c.Paths.Roots))
	for _, root := range c.Paths.Roots {
		trimmed := strings.TrimSpace(root)
		if trimmed == "" {
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return fmt.Errorf("paths.roots: %w", err)
		}
		if _, exists := seen[expanded]; exists {
			continue
		}
		seen[expanded] = struct{}{}
		roots = append(roots, expanded)
	}
	c.Paths.Roots = roots

	var err error
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeServer() error {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultBind
	}
	if value, ok := os.LookupEnv("PORT"); ok && strings.TrimSpace(value) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("PORT: invalid value %q", value)
		}
		c.Server.Port = port
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	return nil
}

func (c *Config) normalizeMedia() {
	c.Media.VideoExtensions = normalizeExtensions(c.Media.VideoExtensions, defaultVideoExtensions)
	c.Media.SubtitleExtensions = normalizeExtensions(c.Media.SubtitleExtensions, defaultSubtitleExtensions)
}

func normalizeExtensions(values []string, fallback []string) []string {
	exts := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		ext := strings.ToLower(strings.TrimSpace(value))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, exists := seen[ext]; exists {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		return append([]string(nil), fallback...)
	}
	return exts
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
}

func (c *Config) normalizeEncoders() {
	c.HEVC.Bitrate = strings.TrimSpace(c.HEVC.Bitrate)
	if c.HEVC.Bitrate == "" {
		c.HEVC.Bitrate = defaultHEVCBitrate
	}
	c.HEVC.Preset = strings.TrimSpace(c.HEVC.Preset)
	if c.HEVC.Preset == "" {
		c.HEVC.Preset = defaultHEVCPreset
	}
	if c.HEVC.GOP == 0 {
		c.HEVC.GOP = defaultHEVCGOP
	}
	c.MP4.Preset = strings.TrimSpace(c.MP4.Preset)
	if c.MP4.Preset == "" {
		c.MP4.Preset = defaultMP4Preset
	}
	c.MP4.AudioBitrate = strings.TrimSpace(c.MP4.AudioBitrate)
	if c.MP4.AudioBitrate == "" {
		c.MP4.AudioBitrate = defaultMP4AudioBitrate
	}
	if c.Translate.BatchSize == 0 {
		c.Translate.BatchSize = defaultTranslateBatchSize
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
