package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. An empty root list is allowed
// here; the sandbox rejects every request until roots are configured.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateMedia(); err != nil {
		return err
	}
	if err := c.validateEncoders(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}

func (c *Config) validateMedia() error {
	video := make(map[string]struct{}, len(c.Media.VideoExtensions))
	for _, ext := range c.Media.VideoExtensions {
		video[ext] = struct{}{}
	}
	for _, ext := range c.Media.SubtitleExtensions {
		if _, clash := video[ext]; clash {
			return fmt.Errorf("media: extension %q listed as both video and subtitle", ext)
		}
	}
	return nil
}

func (c *Config) validateEncoders() error {
	if err := ensurePositiveMap(map[string]int{
		"hevc.gop":             c.HEVC.GOP,
		"translate.batch_size": c.Translate.BatchSize,
	}); err != nil {
		return err
	}
	if c.HEVC.Quality < 0 || c.HEVC.Quality > 51 {
		return errors.New("hevc.quality must be between 0 and 51")
	}
	if c.MP4.CRF < 0 || c.MP4.CRF > 51 {
		return errors.New("mp4.crf must be between 0 and 51")
	}
	if strings.ContainsAny(c.HEVC.Bitrate, " \t") {
		return errors.New("hevc.bitrate must not contain whitespace")
	}
	if strings.ContainsAny(c.MP4.AudioBitrate, " \t") {
		return errors.New("mp4.audio_bitrate must not contain whitespace")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
