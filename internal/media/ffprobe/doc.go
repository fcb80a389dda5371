// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties and tags
//   - Format: container-level metadata (duration, size, bitrate)
//
// Primary entry point:
//   - Inspect: executes ffprobe through a Runner and returns parsed Result
//
// Helper methods on Result provide stream filtering by type, source video
// height, duration parsing, and bitrate extraction.
package ffprobe
