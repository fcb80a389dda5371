// Package mediaops coordinates the media operations exposed over HTTP:
// subtitle extraction, subtitle burn-in, and the HEVC and MP4 transcodes.
//
// Each operation resolves every path through the sandbox, validates the
// request, probes the input when a default depends on its streams, builds an
// ffmpeg Plan, and runs it with the streamed runner. The Plan* methods stop
// before execution so callers (and tests) can inspect the exact argv.
package mediaops
