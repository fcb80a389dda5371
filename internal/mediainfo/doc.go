// Package mediainfo turns ffprobe output into the stream description served
// by the probe endpoint and consumed by the media operations.
//
// Probe never fails: tool and parse failures are carried inside the Report
// so metadata problems do not block browsing. ProbeStrict surfaces the same
// failures as errors for callers that cannot continue without metadata.
//
// Subtitle streams are numbered by ordinal, their zero-based position among
// subtitle streams only. The ordinal is what ffmpeg's 0:s:N selector expects
// and is unrelated to the absolute container index.
package mediainfo
