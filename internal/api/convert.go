package api

import (
	"time"

	"mediadesk/internal/catalog"
	"mediadesk/internal/fileops"
	"mediadesk/internal/mediaops"
)

// FromEntries converts a directory listing to its API representation.
func FromEntries(entries []catalog.Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, Entry{
			Name:     e.Name,
			Path:     e.Path,
			IsDir:    e.IsDir,
			Size:     e.Size,
			Modified: FormatTime(e.Modified),
			Ext:      e.Ext,
			Kind:     string(e.Kind),
		})
	}
	return out
}

// FormatTime renders t in the API timestamp format, or "" for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}

// ToExtract converts the wire request.
func (r ExtractRequest) ToExtract() mediaops.ExtractRequest {
	return mediaops.ExtractRequest{Input: r.Input, StreamIndex: r.StreamIndex.Ptr(), Output: r.Output}
}

// ToBurn converts the wire request.
func (r BurnRequest) ToBurn() mediaops.BurnRequest {
	return mediaops.BurnRequest{Input: r.Input, Subtitles: r.Subtitles, Output: r.Output}
}

// ToHEVC converts the wire request.
func (r HEVCRequest) ToHEVC() mediaops.HEVCRequest {
	return mediaops.HEVCRequest{Input: r.Input, Output: r.Output, Bitrate: r.Bitrate, Preset: r.Preset, GOP: r.GOP}
}

// ToMP4 converts the wire request.
func (r MP4Request) ToMP4() mediaops.MP4Request {
	return mediaops.MP4Request{Input: r.Input, Output: r.Output, CRF: r.CRF, Preset: r.Preset, AudioBitrate: r.AudioBitrate}
}

// ToOperation converts the wire request. Unknown actions are rejected by the
// executor.
func (r FileOpRequest) ToOperation() fileops.Operation {
	return fileops.Operation{Action: fileops.Action(r.Action), Source: r.Source, Target: r.Target}
}

// FromRunResult wraps an encode result.
func FromRunResult(res mediaops.RunResult) OperationResponse {
	return OperationResponse{OK: true, Output: res.Output, Log: res.Log, LogTruncated: res.LogTruncated}
}

// FromFileOpResult wraps a file operation result.
func FromFileOpResult(res fileops.Result) FileOpResponse {
	return FileOpResponse{OK: true, Action: string(res.Action), Source: res.Source, Target: res.Target}
}
