package api

import (
	"mediadesk/internal/deps"
	"mediadesk/internal/mediainfo"
)

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// HealthResponse reports liveness, the sandbox roots, and tool availability.
type HealthResponse struct {
	OK    bool          `json:"ok"`
	Roots []string      `json:"roots"`
	Tools []deps.Status `json:"tools"`
}

// Entry is a directory listing row.
type Entry struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	IsDir    bool   `json:"isDir"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
	Ext      string `json:"ext,omitempty"`
	Kind     string `json:"kind"`
}

// BrowseResponse lists one directory.
type BrowseResponse struct {
	Path    string  `json:"path"`
	Entries []Entry `json:"entries"`
}

// ProbeResponse carries file stat data and the probe report. Probe failures
// surface inside Meta, never as a failed request.
type ProbeResponse struct {
	Path     string           `json:"path"`
	Size     int64            `json:"size"`
	Modified string           `json:"modified"`
	Meta     mediainfo.Report `json:"meta"`
}

// ExtractRequest selects a subtitle stream to extract.
type ExtractRequest struct {
	Input       string      `json:"input"`
	StreamIndex StreamIndex `json:"streamIndex"`
	Output      string      `json:"output,omitempty"`
}

// ExtractResponse reports the written subtitle file.
type ExtractResponse struct {
	OK     bool               `json:"ok"`
	Output string             `json:"output"`
	Stream mediainfo.Subtitle `json:"stream"`
}

// BurnRequest renders a subtitle file into a video.
type BurnRequest struct {
	Input     string `json:"input"`
	Subtitles string `json:"subtitles"`
	Output    string `json:"output,omitempty"`
}

// HEVCRequest transcodes to HEVC. Zero values mean "use the default".
type HEVCRequest struct {
	Input   string `json:"input"`
	Output  string `json:"output,omitempty"`
	Bitrate string `json:"bitrate,omitempty"`
	Preset  string `json:"preset,omitempty"`
	GOP     *int   `json:"gop,omitempty"`
}

// MP4Request transcodes to H.264 MP4. Zero values mean "use the default".
type MP4Request struct {
	Input        string `json:"input"`
	Output       string `json:"output,omitempty"`
	CRF          *int   `json:"crf,omitempty"`
	Preset       string `json:"preset,omitempty"`
	AudioBitrate string `json:"audioBitrate,omitempty"`
}

// OperationResponse reports an encode along with the tail of the tool log.
type OperationResponse struct {
	OK           bool   `json:"ok"`
	Output       string `json:"output"`
	Log          string `json:"log"`
	LogTruncated bool   `json:"logTruncated"`
}

// FileOpRequest is one file operation. action is one of copy, move, rename,
// delete, createDir.
type FileOpRequest struct {
	Action string `json:"action"`
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
}

// FileOpResponse echoes the resolved paths of a completed file operation.
type FileOpResponse struct {
	OK     bool   `json:"ok"`
	Action string `json:"action"`
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
}

// TranslateRequest asks for subtitle translation.
type TranslateRequest struct {
	Input     string `json:"input"`
	BatchSize *int   `json:"batchSize,omitempty"`
}

// TranslateResponse is always OK=false: translation is not implemented.
type TranslateResponse struct {
	OK        bool   `json:"ok"`
	Message   string `json:"message"`
	BatchSize int    `json:"batchSize"`
}
