// Package toolexec runs the external media tools (ffprobe, ffmpeg) as
// blocking subprocess calls.
//
// RunCapture buffers standard output for tools that answer with a document.
// RunStreamed consumes standard error line by line while the process runs,
// mirrors each line to the debug log, and returns the accumulated text once
// the process exits. Standard input is always closed so a tool never blocks
// on an interactive prompt. No timeout is applied; callers bound a run with
// their context.
package toolexec
