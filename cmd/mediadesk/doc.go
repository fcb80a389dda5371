// Package main implements the mediadesk command-line interface.
//
// The CLI is built with Cobra. `serve` runs the HTTP media service in the
// foreground, holding a file lock so only one instance serves a state
// directory at a time. The remaining commands work against the same
// configuration without a running server: `browse` and `probe` apply the
// sandbox rules locally, `check` reports whether ffmpeg and ffprobe can be
// found, and `config` writes or validates the TOML file.
package main
