// Package ffmpeg builds ffmpeg argument lists for the media operations.
//
// Every builder is a pure function of its inputs: no probing, no filesystem
// access. The shared preamble is -hide_banner -nostdin -y followed by the
// single input; codec, mapping and container flags follow, and the output
// path is always the final argument.
//
// Key functions:
//   - ExtractArgs: stream-copy one subtitle stream selected by ordinal
//   - BurnArgs: render a subtitle file into the video with the ass or
//     subtitles filter
//   - HEVCArgs: NVENC HEVC re-encode with metadata passthrough
//   - MP4Args: libx264/AAC re-encode into an MP4 container
//
// Output path helpers derive the default file names next to the input.
package ffmpeg
