// Package catalog lists sandboxed directories and classifies their entries
// as directories, video files, subtitle files, or other files.
package catalog
