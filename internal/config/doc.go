// Package config loads, normalizes, and validates mediadesk configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MEDIA_ROOTS and PORT. The Config type centralizes every knob the server and
// CLI need: the sandbox roots, the listening address, the media extension
// sets, external tool names, and encoder defaults.
//
// A Config is built once at process start and handed to every component
// constructor; nothing in the module reads configuration from ambient state
// afterwards.
package config
