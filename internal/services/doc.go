// Package services defines shared utilities consumed by the request handlers
// and the media operation components.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers and operation names
//     for logging.
//   - Structured error markers plus the Wrap helper that keep failure kinds
//     distinguishable (sandbox violation, tool failure, I/O error) even though
//     the HTTP layer currently reports all of them the same way.
//
// Use these helpers when wiring new operations so error classification and
// observability stay uniform across the service.
package services
