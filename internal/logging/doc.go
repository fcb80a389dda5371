// Package logging builds the slog loggers used by mediadesk.
//
// Output is either a colorized console format or JSON, written to stdout and
// the service log file. WithContext tags records with the operation and
// request ID carried on a request context.
package logging
