// Package server exposes mediadesk over HTTP using gin.
//
// Routes map one-to-one onto the sandbox, catalog, mediainfo, mediaops, and
// fileops components. Every failure is reported as a JSON ErrorResponse whose
// status comes from services.HTTPStatus; unknown routes answer 404.
//
// Encodes run for as long as ffmpeg needs: the server applies no write
// timeout and hands the tool runner a context detached from the request, so
// a client disconnect does not kill the subprocess.
package server
