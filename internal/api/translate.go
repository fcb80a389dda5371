package api

import (
	"strings"

	"mediadesk/internal/sandbox"
	"mediadesk/internal/services"
)

const translateMessage = "subtitle translation is not implemented"

// StubTranslate validates the request and reports that translation is
// unavailable. No translation is performed.
func StubTranslate(box *sandbox.Sandbox, defaultBatch int, req TranslateRequest) (TranslateResponse, error) {
	if strings.TrimSpace(req.Input) == "" {
		return TranslateResponse{}, services.Wrap(services.ErrInvalidInput, "translate", "validate", "input is required", nil)
	}
	if _, err := box.Resolve(req.Input); err != nil {
		return TranslateResponse{}, err
	}
	batch := defaultBatch
	if req.BatchSize != nil && *req.BatchSize > 0 {
		batch = *req.BatchSize
	}
	return TranslateResponse{OK: false, Message: translateMessage, BatchSize: batch}, nil
}
