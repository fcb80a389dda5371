// Package api defines the wire-format types for the mediadesk HTTP surface
// and the converters between them and the internal models.
//
// # Key Types
//
// Request variants: ExtractRequest, BurnRequest, HEVCRequest, MP4Request,
// FileOpRequest, TranslateRequest. Each is a closed shape with explicit
// optional fields; absent options fall back to configured defaults inside
// mediaops.
//
// Responses: HealthResponse, BrowseResponse, ProbeResponse,
// ExtractResponse, OperationResponse, FileOpResponse, TranslateResponse,
// ErrorResponse.
//
// # Design Notes
//
// DTOs use camelCase JSON tags. Timestamps use RFC3339 with milliseconds.
// streamIndex is lenient: a JSON number or numeric string selects a
// subtitle ordinal, anything else means "first subtitle stream".
package api
