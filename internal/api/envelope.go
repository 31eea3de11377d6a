package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is bumped when the envelope shape changes so clients
// can detect incompatible servers.
const envelopeVersion = 1

// Envelope is the uniform response wrapper for every API response.
//
// Success:  {"v": 1, "success": true,  "data": {...}}
// Error:    {"v": 1, "success": false, "error": "message"}
// Detailed: {"v": 1, "success": false, "error": {"code": ..., "message": ..., "details": ...}}
type Envelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

// EnvelopeTransformer wraps every huma response body in the envelope.
// Registered as a huma transformer on the API config.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	code, err := strconv.Atoi(status)
	if err != nil {
		code = 0
	}

	if code >= 400 {
		if apiErr, ok := v.(*APIError); ok {
			// Simple errors flatten to a string; detailed errors keep
			// their structure.
			if apiErr.Code == "" && apiErr.Details == nil {
				return &Envelope{V: envelopeVersion, Success: false, Error: apiErr.Message}, nil
			}
			return &Envelope{V: envelopeVersion, Success: false, Error: apiErr}, nil
		}
		return &Envelope{V: envelopeVersion, Success: false, Error: v}, nil
	}

	return &Envelope{V: envelopeVersion, Success: true, Data: v}, nil
}
