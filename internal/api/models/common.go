// Package models defines request and response types for the uptime REST API.
// All types are JSON-serializable.
package models

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse represents a simple status response.
type StatusResponse struct {
	Status string `json:"status"`
}

// CodecResponse is returned by the URL encode/decode endpoints.
type CodecResponse struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}
