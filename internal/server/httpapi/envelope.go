package httpapi

import (
	"encoding/json"
	"net/http"
)

// Code is the closed set of envelope result codes.
type Code string

const (
	// CodeOk wraps a successful business result.
	CodeOk Code = "Ok"
	// CodeKo wraps a failure message, or an ordered list of validation
	// messages.
	CodeKo Code = "Ko"
	// CodeOut tells the client its session is missing, invalid, or expired
	// and authentication must be restarted.
	CodeOut Code = "OUT"
)

// Envelope is the uniform response shape for every non-streamed outcome.
// The transport status is always 200: outcome semantics live in Code.
type Envelope struct {
	Code    Code `json:"Code"`
	Message any  `json:"Message"`
}

func writeEnvelope(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(env)
}
