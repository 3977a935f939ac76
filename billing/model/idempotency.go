package model

import (
	"encoding/json"
	"time"
)

// RequestKey identifies one client request to a bill-mutating endpoint.
type RequestKey struct {
	Path string
	Key  string
}

// RequestState is the lifecycle of a cached idempotent request.
type RequestState string

const (
	RequestStateInFlight  RequestState = "in_flight"
	RequestStateCompleted RequestState = "completed"
)

// IdempotentResponse is the cached outcome of a bill-mutating request.
type IdempotentResponse struct {
	State       RequestState    `json:"state"`
	Fingerprint string          `json:"fingerprint"`
	Response    json.RawMessage `json:"response,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt time.Time       `json:"completed_at,omitempty"`
}
