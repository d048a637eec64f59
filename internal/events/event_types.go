package events

import (
	"time"

	"github.com/iot-kit/sensor-gateway/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTokenIssued  EventType = "token_issued"
	EventTokenRevoked EventType = "token_revoked"
	EventAccessDenied EventType = "access_denied"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TokenIssuedPayload payload.
type TokenIssuedPayload struct {
	Role      domain.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// TokenRevokedPayload payload.
type TokenRevokedPayload struct {
	ActiveTokens int `json:"active_tokens"`
}

// AccessDeniedPayload payload.
type AccessDeniedPayload struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}
