package domain

import (
	"time"

	"github.com/google/uuid"
)

// CallLogEntry is one line per inbound gateway attempt, regardless of outcome.
// Append-only, used for observability; never mutated.
type CallLogEntry struct {
	ID            uuid.UUID `json:"id"`
	ServiceID     uuid.UUID `json:"serviceId"`
	CallerWallet  string    `json:"callerWallet"`
	RequestMethod string    `json:"requestMethod"`
	ResponseCode  int       `json:"responseCode"`
	LatencyMs     int64     `json:"latencyMs"`
	Paid          bool      `json:"paid"`
	TxHash        *string   `json:"txHash,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
