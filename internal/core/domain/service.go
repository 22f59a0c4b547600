package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceStatus is the lifecycle state of a listed API.
type ServiceStatus string

const (
	ServiceStatusDraft  ServiceStatus = "draft"
	ServiceStatusActive ServiceStatus = "active"
	ServiceStatusPaused ServiceStatus = "paused"
)

// InputType describes what kind of payload an upstream API expects.
type InputType string

const (
	InputTypeText InputType = "text"
	InputTypeJSON InputType = "json"
	InputTypePDF  InputType = "pdf"
	InputTypeForm InputType = "form"
	InputTypeNone InputType = "none"
)

// ServiceListing is an API offered on the marketplace. The registry owns it;
// the settlement engine only reads it and increments the call counters.
type ServiceListing struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	UpstreamURL    string          `json:"upstreamUrl"`
	Method         string          `json:"method"` // GET or POST
	PricePerReq    decimal.Decimal `json:"pricePerReq"`
	ProviderWallet string          `json:"providerWallet"`
	AuthHeader     *string         `json:"-"` // Provider's upstream credential, never exposed
	InputType      InputType       `json:"inputType"`
	Status         ServiceStatus   `json:"status"`
	TotalCalls     int64           `json:"totalCalls"`
	SuccessCalls   int64           `json:"successCalls"`
	CreatedAt      time.Time       `json:"created_at"`
}

// IsActive reports whether the listing accepts execute calls.
func (s *ServiceListing) IsActive() bool {
	return s.Status == ServiceStatusActive
}

// ExpectsFile reports whether the upstream wants multipart file input.
func (s *ServiceListing) ExpectsFile() bool {
	return s.InputType == InputTypePDF || s.InputType == InputTypeForm
}

// Memo returns the payment memo tag for this listing: "ax:" plus the first
// 16 hex characters of the service id.
func (s *ServiceListing) Memo() string {
	return "ax:" + compactID(s.ID, 16)
}

// RefundMemo tags escrow-to-payer transfers.
func (s *ServiceListing) RefundMemo() string {
	return "ax:ref:" + compactID(s.ID, 12)
}

// PayoutMemo tags escrow-to-provider transfers.
func (s *ServiceListing) PayoutMemo() string {
	return "ax:pay:" + compactID(s.ID, 12)
}

func compactID(id uuid.UUID, n int) string {
	compact := strings.ReplaceAll(id.String(), "-", "")
	if len(compact) > n {
		compact = compact[:n]
	}
	return compact
}
