package ports

import (
	"context"

	"axiom-gateway/internal/core/domain"
	"axiom-gateway/pkg/x402"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Chain access ---

// VerificationResult is the chain verifier's verdict on a broadcast transfer.
type VerificationResult struct {
	Valid   bool
	Payer   string // Sender address when the transaction is indexed
	Message string // Human-readable reason, also used on rejection
}

// SettlementResult is the facilitator's receipt for a pre-signed transfer.
type SettlementResult struct {
	TxHash string
	Payer  string
}

// ChainClient wraps calls to the ledger network. All operations are single
// attempts with bounded timeouts; retry policy belongs to the caller.
type ChainClient interface {
	// VerifyTransfer checks that txHash is a successful-or-pending transfer of
	// at least expectedAmount STX to recipient. A hash the chain's query API
	// has not indexed yet is provisionally valid, to tolerate replication lag.
	// The error return is reserved for transport failures.
	VerifyTransfer(ctx context.Context, txHash string, expectedAmount decimal.Decimal, recipient string) (*VerificationResult, error)

	// SettleViaFacilitator hands a signed-but-unbroadcast transfer to the
	// facilitator. On success the facilitator has already verified the
	// payment; the engine does not re-verify (trust boundary).
	SettleViaFacilitator(ctx context.Context, signedTx string, reqs x402.PaymentRequirements) (*SettlementResult, error)

	// TransferFromEscrow broadcasts a transfer from the custodial escrow
	// account and returns the resulting transaction id. Errors are non-fatal
	// to the request flow: the caller logs and continues.
	TransferFromEscrow(ctx context.Context, recipient string, amount decimal.Decimal, memo string) (string, error)
}

// RequestSigner authenticates requests to the escrow custodian with the
// normalized escrow secret.
type RequestSigner interface {
	Sign(secretKey string, payload string) string
	BuildCanonicalString(method, path string, timestamp int64, body string) string
}

// --- Upstream delivery ---

// UpstreamRequest describes one delivery to a registered upstream endpoint.
type UpstreamRequest struct {
	Method     string
	URL        string
	AuthHeader *string
	InputType  domain.InputType
	Payload    domain.UpstreamPayload
}

// UpstreamResult classifies the delivery outcome. Failed covers both
// transport errors and upstream error statuses; the engine refunds either way.
type UpstreamResult struct {
	StatusCode int  // 0 when no response was received
	Body       any  // Decoded upstream JSON, or raw text
	Failed     bool // Outside [200,400), or transport failure
	Transport  bool // The failure happened before an upstream status arrived
	ErrMessage string
	LatencyMs  int64
}

// UpstreamProxy forwards a caller's payload to the upstream endpoint.
type UpstreamProxy interface {
	Forward(ctx context.Context, req UpstreamRequest) UpstreamResult
}

// --- Settlement engine ---

// ExecuteRequest is one inbound gateway execute call.
type ExecuteRequest struct {
	ServiceID    uuid.UUID
	CallerWallet string // "anonymous" when no identity header was supplied
	Payment      domain.PaymentArtifact
	Payload      domain.UpstreamPayload
}

// ExecuteOutcome discriminates the terminal states an execute call can reach
// without being an outright error.
type ExecuteOutcome int

const (
	// OutcomeChallenge: no payment artifact; respond 402 with the descriptor.
	OutcomeChallenge ExecuteOutcome = iota
	// OutcomeSuccess: delivery succeeded and the payout was attempted.
	OutcomeSuccess
	// OutcomeRefunded: delivery failed and a refund was attempted.
	OutcomeRefunded
)

// RefundReceipt reports the refund issued after a failed delivery.
type RefundReceipt struct {
	TxHash       string
	RefundTxHash *string // nil when the refund broadcast itself failed
	Amount       decimal.Decimal
	Recipient    string
	Reason       string
}

// ExecuteResult carries everything the transport layer needs to render the
// response for a non-error outcome.
type ExecuteResult struct {
	Outcome ExecuteOutcome
	Service *domain.ServiceListing

	// Challenge (OutcomeChallenge)
	PaymentRequired *x402.PaymentRequired

	// Shared by success and refund
	TxHash    string
	LatencyMs int64

	// Success (OutcomeSuccess)
	UpstreamStatus  int
	Data            any
	PayoutTxHash    *string
	AmountPaid      decimal.Decimal
	PlatformFee     decimal.Decimal
	ProviderEarning decimal.Decimal
	FeePercent      float64
	PaymentResult   *x402.PaymentResult

	// Refund (OutcomeRefunded)
	Refund *RefundReceipt
}

// Invoice is the payment-instruction sheet for a listing.
type Invoice struct {
	Service   *domain.ServiceListing
	Recipient string
	Memo      string
}

// SettlementService is the gateway execution and settlement engine.
type SettlementService interface {
	Invoice(ctx context.Context, serviceID uuid.UUID) (*Invoice, error)
	Execute(ctx context.Context, req ExecuteRequest) (*ExecuteResult, error)
}
