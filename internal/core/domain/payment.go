package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentProof marks a ledger transaction hash as redeemed. At most one live
// proof exists per hash; it is deleted when delivery fails so the caller can
// legitimately retry with the same hash.
type PaymentProof struct {
	TxHash    string    `json:"txHash"`
	ServiceID uuid.UUID `json:"serviceId"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentKind discriminates the two payment-resolution paths.
type PaymentKind int

const (
	// PaymentNone: no payment artifact was supplied; challenge with 402.
	PaymentNone PaymentKind = iota
	// PaymentPreSigned: a signed-but-unbroadcast transfer settled via the
	// facilitator.
	PaymentPreSigned
	// PaymentBroadcast: a transaction hash already submitted to the network,
	// verified independently against the chain.
	PaymentBroadcast
)

// PaymentArtifact is the tagged payment variant, decided once at the request
// boundary so the resolution paths are exhaustive and cannot fall through.
type PaymentArtifact struct {
	Kind PaymentKind

	// SignedTransaction holds the pre-signed transfer blob (PaymentPreSigned).
	SignedTransaction string

	// TxHash holds the broadcast transaction hash (PaymentBroadcast).
	TxHash string
}

// NoPayment returns the empty artifact.
func NoPayment() PaymentArtifact {
	return PaymentArtifact{Kind: PaymentNone}
}

// PreSignedPayment wraps a signed-but-unbroadcast transfer.
func PreSignedPayment(signedTx string) PaymentArtifact {
	return PaymentArtifact{Kind: PaymentPreSigned, SignedTransaction: signedTx}
}

// BroadcastPayment wraps an already-broadcast transaction hash.
func BroadcastPayment(txHash string) PaymentArtifact {
	return PaymentArtifact{Kind: PaymentBroadcast, TxHash: txHash}
}

// RawFile is an uploaded file forwarded to the upstream as multipart input.
type RawFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// UpstreamPayload is the caller-supplied payload resolved once at the proxy
// boundary: scalar fields, an optional file, and schema-less extra headers.
type UpstreamPayload struct {
	Fields       map[string]any
	File         *RawFile
	ExtraHeaders map[string]string
}

// HasFile reports whether a file upload is present.
func (p UpstreamPayload) HasFile() bool {
	return p.File != nil && len(p.File.Data) > 0
}
