// Package x402 implements the structured payment-required / payment-response
// descriptors exchanged over HTTP headers, per version 2 of the x402 protocol.
package x402

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Network is a chain identifier in CAIP-2 form (namespace:reference).
type Network string

const (
	// Version is the protocol version the gateway speaks.
	Version = 2

	// SchemeExact requires payment of the exact listed amount.
	SchemeExact = "exact"

	// NetworkStacksMainnet is the CAIP-2 identifier for the Stacks mainnet.
	NetworkStacksMainnet Network = "stacks:2147483648"

	// AssetSTX is the native Stacks token.
	AssetSTX = "STX"

	// DefaultMaxTimeoutSeconds bounds how long a challenge remains payable.
	DefaultMaxTimeoutSeconds = 300
)

// microUnitsPerSTX is the number of minor units (micro-STX) in one STX.
var microUnitsPerSTX = decimal.NewFromInt(1_000_000)

// PaymentRequirements defines what payment satisfies a challenge.
// Amount is expressed in minor units so comparisons stay exact integers.
type PaymentRequirements struct {
	Scheme            string  `json:"scheme"`
	Network           Network `json:"network"`
	Asset             string  `json:"asset"`
	Amount            string  `json:"amount"`
	PayTo             string  `json:"payTo"`
	MaxTimeoutSeconds int     `json:"maxTimeoutSeconds"`
}

// ResourceInfo describes the resource being paid for.
type ResourceInfo struct {
	URL         string `json:"url"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType"`
}

// PaymentRequired is the structured 402 challenge carried in the
// payment-required response header.
type PaymentRequired struct {
	X402Version int                   `json:"x402Version"`
	Resource    *ResourceInfo         `json:"resource,omitempty"`
	Accepts     []PaymentRequirements `json:"accepts"`
}

// PaymentPayload is the signed payment authorization a caller submits via the
// payment-signature request header. Payload carries the mechanism-specific
// fields; for the Stacks exact scheme that is {"transaction": <signed tx hex>}.
type PaymentPayload struct {
	X402Version int                 `json:"x402Version"`
	Payload     map[string]any      `json:"payload"`
	Accepted    PaymentRequirements `json:"accepted,omitempty"`
}

// SignedTransaction extracts the signed-but-unbroadcast transfer blob.
// Returns an error when the payload does not carry one.
func (p PaymentPayload) SignedTransaction() (string, error) {
	raw, ok := p.Payload["transaction"]
	if !ok {
		return "", fmt.Errorf("payment payload has no transaction field")
	}
	tx, ok := raw.(string)
	if !ok || tx == "" {
		return "", fmt.Errorf("payment payload transaction is not a string")
	}
	return tx, nil
}

// SettleResponse is the facilitator's settlement verdict.
type SettleResponse struct {
	Success     bool    `json:"success"`
	ErrorReason string  `json:"errorReason,omitempty"`
	Payer       string  `json:"payer,omitempty"`
	Transaction string  `json:"transaction"`
	Network     Network `json:"network"`
}

// SettleRequest is the body POSTed to the facilitator's settle endpoint.
type SettleRequest struct {
	PaymentPayload      PaymentPayload      `json:"paymentPayload"`
	PaymentRequirements PaymentRequirements `json:"paymentRequirements"`
}

// PaymentResult is the settlement receipt carried in the payment-response
// header on a successful execute reply.
type PaymentResult struct {
	Success     bool    `json:"success"`
	Transaction string  `json:"transaction"`
	Payer       string  `json:"payer"`
	Network     Network `json:"network"`
}

// ToMicroSTX converts an STX price to minor units, rounding to the nearest
// integer once. All amount comparisons happen on this integer.
func ToMicroSTX(price decimal.Decimal) int64 {
	return price.Mul(microUnitsPerSTX).Round(0).IntPart()
}

// NewRequirements builds the canonical requirements descriptor for a price and
// recipient. The output is deterministic: identical inputs produce identical
// descriptors, so repeated challenges are byte-for-byte reproducible.
func NewRequirements(price decimal.Decimal, payTo string) PaymentRequirements {
	return PaymentRequirements{
		Scheme:            SchemeExact,
		Network:           NetworkStacksMainnet,
		Asset:             AssetSTX,
		Amount:            fmt.Sprintf("%d", ToMicroSTX(price)),
		PayTo:             payTo,
		MaxTimeoutSeconds: DefaultMaxTimeoutSeconds,
	}
}

// NewPaymentRequired builds the 402 challenge descriptor for a resource.
func NewPaymentRequired(price decimal.Decimal, payTo, resource, description string) PaymentRequired {
	return PaymentRequired{
		X402Version: Version,
		Resource: &ResourceInfo{
			URL:         resource,
			Description: description,
			MimeType:    "application/json",
		},
		Accepts: []PaymentRequirements{NewRequirements(price, payTo)},
	}
}

// NewPaymentResult builds the settlement receipt for the payment-response header.
func NewPaymentResult(txHash, payer string) PaymentResult {
	return PaymentResult{
		Success:     true,
		Transaction: txHash,
		Payer:       payer,
		Network:     NetworkStacksMainnet,
	}
}

// EncodeHeader serializes a descriptor as base64-encoded JSON for transport in
// an HTTP header.
func EncodeHeader(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal header: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DecodeHeader reverses EncodeHeader into v.
func DecodeHeader(encoded string, v any) error {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decode header: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("unmarshal header: %w", err)
	}
	return nil
}
