// Package dto defines the gateway's wire shapes and the mapping from engine
// results to client responses.
package dto

import (
	"fmt"

	"axiom-gateway/internal/core/ports"
)

const currencySTX = "STX"

// ExecuteBody is the JSON body accepted by the execute endpoint. All fields
// are optional; multipart requests carry the same fields as form values plus
// a file part.
type ExecuteBody struct {
	// PaymentProof is a broadcast transaction hash redeeming a prior payment.
	PaymentProof string `json:"paymentProof"`
	// Payload holds the fields forwarded to the upstream API.
	Payload map[string]any `json:"payload"`
	// Headers are extra headers forwarded verbatim to the upstream API.
	Headers map[string]string `json:"headers"`
}

// InvoiceResponse is the payment-instruction sheet for a listing.
type InvoiceResponse struct {
	ServiceID       string `json:"serviceId"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	Currency        string `json:"currency"`
	Recipient       string `json:"recipient"`
	Memo            string `json:"memo"`
	Method          string `json:"method"`
	InputType       string `json:"inputType"`
	Message         string `json:"message"`
	ExampleTransfer string `json:"exampleTransfer"`
}

// ChallengeResponse is the 402 body accompanying the payment-required header.
type ChallengeResponse struct {
	X402Version     int    `json:"x402Version"`
	Error           string `json:"error"`
	ServiceID       string `json:"serviceId"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	Currency        string `json:"currency"`
	Network         string `json:"network"`
	Recipient       string `json:"recipient"`
	Message         string `json:"message"`
	InvoiceEndpoint string `json:"invoiceEndpoint"`
}

// RefundReceipt reports the voided payment inside a refund response.
type RefundReceipt struct {
	TxHash       string `json:"txHash"`
	RefundTxHash string `json:"refundTxHash"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	Recipient    string `json:"recipient"`
	Reason       string `json:"reason"`
}

// RefundResponse is the 502 body returned when delivery failed and the
// payment was refunded.
type RefundResponse struct {
	Status    string        `json:"status"`
	Error     string        `json:"error"`
	Message   string        `json:"message"`
	Refund    RefundReceipt `json:"refund"`
	ServiceID string        `json:"serviceId"`
	Name      string        `json:"name"`
	Latency   string        `json:"latency"`
}

// SuccessResponse wraps the upstream payload in a settlement receipt.
type SuccessResponse struct {
	Status           string  `json:"status"`
	Data             any     `json:"data"`
	TxHash           string  `json:"tx_hash"`
	PayoutTxHash     *string `json:"payout_tx_hash"`
	Cost             string  `json:"cost"`
	Commission       string  `json:"commission"`
	DeveloperEarning string  `json:"developer_earning"`
	Latency          string  `json:"latency"`
	ServiceID        string  `json:"serviceId"`
	Name             string  `json:"name"`
}

// NewInvoiceResponse maps an engine invoice to its wire shape.
func NewInvoiceResponse(inv *ports.Invoice) InvoiceResponse {
	svc := inv.Service
	return InvoiceResponse{
		ServiceID: svc.ID.String(),
		Name:      svc.Name,
		Price:     svc.PricePerReq.String(),
		Currency:  currencySTX,
		Recipient: inv.Recipient,
		Memo:      inv.Memo,
		Method:    svc.Method,
		InputType: string(svc.InputType),
		Message: fmt.Sprintf("Send %s STX to %s, then call the execute endpoint with the transaction hash as paymentProof.",
			svc.PricePerReq, inv.Recipient),
		ExampleTransfer: fmt.Sprintf("stx transfer %s %s --memo %s", svc.PricePerReq, inv.Recipient, inv.Memo),
	}
}

// NewChallengeResponse maps a challenge outcome to the 402 body.
func NewChallengeResponse(res *ports.ExecuteResult) ChallengeResponse {
	svc := res.Service
	accepted := res.PaymentRequired.Accepts[0]
	return ChallengeResponse{
		X402Version: res.PaymentRequired.X402Version,
		Error:       "Payment required",
		ServiceID:   svc.ID.String(),
		Name:        svc.Name,
		Price:       svc.PricePerReq.String(),
		Currency:    currencySTX,
		Network:     string(accepted.Network),
		Recipient:   accepted.PayTo,
		Message: fmt.Sprintf("This API costs %s STX per call. Pay to the escrow address and retry with the transaction hash.",
			svc.PricePerReq),
		InvoiceEndpoint: fmt.Sprintf("/gateway/%s/invoice", svc.ID),
	}
}

// NewRefundResponse maps a refunded outcome to the 502 body. A refund whose
// broadcast failed reports "pending" so the caller knows funds are owed but
// not yet moved.
func NewRefundResponse(res *ports.ExecuteResult) RefundResponse {
	refundTxHash := "pending"
	if res.Refund.RefundTxHash != nil {
		refundTxHash = *res.Refund.RefundTxHash
	}
	return RefundResponse{
		Status:  "refunded",
		Error:   "Upstream call failed",
		Message: "The upstream API did not deliver; your payment has been refunded.",
		Refund: RefundReceipt{
			TxHash:       res.Refund.TxHash,
			RefundTxHash: refundTxHash,
			Amount:       res.Refund.Amount.String(),
			Currency:     currencySTX,
			Recipient:    res.Refund.Recipient,
			Reason:       res.Refund.Reason,
		},
		ServiceID: res.Service.ID.String(),
		Name:      res.Service.Name,
		Latency:   fmt.Sprintf("%dms", res.LatencyMs),
	}
}

// NewSuccessResponse maps a successful settlement to the receipt envelope.
func NewSuccessResponse(res *ports.ExecuteResult) SuccessResponse {
	return SuccessResponse{
		Status:           "success",
		Data:             res.Data,
		TxHash:           res.TxHash,
		PayoutTxHash:     res.PayoutTxHash,
		Cost:             fmt.Sprintf("%s STX", res.AmountPaid),
		Commission:       fmt.Sprintf("%s STX (%g%%)", res.PlatformFee, res.FeePercent),
		DeveloperEarning: fmt.Sprintf("%s STX", res.ProviderEarning),
		Latency:          fmt.Sprintf("%dms", res.LatencyMs),
		ServiceID:        res.Service.ID.String(),
		Name:             res.Service.Name,
	}
}
