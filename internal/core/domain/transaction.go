package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus is the disposition of escrowed funds for one execute call.
type TransactionStatus string

const (
	// TransactionStatusEscrowed: funds received into the custodial account,
	// delivery outcome pending.
	TransactionStatusEscrowed TransactionStatus = "escrowed"
	// TransactionStatusSettled: payout to the provider broadcast successfully.
	TransactionStatusSettled TransactionStatus = "settled"
	// TransactionStatusPayoutPending: delivery succeeded but the payout
	// broadcast failed; reconciled out-of-band, never silently dropped.
	TransactionStatusPayoutPending TransactionStatus = "payout_pending"
	// TransactionStatusRefunded: delivery failed, funds returned to the payer.
	TransactionStatusRefunded TransactionStatus = "refunded"
)

// Transaction is the record of one monetary event tied to one execute attempt.
// Exactly one exists per successfully-verified payment.
type Transaction struct {
	ID              uuid.UUID         `json:"id"`
	ServiceID       uuid.UUID         `json:"serviceId"`
	ServiceName     string            `json:"serviceName"` // Snapshot; listings can be renamed
	PayerWallet     string            `json:"payerWallet"`
	ProviderWallet  string            `json:"providerWallet"`
	AmountPaid      decimal.Decimal   `json:"amountPaid"`
	PlatformFee     decimal.Decimal   `json:"platformFee"`
	ProviderEarning decimal.Decimal   `json:"providerEarning"`
	TxHash          string            `json:"txHash"`
	PayoutTxHash    *string           `json:"payoutTxHash,omitempty"`
	Status          TransactionStatus `json:"status"`
	ResponseCode    int               `json:"responseCode"`
	CreatedAt       time.Time         `json:"created_at"`
	SettledAt       *time.Time        `json:"settled_at,omitempty"`
}

// IsTerminal reports whether the escrowed funds have reached a disposition.
func (t *Transaction) IsTerminal() bool {
	return t.Status != TransactionStatusEscrowed
}
