// Package stacks implements ports.ChainClient against the Stacks network:
// transfer verification through the Hiro extended API, pre-signed settlement
// through an x402 facilitator, and escrow broadcasts through the custodial
// signer service. Signature cryptography lives outside this process; the
// client only authenticates its custodian requests.
package stacks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"axiom-gateway/internal/core/ports"
	"axiom-gateway/pkg/x402"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Config holds the chain client's endpoints and escrow identity. The signing
// secret must already be normalized (see NormalizeSecret).
type Config struct {
	APIURL         string
	FacilitatorURL string
	CustodianURL   string
	EscrowAddress  string
	SigningSecret  string
	Timeout        time.Duration
}

// Client implements ports.ChainClient.
type Client struct {
	cfg    Config
	http   *http.Client
	signer ports.RequestSigner
	log    zerolog.Logger
}

// NewClient creates a Stacks chain client. All operations are single attempts
// bounded by cfg.Timeout; retries belong to the caller.
func NewClient(cfg Config, signer ports.RequestSigner, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		signer: signer,
		log:    log,
	}
}

// txResponse is the subset of the Hiro extended API transaction payload the
// verifier needs.
type txResponse struct {
	TxID          string `json:"tx_id"`
	TxType        string `json:"tx_type"`
	TxStatus      string `json:"tx_status"`
	SenderAddress string `json:"sender_address"`
	TokenTransfer struct {
		RecipientAddress string `json:"recipient_address"`
		Amount           string `json:"amount"` // micro-STX
	} `json:"token_transfer"`
}

// VerifyTransfer checks a broadcast transaction against the chain's query API.
// A hash the API has not indexed yet (404) is provisionally valid: the
// transfer was submitted and indexing lags replication. Amounts compare as
// exact micro-STX integers, never as decimals.
func (c *Client) VerifyTransfer(ctx context.Context, txHash string, expectedAmount decimal.Decimal, recipient string) (*ports.VerificationResult, error) {
	url := fmt.Sprintf("%s/extended/v1/tx/%s", c.cfg.APIURL, txHash)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build verify request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query transaction: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &ports.VerificationResult{
			Valid:   true,
			Message: "Transaction submitted, awaiting indexing",
		}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chain API returned status %d", resp.StatusCode)
	}

	var tx txResponse
	if err := json.NewDecoder(resp.Body).Decode(&tx); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}

	if tx.TxType != "token_transfer" {
		return &ports.VerificationResult{Valid: false, Message: "Transaction is not a token transfer"}, nil
	}
	if tx.TxStatus != "success" && tx.TxStatus != "pending" {
		return &ports.VerificationResult{Valid: false, Message: fmt.Sprintf("Transaction status is %s", tx.TxStatus)}, nil
	}
	if tx.TokenTransfer.RecipientAddress != recipient {
		return &ports.VerificationResult{Valid: false, Message: "Transaction recipient does not match the escrow wallet"}, nil
	}

	amount, err := decimal.NewFromString(tx.TokenTransfer.Amount)
	if err != nil {
		return nil, fmt.Errorf("parse transfer amount %q: %w", tx.TokenTransfer.Amount, err)
	}
	if amount.IntPart() < x402.ToMicroSTX(expectedAmount) {
		return &ports.VerificationResult{Valid: false, Message: "Transaction amount is below the listed price"}, nil
	}

	return &ports.VerificationResult{
		Valid:   true,
		Payer:   tx.SenderAddress,
		Message: "Transaction verified",
	}, nil
}

// transferRequest is the body sent to the custodian's transfer endpoint.
type transferRequest struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"` // micro-STX
	Memo      string `json:"memo"`
}

type transferResponse struct {
	TxID  string `json:"txId"`
	Error string `json:"error,omitempty"`
}

const transferPath = "/v1/transfers"

// TransferFromEscrow asks the custodial signer service to broadcast a
// transfer from the escrow account. The request is HMAC-authenticated with
// the normalized escrow secret. Single attempt; the caller decides what a
// failure means.
func (c *Client) TransferFromEscrow(ctx context.Context, recipient string, amount decimal.Decimal, memo string) (string, error) {
	if c.cfg.CustodianURL == "" {
		return "", fmt.Errorf("no custodian endpoint configured")
	}

	body, err := json.Marshal(transferRequest{
		Sender:    c.cfg.EscrowAddress,
		Recipient: recipient,
		Amount:    x402.ToMicroSTX(amount),
		Memo:      memo,
	})
	if err != nil {
		return "", fmt.Errorf("marshal transfer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.CustodianURL+transferPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build transfer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	ts := time.Now().Unix()
	canonical := c.signer.BuildCanonicalString(http.MethodPost, transferPath, ts, string(body))
	req.Header.Set("X-Escrow-Timestamp", fmt.Sprintf("%d", ts))
	req.Header.Set("X-Escrow-Signature", c.signer.Sign(c.cfg.SigningSecret, canonical))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("broadcast transfer: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read transfer response: %w", err)
	}

	var out transferResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode transfer response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || out.TxID == "" {
		reason := out.Error
		if reason == "" {
			reason = fmt.Sprintf("custodian returned status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("transfer rejected: %s", reason)
	}

	c.log.Debug().
		Str("recipient", recipient).
		Str("amount", amount.String()).
		Str("tx_id", out.TxID).
		Msg("escrow transfer broadcast")

	return out.TxID, nil
}
