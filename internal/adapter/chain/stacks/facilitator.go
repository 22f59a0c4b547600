package stacks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"axiom-gateway/internal/core/ports"
	"axiom-gateway/pkg/x402"
)

// SettleViaFacilitator hands a signed-but-unbroadcast transfer to the
// facilitator's settle endpoint. On success the facilitator has already
// verified and broadcast the payment; the returned transaction id and payer
// are authoritative and the gateway performs no independent re-verification.
func (c *Client) SettleViaFacilitator(ctx context.Context, signedTx string, reqs x402.PaymentRequirements) (*ports.SettlementResult, error) {
	body, err := json.Marshal(x402.SettleRequest{
		PaymentPayload: x402.PaymentPayload{
			X402Version: x402.Version,
			Payload:     map[string]any{"transaction": signedTx},
			Accepted:    reqs,
		},
		PaymentRequirements: reqs,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal settle request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.FacilitatorURL+"/settle", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build settle request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("settle via facilitator: %w", err)
	}
	defer resp.Body.Close()

	var out x402.SettleResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode settle response (status %d): %w", resp.StatusCode, err)
	}

	if !out.Success || out.Transaction == "" {
		reason := out.ErrorReason
		if reason == "" {
			reason = fmt.Sprintf("facilitator returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%s", reason)
	}

	c.log.Debug().
		Str("tx_id", out.Transaction).
		Str("payer", out.Payer).
		Msg("pre-signed transfer settled via facilitator")

	return &ports.SettlementResult{
		TxHash: out.Transaction,
		Payer:  out.Payer,
	}, nil
}
