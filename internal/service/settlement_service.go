package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"axiom-gateway/internal/core/domain"
	"axiom-gateway/internal/core/ports"
	"axiom-gateway/pkg/apperror"
	"axiom-gateway/pkg/x402"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SettlementConfig holds the engine's money parameters, constructed once at
// startup and passed in explicitly.
type SettlementConfig struct {
	FeePercent    float64
	EscrowAddress string
}

// SettlementServiceImpl implements ports.SettlementService: the per-request
// state machine that challenges for payment, resolves it, guards replay,
// delivers upstream and settles or refunds the escrowed funds.
type SettlementServiceImpl struct {
	services   ports.ServiceRegistry
	proofs     ports.ProofRegistry
	guard      ports.ProofGuard
	txRepo     ports.TransactionRepository
	callLogs   ports.CallLogRepository
	chain      ports.ChainClient
	proxy      ports.UpstreamProxy
	transactor ports.DBTransactor
	cfg        SettlementConfig
	log        zerolog.Logger
}

// NewSettlementService creates a new SettlementServiceImpl.
func NewSettlementService(
	services ports.ServiceRegistry,
	proofs ports.ProofRegistry,
	guard ports.ProofGuard,
	txRepo ports.TransactionRepository,
	callLogs ports.CallLogRepository,
	chain ports.ChainClient,
	proxy ports.UpstreamProxy,
	transactor ports.DBTransactor,
	cfg SettlementConfig,
	log zerolog.Logger,
) *SettlementServiceImpl {
	return &SettlementServiceImpl{
		services:   services,
		proofs:     proofs,
		guard:      guard,
		txRepo:     txRepo,
		callLogs:   callLogs,
		chain:      chain,
		proxy:      proxy,
		transactor: transactor,
		cfg:        cfg,
		log:        log,
	}
}

// Invoice returns the payment instructions for a listing.
func (s *SettlementServiceImpl) Invoice(ctx context.Context, serviceID uuid.UUID) (*ports.Invoice, error) {
	svc, err := s.lookup(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	return &ports.Invoice{
		Service:   svc,
		Recipient: s.cfg.EscrowAddress,
		Memo:      svc.Memo(),
	}, nil
}

// Execute runs the settlement state machine for one inbound call.
func (s *SettlementServiceImpl) Execute(ctx context.Context, req ports.ExecuteRequest) (*ports.ExecuteResult, error) {
	start := time.Now()

	svc, err := s.lookup(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	// No payment artifact: challenge with the 402 descriptor. The descriptor
	// is a pure function of listing state, so repeated challenges are
	// byte-identical.
	if req.Payment.Kind == domain.PaymentNone {
		s.appendCallLog(ctx, svc, req.CallerWallet, 402, sinceMs(start), false, nil)
		s.incrementCounters(ctx, svc.ID, 1, 0)

		challenge := x402.NewPaymentRequired(
			svc.PricePerReq,
			s.cfg.EscrowAddress,
			fmt.Sprintf("/gateway/%s/execute", svc.ID),
			fmt.Sprintf("Pay-per-request: %s (Escrow)", svc.Name),
		)
		return &ports.ExecuteResult{
			Outcome:         ports.OutcomeChallenge,
			Service:         svc,
			PaymentRequired: &challenge,
		}, nil
	}

	// From here on money may move. The settlement must reach a terminal
	// disposition even if the inbound client disconnects, so the in-flight
	// work detaches from the request's cancellation.
	ctx = context.WithoutCancel(ctx)

	txHash, payer, err := s.resolvePayment(ctx, svc, req, start)
	if err != nil {
		return nil, err
	}

	if err := s.replayGuard(ctx, svc, req.CallerWallet, txHash, start); err != nil {
		return nil, err
	}

	// Independent on-chain verification applies to the broadcast path only.
	// The facilitator path is already settled and verified by the facilitator;
	// re-verifying here is deliberately skipped (trust boundary).
	if req.Payment.Kind == domain.PaymentBroadcast {
		resolvedPayer, err := s.verifyPayment(ctx, svc, req.CallerWallet, txHash, start)
		if err != nil {
			return nil, err
		}
		if resolvedPayer != "" {
			payer = resolvedPayer
		}
	}
	if payer == "" {
		payer = req.CallerWallet
	}

	txn, err := s.commitEscrow(ctx, svc, payer, txHash, start, req.CallerWallet)
	if err != nil {
		return nil, err
	}

	delivery := s.proxy.Forward(ctx, ports.UpstreamRequest{
		Method:     svc.Method,
		URL:        svc.UpstreamURL,
		AuthHeader: svc.AuthHeader,
		InputType:  svc.InputType,
		Payload:    req.Payload,
	})

	if delivery.Failed {
		return s.refund(ctx, svc, txn, req.CallerWallet, delivery)
	}
	return s.settle(ctx, svc, txn, req.CallerWallet, payer, delivery)
}

// lookup fetches the listing, mapping absence and non-active status to their
// distinct terminal errors. No side effects.
func (s *SettlementServiceImpl) lookup(ctx context.Context, serviceID uuid.UUID) (*domain.ServiceListing, error) {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lookup service: %w", err))
	}
	if svc == nil {
		return nil, apperror.ErrServiceNotFound()
	}
	if !svc.IsActive() {
		return nil, apperror.ErrServiceUnavailable(string(svc.Status))
	}
	return svc, nil
}

// resolvePayment turns the payment artifact into a transaction hash and,
// when known, the payer identity.
func (s *SettlementServiceImpl) resolvePayment(ctx context.Context, svc *domain.ServiceListing, req ports.ExecuteRequest, start time.Time) (txHash, payer string, err error) {
	if req.CallerWallet != "" && req.CallerWallet != "anonymous" {
		payer = req.CallerWallet
	}

	switch req.Payment.Kind {
	case domain.PaymentPreSigned:
		reqs := x402.NewRequirements(svc.PricePerReq, s.cfg.EscrowAddress)
		settlement, settleErr := s.chain.SettleViaFacilitator(ctx, req.Payment.SignedTransaction, reqs)
		if settleErr != nil {
			s.appendCallLog(ctx, svc, req.CallerWallet, 402, sinceMs(start), false, nil)
			return "", "", apperror.ErrSettlementFailed(settleErr.Error())
		}
		if settlement.Payer != "" {
			payer = settlement.Payer
		}
		return settlement.TxHash, payer, nil

	case domain.PaymentBroadcast:
		return req.Payment.TxHash, payer, nil

	default:
		return "", "", apperror.Validation("no payment artifact supplied")
	}
}

// replayGuard rejects a transaction hash that already has a live proof.
// The redis mark is the fast path; the proof registry is authoritative.
func (s *SettlementServiceImpl) replayGuard(ctx context.Context, svc *domain.ServiceListing, caller, txHash string, start time.Time) error {
	fresh, err := s.guard.MarkIfNew(ctx, txHash)
	if err != nil {
		s.log.Warn().Err(err).Str("tx_hash", txHash).Msg("proof guard unavailable, falling through to registry")
	} else if !fresh {
		s.appendCallLog(ctx, svc, caller, 403, sinceMs(start), false, &txHash)
		return apperror.ErrProofAlreadyUsed()
	}

	exists, err := s.proofs.Exists(ctx, txHash)
	if err != nil {
		s.clearGuard(ctx, txHash)
		return apperror.ErrDatabaseError(fmt.Errorf("check payment proof: %w", err))
	}
	if exists {
		s.appendCallLog(ctx, svc, caller, 403, sinceMs(start), false, &txHash)
		return apperror.ErrProofAlreadyUsed()
	}
	return nil
}

// verifyPayment asks the chain to verify a broadcast transfer. Amount
// comparison happens in minor units inside the chain client.
func (s *SettlementServiceImpl) verifyPayment(ctx context.Context, svc *domain.ServiceListing, caller, txHash string, start time.Time) (string, error) {
	verdict, err := s.chain.VerifyTransfer(ctx, txHash, svc.PricePerReq, s.cfg.EscrowAddress)
	if err != nil {
		s.clearGuard(ctx, txHash)
		s.appendCallLog(ctx, svc, caller, 402, sinceMs(start), false, &txHash)
		return "", apperror.ErrPaymentInvalid(fmt.Sprintf("Could not verify the transaction: %v", err))
	}
	if !verdict.Valid {
		s.clearGuard(ctx, txHash)
		s.appendCallLog(ctx, svc, caller, 402, sinceMs(start), false, &txHash)
		return "", apperror.ErrPaymentInvalid(verdict.Message)
	}
	return verdict.Payer, nil
}

// commitEscrow atomically writes the payment proof and the escrowed
// transaction record. A unique-constraint violation means another caller won
// the redemption race.
func (s *SettlementServiceImpl) commitEscrow(ctx context.Context, svc *domain.ServiceListing, payer, txHash string, start time.Time, caller string) (*domain.Transaction, error) {
	fee, net := domain.SplitFee(svc.PricePerReq, s.cfg.FeePercent)
	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:              uuid.New(),
		ServiceID:       svc.ID,
		ServiceName:     svc.Name,
		PayerWallet:     payer,
		ProviderWallet:  svc.ProviderWallet,
		AmountPaid:      svc.PricePerReq,
		PlatformFee:     fee,
		ProviderEarning: net,
		TxHash:          txHash,
		Status:          domain.TransactionStatusEscrowed,
		ResponseCode:    200,
		CreatedAt:       now,
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		s.clearGuard(ctx, txHash)
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	proof := &domain.PaymentProof{TxHash: txHash, ServiceID: svc.ID, CreatedAt: now}
	if err := s.proofs.Put(ctx, dbTx, proof); err != nil {
		if errors.Is(err, ports.ErrProofExists) {
			s.appendCallLog(ctx, svc, caller, 403, sinceMs(start), false, &txHash)
			return nil, apperror.ErrProofAlreadyUsed()
		}
		s.clearGuard(ctx, txHash)
		return nil, apperror.ErrDatabaseError(fmt.Errorf("put payment proof: %w", err))
	}

	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		s.clearGuard(ctx, txHash)
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		s.clearGuard(ctx, txHash)
		return nil, apperror.InternalError(fmt.Errorf("commit escrow: %w", err))
	}

	s.log.Info().
		Str("tx_hash", txHash).
		Str("service_id", svc.ID.String()).
		Str("payer", payer).
		Str("amount", svc.PricePerReq.String()).
		Msg("payment escrowed")

	return txn, nil
}

// refund handles a failed delivery: return the funds, void the proof so the
// hash can be redeemed again, and report the receipt.
func (s *SettlementServiceImpl) refund(ctx context.Context, svc *domain.ServiceListing, txn *domain.Transaction, caller string, delivery ports.UpstreamResult) (*ports.ExecuteResult, error) {
	recipient := txn.PayerWallet
	var refundTxHash *string

	if recipient != "" && recipient != "anonymous" {
		refundID, err := s.chain.TransferFromEscrow(ctx, recipient, txn.AmountPaid, svc.RefundMemo())
		if err != nil {
			// Reported, not retried synchronously; the transaction row keeps
			// a nil refund hash for out-of-band reconciliation.
			s.log.Warn().Err(err).Str("tx_hash", txn.TxHash).Msg("refund broadcast failed")
		} else {
			refundTxHash = &refundID
		}
	}

	if err := s.txRepo.UpdateByTxHash(ctx, txn.TxHash, ports.TransactionUpdate{
		Status:       domain.TransactionStatusRefunded,
		PayoutTxHash: refundTxHash,
		ResponseCode: delivery.StatusCode,
	}); err != nil {
		s.log.Error().Err(err).Str("tx_hash", txn.TxHash).Msg("failed to mark transaction refunded")
	}

	// Remove the proof so the same hash supports a legitimate retry.
	if err := s.proofs.Delete(ctx, txn.TxHash); err != nil {
		s.log.Error().Err(err).Str("tx_hash", txn.TxHash).Msg("failed to delete payment proof after refund")
	}
	s.clearGuard(ctx, txn.TxHash)

	s.appendCallLog(ctx, svc, caller, delivery.StatusCode, delivery.LatencyMs, true, &txn.TxHash)
	s.incrementCounters(ctx, svc.ID, 1, 0)

	reason := delivery.ErrMessage
	if reason == "" {
		reason = "Upstream service unavailable"
	}

	s.log.Info().
		Str("tx_hash", txn.TxHash).
		Int("upstream_status", delivery.StatusCode).
		Msg("delivery failed, payment refunded")

	return &ports.ExecuteResult{
		Outcome:   ports.OutcomeRefunded,
		Service:   svc,
		TxHash:    txn.TxHash,
		LatencyMs: delivery.LatencyMs,
		Refund: &ports.RefundReceipt{
			TxHash:       txn.TxHash,
			RefundTxHash: refundTxHash,
			Amount:       txn.AmountPaid,
			Recipient:    recipient,
			Reason:       reason,
		},
	}, nil
}

// settle handles a successful delivery: pay the provider their net earning
// and report the receipt. A failed payout broadcast degrades the transaction
// to payout_pending; the caller's response is unaffected.
func (s *SettlementServiceImpl) settle(ctx context.Context, svc *domain.ServiceListing, txn *domain.Transaction, caller, payer string, delivery ports.UpstreamResult) (*ports.ExecuteResult, error) {
	var payoutTxHash *string
	status := domain.TransactionStatusSettled

	payoutID, err := s.chain.TransferFromEscrow(ctx, svc.ProviderWallet, txn.ProviderEarning, svc.PayoutMemo())
	if err != nil {
		s.log.Warn().Err(err).Str("tx_hash", txn.TxHash).Msg("payout broadcast failed")
		status = domain.TransactionStatusPayoutPending
	} else {
		payoutTxHash = &payoutID
	}

	if err := s.txRepo.UpdateByTxHash(ctx, txn.TxHash, ports.TransactionUpdate{
		Status:       status,
		PayoutTxHash: payoutTxHash,
		ResponseCode: delivery.StatusCode,
	}); err != nil {
		s.log.Error().Err(err).Str("tx_hash", txn.TxHash).Msg("failed to mark transaction settled")
	}

	s.appendCallLog(ctx, svc, caller, delivery.StatusCode, delivery.LatencyMs, true, &txn.TxHash)
	s.incrementCounters(ctx, svc.ID, 1, 1)

	paymentResult := x402.NewPaymentResult(txn.TxHash, payer)

	s.log.Info().
		Str("tx_hash", txn.TxHash).
		Str("status", string(status)).
		Str("provider_earning", txn.ProviderEarning.String()).
		Int64("latency_ms", delivery.LatencyMs).
		Msg("delivery succeeded, payout settled")

	return &ports.ExecuteResult{
		Outcome:         ports.OutcomeSuccess,
		Service:         svc,
		TxHash:          txn.TxHash,
		LatencyMs:       delivery.LatencyMs,
		UpstreamStatus:  delivery.StatusCode,
		Data:            delivery.Body,
		PayoutTxHash:    payoutTxHash,
		AmountPaid:      txn.AmountPaid,
		PlatformFee:     txn.PlatformFee,
		ProviderEarning: txn.ProviderEarning,
		FeePercent:      s.cfg.FeePercent,
		PaymentResult:   &paymentResult,
	}, nil
}

// appendCallLog records an attempt; observability failures never abort the
// settlement flow.
func (s *SettlementServiceImpl) appendCallLog(ctx context.Context, svc *domain.ServiceListing, caller string, code int, latencyMs int64, paid bool, txHash *string) {
	entry := &domain.CallLogEntry{
		ID:            uuid.New(),
		ServiceID:     svc.ID,
		CallerWallet:  caller,
		RequestMethod: svc.Method,
		ResponseCode:  code,
		LatencyMs:     latencyMs,
		Paid:          paid,
		TxHash:        txHash,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.callLogs.Append(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("service_id", svc.ID.String()).Msg("failed to append call log")
	}
}

func (s *SettlementServiceImpl) incrementCounters(ctx context.Context, serviceID uuid.UUID, calls, successes int64) {
	if err := s.services.IncrementCounters(ctx, serviceID, calls, successes); err != nil {
		s.log.Warn().Err(err).Str("service_id", serviceID.String()).Msg("failed to increment service counters")
	}
}

func (s *SettlementServiceImpl) clearGuard(ctx context.Context, txHash string) {
	if err := s.guard.Clear(ctx, txHash); err != nil {
		s.log.Warn().Err(err).Str("tx_hash", txHash).Msg("failed to clear proof guard mark")
	}
}

func sinceMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
