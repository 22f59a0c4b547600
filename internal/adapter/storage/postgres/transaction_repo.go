package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"axiom-gateway/internal/core/domain"
	"axiom-gateway/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a new transaction within a database transaction, alongside
// the payment proof that funds it.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (id, service_id, service_name, payer_wallet, provider_wallet,
		amount_paid, platform_fee, provider_earning, tx_hash, payout_tx_hash, status, response_code,
		created_at, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.ServiceID, t.ServiceName, t.PayerWallet, t.ProviderWallet,
		t.AmountPaid, t.PlatformFee, t.ProviderEarning, t.TxHash, t.PayoutTxHash,
		t.Status, t.ResponseCode, t.CreatedAt, t.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByTxHash fetches a transaction by its funding payment hash.
func (r *TransactionRepo) GetByTxHash(ctx context.Context, txHash string) (*domain.Transaction, error) {
	query := `SELECT id, service_id, service_name, payer_wallet, provider_wallet,
		amount_paid, platform_fee, provider_earning, tx_hash, payout_tx_hash, status, response_code,
		created_at, settled_at
		FROM transactions WHERE tx_hash = $1`

	t := &domain.Transaction{}
	err := r.pool.QueryRow(ctx, query, txHash).Scan(
		&t.ID, &t.ServiceID, &t.ServiceName, &t.PayerWallet, &t.ProviderWallet,
		&t.AmountPaid, &t.PlatformFee, &t.ProviderEarning, &t.TxHash, &t.PayoutTxHash,
		&t.Status, &t.ResponseCode, &t.CreatedAt, &t.SettledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// UpdateByTxHash writes the settlement outcome once the delivery verdict is
// known.
func (r *TransactionRepo) UpdateByTxHash(ctx context.Context, txHash string, update ports.TransactionUpdate) error {
	now := time.Now()
	query := `UPDATE transactions
		SET status = $1, payout_tx_hash = $2, response_code = $3, settled_at = $4
		WHERE tx_hash = $5`

	tag, err := r.pool.Exec(ctx, query, update.Status, update.PayoutTxHash, update.ResponseCode, now, txHash)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %s", txHash)
	}
	return nil
}
