package postgres

import (
	"context"
	"errors"
	"fmt"

	"axiom-gateway/internal/core/domain"
	"axiom-gateway/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for a unique-constraint
// violation; it is the authoritative double-spend signal.
const uniqueViolation = "23505"

// ProofRepo implements ports.ProofRegistry. The tx_hash primary key is what
// actually enforces at-most-once redemption; everything in front of it is an
// optimization.
type ProofRepo struct {
	pool Pool
}

// NewProofRepo creates a new ProofRepo.
func NewProofRepo(pool Pool) *ProofRepo {
	return &ProofRepo{pool: pool}
}

// Exists reports whether a live proof holds the hash.
func (r *ProofRepo) Exists(ctx context.Context, txHash string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM payment_proofs WHERE tx_hash = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, txHash).Scan(&exists); err != nil {
		return false, fmt.Errorf("check proof exists: %w", err)
	}
	return exists, nil
}

// Put inserts a proof inside the escrow-commit transaction. A duplicate hash
// maps to ports.ErrProofExists; concurrent redemption races resolve to
// exactly one winner here.
func (r *ProofRepo) Put(ctx context.Context, tx pgx.Tx, proof *domain.PaymentProof) error {
	query := `INSERT INTO payment_proofs (tx_hash, service_id, created_at) VALUES ($1, $2, $3)`

	_, err := tx.Exec(ctx, query, proof.TxHash, proof.ServiceID, proof.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ports.ErrProofExists
		}
		return fmt.Errorf("insert payment proof: %w", err)
	}
	return nil
}

// Delete releases the hash for legitimate re-redemption after a refund.
func (r *ProofRepo) Delete(ctx context.Context, txHash string) error {
	query := `DELETE FROM payment_proofs WHERE tx_hash = $1`

	if _, err := r.pool.Exec(ctx, query, txHash); err != nil {
		return fmt.Errorf("delete payment proof: %w", err)
	}
	return nil
}
