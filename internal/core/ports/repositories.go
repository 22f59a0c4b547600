package ports

import (
	"context"
	"errors"

	"axiom-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrProofExists is returned by ProofRegistry.Put when a live proof already
// holds the transaction hash. The store-level unique constraint maps to this
// sentinel so concurrent redemption races resolve to exactly one winner.
var ErrProofExists = errors.New("payment proof already exists")

// ServiceRegistry exposes the marketplace listings to the gateway. The
// registry is owned elsewhere; the engine only reads listings and bumps
// their counters.
type ServiceRegistry interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceListing, error)
	// IncrementCounters adds to the listing's total-call and success counters.
	IncrementCounters(ctx context.Context, id uuid.UUID, calls, successes int64) error
}

// ProofRegistry enforces at-most-once redemption of a payment proof.
// Methods accepting pgx.Tx run inside the escrow-commit transaction.
type ProofRegistry interface {
	Exists(ctx context.Context, txHash string) (bool, error)
	// Put inserts a proof; returns ErrProofExists on a duplicate hash.
	Put(ctx context.Context, tx pgx.Tx, proof *domain.PaymentProof) error
	// Delete removes a proof so the hash can be redeemed again after a
	// failed delivery.
	Delete(ctx context.Context, txHash string) error
}

// TransactionRepository persists monetary event records.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	GetByTxHash(ctx context.Context, txHash string) (*domain.Transaction, error)
	UpdateByTxHash(ctx context.Context, txHash string, update TransactionUpdate) error
}

// TransactionUpdate carries the settlement fields written once the delivery
// outcome is known.
type TransactionUpdate struct {
	Status       domain.TransactionStatus
	PayoutTxHash *string // nil when the broadcast itself failed
	ResponseCode int
}

// CallLogRepository appends observability records; entries are never mutated.
type CallLogRepository interface {
	Append(ctx context.Context, entry *domain.CallLogEntry) error
}

// ProofGuard is the fast-path replay check in front of the authoritative
// unique index. Best-effort: callers fall through to the registry on error.
type ProofGuard interface {
	// MarkIfNew atomically records the hash, returning false when it was
	// already marked.
	MarkIfNew(ctx context.Context, txHash string) (bool, error)
	// Clear removes the mark, mirroring ProofRegistry.Delete on refund.
	Clear(ctx context.Context, txHash string) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
