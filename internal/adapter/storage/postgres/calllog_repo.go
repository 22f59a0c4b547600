package postgres

import (
	"context"
	"fmt"

	"axiom-gateway/internal/core/domain"
)

// CallLogRepo implements ports.CallLogRepository.
type CallLogRepo struct {
	pool Pool
}

// NewCallLogRepo creates a new CallLogRepo.
func NewCallLogRepo(pool Pool) *CallLogRepo {
	return &CallLogRepo{pool: pool}
}

// Append inserts one call log entry. Entries are never updated or deleted.
func (r *CallLogRepo) Append(ctx context.Context, entry *domain.CallLogEntry) error {
	query := `INSERT INTO call_logs (id, service_id, caller_wallet, request_method,
		response_code, latency_ms, paid, tx_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.ServiceID, entry.CallerWallet, entry.RequestMethod,
		entry.ResponseCode, entry.LatencyMs, entry.Paid, entry.TxHash, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert call log: %w", err)
	}
	return nil
}
