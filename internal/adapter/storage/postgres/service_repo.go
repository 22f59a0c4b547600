package postgres

import (
	"context"
	"errors"
	"fmt"

	"axiom-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ServiceRepo implements ports.ServiceRegistry.
type ServiceRepo struct {
	pool Pool
}

// NewServiceRepo creates a new ServiceRepo.
func NewServiceRepo(pool Pool) *ServiceRepo {
	return &ServiceRepo{pool: pool}
}

const serviceColumns = `id, name, upstream_url, method, price_per_req, provider_wallet,
		auth_header, input_type, status, total_calls, success_calls, created_at`

// GetByID fetches a listing by UUID. Returns nil without error when no
// listing holds the id.
func (r *ServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceListing, error) {
	query := fmt.Sprintf(`SELECT %s FROM services WHERE id = $1`, serviceColumns)

	s := &domain.ServiceListing{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.UpstreamURL, &s.Method, &s.PricePerReq, &s.ProviderWallet,
		&s.AuthHeader, &s.InputType, &s.Status, &s.TotalCalls, &s.SuccessCalls, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return s, nil
}

// IncrementCounters adds to the listing's call counters in one statement so
// concurrent executes never lose increments.
func (r *ServiceRepo) IncrementCounters(ctx context.Context, id uuid.UUID, calls, successes int64) error {
	query := `UPDATE services
		SET total_calls = total_calls + $1, success_calls = success_calls + $2
		WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, calls, successes, id)
	if err != nil {
		return fmt.Errorf("increment service counters: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("service not found: %s", id)
	}
	return nil
}
