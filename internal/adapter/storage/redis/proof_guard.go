package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// defaultMarkTTL bounds how long a fast-path mark outlives its redemption
// attempt. The database unique index stays authoritative forever; the TTL
// only limits how long a mark orphaned by a crash can shadow a hash.
const defaultMarkTTL = 10 * time.Minute

// ProofGuard implements ports.ProofGuard using Redis SET NX. It is the
// best-effort fast path in front of the payment_proofs unique index.
type ProofGuard struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewProofGuard creates a new Redis-backed proof guard.
func NewProofGuard(client *goredis.Client) *ProofGuard {
	return &ProofGuard{
		client: client,
		prefix: "proof:",
		ttl:    defaultMarkTTL,
	}
}

// MarkIfNew atomically records the hash, returning false when it was already
// marked by a concurrent or earlier redemption attempt.
func (g *ProofGuard) MarkIfNew(ctx context.Context, txHash string) (bool, error) {
	result, err := g.client.SetArgs(ctx, g.prefix+txHash, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  g.ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists — hash was already marked
			return false, nil
		}
		return false, fmt.Errorf("redis proof mark: %w", err)
	}
	return result == "OK", nil
}

// Clear removes the mark so the hash can be redeemed again after a refund
// or a failed commit.
func (g *ProofGuard) Clear(ctx context.Context, txHash string) error {
	if err := g.client.Del(ctx, g.prefix+txHash).Err(); err != nil {
		return fmt.Errorf("redis proof clear: %w", err)
	}
	return nil
}
