package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistPrefix = "token_denylist:"

// TokenDenylist records revoked token IDs until their natural expiry.
// A nil client turns every call into a no-op.
type TokenDenylist struct {
	rdb *redis.Client
	now func() time.Time
}

// NewTokenDenylist creates a denylist backed by rdb.
func NewTokenDenylist(rdb *redis.Client) *TokenDenylist {
	return &TokenDenylist{rdb: rdb, now: time.Now}
}

// Enabled reports whether revocations are persisted.
func (d *TokenDenylist) Enabled() bool {
	return d != nil && d.rdb != nil
}

// Revoke marks jti as revoked until expiresAt.
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if !d.Enabled() || jti == "" {
		return nil
	}
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.rdb.Set(ctx, denylistPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti has been revoked.
func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if !d.Enabled() || jti == "" {
		return false, nil
	}
	err := d.rdb.Get(ctx, denylistPrefix+jti).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("check token revocation: %w", err)
	}
}
