package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetLedger records consumed password-reset token IDs in Redis so a
// reset token is good for exactly one use. Entries expire with the
// token itself, keeping the keyspace bounded.
type ResetLedger struct{ RDB *redis.Client }

func NewResetLedger(rdb *redis.Client) *ResetLedger { return &ResetLedger{RDB: rdb} }

// Consume marks a token ID as used. It returns true when this call is
// the first use and false when the token was already consumed.
func (l *ResetLedger) Consume(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return l.RDB.SetNX(ctx, "reset:used:"+tokenID, 1, ttl).Result()
}
