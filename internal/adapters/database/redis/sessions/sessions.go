package sessions

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage keeps the ids of sessions that were logged out before their token
// expired. Entries live exactly as long as the token would have.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func key(sessionID string) string {
	return "revoked:" + sessionID
}

func (s *Storage) Revoke(ctx context.Context, sessionID string, expiration time.Duration) error {
	if expiration <= 0 {
		return nil
	}
	return s.redis.Set(ctx, key(sessionID), 1, expiration).Err()
}

func (s *Storage) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.redis.Exists(ctx, key(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
