package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Badsnus/cu-clubs-web/internal/domain/dto"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Storage caches club reports for exports and emails. Each club has a
// generation counter; Delete bumps it, which orphans every report stored
// under an older generation until its TTL runs out.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

// normalizeID returns the canonical form of a club uuid, so ids that differ
// only in case share one key.
func normalizeID(clubID string) string {
	id, err := uuid.Parse(clubID)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(clubID))
	}
	return id.String()
}

func generationKey(clubID string) string {
	return "report:generation:" + normalizeID(clubID)
}

func key(clubID string, generation int64) string {
	return fmt.Sprintf("report:%s:%d", normalizeID(clubID), generation)
}

// Generation returns the current generation of a club's cached report.
func (s *Storage) Generation(ctx context.Context, clubID string) (int64, error) {
	generation, err := s.redis.Get(ctx, generationKey(clubID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}

// Get returns the cached report of the current generation, or nil if there is none.
func (s *Storage) Get(ctx context.Context, clubID string) (*dto.ClubReport, error) {
	generation, err := s.Generation(ctx, clubID)
	if err != nil {
		return nil, err
	}

	data, err := s.redis.Get(ctx, key(clubID, generation)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var report dto.ClubReport
	if err = json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Storage) Set(ctx context.Context, report *dto.ClubReport, generation int64, expiration time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, key(report.Club.ID, generation), data, expiration).Err()
}

func (s *Storage) Delete(ctx context.Context, clubID string) error {
	return s.redis.Incr(ctx, generationKey(clubID)).Err()
}
