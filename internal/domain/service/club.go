package service

import (
	"context"

	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
)

type clubStorage interface {
	Count(ctx context.Context) (int64, error)
	GetWithPagination(ctx context.Context, offset, limit int, order string) ([]entity.Club, error)
}

type ClubService struct {
	storage clubStorage
}

func NewClubService(storage clubStorage) *ClubService {
	return &ClubService{
		storage: storage,
	}
}

func (s *ClubService) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}

func (s *ClubService) GetWithPagination(ctx context.Context, offset, limit int) ([]entity.Club, error) {
	return s.storage.GetWithPagination(ctx, offset, limit, "name ASC")
}
