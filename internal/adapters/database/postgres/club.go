package postgres

import (
	"context"
	"errors"

	"github.com/Badsnus/cu-clubs-web/internal/domain/common/errorz"
	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClubStorage struct {
	db *gorm.DB
}

func NewClubStorage(db *gorm.DB) *ClubStorage {
	return &ClubStorage{
		db: db,
	}
}

func (s *ClubStorage) Create(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	err := s.db.WithContext(ctx).Create(club).Error
	return club, err
}

func (s *ClubStorage) Get(ctx context.Context, id string) (*entity.Club, error) {
	if !validID(id) {
		return nil, errorz.ErrClubNotFound
	}

	var club entity.Club
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&club).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrClubNotFound
	}
	return &club, err
}

// Delete is a function that deletes a club and all its events from the database.
func (s *ClubStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Delete(&entity.Club{}).Error; err != nil {
			return err
		}
		return tx.Where("club_id = ?", id).Delete(&entity.Event{}).Error
	})
}

func (s *ClubStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Club{}).Count(&count).Error
	return count, err
}

func (s *ClubStorage) GetWithPagination(ctx context.Context, offset, limit int, order string) ([]entity.Club, error) {
	var clubs []entity.Club
	err := s.db.WithContext(ctx).Order(order).Offset(offset).Limit(limit).Find(&clubs).Error
	return clubs, err
}

// validID reports whether id is a uuid. Malformed ids never match a row, and
// postgres rejects them with a syntax error instead of an empty result.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
