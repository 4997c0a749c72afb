package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/Badsnus/cu-clubs-web/internal/domain/common/errorz"
	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
	"gorm.io/gorm"
)

type UserStorage struct {
	db *gorm.DB
}

func NewUserStorage(db *gorm.DB) *UserStorage {
	return &UserStorage{
		db: db,
	}
}

// Create is a function that creates a new user in the database.
func (s *UserStorage) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	user.Email = strings.ToLower(user.Email)
	err := s.db.WithContext(ctx).Create(user).Error
	return user, err
}

// Get is a function that gets a user from the database by id.
func (s *UserStorage) Get(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrUserNotFound
	}
	return &user, err
}

// GetByEmail looks a user up by email, case-insensitively.
func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrUserNotFound
	}
	return &user, err
}

// Update is a function that updates a user in the database.
func (s *UserStorage) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := s.db.WithContext(ctx).Save(user).Error
	return user, err
}
