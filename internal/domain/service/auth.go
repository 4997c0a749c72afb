package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Badsnus/cu-clubs-web/internal/domain/common/errorz"
	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
	"github.com/Badsnus/cu-clubs-web/internal/domain/utils/location"
	"github.com/Badsnus/cu-clubs-web/pkg/logger/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type authUserStorage interface {
	Get(ctx context.Context, id uint) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// SessionStore remembers sessions that were closed before they expired.
type SessionStore interface {
	Revoke(ctx context.Context, sessionID string, expiration time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// Claims are carried by the session cookie.
type Claims struct {
	UserID   uint   `json:"uid"`
	FullName string `json:"name"`
	Admin    bool   `json:"admin"`
	jwt.RegisteredClaims
}

type AuthService struct {
	logger *types.Logger

	userStorage  authUserStorage
	sessionStore SessionStore

	secret     []byte
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthService(logger *types.Logger, userStorage authUserStorage, sessionStore SessionStore, secret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		logger:       logger,
		userStorage:  userStorage,
		sessionStore: sessionStore,
		secret:       []byte(secret),
		sessionTTL:   sessionTTL,
		now:          location.Now,
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login checks the credentials and issues a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := s.userStorage.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, errorz.ErrUserNotFound) {
			return "", nil, errorz.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errorz.ErrInvalidCredentials
	}
	if user.IsBanned {
		return "", nil, errorz.ErrUserBanned
	}

	now := s.now()
	claims := Claims{
		UserID:   user.ID,
		FullName: user.FullName,
		Admin:    user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}

	s.logger.Infof("(user: %d) logged in", user.ID)
	return token, user, nil
}

// ParseSession validates a session token and checks that it was not revoked.
func (s *AuthService) ParseSession(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errorz.ErrInvalidSession
	}

	if s.sessionStore != nil {
		revoked, err := s.sessionStore.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check session %s: %w", claims.ID, err)
		}
		if revoked {
			return nil, errorz.ErrSessionRevoked
		}
	}
	return claims, nil
}

// Logout revokes the session for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	if s.sessionStore == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.sessionStore.Revoke(ctx, claims.ID, claims.ExpiresAt.Time.Sub(s.now())); err != nil {
		return err
	}
	s.logger.Infof("(user: %d) logged out", claims.UserID)
	return nil
}
