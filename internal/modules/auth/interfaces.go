package auth

import (
	"context"
	"time"

	"taskhub/internal/domain"
)

// UserRepositoryInterface lists only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}

// RefreshTokenRepositoryInterface is session-token storage. Consume must be
// atomic: revoke-if-active, gorm.ErrRecordNotFound when nothing matched.
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	Consume(ctx context.Context, tokenHash string, now time.Time) (*domain.RefreshToken, error)
	RevokeOldestActive(ctx context.Context, userID string, now time.Time) error
	RevokeAllForUser(ctx context.Context, userID string, now time.Time) error
}

// TokenBlacklistRepositoryInterface is an insert-only revocation list for
// access tokens.
type TokenBlacklistRepositoryInterface interface {
	Create(ctx context.Context, t *domain.BlacklistedToken) error
	Exists(ctx context.Context, token string) (bool, error)
}
