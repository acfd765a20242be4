package repository

import (
	"context"
	"time"

	"taskhub/internal/domain"

	"gorm.io/gorm"
)

type TokenBlacklistRepository struct {
	db *gorm.DB
}

func NewTokenBlacklistRepository(db *gorm.DB) *TokenBlacklistRepository {
	return &TokenBlacklistRepository{db: db}
}

func (r *TokenBlacklistRepository) Create(ctx context.Context, t *domain.BlacklistedToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Exists checks the blacklist by exact token string.
func (r *TokenBlacklistRepository) Exists(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.BlacklistedToken{}).
		Where("token = ?", token).
		Count(&count).Error
	return count > 0, err
}

// DeleteExpired removes rows whose access token has passed its signature
// expiry anyway. Called by cmd/auth_cleanup only.
func (r *TokenBlacklistRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&domain.BlacklistedToken{})
	return tx.RowsAffected, tx.Error
}
