package repository

import (
	"context"
	"time"

	"taskhub/internal/domain"

	"gorm.io/gorm"
)

// RefreshTokenRepository provides DB access for refresh tokens.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Consume atomically revokes the token identified by its opaque value and
// returns the revoked row. The revocation runs as a single guarded UPDATE
// (revoked_at IS NULL AND expires_at > now), so two concurrent refresh calls
// racing on the same token can never both win: the loser sees zero rows
// affected and gets gorm.ErrRecordNotFound. Missing, revoked and expired
// tokens are deliberately indistinguishable here.
func (r *RefreshTokenRepository) Consume(ctx context.Context, tokenHash string, now time.Time) (*domain.RefreshToken, error) {
	tx := r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", tokenHash, now).
		Updates(map[string]any{"revoked_at": now, "last_used_at": now})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var t domain.RefreshToken
	if err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// RevokeOldestActive tombstones the least-recently-issued usable token of
// the user. A user with no active tokens is a no-op.
func (r *RefreshTokenRepository) RevokeOldestActive(ctx context.Context, userID string, now time.Time) error {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, now).
		Order("created_at ASC").
		First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", t.ID).
		Update("revoked_at", now).Error
}

// RevokeAllForUser tombstones every active token of the user in one update.
func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string, now time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error
}

// CountActiveForUser reports how many usable tokens the user still holds.
func (r *RefreshTokenRepository) CountActiveForUser(ctx context.Context, userID string, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, now).
		Count(&count).Error
	return count, err
}

// DeleteExpired physically removes tokens that expired, plus tombstones old
// enough to be useless for auditing. Called by cmd/auth_cleanup only.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time, revokedBefore time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Or("revoked_at IS NOT NULL AND revoked_at < ?", revokedBefore).
		Delete(&domain.RefreshToken{})
	return tx.RowsAffected, tx.Error
}
