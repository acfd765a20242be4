package domain

import "time"

// BlacklistedToken invalidates an access token before its natural signature
// expiry. A row matching the exact token string means the token is rejected
// regardless of signature validity. Rows are insert-only; expired ones are
// removed by cmd/auth_cleanup.
type BlacklistedToken struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	UserID    string    `json:"user_id" gorm:"index;size:36;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (BlacklistedToken) TableName() string { return "token_blacklist" }
