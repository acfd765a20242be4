package domain

import "time"

// RefreshToken is the long-lived opaque credential backing a session.
//
// TokenHash holds the opaque random secret itself, it is not a digest of
// anything. A token is usable only while RevokedAt is nil and ExpiresAt is in
// the future. Revocation is a tombstone: rows are never deleted by the auth
// core, so the session audit trail survives logout and rotation.
type RefreshToken struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	UserID string `json:"user_id" gorm:"index;size:36;not null"`
	User   User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	TokenHash string `json:"-" gorm:"size:64;uniqueIndex;not null"`

	DeviceName string `json:"device_name,omitempty"`
	IPAddress  string `json:"ip_address,omitempty"`

	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at" gorm:"index;not null"`
	RevokedAt  *time.Time `json:"revoked_at" gorm:"index"`
	LastUsedAt *time.Time `json:"last_used_at"`
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}
