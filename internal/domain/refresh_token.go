package domain

import "time"

// RefreshToken is one link in a rotation family. Only the sha256 hash of the
// opaque token is stored; presenting a used or revoked token marks the whole
// family as compromised.
type RefreshToken struct {
	ID              int64      `json:"id"`
	UserID          string     `json:"user_id"`
	TokenHash       string     `json:"-"`
	FamilyID        string     `json:"-"`
	RotatedFrom     *int64     `json:"-"`
	ExpiresAt       time.Time  `json:"expires_at"`
	UsedAt          *time.Time `json:"-"`
	RevokedAt       *time.Time `json:"-"`
	ReuseDetectedAt *time.Time `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
}
