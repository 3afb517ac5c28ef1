package repository

import (
	"context"
	"time"

	"github.com/faa35/UHFC/internal/domain"

	"gorm.io/gorm"
)

// RefreshTokenRepository provides DB access for refresh tokens.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

type refreshTokenModel struct {
	ID              int64      `gorm:"column:id;primaryKey;autoIncrement"`
	UserID          string     `gorm:"column:user_id;index"`
	TokenHash       string     `gorm:"column:token_hash;uniqueIndex"`
	FamilyID        string     `gorm:"column:family_id;index"`
	RotatedFrom     *int64     `gorm:"column:rotated_from"`
	ExpiresAt       time.Time  `gorm:"column:expires_at"`
	UsedAt          *time.Time `gorm:"column:used_at"`
	RevokedAt       *time.Time `gorm:"column:revoked_at"`
	ReuseDetectedAt *time.Time `gorm:"column:reuse_detected_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
}

func (refreshTokenModel) TableName() string { return "refresh_tokens" }

func toDomainRefreshToken(m refreshTokenModel) *domain.RefreshToken {
	return &domain.RefreshToken{
		ID:              m.ID,
		UserID:          m.UserID,
		TokenHash:       m.TokenHash,
		FamilyID:        m.FamilyID,
		RotatedFrom:     m.RotatedFrom,
		ExpiresAt:       m.ExpiresAt,
		UsedAt:          m.UsedAt,
		RevokedAt:       m.RevokedAt,
		ReuseDetectedAt: m.ReuseDetectedAt,
		CreatedAt:       m.CreatedAt,
	}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	m := refreshTokenModel{
		UserID:      t.UserID,
		TokenHash:   t.TokenHash,
		FamilyID:    t.FamilyID,
		RotatedFrom: t.RotatedFrom,
		ExpiresAt:   t.ExpiresAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*t = *toDomainRefreshToken(m)
	return nil
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	var m refreshTokenModel
	tx := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRefreshToken(m), nil
}

// MarkRotated spends a token: it was exchanged for a successor and may never
// be presented again.
func (r *RefreshTokenRepository) MarkRotated(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&refreshTokenModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"used_at": now, "revoked_at": now}).Error
}

func (r *RefreshTokenRepository) MarkReuse(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&refreshTokenModel{}).
		Where("id = ?", id).
		Update("reuse_detected_at", now).Error
}

func (r *RefreshTokenRepository) RevokeFamily(ctx context.Context, familyID string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&refreshTokenModel{}).
		Where("family_id = ? AND revoked_at IS NULL", familyID).
		Update("revoked_at", now).Error
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&refreshTokenModel{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now).Error
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&refreshTokenModel{}).Error
}
