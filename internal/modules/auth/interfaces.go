package auth

import (
	"context"

	"github.com/faa35/UHFC/internal/domain"
)

// ProfileRepository — only the methods the auth service uses
type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, p *domain.Profile) error
}

// RefreshTokenRepository — storage for the rotation families
type RefreshTokenRepository interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error)
	MarkRotated(ctx context.Context, id int64) error
	MarkReuse(ctx context.Context, id int64) error
	RevokeFamily(ctx context.Context, familyID string) error
	Revoke(ctx context.Context, id int64) error
}
