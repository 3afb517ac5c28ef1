package repository

import (
	"context"
	"strings"
	"time"

	"github.com/faa35/UHFC/internal/domain"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	FullName     *string   `gorm:"column:full_name"`
	Phone        *string   `gorm:"column:phone"`
	Role         string    `gorm:"column:role;default:user"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (profileModel) TableName() string { return "profiles" }

func toDomainProfile(m profileModel) *domain.Profile {
	var fullName, phone string
	if m.FullName != nil {
		fullName = *m.FullName
	}
	if m.Phone != nil {
		phone = *m.Phone
	}

	return &domain.Profile{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FullName:     fullName,
		Phone:        phone,
		Role:         domain.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toProfileModel(p *domain.Profile) profileModel {
	email := strings.TrimSpace(strings.ToLower(p.Email))

	var fullName, phone *string
	if p.FullName != "" {
		v := p.FullName
		fullName = &v
	}
	if p.Phone != "" {
		v := p.Phone
		phone = &v
	}

	return profileModel{
		ID:           p.ID,
		Email:        email,
		PasswordHash: p.PasswordHash,
		FullName:     fullName,
		Phone:        phone,
		Role:         string(p.Role),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	m := toProfileModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProfile(m)
	return nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var m profileModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProfile(m), nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var m profileModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProfile(m), nil
}

func (r *ProfileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&profileModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

// GetRole returns only the role column; the admin gate calls this on every
// /admin request.
func (r *ProfileRepository) GetRole(ctx context.Context, id string) (string, error) {
	var role string
	tx := r.db.WithContext(ctx).Model(&profileModel{}).
		Select("role").
		Where("id = ?", id).
		Scan(&role)
	if tx.Error != nil {
		return "", tx.Error
	}
	if role == "" {
		return "", gorm.ErrRecordNotFound
	}
	return role, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	m := toProfileModel(p)
	m.UpdatedAt = time.Now().UTC()
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProfile(m)
	return nil
}
