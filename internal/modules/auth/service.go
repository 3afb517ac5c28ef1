package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/faa35/UHFC/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID, role string) (string, error)
}

// Service contains all business logic for authentication
type Service struct {
	profiles           ProfileRepository
	tokens             RefreshTokenRepository
	jwt                jwtService
	refreshTokenPepper string
	refreshTTL         time.Duration
}

type LoginResult struct {
	Profile      *domain.Profile
	AccessToken  string
	RefreshToken string
}

func NewService(
	profiles ProfileRepository,
	tokens RefreshTokenRepository,
	jwt jwtService,
	refreshTokenPepper string,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		profiles:           profiles,
		tokens:             tokens,
		jwt:                jwt,
		refreshTokenPepper: refreshTokenPepper,
		refreshTTL:         refreshTTL,
	}
}

// Signup creates the credential and the profile row in one step. The profile
// carries the phone number staff call to confirm bookings, so it is required
// up front.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*domain.Profile, error) {
	exists, err := s.profiles.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         domain.RoleUser,
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	profile.PasswordHash = ""
	return profile, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	profile, err := s.profiles.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwt.GenerateToken(profile.ID, string(profile.Role))
	if err != nil {
		return nil, err
	}

	refreshRaw, refreshHash, err := generateOpaqueRefreshToken(s.refreshTokenPepper)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Create(ctx, &domain.RefreshToken{
		UserID:    profile.ID,
		TokenHash: refreshHash,
		FamilyID:  uuid.NewString(),
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}); err != nil {
		return nil, err
	}

	profile.PasswordHash = ""
	return &LoginResult{Profile: profile, AccessToken: accessToken, RefreshToken: refreshRaw}, nil
}

// RefreshSession rotates the presented refresh token. Presenting a spent or
// revoked token revokes the whole family: someone is replaying tokens.
func (s *Service) RefreshSession(ctx context.Context, refreshRaw string) (userID, role, accessToken, refreshToken string, err error) {
	now := time.Now()
	hash := hashTokenWithPepper(refreshRaw, s.refreshTokenPepper)

	current, err := s.tokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", "", "", ErrInvalidRefreshToken
		}
		return "", "", "", "", err
	}

	if !current.ExpiresAt.After(now) {
		return "", "", "", "", ErrInvalidRefreshToken
	}

	if current.UsedAt != nil || current.RevokedAt != nil {
		_ = s.tokens.MarkReuse(ctx, current.ID)
		if revokeErr := s.tokens.RevokeFamily(ctx, current.FamilyID); revokeErr != nil {
			return "", "", "", "", revokeErr
		}
		return "", "", "", "", ErrRefreshTokenReused
	}

	profile, err := s.profiles.GetByID(ctx, current.UserID)
	if err != nil {
		return "", "", "", "", err
	}

	accessToken, err = s.jwt.GenerateToken(profile.ID, string(profile.Role))
	if err != nil {
		return "", "", "", "", err
	}

	newRaw, newHash, err := generateOpaqueRefreshToken(s.refreshTokenPepper)
	if err != nil {
		return "", "", "", "", err
	}

	if err := s.tokens.MarkRotated(ctx, current.ID); err != nil {
		return "", "", "", "", err
	}
	rotatedFrom := current.ID
	if err := s.tokens.Create(ctx, &domain.RefreshToken{
		UserID:      current.UserID,
		TokenHash:   newHash,
		FamilyID:    current.FamilyID,
		RotatedFrom: &rotatedFrom,
		ExpiresAt:   now.Add(s.refreshTTL),
	}); err != nil {
		return "", "", "", "", err
	}

	return profile.ID, string(profile.Role), accessToken, newRaw, nil
}

func (s *Service) Logout(ctx context.Context, refreshRaw string) error {
	hash := hashTokenWithPepper(refreshRaw, s.refreshTokenPepper)

	token, err := s.tokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	return s.tokens.Revoke(ctx, token.ID)
}

func (s *Service) GetCurrentProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.PasswordHash = ""
	return profile, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		profile.FullName = req.FullName
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	profile.PasswordHash = ""
	return profile, nil
}

func generateOpaqueRefreshToken(pepper string) (raw string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	hash = hashTokenWithPepper(raw, pepper)
	return raw, hash, nil
}

func hashTokenWithPepper(raw, pepper string) string {
	sum := sha256.Sum256([]byte(raw + pepper))
	return hex.EncodeToString(sum[:])
}
