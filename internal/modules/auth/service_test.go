package auth

import (
	"context"
	"testing"
	"time"

	"github.com/faa35/UHFC/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mock repositories
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) MarkRotated(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) MarkReuse(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeFamily(ctx context.Context, familyID string) error {
	args := m.Called(ctx, familyID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateToken(userID, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

const testPepper = "test-pepper"

func TestService_Signup_Success(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockTokens := new(MockRefreshTokenRepository)
	mockJWT := new(MockJWTService)

	mockProfiles.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
	mockProfiles.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockProfiles, mockTokens, mockJWT, testPepper, time.Hour)

	profile, err := service.Signup(context.Background(), SignupRequest{
		Email:    "new@example.com",
		Password: "secret-password",
		FullName: "New User",
		Phone:    "+1-555-0100",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleUser, profile.Role)
	assert.Equal(t, "new@example.com", profile.Email)
	assert.Empty(t, profile.PasswordHash)

	created := mockProfiles.Calls[1].Arguments.Get(1).(*domain.Profile)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "secret-password", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret-password")))
}

func TestService_Signup_EmailExists(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockProfiles.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	service := NewService(mockProfiles, new(MockRefreshTokenRepository), new(MockJWTService), testPepper, time.Hour)

	_, err := service.Signup(context.Background(), SignupRequest{
		Email:    "taken@example.com",
		Password: "secret-password",
		FullName: "Dup User",
		Phone:    "+1-555-0100",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	mockProfiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Signup_RaceLoserGetsEmailExists(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockProfiles.On("ExistsByEmail", mock.Anything, "racer@example.com").Return(false, nil)
	mockProfiles.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	service := NewService(mockProfiles, new(MockRefreshTokenRepository), new(MockJWTService), testPepper, time.Hour)

	_, err := service.Signup(context.Background(), SignupRequest{
		Email:    "racer@example.com",
		Password: "secret-password",
		FullName: "Racer",
		Phone:    "+1-555-0100",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Login_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)

	mockProfiles := new(MockProfileRepository)
	mockProfiles.On("GetByEmail", mock.Anything, "user@example.com").Return(&domain.Profile{
		ID:           "user-1",
		Email:        "user@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}, nil)

	mockTokens := new(MockRefreshTokenRepository)
	mockTokens.On("Create", mock.Anything, mock.Anything).Return(nil)

	mockJWT := new(MockJWTService)
	mockJWT.On("GenerateToken", "user-1", "user").Return("access-token", nil)

	service := NewService(mockProfiles, mockTokens, mockJWT, testPepper, time.Hour)

	result, err := service.Login(context.Background(), LoginRequest{
		Email:    "User@Example.com",
		Password: "correct-password",
	})

	assert.NoError(t, err)
	assert.Equal(t, "access-token", result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Empty(t, result.Profile.PasswordHash)

	stored := mockTokens.Calls[0].Arguments.Get(1).(*domain.RefreshToken)
	assert.Equal(t, "user-1", stored.UserID)
	assert.NotEmpty(t, stored.FamilyID)
	// Only the peppered hash hits storage.
	assert.NotEqual(t, result.RefreshToken, stored.TokenHash)
}

func TestService_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)

	mockProfiles := new(MockProfileRepository)
	mockProfiles.On("GetByEmail", mock.Anything, "user@example.com").Return(&domain.Profile{
		ID:           "user-1",
		PasswordHash: string(hash),
	}, nil)

	service := NewService(mockProfiles, new(MockRefreshTokenRepository), new(MockJWTService), testPepper, time.Hour)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockProfiles.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockProfiles, new(MockRefreshTokenRepository), new(MockJWTService), testPepper, time.Hour)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_RefreshSession_RotatesToken(t *testing.T) {
	hash := hashTokenWithPepper("refresh-raw", testPepper)

	mockTokens := new(MockRefreshTokenRepository)
	mockTokens.On("GetByHash", mock.Anything, hash).Return(&domain.RefreshToken{
		ID:        7,
		UserID:    "user-1",
		TokenHash: hash,
		FamilyID:  "fam-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	mockTokens.On("MarkRotated", mock.Anything, int64(7)).Return(nil)
	mockTokens.On("Create", mock.Anything, mock.Anything).Return(nil)

	mockProfiles := new(MockProfileRepository)
	mockProfiles.On("GetByID", mock.Anything, "user-1").Return(&domain.Profile{
		ID:   "user-1",
		Role: domain.RoleAdmin,
	}, nil)

	mockJWT := new(MockJWTService)
	mockJWT.On("GenerateToken", "user-1", "admin").Return("new-access", nil)

	service := NewService(mockProfiles, mockTokens, mockJWT, testPepper, time.Hour)

	userID, role, access, refresh, err := service.RefreshSession(context.Background(), "refresh-raw")

	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "admin", role)
	assert.Equal(t, "new-access", access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, "refresh-raw", refresh)

	var created *domain.RefreshToken
	for _, call := range mockTokens.Calls {
		if call.Method == "Create" {
			created = call.Arguments.Get(1).(*domain.RefreshToken)
		}
	}
	assert.Equal(t, "fam-1", created.FamilyID)
	assert.Equal(t, int64(7), *created.RotatedFrom)
}

func TestService_RefreshSession_ReuseRevokesFamily(t *testing.T) {
	hash := hashTokenWithPepper("spent-raw", testPepper)
	used := time.Now().Add(-time.Minute)

	mockTokens := new(MockRefreshTokenRepository)
	mockTokens.On("GetByHash", mock.Anything, hash).Return(&domain.RefreshToken{
		ID:        7,
		UserID:    "user-1",
		TokenHash: hash,
		FamilyID:  "fam-1",
		UsedAt:    &used,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	mockTokens.On("MarkReuse", mock.Anything, int64(7)).Return(nil)
	mockTokens.On("RevokeFamily", mock.Anything, "fam-1").Return(nil)

	service := NewService(new(MockProfileRepository), mockTokens, new(MockJWTService), testPepper, time.Hour)

	_, _, _, _, err := service.RefreshSession(context.Background(), "spent-raw")

	assert.ErrorIs(t, err, ErrRefreshTokenReused)
	mockTokens.AssertCalled(t, "RevokeFamily", mock.Anything, "fam-1")
}

func TestService_RefreshSession_Expired(t *testing.T) {
	hash := hashTokenWithPepper("old-raw", testPepper)

	mockTokens := new(MockRefreshTokenRepository)
	mockTokens.On("GetByHash", mock.Anything, hash).Return(&domain.RefreshToken{
		ID:        7,
		UserID:    "user-1",
		TokenHash: hash,
		FamilyID:  "fam-1",
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)

	service := NewService(new(MockProfileRepository), mockTokens, new(MockJWTService), testPepper, time.Hour)

	_, _, _, _, err := service.RefreshSession(context.Background(), "old-raw")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestService_RefreshSession_UnknownToken(t *testing.T) {
	mockTokens := new(MockRefreshTokenRepository)
	mockTokens.On("GetByHash", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(new(MockProfileRepository), mockTokens, new(MockJWTService), testPepper, time.Hour)

	_, _, _, _, err := service.RefreshSession(context.Background(), "never-issued")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}
