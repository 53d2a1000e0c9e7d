package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/partyklinest/cleaning-backend/internal/models"
	"github.com/partyklinest/cleaning-backend/internal/repository"
)

// mockAuthRepository реализует AuthRepository для тестов.
type mockAuthRepository struct {
	usersByEmail map[string]*models.User
	usersByOID   map[string]*models.User
	sessions     map[string]*models.Session
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		usersByEmail: make(map[string]*models.User),
		usersByOID:   make(map[string]*models.User),
		sessions:     make(map[string]*models.Session),
	}
}

func (m *mockAuthRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.usersByEmail[user.Email] = user
	m.usersByOID[user.OID] = user
	return nil
}

func (m *mockAuthRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) GetByOID(ctx context.Context, oid string) (*models.User, error) {
	if user, ok := m.usersByOID[oid]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) UpdateLastLoginAt(ctx context.Context, oid string) error {
	if user, ok := m.usersByOID[oid]; ok {
		now := time.Now()
		user.LastLoginAt = &now
	}
	return nil
}

func (m *mockAuthRepository) CreateSession(ctx context.Context, session *models.Session) error {
	session.CreatedAt = time.Now()
	m.sessions[session.RefreshToken] = session
	return nil
}

func (m *mockAuthRepository) GetSession(ctx context.Context, refreshToken string) (*models.Session, error) {
	if session, ok := m.sessions[refreshToken]; ok {
		return session, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	delete(m.sessions, refreshToken)
	return nil
}

func newAuthServiceForTest() (*AuthService, *mockAuthRepository) {
	repo := newMockAuthRepository()
	tokens := NewTokenManager("access-secret-for-tests", "refresh-secret-for-tests", 15*time.Minute, 24*time.Hour)
	return NewAuthService(repo, tokens), repo
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo := newAuthServiceForTest()
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{
		Email:    "cleaner@example.com",
		Password: "strongpass1",
		Role:     models.RoleCleaner,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.User.OID)
	assert.Equal(t, models.RoleCleaner, result.User.Role)
	assert.NotEmpty(t, result.TokenPair.AccessToken)
	assert.Len(t, repo.sessions, 1)
}

func TestAuthService_Register_DefaultsToClient(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{
		Email:    "client@example.com",
		Password: "strongpass1",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleClient, result.User.Role)
}

func TestAuthService_Register_RejectsAdminRole(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Email:    "admin@example.com",
		Password: "strongpass1",
		Role:     models.RoleAdmin,
	})

	assert.Error(t, err)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "strongpass1"})
	assert.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "strongpass1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "уже зарегистрирован")
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "user@example.com", Password: "strongpass1"})
	assert.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "user@example.com", Password: "wrong"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "неверный email или пароль")
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "user@example.com", Password: "strongpass1"})
	assert.NoError(t, err)

	result, err := svc.Login(ctx, LoginInput{Email: "user@example.com", Password: "strongpass1"})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.TokenPair.RefreshToken)
	assert.NotNil(t, repo.usersByEmail["user@example.com"].LastLoginAt)
}

func TestAuthService_Refresh_RotatesSession(t *testing.T) {
	svc, repo := newAuthServiceForTest()
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "user@example.com", Password: "strongpass1"})
	assert.NoError(t, err)

	oldToken := registered.TokenPair.RefreshToken
	pair, err := svc.Refresh(ctx, oldToken)

	assert.NoError(t, err)
	assert.NotEqual(t, oldToken, pair.RefreshToken)

	_, oldAlive := repo.sessions[oldToken]
	assert.False(t, oldAlive)
}

func TestAuthService_Refresh_UnknownToken(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.Refresh(ctx, "not-a-token")
	assert.Error(t, err)
}
