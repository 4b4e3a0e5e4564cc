package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/agendahub/AB-BookingService/internal/domain"
	userRepo "github.com/agendahub/AB-BookingService/internal/infra/storage/user"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type fakeTokenManager struct{}

func (fakeTokenManager) Create(int64, string, string) (string, error) {
	return "token-123", nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(users ...*domain.User) *Service {
	repo := &fakeUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		repo.users[u.Email] = u
	}
	return NewService(repo, fakeTokenManager{}, nopLogger{})
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           1,
		Name:         "Иван",
		Email:        "ivan@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
		IsActive:     true,
	}
}

func TestLogin(t *testing.T) {
	svc := newTestService(testUser(t))

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "Ivan@Example.com", // регистр не важен
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-123", resp.Token)
	assert.Equal(t, int64(1), resp.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(testUser(t))

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ivan@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(testUser(t))

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	u := testUser(t)
	u.IsActive = false
	svc := newTestService(u)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ivan@example.com",
		Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestLogin_EmptyInput(t *testing.T) {
	svc := newTestService(testUser(t))

	_, err := svc.Login(context.Background(), &LoginRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
