package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/agendahub/AB-BookingService/internal/domain"
	userRepo "github.com/agendahub/AB-BookingService/internal/infra/storage/user"
	"github.com/agendahub/AB-BookingService/internal/service/users/models"
)

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	f.nextID++
	u.ID = f.nextID
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]*domain.User, error) {
	result := make([]*domain.User, 0, len(f.users))
	for _, u := range f.users {
		result = append(result, u)
	}
	return result, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return userRepo.ErrUserNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return userRepo.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) CountAdmins(_ context.Context) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.Role == domain.RoleAdmin && u.IsActive {
			count++
		}
	}
	return count, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeUserRepo) {
	repo := &fakeUserRepo{users: map[int64]*domain.User{}}
	return NewService(repo, nopLogger{}), repo
}

func TestRegister(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "Иван",
		Email:    "Ivan@Example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.RoleClient), resp.Role)
	assert.True(t, resp.IsActive)
	// Email нормализуется к нижнему регистру
	assert.Equal(t, "ivan@example.com", resp.Email)

	// Пароль сохраняется как bcrypt-хэш
	stored := repo.users[resp.ID]
	err = bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1"))
	assert.NoError(t, err)
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "Иван", Email: "ivan@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &models.RegisterRequest{
		Name: "Другой Иван", Email: "IVAN@example.com", Password: "secret2",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "", Email: "ivan@example.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(context.Background(), &models.RegisterRequest{
		Name: "Иван", Email: "not-an-email", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(context.Background(), &models.RegisterRequest{
		Name: "Иван", Email: "ivan@example.com", Password: "short",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_AdminRole(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Create(context.Background(), &models.CreateUserRequest{
		Name: "Админ", Email: "admin@example.com", Password: "secret1", Role: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleAdmin), resp.Role)

	_, err = svc.Create(context.Background(), &models.CreateUserRequest{
		Name: "Кто-то", Email: "x@example.com", Password: "secret1", Role: "manager",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_LastAdminGuard(t *testing.T) {
	svc, repo := newTestService()

	admin, err := svc.Create(context.Background(), &models.CreateUserRequest{
		Name: "Админ", Email: "admin@example.com", Password: "secret1", Role: "admin",
	})
	require.NoError(t, err)

	// Единственный администратор защищён от удаления
	err = svc.Delete(context.Background(), admin.ID)
	assert.ErrorIs(t, err, ErrLastAdmin)

	second, err := svc.Create(context.Background(), &models.CreateUserRequest{
		Name: "Второй", Email: "admin2@example.com", Password: "secret1", Role: "admin",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.NotContains(t, repo.users, admin.ID)
	assert.Contains(t, repo.users, second.ID)
}

func TestUpdate_LastAdminDemotion(t *testing.T) {
	svc, _ := newTestService()

	admin, err := svc.Create(context.Background(), &models.CreateUserRequest{
		Name: "Админ", Email: "admin@example.com", Password: "secret1", Role: "admin",
	})
	require.NoError(t, err)

	// Понижение роли последнего администратора запрещено
	_, err = svc.Update(context.Background(), admin.ID, &models.UpdateUserRequest{
		Name: "Админ", Email: "admin@example.com", Role: "client", IsActive: true,
	})
	assert.ErrorIs(t, err, ErrLastAdmin)

	// Деактивация тоже
	_, err = svc.Update(context.Background(), admin.ID, &models.UpdateUserRequest{
		Name: "Админ", Email: "admin@example.com", Role: "admin", IsActive: false,
	})
	assert.ErrorIs(t, err, ErrLastAdmin)
}

func TestUpdate_PasswordOnlyWhenProvided(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "Иван", Email: "ivan@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	oldHash := repo.users[created.ID].PasswordHash

	_, err = svc.Update(context.Background(), created.ID, &models.UpdateUserRequest{
		Name: "Иван Петров", Email: "ivan@example.com", Role: "client", IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, oldHash, repo.users[created.ID].PasswordHash)

	_, err = svc.Update(context.Background(), created.ID, &models.UpdateUserRequest{
		Name: "Иван Петров", Email: "ivan@example.com", Password: "newsecret",
		Role: "client", IsActive: true,
	})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, repo.users[created.ID].PasswordHash)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
