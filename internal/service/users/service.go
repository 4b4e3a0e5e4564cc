package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/agendahub/AB-BookingService/internal/domain"
	userRepo "github.com/agendahub/AB-BookingService/internal/infra/storage/user"
	"github.com/agendahub/AB-BookingService/internal/service/users/models"
)

// Service сервис для работы с пользователями
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register регистрирует нового клиента
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	s.logger.Info("Register: registering user email=%s", req.Email)

	return s.create(ctx, req.Name, req.Email, req.Password, domain.RoleClient)
}

// Create создает пользователя с произвольной ролью
// Доступно только администратору
func (s *Service) Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	s.logger.Info("Create: creating user email=%s, role=%s", req.Email, req.Role)

	role, err := parseRole(req.Role)
	if err != nil {
		s.logger.Warn("Create: invalid role=%s", req.Role)
		return nil, err
	}

	return s.create(ctx, req.Name, req.Email, req.Password, role)
}

// GetByID получает пользователя по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.UserResponse, error) {
	s.logger.Info("GetByID: fetching user id=%d", id)

	user, err := s.getUser(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainUser(user), nil
}

// List получает всех пользователей
// Доступно только администратору
func (s *Service) List(ctx context.Context) (*models.UserListResponse, error) {
	s.logger.Info("List: fetching users")

	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d users", len(users))
	return models.FromDomainUserList(users), nil
}

// Update обновляет пользователя
// Понижение роли или деактивация последнего администратора запрещены
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.UserResponse, error) {
	s.logger.Info("Update: updating user id=%d", id)

	role, err := parseRole(req.Role)
	if err != nil {
		s.logger.Warn("Update: invalid role=%s", req.Role)
		return nil, err
	}

	email := normalizeEmail(req.Email)
	if err := validateUser(req.Name, email); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	user, err := s.getUser(ctx, id, "Update")
	if err != nil {
		return nil, err
	}

	// Проверка на последнего администратора
	losesAdmin := user.IsAdmin() && user.IsActive && (role != domain.RoleAdmin || !req.IsActive)
	if losesAdmin {
		if err := s.checkNotLastAdmin(ctx, "Update"); err != nil {
			return nil, err
		}
	}

	if email != user.Email {
		if err := s.checkEmailFree(ctx, email, id); err != nil {
			return nil, err
		}
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Email = email
	user.Role = role
	user.IsActive = req.IsActive

	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			s.logger.Warn("Update: password validation failed: %v", err)
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Update: repository error for user id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: user id=%d updated", id)
	return models.FromDomainUser(user), nil
}

// Delete удаляет пользователя
// Последний администратор не может быть удалён
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting user id=%d", id)

	user, err := s.getUser(ctx, id, "Delete")
	if err != nil {
		return err
	}

	if user.IsAdmin() && user.IsActive {
		if err := s.checkNotLastAdmin(ctx, "Delete"); err != nil {
			return err
		}
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("Delete: repository error for user id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: user id=%d deleted", id)
	return nil
}

func (s *Service) create(ctx context.Context, name, email, password string, role domain.UserRole) (*models.UserResponse, error) {
	email = normalizeEmail(email)
	if err := validateUser(name, email); err != nil {
		s.logger.Warn("create: validation failed: %v", err)
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		s.logger.Warn("create: password validation failed: %v", err)
		return nil, err
	}

	if err := s.checkEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	created, err := s.userRepo.Create(ctx, &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		s.logger.Error("create: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("create: user id=%d created with role=%s", created.ID, role)
	return models.FromDomainUser(created), nil
}

func (s *Service) getUser(ctx context.Context, id int64, op string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user id=%d not found", op, id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: repository error for user id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return user, nil
}

func (s *Service) checkEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil
		}
		s.logger.Error("checkEmailFree: repository error for email=%s: %v", email, err)
		return fmt.Errorf("%w: checkEmailFree - repository error: %v", ErrInternal, err)
	}

	if existing.ID != selfID {
		s.logger.Warn("checkEmailFree: email=%s is taken by user id=%d", email, existing.ID)
		return ErrEmailTaken
	}

	return nil
}

func (s *Service) checkNotLastAdmin(ctx context.Context, op string) error {
	count, err := s.userRepo.CountAdmins(ctx)
	if err != nil {
		s.logger.Error("%s: failed to count admins: %v", op, err)
		return fmt.Errorf("%w: %s - failed to count admins: %v", ErrInternal, op, err)
	}

	if count <= 1 {
		s.logger.Warn("%s: refusing to remove the last admin", op)
		return ErrLastAdmin
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateUser(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}

	return nil
}

func hashPassword(password string) (string, error) {
	if len(password) < domain.MinPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters",
			ErrInvalidInput, domain.MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: failed to hash password: %v", ErrInternal, err)
	}

	return string(hash), nil
}

func parseRole(role string) (domain.UserRole, error) {
	switch domain.UserRole(role) {
	case domain.RoleAdmin:
		return domain.RoleAdmin, nil
	case domain.RoleClient:
		return domain.RoleClient, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
}
