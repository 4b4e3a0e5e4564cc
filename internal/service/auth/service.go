package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	userRepo "github.com/agendahub/AB-BookingService/internal/infra/storage/user"
	userModels "github.com/agendahub/AB-BookingService/internal/service/users/models"
)

// LoginRequest запрос на вход
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse ответ с токеном доступа и данными пользователя
type LoginResponse struct {
	Token string                  `json:"token"`
	User  userModels.UserResponse `json:"user"`
}

// Service сервис аутентификации
type Service struct {
	userRepo UserRepository
	tokens   TokenManager
	logger   Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(userRepo UserRepository, tokens TokenManager, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login проверяет учетные данные и выпускает токен доступа
// Неверный email и неверный пароль дают одну и ту же ошибку
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	s.logger.Info("Login: attempt for email=%s", email)

	if email == "" || req.Password == "" {
		s.logger.Warn("Login: empty email or password")
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: email=%s not found", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.logger.Warn("Login: user id=%d is deactivated", user.ID)
		return nil, ErrUserInactive
	}

	token, err := s.tokens.Create(user.ID, string(user.Role), user.Email)
	if err != nil {
		s.logger.Error("Login: failed to create token for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - failed to create token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user id=%d logged in", user.ID)
	return &LoginResponse{
		Token: token,
		User:  *userModels.FromDomainUser(user),
	}, nil
}
