package auth

import (
	"context"

	"github.com/agendahub/AB-BookingService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenManager интерфейс для выпуска токенов доступа
type TokenManager interface {
	Create(userID int64, role, email string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
