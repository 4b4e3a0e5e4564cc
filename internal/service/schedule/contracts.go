package schedule

import (
	"context"

	"github.com/agendahub/AB-BookingService/internal/domain"
)

// WorkBlockRepository интерфейс репозитория рабочих блоков
type WorkBlockRepository interface {
	Create(ctx context.Context, block *domain.WorkBlock) (*domain.WorkBlock, error)
	GetByID(ctx context.Context, id int64) (*domain.WorkBlock, error)
	GetByDay(ctx context.Context, dayOfWeek int) ([]*domain.WorkBlock, error)
	List(ctx context.Context) ([]*domain.WorkBlock, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
