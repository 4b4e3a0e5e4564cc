package work_blocks

import (
	"context"

	"github.com/agendahub/AB-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	Create(ctx context.Context, req *models.CreateWorkBlockRequest) (*models.WorkBlockResponse, error)
	GetByID(ctx context.Context, id int64) (*models.WorkBlockResponse, error)
	List(ctx context.Context) (*models.WorkBlockListResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
