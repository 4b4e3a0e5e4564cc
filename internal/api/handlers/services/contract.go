package services

import (
	"context"

	"github.com/agendahub/AB-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error)
	List(ctx context.Context) (*models.ServiceListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
