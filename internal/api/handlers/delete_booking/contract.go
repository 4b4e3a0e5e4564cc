package delete_booking

import (
	"context"

	"github.com/agendahub/AB-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	SoftDelete(ctx context.Context, id int64, actor models.Actor, reason string) error
	HardDelete(ctx context.Context, id int64, actor models.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
