package create_booking

import (
	"time"

	"github.com/agendahub/AB-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя, создающего бронирование
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала (например, "10:00")
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	UserID          int64
	ServiceID       int64
	WorkBlockID     int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
