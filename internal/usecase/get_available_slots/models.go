package get_available_slots

import (
	"time"

	"github.com/agendahub/AB-BookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date      time.Time     // Дата, на которую запрашивались слоты
	ServiceID int64         // ID услуги
	Slots     []domain.Slot // Список слотов с признаком доступности
}
