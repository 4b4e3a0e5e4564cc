package get_available_slots

import (
	"fmt"
	"time"

	"github.com/agendahub/AB-BookingService/internal/domain"
	getAvailableSlots "github.com/agendahub/AB-BookingService/internal/usecase/get_available_slots"
)

const (
	statusAvailable   = "available"
	statusUnavailable = "unavailable"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string          `json:"date"`
	ServiceID int64           `json:"serviceId"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time     string `json:"time"`     // "10:00"
	Datetime string `json:"datetime"` // "2026-03-09 10:00"
	Status   string `json:"status"`   // available | unavailable
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	date := resp.Date.Format(domain.DateFormat)

	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		status := statusUnavailable
		if slot.Available {
			status = statusAvailable
		}
		slots[i] = AvailableSlot{
			Time:     slot.StartTime.String(),
			Datetime: fmt.Sprintf("%s %s", date, slot.StartTime),
			Status:   status,
		}
	}

	return &AvailableSlotsResponse{
		Date:      date,
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(serviceID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
