package get_available_slots

import (
	"time"

	"github.com/agendahub/AB-BookingService/internal/domain"
	"github.com/agendahub/AB-BookingService/pkg/types"
)

// generateBlockSlots генерирует слоты внутри одного рабочего блока
// Слоты идут подряд с шагом, равным длительности услуги
// Неполный хвост блока, в который услуга не помещается целиком, отбрасывается
func generateBlockSlots(block *domain.WorkBlock, durationMinutes int) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0)
	current := block.StartTime

	for current.IsBefore(block.EndTime) {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(block.EndTime) {
			break
		}

		slots = append(slots, domain.Slot{
			StartTime: current,
			EndTime:   slotEnd,
		})
		current = slotEnd
	}

	return slots, nil
}

// markAvailability проставляет признак доступности для каждого слота
// Слот недоступен, если с ним пересекается хотя бы одно активное бронирование
func markAvailability(slots []domain.Slot, bookings []*domain.Booking) []domain.Slot {
	result := make([]domain.Slot, len(slots))

	for i, slot := range slots {
		result[i] = slot
		result[i].Available = !hasOverlappingBooking(slot.StartTime, slot.EndTime, bookings)
	}

	return result
}

// hasOverlappingBooking проверяет, пересекается ли слот с каким-либо активным бронированием
// Пересечение есть только если интервалы действительно накладываются друг на друга
// Если бронирование заканчивается ровно там, где начинается слот (или наоборот) - это НЕ пересечение
//
// Примеры:
// - Слот 11:30-12:00, бронирование 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Слот 11:30-12:00, бронирование 11:00-11:30 → НЕТ пересечения (граничат)
// - Слот 11:30-12:00, бронирование 12:00-12:30 → НЕТ пересечения (граничат)
func hasOverlappingBooking(slotStart, slotEnd types.TimeString, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		// Пропускаем неактивные бронирования
		if !booking.IsActive() {
			continue
		}

		bookingStart := booking.StartTime
		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			// Если не можем вычислить конец бронирования, пропускаем
			continue
		}

		// Используем строгие неравенства, чтобы граничные случаи не считались пересечением
		if bookingStart.IsBefore(slotEnd) && bookingEnd.IsAfter(slotStart) {
			return true
		}
	}

	return false
}

// filterPastSlots отбрасывает слоты, которые уже начались
// Применяется только когда запрошенная дата - сегодня
func filterPastSlots(slots []domain.Slot, requestDate, now time.Time) []domain.Slot {
	if !isSameDay(requestDate, now) {
		return slots
	}

	currentTime := types.NewTimeString(now)
	filtered := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.StartTime.IsAfter(currentTime) {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
