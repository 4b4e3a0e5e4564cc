package domain

import (
	"time"

	"github.com/agendahub/AB-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents an appointment on the shared calendar
type Booking struct {
	ID              int64
	UserID          int64
	ServiceID       int64
	WorkBlockID     int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Soft delete: record is logically removed but kept for audit
	DeletedAt     *time.Time
	DeletedBy     *int64
	DeletedReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDeleted returns true if the booking has been soft-deleted
func (b *Booking) IsDeleted() bool {
	return b.DeletedAt != nil
}

// IsActive returns true if the booking occupies its slot on the calendar
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && !b.IsDeleted()
}

// CanBeConfirmed returns true if the booking can transition to confirmed
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending && !b.IsDeleted()
}

// CanBeCancelled returns true if the booking can transition to cancelled
func (b *Booking) CanBeCancelled() bool {
	return (b.Status == StatusPending || b.Status == StatusConfirmed) && !b.IsDeleted()
}

// StartDateTime combines the booking date and start time into a single instant
func (b *Booking) StartDateTime() time.Time {
	minutes, err := b.StartTime.Minutes()
	if err != nil {
		minutes = 0
	}
	y, m, d := b.BookingDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, b.BookingDate.Location()).
		Add(time.Duration(minutes) * time.Minute)
}

// EndTime returns the end of the occupied interval [start, start+duration)
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// Причины отказа в мягком удалении, возвращаются пользователю как есть
const (
	ReasonAlreadyDeleted = "бронирование уже удалено"
	ReasonNotOwner       = "удалить бронирование может только его владелец или администратор"
	ReasonNotPending     = "удалить можно только бронирование в статусе ожидания"
	ReasonAlreadyStarted = "нельзя удалить бронирование, которое уже началось или прошло"
)

// CanBeDeletedBy checks soft-delete eligibility for the given user.
// Returns false with a specific human-readable reason for the first
// violated condition.
func (b *Booking) CanBeDeletedBy(user *User, now time.Time) (bool, string) {
	if b.IsDeleted() {
		return false, ReasonAlreadyDeleted
	}
	if b.UserID != user.ID && !user.IsAdmin() {
		return false, ReasonNotOwner
	}
	if b.Status != StatusPending {
		return false, ReasonNotPending
	}
	if !b.StartDateTime().After(now) {
		return false, ReasonAlreadyStarted
	}
	return true, ""
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	UserID          *int64         // Фильтр по владельцу (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
	IncludeDeleted  bool           // Включать ли мягко удалённые записи (только для админа)
}
