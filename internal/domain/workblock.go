package domain

import (
	"time"

	"github.com/agendahub/AB-BookingService/pkg/types"
)

// Days of week, 0=Monday .. 6=Sunday
const (
	DayMonday = iota
	DayTuesday
	DayWednesday
	DayThursday
	DayFriday
	DaySaturday
	DaySunday
)

// WorkBlock represents a recurring weekly window during which bookings may be placed
type WorkBlock struct {
	ID        int64
	DayOfWeek int // 0=Monday .. 6=Sunday
	StartTime types.TimeString
	EndTime   types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidDay returns true if the day index is within [0,6]
func IsValidDay(day int) bool {
	return day >= DayMonday && day <= DaySunday
}

// Covers returns true if the interval [start, end) lies entirely within the block
func (w *WorkBlock) Covers(start, end types.TimeString) bool {
	return !start.IsBefore(w.StartTime) && !end.IsAfter(w.EndTime)
}

// Overlaps returns true if the block window intersects the interval [start, end)
// Интервалы, которые только граничат, пересечением не считаются
func (w *WorkBlock) Overlaps(start, end types.TimeString) bool {
	return w.StartTime.IsBefore(end) && w.EndTime.IsAfter(start)
}

// WeekdayIndex converts time.Weekday to the 0=Monday .. 6=Sunday convention
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
