package domain

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04" // YYYY-MM-DD HH:MM
)

// Business validation constants
const (
	MinDurationMinutes      = 5
	MaxDurationMinutes      = 480 // 8 hours
	MaxServiceNameLength    = 100
	MaxDeletedReasonLength  = 500
	MinPasswordLength       = 6
)

// ActiveStatuses статусы, занимающие слот в календаре
// Используются при подсчёте пересечений интервалов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
