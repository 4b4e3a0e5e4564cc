package domain

import "time"

// Service represents a bookable service definition
type Service struct {
	ID              int64
	Name            string // unique
	Description     *string
	DurationMinutes int // > 0, also the slot step for this service

	CreatedAt time.Time
	UpdatedAt time.Time
}
