package domain

import "github.com/agendahub/AB-BookingService/pkg/types"

// Slot represents a candidate booking interval generated within a work block
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
}
