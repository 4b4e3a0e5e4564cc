package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agendahub/AB-BookingService/pkg/ptr"
)

func TestBooking_StatusTransitions(t *testing.T) {
	pending := &Booking{Status: StatusPending}
	confirmed := &Booking{Status: StatusConfirmed}
	cancelled := &Booking{Status: StatusCancelled}

	assert.True(t, pending.CanBeConfirmed())
	assert.True(t, pending.CanBeCancelled())

	assert.False(t, confirmed.CanBeConfirmed())
	assert.True(t, confirmed.CanBeCancelled())

	assert.False(t, cancelled.CanBeConfirmed())
	assert.False(t, cancelled.CanBeCancelled())

	deleted := &Booking{Status: StatusPending, DeletedAt: ptr.Ptr(time.Now())}
	assert.False(t, deleted.CanBeConfirmed())
	assert.False(t, deleted.CanBeCancelled())
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
	assert.False(t, (&Booking{Status: StatusPending, DeletedAt: ptr.Ptr(time.Now())}).IsActive())
}

func TestBooking_CanBeDeletedBy(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) // Monday noon
	owner := &User{ID: 10, Role: RoleClient}
	admin := &User{ID: 99, Role: RoleAdmin}
	stranger := &User{ID: 11, Role: RoleClient}

	future := func() *Booking {
		return &Booking{
			ID:              1,
			UserID:          10,
			BookingDate:     time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			StartTime:       "09:00",
			DurationMinutes: 30,
			Status:          StatusPending,
		}
	}

	tests := []struct {
		name       string
		booking    *Booking
		user       *User
		wantOK     bool
		wantReason string
	}{
		{name: "owner deletes future pending", booking: future(), user: owner, wantOK: true},
		{name: "admin deletes future pending", booking: future(), user: admin, wantOK: true},
		{name: "stranger refused", booking: future(), user: stranger, wantReason: ReasonNotOwner},
		{
			name: "already deleted",
			booking: func() *Booking {
				b := future()
				b.DeletedAt = ptr.Ptr(now)
				return b
			}(),
			user:       owner,
			wantReason: ReasonAlreadyDeleted,
		},
		{
			name: "confirmed refused",
			booking: func() *Booking {
				b := future()
				b.Status = StatusConfirmed
				return b
			}(),
			user:       owner,
			wantReason: ReasonNotPending,
		},
		{
			name: "past booking refused",
			booking: func() *Booking {
				b := future()
				b.BookingDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
				b.StartTime = "09:00" // раньше полудня
				return b
			}(),
			user:       owner,
			wantReason: ReasonAlreadyStarted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := tt.booking.CanBeDeletedBy(tt.user, now)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestBooking_StartDateTime(t *testing.T) {
	b := &Booking{
		BookingDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:30",
	}
	assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), b.StartDateTime())
}

func TestBooking_EndTime(t *testing.T) {
	b := &Booking{StartTime: "09:30", DurationMinutes: 45}
	end, err := b.EndTime()
	assert.NoError(t, err)
	assert.Equal(t, "10:15", end.String())
}
