package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/AB-BookingService/internal/domain"
	bookingRepo "github.com/agendahub/AB-BookingService/internal/infra/storage/booking"
	userRepo "github.com/agendahub/AB-BookingService/internal/infra/storage/user"
	"github.com/agendahub/AB-BookingService/internal/service/bookings/models"
	"github.com/agendahub/AB-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if b.IsDeleted() && !filter.IncludeDeleted {
			continue
		}
		if b.Status == domain.StatusCancelled && !filter.IncludeInactive {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) SoftDelete(_ context.Context, id int64, deletedBy int64, reason string) error {
	b, ok := f.bookings[id]
	if !ok || b.IsDeleted() {
		return bookingRepo.ErrBookingNotFound
	}
	b.DeletedAt = ptr.Ptr(time.Now())
	b.DeletedBy = &deletedBy
	b.DeletedReason = &reason
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.bookings, id)
	return nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) // Monday noon

	client = models.Actor{ID: 10, Role: domain.RoleClient}
	other  = models.Actor{ID: 11, Role: domain.RoleClient}
	admin  = models.Actor{ID: 99, Role: domain.RoleAdmin}
)

func futureBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		UserID:          10,
		ServiceID:       1,
		WorkBlockID:     1,
		BookingDate:     time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:00",
		DurationMinutes: 30,
		Status:          domain.StatusPending,
	}
}

func newTestService(bookings ...*domain.Booking) (*Service, *fakeBookingRepo) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		10: {ID: 10, Role: domain.RoleClient},
		11: {ID: 11, Role: domain.RoleClient},
		99: {ID: 99, Role: domain.RoleAdmin},
	}}

	svc := NewService(repo, users, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: testNow}
	return svc, repo
}

func TestGetByID_AccessControl(t *testing.T) {
	svc, _ := newTestService(futureBooking(1))

	resp, err := svc.GetByID(context.Background(), 1, client)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = svc.GetByID(context.Background(), 1, other)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 1, admin)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 404, client)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_DeletedHiddenFromClient(t *testing.T) {
	b := futureBooking(1)
	b.DeletedAt = ptr.Ptr(testNow)
	svc, _ := newTestService(b)

	_, err := svc.GetByID(context.Background(), 1, client)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	resp, err := svc.GetByID(context.Background(), 1, admin)
	require.NoError(t, err)
	assert.NotNil(t, resp.DeletedAt)
}

func TestConfirm(t *testing.T) {
	svc, repo := newTestService(futureBooking(1))

	err := svc.Confirm(context.Background(), 1, client)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.Confirm(context.Background(), 1, admin)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)

	// Повторное подтверждение невозможно
	err = svc.Confirm(context.Background(), 1, admin)
	assert.ErrorIs(t, err, ErrCannotConfirm)
}

func TestCancel(t *testing.T) {
	svc, repo := newTestService(futureBooking(1))

	err := svc.Cancel(context.Background(), 1, other)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.Cancel(context.Background(), 1, client)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)

	err = svc.Cancel(context.Background(), 1, client)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_ConfirmedByAdmin(t *testing.T) {
	b := futureBooking(1)
	b.Status = domain.StatusConfirmed
	svc, repo := newTestService(b)

	err := svc.Cancel(context.Background(), 1, admin)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
}

func TestSoftDelete(t *testing.T) {
	svc, repo := newTestService(futureBooking(1))

	err := svc.SoftDelete(context.Background(), 1, client, "передумал")
	require.NoError(t, err)
	assert.True(t, repo.bookings[1].IsDeleted())
	assert.Equal(t, int64(10), *repo.bookings[1].DeletedBy)
	assert.Equal(t, "передумал", *repo.bookings[1].DeletedReason)
}

func TestSoftDelete_RefusalReasons(t *testing.T) {
	tests := []struct {
		name       string
		booking    *domain.Booking
		actor      models.Actor
		wantReason string
	}{
		{
			name: "already deleted",
			booking: func() *domain.Booking {
				b := futureBooking(1)
				b.DeletedAt = ptr.Ptr(testNow)
				return b
			}(),
			actor:      client,
			wantReason: domain.ReasonAlreadyDeleted,
		},
		{
			name:       "not owner",
			booking:    futureBooking(1),
			actor:      other,
			wantReason: domain.ReasonNotOwner,
		},
		{
			name: "not pending",
			booking: func() *domain.Booking {
				b := futureBooking(1)
				b.Status = domain.StatusConfirmed
				return b
			}(),
			actor:      client,
			wantReason: domain.ReasonNotPending,
		},
		{
			name: "already started",
			booking: func() *domain.Booking {
				b := futureBooking(1)
				b.BookingDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
				b.StartTime = "11:00" // сейчас 12:00
				return b
			}(),
			actor:      client,
			wantReason: domain.ReasonAlreadyStarted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(tt.booking)

			err := svc.SoftDelete(context.Background(), 1, tt.actor, "")
			var refused *DeleteRefusedError
			require.ErrorAs(t, err, &refused)
			assert.Equal(t, tt.wantReason, refused.Reason)
		})
	}
}

func TestSoftDelete_AdminCanDeleteForeign(t *testing.T) {
	svc, repo := newTestService(futureBooking(1))

	err := svc.SoftDelete(context.Background(), 1, admin, "клиент не придет")
	require.NoError(t, err)
	assert.True(t, repo.bookings[1].IsDeleted())
	assert.Equal(t, int64(99), *repo.bookings[1].DeletedBy)
}

func TestHardDelete(t *testing.T) {
	svc, repo := newTestService(futureBooking(1))

	err := svc.HardDelete(context.Background(), 1, client)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.HardDelete(context.Background(), 1, admin)
	require.NoError(t, err)
	assert.Empty(t, repo.bookings)

	err = svc.HardDelete(context.Background(), 1, admin)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListAll_AdminOnly(t *testing.T) {
	cancelled := futureBooking(2)
	cancelled.Status = domain.StatusCancelled
	svc, _ := newTestService(futureBooking(1), cancelled)

	_, err := svc.ListAll(context.Background(), &models.ListBookingsRequest{}, client)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.ListAll(context.Background(), &models.ListBookingsRequest{}, admin)
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	status := "cancelled"
	resp, err = svc.ListAll(context.Background(), &models.ListBookingsRequest{Status: &status}, admin)
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "cancelled", resp.Bookings[0].Status)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc, _ := newTestService(futureBooking(1))

	bad := "unknown"
	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 10,
		Status: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
