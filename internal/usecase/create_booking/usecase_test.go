package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/AB-BookingService/internal/domain"
	serviceRepo "github.com/agendahub/AB-BookingService/internal/infra/storage/service"
	"github.com/agendahub/AB-BookingService/pkg/types"
)

// memBookingRepo потокобезопасный in-memory репозиторий бронирований
type memBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (r *memBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if filter.StartDate != nil && b.BookingDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && b.BookingDate.After(*filter.EndDate) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *memBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	booking.ID = r.nextID
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	r.bookings = append(r.bookings, booking)
	return booking, nil
}

type fakeWorkBlockRepo struct {
	blocks map[int][]*domain.WorkBlock
}

func (f *fakeWorkBlockRepo) GetByDay(_ context.Context, dayOfWeek int) ([]*domain.WorkBlock, error) {
	return f.blocks[dayOfWeek], nil
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

// mutexTxManager имитирует сериализуемую транзакцию: проверка и вставка
// выполняются под одним мьютексом, как под блокировкой FOR UPDATE
type mutexTxManager struct {
	mu sync.Mutex
}

func (m *mutexTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
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
	testNow    = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) // Monday
	testMonday = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)  // следующий понедельник
)

func newTestUseCase(repo *memBookingRepo) *UseCase {
	blocks := map[int][]*domain.WorkBlock{
		domain.DayMonday: {
			{ID: 1, DayOfWeek: domain.DayMonday, StartTime: "09:00", EndTime: "18:00"},
		},
	}
	services := map[int64]*domain.Service{
		1: {ID: 1, Name: "Стрижка", DurationMinutes: 30},
	}

	uc := NewUseCase(
		repo,
		&fakeWorkBlockRepo{blocks: blocks},
		&fakeServiceRepo{services: services},
		&mutexTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	repo := &memBookingRepo{}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    10,
		ServiceID: 1,
		Date:      testMonday,
		StartTime: "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, int64(1), resp.WorkBlockID)
}

func TestExecute_ConflictRejected(t *testing.T) {
	repo := &memBookingRepo{}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 10, ServiceID: 1, Date: testMonday, StartTime: "10:00",
	})
	require.NoError(t, err)

	// Частичное пересечение 10:15-10:45 с занятым 10:00-10:30
	_, err = uc.Execute(context.Background(), &Request{
		UserID: 11, ServiceID: 1, Date: testMonday, StartTime: "10:15",
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_AdjacentBookingAllowed(t *testing.T) {
	repo := &memBookingRepo{}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 10, ServiceID: 1, Date: testMonday, StartTime: "10:00",
	})
	require.NoError(t, err)

	// 10:30-11:00 граничит с 10:00-10:30 и не конфликтует
	_, err = uc.Execute(context.Background(), &Request{
		UserID: 11, ServiceID: 1, Date: testMonday, StartTime: "10:30",
	})
	assert.NoError(t, err)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	repo := &memBookingRepo{}
	repo.bookings = append(repo.bookings, &domain.Booking{
		ID: 99, BookingDate: testMonday, StartTime: "10:00",
		DurationMinutes: 30, Status: domain.StatusCancelled,
	})
	repo.nextID = 99
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 10, ServiceID: 1, Date: testMonday, StartTime: "10:00",
	})
	assert.NoError(t, err)
}

func TestExecute_OutsideWorkHours(t *testing.T) {
	repo := &memBookingRepo{}
	uc := newTestUseCase(repo)

	// Интервал 17:45-18:15 выходит за конец блока 18:00
	_, err := uc.Execute(context.Background(), &Request{
		UserID: 10, ServiceID: 1, Date: testMonday, StartTime: "17:45",
	})
	assert.ErrorIs(t, err, ErrOutsideWorkHours)

	// Вторник - рабочих блоков нет вообще
	tuesday := testMonday.AddDate(0, 0, 1)
	_, err = uc.Execute(context.Background(), &Request{
		UserID: 10, ServiceID: 1, Date: tuesday, StartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrOutsideWorkHours)
}

func TestExecute_UnknownService(t *testing.T) {
	repo := &memBookingRepo{}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 10, ServiceID: 42, Date: testMonday, StartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_PastDateRejected(t *testing.T) {
	repo := &memBookingRepo{}
	uc := newTestUseCase(repo)

	past := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		UserID: 10, ServiceID: 1, Date: past, StartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)

	// Сегодня, но время уже прошло (сейчас 12:00)
	_, err = uc.Execute(context.Background(), &Request{
		UserID: 10, ServiceID: 1, Date: testNow, StartTime: "11:00",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidInput(t *testing.T) {
	repo := &memBookingRepo{}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 0, ServiceID: 1, Date: testMonday, StartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		UserID: 10, ServiceID: 1, Date: testMonday, StartTime: "25:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Два конкурентных запроса на один слот: ровно один должен пройти
func TestExecute_ConcurrentRequestsSameSlot(t *testing.T) {
	repo := &memBookingRepo{}
	uc := newTestUseCase(repo)

	const attempts = 10
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &Request{
				UserID:    int64(i + 1),
				ServiceID: 1,
				Date:      testMonday,
				StartTime: "10:00",
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
		}
	}
	assert.Equal(t, 1, succeeded)

	require.Len(t, repo.bookings, 1)
	assert.Equal(t, types.TimeString("10:00"), repo.bookings[0].StartTime)
}
