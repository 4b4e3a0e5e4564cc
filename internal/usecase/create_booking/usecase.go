package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/agendahub/AB-BookingService/internal/domain"
	serviceRepo "github.com/agendahub/AB-BookingService/internal/infra/storage/service"
	"github.com/agendahub/AB-BookingService/pkg/ptr"
	"github.com/agendahub/AB-BookingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	workBlockRepo WorkBlockRepository
	serviceRepo   ServiceRepository
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	workBlockRepo WorkBlockRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		workBlockRepo: workBlockRepo,
		serviceRepo:   serviceRepo,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка конфликтов и вставка выполняются в сериализуемой транзакции,
// чтобы два конкурентных запроса на один слот не прошли оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, service=%d, date=%s, time=%s",
		req.UserID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем, что бронирование в будущем
	now := uc.timeProvider.Now()
	if err := validateNotInPast(req, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем услугу - ее длительность определяет интервал бронирования
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: interval exceeds day bounds: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result *domain.Booking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем активные бронирования на эту дату с блокировкой (FOR UPDATE)
		filter := domain.BookingsFilter{
			StartDate: ptr.Ptr(req.Date),
			EndDate:   ptr.Ptr(req.Date),
		}

		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 4.2. Проверяем конфликты до проверки рабочих часов
		if conflict := findOverlappingBooking(req.StartTime, endTime, bookings); conflict != nil {
			uc.logger.Warn("CreateBooking: slot %s-%s conflicts with booking id=%d",
				req.StartTime, endTime, conflict.ID)
			return ErrSlotNotAvailable
		}

		// 4.3. Интервал должен помещаться целиком в один рабочий блок
		dayOfWeek := domain.WeekdayIndex(req.Date)
		blocks, err := uc.workBlockRepo.GetByDay(txCtx, dayOfWeek)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get work blocks for day=%d: %v", dayOfWeek, err)
			return fmt.Errorf("%w: failed to get work blocks: %v", ErrInternal, err)
		}

		block := findCoveringBlock(blocks, req.StartTime, endTime)
		if block == nil {
			uc.logger.Warn("CreateBooking: slot %s-%s is outside work hours on day=%d",
				req.StartTime, endTime, dayOfWeek)
			return ErrOutsideWorkHours
		}

		// 4.4. Создаем бронирование в статусе pending
		booking := &domain.Booking{
			UserID:          req.UserID,
			ServiceID:       req.ServiceID,
			WorkBlockID:     block.ID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		ServiceID:       result.ServiceID,
		WorkBlockID:     result.WorkBlockID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// findOverlappingBooking возвращает первое активное бронирование, пересекающееся с интервалом
// Граничащие интервалы пересечением не считаются
func findOverlappingBooking(start, end types.TimeString, bookings []*domain.Booking) *domain.Booking {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}

		if booking.StartTime.IsBefore(end) && bookingEnd.IsAfter(start) {
			return booking
		}
	}

	return nil
}

// findCoveringBlock возвращает рабочий блок, целиком покрывающий интервал
func findCoveringBlock(blocks []*domain.WorkBlock, start, end types.TimeString) *domain.WorkBlock {
	for _, block := range blocks {
		if block.Covers(start, end) {
			return block
		}
	}

	return nil
}
