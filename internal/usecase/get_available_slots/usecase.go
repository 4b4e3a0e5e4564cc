package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/agendahub/AB-BookingService/internal/domain"
	serviceRepo "github.com/agendahub/AB-BookingService/internal/infra/storage/service"
	"github.com/agendahub/AB-BookingService/pkg/ptr"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	workBlockRepo WorkBlockRepository
	serviceRepo   ServiceRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	workBlockRepo WorkBlockRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		workBlockRepo: workBlockRepo,
		serviceRepo:   serviceRepo,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Для неизвестной услуги, дня без рабочих блоков или даты в прошлом возвращается пустой список
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	emptyResponse := &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     []domain.Slot{},
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата в прошлом - слотов нет
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 4. Получаем услугу: неизвестная услуга дает пустой список, а не ошибку
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return emptyResponse, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Получаем рабочие блоки на день недели
	dayOfWeek := domain.WeekdayIndex(req.Date)
	blocks, err := uc.workBlockRepo.GetByDay(ctx, dayOfWeek)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get work blocks for day=%d: %v", dayOfWeek, err)
		return nil, fmt.Errorf("%w: failed to get work blocks: %v", ErrInternal, err)
	}

	if len(blocks) == 0 {
		uc.logger.Info("GetAvailableSlots: no work blocks on day=%d", dayOfWeek)
		return emptyResponse, nil
	}

	// 6. Генерируем слоты по каждому блоку с шагом, равным длительности услуги
	// Блоки приходят отсортированными по началу, поэтому слоты идут в хронологическом порядке
	allSlots := make([]domain.Slot, 0)
	for _, block := range blocks {
		blockSlots, err := generateBlockSlots(block, service.DurationMinutes)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to generate slots for block id=%d: %v", block.ID, err)
			return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}
		allSlots = append(allSlots, blockSlots...)
	}

	// 7. Для сегодняшней даты отбрасываем уже начавшиеся слоты
	allSlots = filterPastSlots(allSlots, req.Date, now)

	// 8. Получаем активные бронирования на эту дату
	filter := domain.BookingsFilter{
		StartDate: ptr.Ptr(req.Date),
		EndDate:   ptr.Ptr(req.Date),
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 9. Проставляем доступность по пересечениям с бронированиями
	slots := markAvailability(allSlots, bookings)

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%d, date=%s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}
