package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/agendahub/AB-BookingService/internal/domain"
	bookingRepo "github.com/agendahub/AB-BookingService/internal/infra/storage/booking"
	userRepo "github.com/agendahub/AB-BookingService/internal/infra/storage/user"
	"github.com/agendahub/AB-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с жизненным циклом бронирований
type Service struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование, администратор - любое
// Мягко удалённые записи видны только администратору
func (s *Service) GetByID(ctx context.Context, id int64, actor models.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.ID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if booking.IsDeleted() && !actor.IsAdmin() {
		s.logger.Warn("GetByID: booking id=%d is deleted, hidden from user=%d", id, actor.ID)
		return nil, ErrBookingNotFound
	}

	if booking.UserID != actor.ID && !actor.IsAdmin() {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	filter := domain.BookingsFilter{
		UserID:          &req.UserID,
		IncludeInactive: true,
	}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// ListAll получает все бронирования с гибкой фильтрацией
// Доступно только администратору
func (s *Service) ListAll(ctx context.Context, req *models.ListBookingsRequest, actor models.Actor) (*models.BookingListResponse, error) {
	s.logger.Info("ListAll: fetching bookings for admin=%d", actor.ID)

	if !actor.IsAdmin() {
		s.logger.Warn("ListAll: access denied for user=%d", actor.ID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListAll: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAll: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает бронирование (pending -> confirmed)
// Доступно только администратору
func (s *Service) Confirm(ctx context.Context, id int64, actor models.Actor) error {
	s.logger.Info("Confirm: confirming booking id=%d by user=%d", id, actor.ID)

	if !actor.IsAdmin() {
		s.logger.Warn("Confirm: access denied for user=%d", actor.ID)
		return ErrAccessDenied
	}

	booking, err := s.getBooking(ctx, id, "Confirm")
	if err != nil {
		return err
	}

	if !booking.CanBeConfirmed() {
		s.logger.Warn("Confirm: booking id=%d cannot be confirmed, status=%s", id, booking.Status)
		return ErrCannotConfirm
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusConfirmed); err != nil {
		s.logger.Error("Confirm: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Confirm: booking id=%d confirmed", id)
	return nil
}

// Cancel отменяет бронирование (pending/confirmed -> cancelled)
// Владелец отменяет своё бронирование, администратор - любое
func (s *Service) Cancel(ctx context.Context, id int64, actor models.Actor) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", id, actor.ID)

	booking, err := s.getBooking(ctx, id, "Cancel")
	if err != nil {
		return err
	}

	if booking.UserID != actor.ID && !actor.IsAdmin() {
		s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", actor.ID, id)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", id, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking id=%d cancelled", id)
	return nil
}

// SoftDelete выполняет мягкое удаление бронирования
// При отказе возвращает DeleteRefusedError с причиной первого нарушенного условия
func (s *Service) SoftDelete(ctx context.Context, id int64, actor models.Actor, reason string) error {
	s.logger.Info("SoftDelete: deleting booking id=%d by user=%d", id, actor.ID)

	if len(reason) > domain.MaxDeletedReasonLength {
		s.logger.Warn("SoftDelete: reason too long for booking id=%d", id)
		return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, id, "SoftDelete")
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("SoftDelete: user id=%d not found", actor.ID)
			return ErrUserNotFound
		}
		s.logger.Error("SoftDelete: failed to get user id=%d: %v", actor.ID, err)
		return fmt.Errorf("%w: SoftDelete - failed to get user: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	if ok, refusal := booking.CanBeDeletedBy(user, now); !ok {
		s.logger.Warn("SoftDelete: booking id=%d delete refused for user=%d: %s", id, actor.ID, refusal)
		return &DeleteRefusedError{Reason: refusal}
	}

	if err := s.bookingRepo.SoftDelete(ctx, id, actor.ID, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// Запись успели удалить параллельно
			return &DeleteRefusedError{Reason: domain.ReasonAlreadyDeleted}
		}
		s.logger.Error("SoftDelete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: SoftDelete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SoftDelete: booking id=%d deleted by user=%d", id, actor.ID)
	return nil
}

// HardDelete физически удаляет бронирование
// Доступно только администратору
func (s *Service) HardDelete(ctx context.Context, id int64, actor models.Actor) error {
	s.logger.Info("HardDelete: deleting booking id=%d by user=%d", id, actor.ID)

	if !actor.IsAdmin() {
		s.logger.Warn("HardDelete: access denied for user=%d", actor.ID)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("HardDelete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("HardDelete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: HardDelete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("HardDelete: booking id=%d deleted", id)
	return nil
}

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
