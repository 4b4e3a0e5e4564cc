package stats

import (
	"context"
	"fmt"
	"time"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountActive(ctx context.Context) (int64, error)
	CountOnDate(ctx context.Context, date time.Time) (int64, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Count(ctx context.Context) (int64, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Count(ctx context.Context) (int64, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Summary сводка для панели администратора
type Summary struct {
	Users          int64 `json:"users"`
	Services       int64 `json:"services"`
	ActiveBookings int64 `json:"activeBookings"`
	BookingsToday  int64 `json:"bookingsToday"`
}

// Service сервис сводной статистики
type Service struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	userRepo     UserRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	userRepo UserRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		userRepo:     userRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetSummary собирает сводку для панели администратора
func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	s.logger.Info("GetSummary: collecting dashboard summary")

	users, err := s.userRepo.Count(ctx)
	if err != nil {
		s.logger.Error("GetSummary: failed to count users: %v", err)
		return nil, fmt.Errorf("stats: failed to count users: %w", err)
	}

	services, err := s.serviceRepo.Count(ctx)
	if err != nil {
		s.logger.Error("GetSummary: failed to count services: %v", err)
		return nil, fmt.Errorf("stats: failed to count services: %w", err)
	}

	active, err := s.bookingRepo.CountActive(ctx)
	if err != nil {
		s.logger.Error("GetSummary: failed to count active bookings: %v", err)
		return nil, fmt.Errorf("stats: failed to count active bookings: %w", err)
	}

	// booking_date хранится как дата, время отбрасываем
	now := s.timeProvider.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := s.bookingRepo.CountOnDate(ctx, midnight)
	if err != nil {
		s.logger.Error("GetSummary: failed to count today's bookings: %v", err)
		return nil, fmt.Errorf("stats: failed to count today's bookings: %w", err)
	}

	return &Summary{
		Users:          users,
		Services:       services,
		ActiveBookings: active,
		BookingsToday:  today,
	}, nil
}
