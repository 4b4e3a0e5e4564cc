package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agendahub/AB-BookingService/internal/domain"
	serviceRepo "github.com/agendahub/AB-BookingService/internal/infra/storage/service"
	"github.com/agendahub/AB-BookingService/internal/service/catalog/models"
)

// Service сервис для работы с каталогом услуг
type Service struct {
	serviceRepo  ServiceRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:  serviceRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает новую услугу
// Имена услуг уникальны
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%q", req.Name)

	name := strings.TrimSpace(req.Name)
	if err := validateService(name, req.DurationMinutes); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, &domain.Service{
		Name:            name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		s.logger.Error("Create: repository error for service name=%q: %v", name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: service id=%d created", created.ID)
	return models.FromDomainService(created), nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%d", id)

	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(svc), nil
}

// List получает все услуги каталога
func (s *Service) List(ctx context.Context) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services")

	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// Update обновляет услугу
// Изменение длительности влияет только на будущие расчеты слотов
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d", id)

	name := strings.TrimSpace(req.Name)
	if err := validateService(name, req.DurationMinutes); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := s.checkNameFree(ctx, name, id); err != nil {
		return nil, err
	}

	svc.Name = name
	svc.Description = req.Description
	svc.DurationMinutes = req.DurationMinutes

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: service id=%d updated", id)
	return models.FromDomainService(svc), nil
}

// Delete удаляет услугу
// Услуга с активными будущими бронированиями не может быть удалена
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting service id=%d", id)

	now := s.timeProvider.Now()
	inUse, err := s.bookingRepo.HasFutureByService(ctx, id, now)
	if err != nil {
		s.logger.Error("Delete: failed to check bookings for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - failed to check bookings: %v", ErrInternal, err)
	}

	if inUse {
		s.logger.Warn("Delete: service id=%d has future bookings", id)
		return ErrServiceInUse
	}

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Delete: service id=%d not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: service id=%d deleted", id)
	return nil
}

// checkNameFree проверяет, что имя не занято другой услугой
// selfID исключает саму услугу при обновлении
func (s *Service) checkNameFree(ctx context.Context, name string, selfID int64) error {
	existing, err := s.serviceRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil
		}
		s.logger.Error("checkNameFree: repository error for name=%q: %v", name, err)
		return fmt.Errorf("%w: checkNameFree - repository error: %v", ErrInternal, err)
	}

	if existing.ID != selfID {
		s.logger.Warn("checkNameFree: name=%q is taken by service id=%d", name, existing.ID)
		return ErrNameTaken
	}

	return nil
}

// validateService проверяет имя и длительность услуги
func validateService(name string, durationMinutes int) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if len([]rune(name)) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	if durationMinutes < domain.MinDurationMinutes || durationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	return nil
}
