package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/agendahub/AB-BookingService/internal/domain"
	workBlockRepo "github.com/agendahub/AB-BookingService/internal/infra/storage/workblock"
	"github.com/agendahub/AB-BookingService/internal/service/schedule/models"
	"github.com/agendahub/AB-BookingService/pkg/types"
)

// Service сервис для работы с еженедельным расписанием
type Service struct {
	workBlockRepo WorkBlockRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(workBlockRepo WorkBlockRepository, logger Logger) *Service {
	return &Service{
		workBlockRepo: workBlockRepo,
		logger:        logger,
	}
}

// Create создает новый рабочий блок
// Блок не должен пересекаться с существующими блоками того же дня
func (s *Service) Create(ctx context.Context, req *models.CreateWorkBlockRequest) (*models.WorkBlockResponse, error) {
	s.logger.Info("Create: creating work block day=%d, %s-%s", req.DayOfWeek, req.StartTime, req.EndTime)

	start, end, err := parseInterval(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	existing, err := s.workBlockRepo.GetByDay(ctx, req.DayOfWeek)
	if err != nil {
		s.logger.Error("Create: failed to get blocks for day=%d: %v", req.DayOfWeek, err)
		return nil, fmt.Errorf("%w: Create - failed to get blocks: %v", ErrInternal, err)
	}

	for _, block := range existing {
		if block.Overlaps(start, end) {
			s.logger.Warn("Create: block %s-%s overlaps existing block id=%d", start, end, block.ID)
			return nil, ErrWorkBlockOverlap
		}
	}

	created, err := s.workBlockRepo.Create(ctx, &domain.WorkBlock{
		DayOfWeek: req.DayOfWeek,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: work block id=%d created", created.ID)
	return models.FromDomainWorkBlock(created), nil
}

// GetByID получает рабочий блок по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.WorkBlockResponse, error) {
	s.logger.Info("GetByID: fetching work block id=%d", id)

	block, err := s.workBlockRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, workBlockRepo.ErrWorkBlockNotFound) {
			s.logger.Warn("GetByID: work block id=%d not found", id)
			return nil, ErrWorkBlockNotFound
		}
		s.logger.Error("GetByID: repository error for work block id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWorkBlock(block), nil
}

// List получает все рабочие блоки, отсортированные по дню недели и началу
func (s *Service) List(ctx context.Context) (*models.WorkBlockListResponse, error) {
	s.logger.Info("List: fetching work blocks")

	blocks, err := s.workBlockRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d work blocks", len(blocks))
	return models.FromDomainWorkBlockList(blocks), nil
}

// Delete удаляет рабочий блок
// Блок, на который ссылаются бронирования (включая прошедшие), удалить нельзя
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting work block id=%d", id)

	if err := s.workBlockRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, workBlockRepo.ErrWorkBlockNotFound) {
			s.logger.Warn("Delete: work block id=%d not found", id)
			return ErrWorkBlockNotFound
		}
		if errors.Is(err, workBlockRepo.ErrWorkBlockInUse) {
			s.logger.Warn("Delete: work block id=%d is referenced by bookings", id)
			return ErrWorkBlockInUse
		}
		s.logger.Error("Delete: repository error for work block id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: work block id=%d deleted", id)
	return nil
}

// parseInterval валидирует и разбирает интервал рабочего блока
func parseInterval(req *models.CreateWorkBlockRequest) (types.TimeString, types.TimeString, error) {
	if !domain.IsValidDay(req.DayOfWeek) {
		return "", "", fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid end time: %v", ErrInvalidInput, err)
	}

	if !start.IsBefore(end) {
		return "", "", fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	return start, end, nil
}
