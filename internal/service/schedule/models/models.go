package models

import (
	"time"

	"github.com/agendahub/AB-BookingService/internal/domain"
)

// Request модели

// CreateWorkBlockRequest запрос на создание рабочего блока
type CreateWorkBlockRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = понедельник ... 6 = воскресенье
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "18:00"
}

// Response модели

// WorkBlockResponse ответ с данными рабочего блока
type WorkBlockResponse struct {
	ID        int64     `json:"id"`
	DayOfWeek int       `json:"dayOfWeek"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkBlockListResponse ответ со списком рабочих блоков
type WorkBlockListResponse struct {
	WorkBlocks []WorkBlockResponse `json:"workBlocks"`
}

// FromDomainWorkBlock конвертирует domain модель в DTO
func FromDomainWorkBlock(b *domain.WorkBlock) *WorkBlockResponse {
	if b == nil {
		return nil
	}

	return &WorkBlockResponse{
		ID:        b.ID,
		DayOfWeek: b.DayOfWeek,
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainWorkBlockList конвертирует список domain моделей в DTO
func FromDomainWorkBlockList(blocks []*domain.WorkBlock) *WorkBlockListResponse {
	resp := &WorkBlockListResponse{
		WorkBlocks: make([]WorkBlockResponse, 0, len(blocks)),
	}

	for _, block := range blocks {
		if dto := FromDomainWorkBlock(block); dto != nil {
			resp.WorkBlocks = append(resp.WorkBlocks, *dto)
		}
	}

	return resp
}
