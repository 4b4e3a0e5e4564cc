package work_blocks

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendahub/AB-BookingService/internal/api/handlers"
	"github.com/agendahub/AB-BookingService/internal/service/schedule"
	"github.com/agendahub/AB-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidBlockID     = "некорректный ID рабочего блока"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "рабочий блок не найден"
	msgOverlap            = "рабочий блок пересекается с существующим"
	msgBlockInUse         = "на рабочий блок ссылаются бронирования, удаление невозможно"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/admin/work-blocks
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWorkBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/work-blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrWorkBlockOverlap):
			h.logger.Warn("POST /admin/work-blocks - Overlapping work block: day=%d", req.DayOfWeek)
			handlers.RespondConflict(w, msgOverlap)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/work-blocks - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /admin/work-blocks - Failed to create work block: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/work-blocks - Work block created: block_id=%d", resp.ID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// HandleList GET /api/v1/work-blocks
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /work-blocks - Failed to list work blocks: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleDelete DELETE /api/v1/admin/work-blocks/{blockId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	blockID, err := strconv.ParseInt(mux.Vars(r)["blockId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/work-blocks/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	if err := h.service.Delete(r.Context(), blockID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrWorkBlockNotFound):
			h.logger.Warn("DELETE /admin/work-blocks/{id} - Work block not found: block_id=%d", blockID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrWorkBlockInUse):
			h.logger.Warn("DELETE /admin/work-blocks/{id} - Work block is in use: block_id=%d", blockID)
			handlers.RespondConflict(w, msgBlockInUse)

		default:
			h.logger.Error("DELETE /admin/work-blocks/{id} - Failed to delete work block: block_id=%d, error=%v",
				blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/work-blocks/{id} - Work block deleted: block_id=%d", blockID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
