package services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendahub/AB-BookingService/internal/api/handlers"
	"github.com/agendahub/AB-BookingService/internal/service/catalog"
	"github.com/agendahub/AB-BookingService/internal/service/catalog/models"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "услуга не найдена"
	msgNameTaken          = "услуга с таким названием уже существует"
	msgServiceInUse       = "услуга имеет будущие бронирования и не может быть удалена"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/admin/services
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /admin/services", err)
		return
	}

	h.logger.Info("POST /admin/services - Service created: service_id=%d", resp.ID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// HandleGet GET /api/v1/services/{serviceId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	resp, err := h.service.GetByID(r.Context(), serviceID)
	if err != nil {
		h.respondServiceError(w, "GET /services/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleList GET /api/v1/services
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /services", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleUpdate PUT /api/v1/admin/services/{serviceId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Update(r.Context(), serviceID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /admin/services/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/services/{id} - Service updated: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleDelete DELETE /api/v1/admin/services/{serviceId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.service.Delete(r.Context(), serviceID); err != nil {
		h.respondServiceError(w, "DELETE /admin/services/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/services/{id} - Service deleted: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, catalog.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found", op)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, catalog.ErrNameTaken):
		h.logger.Warn("%s - Service name is taken", op)
		handlers.RespondConflict(w, msgNameTaken)

	case errors.Is(err, catalog.ErrServiceInUse):
		h.logger.Warn("%s - Service has future bookings", op)
		handlers.RespondConflict(w, msgServiceInUse)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("%s - Catalog service error: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
