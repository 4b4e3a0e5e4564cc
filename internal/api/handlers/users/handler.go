package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendahub/AB-BookingService/internal/api/handlers"
	usersService "github.com/agendahub/AB-BookingService/internal/service/users"
	"github.com/agendahub/AB-BookingService/internal/service/users/models"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "пользователь не найден"
	msgEmailTaken         = "пользователь с таким email уже существует"
	msgLastAdmin          = "нельзя удалить или деактивировать последнего администратора"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/admin/users
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /admin/users", err)
		return
	}

	h.logger.Info("POST /admin/users - User created: user_id=%d", resp.ID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// HandleGet GET /api/v1/admin/users/{userId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /admin/users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	resp, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, "GET /admin/users/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleList GET /api/v1/admin/users
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /admin/users", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleUpdate PUT /api/v1/admin/users/{userId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var req models.UpdateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/users/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Update(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /admin/users/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/users/{id} - User updated: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleDelete DELETE /api/v1/admin/users/{userId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if err := h.service.Delete(r.Context(), userID); err != nil {
		h.respondServiceError(w, "DELETE /admin/users/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/users/{id} - User deleted: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, usersService.ErrUserNotFound):
		h.logger.Warn("%s - User not found", op)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, usersService.ErrEmailTaken):
		h.logger.Warn("%s - Email is taken", op)
		handlers.RespondConflict(w, msgEmailTaken)

	case errors.Is(err, usersService.ErrLastAdmin):
		h.logger.Warn("%s - Last admin guard triggered", op)
		handlers.RespondConflict(w, msgLastAdmin)

	case errors.Is(err, usersService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("%s - User service error: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
