package appointment_types

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/visa-booking-service/internal/api/handlers"
	"github.com/m04kA/visa-booking-service/internal/service/catalog"
)

const (
	msgInvalidRequest = "invalid request body"
	msgInvalidTypeID  = "invalid appointment type id"
	msgInvalidName    = "name is required and must be at most 100 characters"
	msgMissingVisible = "visible is required"
	msgDuplicateName  = "appointment type with this name already exists"
	msgNotFound       = "appointment type not found"
	msgVisibilitySet  = "visibility updated"
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

// HandleListPublic GET /api/v1/appointments/types
// Только видимые типы
func (h *Handler) HandleListPublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// HandleListAdmin GET /api/v1/admin/appointment-types
func (h *Handler) HandleListAdmin(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// HandleCreate POST /api/v1/admin/appointment-types
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/appointment-types - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	created, err := h.service.CreateAppointmentType(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidName)

		case errors.Is(err, catalog.ErrDuplicateName):
			h.logger.Warn("POST /admin/appointment-types - Duplicate name: %q", req.Name)
			handlers.RespondConflict(w, msgDuplicateName)

		default:
			h.logger.Error("POST /admin/appointment-types - Failed to create type: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/appointment-types - Type created: id=%d, name=%s", created.ID, created.Name)
	handlers.RespondJSON(w, http.StatusCreated, created)
}

// HandleSetVisibility PATCH /api/v1/admin/appointment-types/{id}/visibility
func (h *Handler) HandleSetVisibility(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidTypeID)
		return
	}

	var req VisibilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/appointment-types/{id}/visibility - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}
	if req.Visible == nil {
		handlers.RespondBadRequest(w, msgMissingVisible)
		return
	}

	if err := h.service.SetAppointmentTypeVisibility(r.Context(), id, *req.Visible); err != nil {
		switch {
		case errors.Is(err, catalog.ErrAppointmentTypeNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /admin/appointment-types/{id}/visibility - Failed to update type: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/appointment-types/{id}/visibility - Visibility updated: id=%d, visible=%t", id, *req.Visible)
	handlers.RespondMessage(w, http.StatusOK, msgVisibilitySet)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, visibleOnly bool) {
	types, err := h.service.ListAppointmentTypes(r.Context(), visibleOnly)
	if err != nil {
		h.logger.Error("GET appointment types - Failed to list types: visible_only=%t, error=%v", visibleOnly, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, types)
}
