package get_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/visa-booking-service/internal/api/handlers"
	"github.com/m04kA/visa-booking-service/internal/service/appointments"
)

const (
	msgInvalidShortID = "invalid appointment code"
	msgInvalidID      = "invalid appointment id"
	msgNotFound       = "appointment not found"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/short/{shortId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shortID := mux.Vars(r)["shortId"]

	appointment, err := h.service.GetByShortID(r.Context(), shortID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments/short/{id} - Invalid code: %q", shortID)
			handlers.RespondBadRequest(w, msgInvalidShortID)

		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/short/{id} - Appointment not found: short=%s", shortID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /appointments/short/{id} - Failed to get appointment: short=%s, error=%v", shortID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/short/{id} - Appointment retrieved: short=%s, status=%s", shortID, appointment.Status)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}

// HandleByID GET /api/v1/admin/appointments/{id}
func (h *Handler) HandleByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("GET /admin/appointments/{id} - Invalid appointment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	appointment, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, appointments.ErrAppointmentNotFound) {
			h.logger.Warn("GET /admin/appointments/{id} - Appointment not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /admin/appointments/{id} - Failed to get appointment: id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, appointment)
}
