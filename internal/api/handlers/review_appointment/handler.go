package review_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/visa-booking-service/internal/api/handlers"
	"github.com/m04kA/visa-booking-service/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "invalid appointment id"
	msgInvalidRequest       = "invalid request body"
	msgNotFound             = "appointment not found"
	msgAlreadyDone          = "appointment is already done"
	msgNotApproved          = "only approved appointments can be marked as done"
	msgSlotTaken            = "time slot was taken by another appointment, move it first"
	msgReasonRequired       = "rejection reason is required"
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

// HandleApprove POST /api/v1/admin/appointments/{id}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	var req ApproveRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /admin/appointments/{id}/approve - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)
			return
		}
	}

	result, err := h.service.Approve(r.Context(), id, req.ToServiceRequest())
	if err != nil {
		h.respondError(w, "POST /admin/appointments/{id}/approve", id, err)
		return
	}

	h.logger.Info("POST /admin/appointments/{id}/approve - Appointment approved: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleReject POST /api/v1/admin/appointments/{id}/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	var req RejectRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/appointments/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.service.Reject(r.Context(), id, req.ToServiceRequest())
	if err != nil {
		h.respondError(w, "POST /admin/appointments/{id}/reject", id, err)
		return
	}

	h.logger.Info("POST /admin/appointments/{id}/reject - Appointment rejected: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDone POST /api/v1/admin/appointments/{id}/done
func (h *Handler) HandleDone(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	result, err := h.service.Complete(r.Context(), id)
	if err != nil {
		h.respondError(w, "POST /admin/appointments/{id}/done", id, err)
		return
	}

	h.logger.Info("POST /admin/appointments/{id}/done - Appointment completed: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) appointmentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("%s %s - Invalid appointment id: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, id uuid.UUID, err error) {
	switch {
	case errors.Is(err, appointments.ErrAppointmentNotFound):
		h.logger.Warn("%s - Appointment not found: id=%s", op, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, appointments.ErrAlreadyDone):
		handlers.RespondConflict(w, msgAlreadyDone)

	case errors.Is(err, appointments.ErrNotApproved):
		handlers.RespondConflict(w, msgNotApproved)

	case errors.Is(err, appointments.ErrSlotTaken):
		h.logger.Warn("%s - Slot retaken: id=%s", op, id)
		handlers.RespondConflict(w, msgSlotTaken)

	case errors.Is(err, appointments.ErrReasonRequired):
		handlers.RespondBadRequest(w, msgReasonRequired)

	default:
		h.logger.Error("%s - Failed to review appointment: id=%s, error=%v", op, id, err)
		handlers.RespondInternalError(w)
	}
}
