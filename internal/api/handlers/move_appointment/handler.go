package move_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/visa-booking-service/internal/api/handlers"
	moveAppointment "github.com/m04kA/visa-booking-service/internal/usecase/move_appointment"
)

const (
	msgInvalidAppointmentID = "invalid appointment id"
	msgInvalidRequest       = "invalid request body"
	msgInvalidFields        = "newDate (YYYY-MM-DD) and newHour (0-23) are required"
	msgNotFound             = "appointment not found"
	msgAlreadyDone          = "cannot move a completed appointment"
	msgDateInPast           = "cannot move to a past date"
	msgDayBlocked           = "selected date is blocked"
	msgHourBlocked          = "selected hour is not available"
	msgHourPassed           = "cannot move to a past hour"
	msgSlotTaken            = "time slot already taken"
)

type Handler struct {
	useCase MoveAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase MoveAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/appointments/{id}/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id}/move - Invalid appointment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req MoveAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id}/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}
	if req.NewDate == "" || req.NewHour == nil {
		handlers.RespondBadRequest(w, msgInvalidFields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(id))
	if err != nil {
		switch {
		case errors.Is(err, moveAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/appointments/{id}/move - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFields)

		case errors.Is(err, moveAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /admin/appointments/{id}/move - Appointment not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, moveAppointment.ErrAlreadyDone):
			handlers.RespondConflict(w, msgAlreadyDone)

		case errors.Is(err, moveAppointment.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, moveAppointment.ErrDayBlocked):
			handlers.RespondConflict(w, msgDayBlocked)

		case errors.Is(err, moveAppointment.ErrHourBlocked):
			handlers.RespondConflict(w, msgHourBlocked)

		case errors.Is(err, moveAppointment.ErrHourPassed):
			handlers.RespondConflict(w, msgHourPassed)

		case errors.Is(err, moveAppointment.ErrSlotTaken):
			h.logger.Warn("PATCH /admin/appointments/{id}/move - Slot taken: id=%s, date=%s, hour=%d", id, req.NewDate, *req.NewHour)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("PATCH /admin/appointments/{id}/move - Failed to move appointment: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/appointments/{id}/move - Appointment moved: id=%s, from=%s %d, to=%s %d",
		id, result.PreviousDate, result.PreviousHour, req.NewDate, *req.NewHour)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
