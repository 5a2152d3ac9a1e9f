package get_available_hours

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/api/handlers"
	getAvailableHours "github.com/m04kA/visa-booking-service/internal/usecase/get_available_hours"
)

const (
	msgMissingDate      = "date is required"
	msgInvalidDate      = "invalid date format, expected YYYY-MM-DD"
	msgInvalidExcludeID = "invalid appointment id"
)

type Handler struct {
	useCase GetAvailableHoursUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableHoursUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/available-hours?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, nil)
}

// HandleAdmin GET /api/v1/admin/appointments/available-hours?date=YYYY-MM-DD&exclude={id}
// exclude - переносимая запись, ее собственный час показывается свободным
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	var exclude *uuid.UUID
	if raw := r.URL.Query().Get("exclude"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.logger.Warn("GET /admin/appointments/available-hours - Invalid exclude id: %v", err)
			handlers.RespondBadRequest(w, msgInvalidExcludeID)
			return
		}
		exclude = &id
	}
	h.handle(w, r, exclude)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, exclude *uuid.UUID) {
	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /appointments/available-hours - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(date, exclude))
	if err != nil {
		switch {
		case errors.Is(err, getAvailableHours.ErrInvalidInput):
			h.logger.Warn("GET /appointments/available-hours - Invalid date: %s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)
		default:
			h.logger.Error("GET /appointments/available-hours - Failed to get hours: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/available-hours - date=%s, available=%d", result.Date, len(result.AvailableHours))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
