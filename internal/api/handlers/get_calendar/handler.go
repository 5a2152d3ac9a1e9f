package get_calendar

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/visa-booking-service/internal/api/handlers"
	"github.com/m04kA/visa-booking-service/internal/service/appointments"
)

const (
	msgMissingMonth = "month is required"
	msgInvalidMonth = "invalid month format, expected YYYY-MM"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/calendar?month=YYYY-MM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	month, ok := h.month(w, r)
	if !ok {
		return
	}

	calendar, err := h.service.Calendar(r.Context(), month)
	if err != nil {
		h.respondError(w, "GET /admin/calendar", month, err)
		return
	}

	h.logger.Info("GET /admin/calendar - Calendar retrieved: month=%s", month)
	handlers.RespondJSON(w, http.StatusOK, calendar)
}

// HandleICS GET /api/v1/admin/calendar.ics?month=YYYY-MM
func (h *Handler) HandleICS(w http.ResponseWriter, r *http.Request) {
	month, ok := h.month(w, r)
	if !ok {
		return
	}

	ics, err := h.service.ExportICS(r.Context(), month)
	if err != nil {
		h.respondError(w, "GET /admin/calendar.ics", month, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="appointments-%s.ics"`, month))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(ics)); err != nil {
		h.logger.Warn("GET /admin/calendar.ics - Failed to write response: %v", err)
		return
	}
	h.logger.Info("GET /admin/calendar.ics - Calendar exported: month=%s", month)
}

func (h *Handler) month(w http.ResponseWriter, r *http.Request) (string, bool) {
	month := r.URL.Query().Get("month")
	if month == "" {
		handlers.RespondBadRequest(w, msgMissingMonth)
		return "", false
	}
	return month, true
}

func (h *Handler) respondError(w http.ResponseWriter, op, month string, err error) {
	switch {
	case errors.Is(err, appointments.ErrInvalidInput):
		h.logger.Warn("%s - Invalid month: %s", op, month)
		handlers.RespondBadRequest(w, msgInvalidMonth)
	default:
		h.logger.Error("%s - Failed to build calendar: month=%s, error=%v", op, month, err)
		handlers.RespondInternalError(w)
	}
}
