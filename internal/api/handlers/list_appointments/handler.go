package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/visa-booking-service/internal/api/handlers"
	"github.com/m04kA/visa-booking-service/internal/service/appointments"
	"github.com/m04kA/visa-booking-service/internal/service/appointments/models"
)

const msgInvalidFilter = "invalid filter, check status, date (YYYY-MM-DD), month (YYYY-MM), orderBy and orderDir"

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

// Handle GET /api/v1/admin/appointments?status=&date=&month=&search=&orderBy=&orderDir=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListRequest{
		Status:   query.Get("status"),
		Date:     query.Get("date"),
		Month:    query.Get("month"),
		Search:   query.Get("search"),
		OrderBy:  query.Get("orderBy"),
		OrderDir: query.Get("orderDir"),
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /admin/appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/appointments - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/appointments - Appointments retrieved: count=%d", len(list))
	handlers.RespondJSON(w, http.StatusOK, list)
}
