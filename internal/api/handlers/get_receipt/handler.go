package get_receipt

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/visa-booking-service/internal/api/handlers"
	"github.com/m04kA/visa-booking-service/internal/infra/storage/receipts"
	"github.com/m04kA/visa-booking-service/internal/service/appointments"
)

const (
	msgInvalidShortID = "invalid appointment code"
	msgInvalidID      = "invalid appointment id"
	msgNotFound       = "appointment not found"
	msgNoReceipt      = "receipt not found"
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

// Handle GET /api/v1/appointments/receipt/{shortId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shortID := mux.Vars(r)["shortId"]

	obj, err := h.service.OpenReceipt(r.Context(), shortID)
	if err != nil {
		h.respondError(w, "GET /appointments/receipt/{id}", "short="+shortID, err)
		return
	}
	h.stream(w, "GET /appointments/receipt/{id}", "short="+shortID, obj)
}

// HandleByID GET /api/v1/admin/appointments/{id}/receipt
func (h *Handler) HandleByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("GET /admin/appointments/{id}/receipt - Invalid appointment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	obj, err := h.service.OpenReceiptByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /admin/appointments/{id}/receipt", "id="+id.String(), err)
		return
	}
	h.stream(w, "GET /admin/appointments/{id}/receipt", "id="+id.String(), obj)
}

func (h *Handler) respondError(w http.ResponseWriter, op, ref string, err error) {
	switch {
	case errors.Is(err, appointments.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidShortID)

	case errors.Is(err, appointments.ErrAppointmentNotFound):
		h.logger.Warn("%s - Appointment not found: %s", op, ref)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, appointments.ErrReceiptNotFound):
		h.logger.Warn("%s - Receipt missing: %s", op, ref)
		handlers.RespondNotFound(w, msgNoReceipt)

	default:
		h.logger.Error("%s - Failed to open receipt: %s, error=%v", op, ref, err)
		handlers.RespondInternalError(w)
	}
}

func (h *Handler) stream(w http.ResponseWriter, op, ref string, obj *receipts.Object) {
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	// Заголовки уже отправлены, ошибку можно только залогировать
	if _, err := io.Copy(w, obj.Body); err != nil {
		h.logger.Warn("%s - Stream interrupted: %s, error=%v", op, ref, err)
		return
	}
	h.logger.Info("%s - Receipt sent: %s, size=%d", op, ref, obj.Size)
}
