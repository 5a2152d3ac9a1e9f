package create_appointment

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/m04kA/visa-booking-service/internal/api/handlers"
	"github.com/m04kA/visa-booking-service/internal/domain"
	createAppointment "github.com/m04kA/visa-booking-service/internal/usecase/create_appointment"
)

const (
	msgInvalidForm         = "error parsing form data"
	msgInvalidFields       = "missing or invalid required fields"
	msgReceiptRequired     = "receipt file is required"
	msgUnsupportedReceipt  = "invalid file type, only JPG, PNG and PDF allowed"
	msgReceiptTooLarge     = "receipt file is too large, max 5 MB"
	msgTypeNotFound        = "appointment type not found"
	msgTypeNotAvailable    = "appointment type not available"
	msgBankAccountNotFound = "bank account not found"
	msgDateInPast          = "cannot book a date in the past"
	msgDayBlocked          = "this date is blocked"
	msgHourBlocked         = "this time slot is blocked"
	msgHourPassed          = "this time slot has already passed"
	msgSlotTaken           = "time slot not available"
)

// formOverheadBytes запас на текстовые поля формы сверх размера чека
const formOverheadBytes = 1 << 20

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments (multipart/form-data)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxReceiptSizeBytes+formOverheadBytes)
	if err := r.ParseMultipartForm(domain.MaxReceiptSizeBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondBadRequest(w, msgReceiptTooLarge)
			return
		}
		h.logger.Warn("POST /appointments - Invalid multipart form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}
	defer r.MultipartForm.RemoveAll()

	var (
		file   multipart.File
		header *multipart.FileHeader
	)
	if f, fh, err := r.FormFile(fieldReceipt); err == nil {
		file, header = f, fh
		defer f.Close()
	}

	useCaseReq, err := ToUseCaseRequest(r.MultipartForm, file, header)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid form fields: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFields)

		case errors.Is(err, createAppointment.ErrReceiptRequired):
			handlers.RespondBadRequest(w, msgReceiptRequired)

		case errors.Is(err, createAppointment.ErrUnsupportedReceipt):
			handlers.RespondBadRequest(w, msgUnsupportedReceipt)

		case errors.Is(err, createAppointment.ErrReceiptTooLarge):
			handlers.RespondBadRequest(w, msgReceiptTooLarge)

		case errors.Is(err, createAppointment.ErrAppointmentTypeNotFound):
			handlers.RespondNotFound(w, msgTypeNotFound)

		case errors.Is(err, createAppointment.ErrAppointmentTypeHidden):
			handlers.RespondBadRequest(w, msgTypeNotAvailable)

		case errors.Is(err, createAppointment.ErrBankAccountNotFound):
			handlers.RespondNotFound(w, msgBankAccountNotFound)

		case errors.Is(err, createAppointment.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createAppointment.ErrDayBlocked):
			handlers.RespondConflict(w, msgDayBlocked)

		case errors.Is(err, createAppointment.ErrHourBlocked):
			handlers.RespondConflict(w, msgHourBlocked)

		case errors.Is(err, createAppointment.ErrHourPassed):
			handlers.RespondConflict(w, msgHourPassed)

		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: date=%s, hour=%d", useCaseReq.AppointmentDate, useCaseReq.AppointmentHour)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s, short=%s", result.ID, result.ShortID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
