package move_appointment

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.Date, domain.HourSlot, error) {
	if req.AppointmentID == uuid.Nil {
		return domain.Date{}, 0, fmt.Errorf("%w: appointment id is required", ErrInvalidInput)
	}

	date, err := domain.ParseDate(req.NewDate)
	if err != nil {
		return domain.Date{}, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hour := domain.HourSlot(req.NewHour)
	if !hour.Valid() {
		return domain.Date{}, 0, fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidHour)
	}

	if req.AdminNote != nil && len(*req.AdminNote) > domain.MaxNoteLength {
		return domain.Date{}, 0, fmt.Errorf("%w: note is longer than %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return date, hour, nil
}
