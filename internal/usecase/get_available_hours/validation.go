package get_available_hours

import (
	"fmt"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// validateRequest проверяет и разбирает дату запроса
func validateRequest(req *Request) (domain.Date, error) {
	if req.Date == "" {
		return domain.Date{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return domain.Date{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return date, nil
}
