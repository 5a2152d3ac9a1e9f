package create_appointment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

var validate = validator.New()

// validatedRequest разобранные поля запроса
type validatedRequest struct {
	phone         string
	date          domain.Date
	hour          domain.HourSlot
	bankAccountID *uuid.UUID
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (*validatedRequest, error) {
	if req.Receipt == nil {
		return nil, ErrReceiptRequired
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.BankAccountID = strings.TrimSpace(req.BankAccountID)

	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return nil, fmt.Errorf("%w: field %s failed on %s", ErrInvalidInput, fe.Field(), fe.Tag())
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	phone, err := domain.NormalizePhone(req.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	date, err := domain.ParseDate(req.AppointmentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	out := &validatedRequest{
		phone: phone,
		date:  date,
		hour:  domain.HourSlot(req.AppointmentHour),
	}

	if req.BankAccountID != "" {
		id, err := uuid.Parse(req.BankAccountID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid bank account id", ErrInvalidInput)
		}
		out.bankAccountID = &id
	}

	return out, nil
}

// validateReceiptSize проверяет размер файла чека
func validateReceiptSize(r *Receipt) error {
	if r.Size <= 0 {
		return fmt.Errorf("%w: receipt file is empty", ErrInvalidInput)
	}
	if r.Size > domain.MaxReceiptSizeBytes {
		return fmt.Errorf("%w: max %d MB", ErrReceiptTooLarge, domain.MaxReceiptSizeBytes>>20)
	}
	return nil
}
