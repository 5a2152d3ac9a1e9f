package create_appointment

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	createAppointment "github.com/m04kA/visa-booking-service/internal/usecase/create_appointment"
)

// Поля multipart формы
const (
	fieldFirstName         = "firstName"
	fieldLastName          = "lastName"
	fieldEmail             = "email"
	fieldPhoneNumber       = "phoneNumber"
	fieldAppointmentDate   = "appointmentDate"
	fieldAppointmentHour   = "appointmentHour"
	fieldAppointmentTypeID = "appointmentTypeId"
	fieldBankAccountID     = "bankAccountId"
	fieldReceipt           = "receipt"
)

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	Message   string `json:"message"`
	ID        string `json:"id"`
	ShortID   string `json:"shortId"`
	Status    string `json:"status"`
	Date      string `json:"appointmentDate"`
	Hour      int    `json:"appointmentHour"`
	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest собирает запрос use case из multipart формы
func ToUseCaseRequest(form *multipart.Form, receipt multipart.File, header *multipart.FileHeader) (*createAppointment.Request, error) {
	value := func(name string) string {
		if v := form.Value[name]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	hour, err := strconv.Atoi(value(fieldAppointmentHour))
	if err != nil {
		return nil, fmt.Errorf("invalid %s", fieldAppointmentHour)
	}

	typeID, err := strconv.ParseInt(value(fieldAppointmentTypeID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", fieldAppointmentTypeID)
	}

	req := &createAppointment.Request{
		FirstName:         value(fieldFirstName),
		LastName:          value(fieldLastName),
		Email:             value(fieldEmail),
		PhoneNumber:       value(fieldPhoneNumber),
		AppointmentDate:   value(fieldAppointmentDate),
		AppointmentHour:   hour,
		AppointmentTypeID: typeID,
		BankAccountID:     value(fieldBankAccountID),
	}

	if receipt != nil && header != nil {
		req.Receipt = &createAppointment.Receipt{
			Filename: header.Filename,
			Size:     header.Size,
			Body:     receipt,
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		Message:   "Appointment created successfully",
		ID:        resp.ID,
		ShortID:   resp.ShortID,
		Status:    resp.Status,
		Date:      resp.Date,
		Hour:      resp.Hour,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
