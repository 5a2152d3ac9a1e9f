package move_appointment

import (
	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/service/appointments/models"
	moveAppointment "github.com/m04kA/visa-booking-service/internal/usecase/move_appointment"
)

// MoveAppointmentRequest HTTP request model
type MoveAppointmentRequest struct {
	NewDate   string  `json:"newDate"`
	NewHour   *int    `json:"newHour"`
	AdminNote *string `json:"adminNote"`
}

// MoveAppointmentResponse HTTP response model
type MoveAppointmentResponse struct {
	Appointment  *models.AppointmentResponse `json:"appointment"`
	PreviousDate string                      `json:"previousDate"`
	PreviousHour int                         `json:"previousHour"`
}

// ToUseCaseRequest конвертирует HTTP request в use case request
func (r *MoveAppointmentRequest) ToUseCaseRequest(id uuid.UUID) *moveAppointment.Request {
	return &moveAppointment.Request{
		AppointmentID: id,
		NewDate:       r.NewDate,
		NewHour:       *r.NewHour,
		AdminNote:     r.AdminNote,
	}
}

// FromUseCaseResponse конвертирует use case response в HTTP response
func FromUseCaseResponse(resp *moveAppointment.Response) *MoveAppointmentResponse {
	return &MoveAppointmentResponse{
		Appointment:  models.FromDomainAppointment(resp.Appointment),
		PreviousDate: resp.PreviousDate,
		PreviousHour: resp.PreviousHour,
	}
}
