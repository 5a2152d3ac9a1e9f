package appointment_types

import "github.com/m04kA/visa-booking-service/internal/service/catalog/models"

// CreateAppointmentTypeRequest HTTP request model
type CreateAppointmentTypeRequest struct {
	Name    string `json:"name"`
	Visible *bool  `json:"visible"` // по умолчанию true
}

// VisibilityRequest HTTP request model
type VisibilityRequest struct {
	Visible *bool `json:"visible"`
}

// ToServiceRequest конвертирует HTTP request в запрос сервиса
func (r *CreateAppointmentTypeRequest) ToServiceRequest() *models.CreateAppointmentTypeRequest {
	visible := true
	if r.Visible != nil {
		visible = *r.Visible
	}
	return &models.CreateAppointmentTypeRequest{
		Name:    r.Name,
		Visible: visible,
	}
}
