package review_appointment

import "github.com/m04kA/visa-booking-service/internal/service/appointments/models"

// ApproveRequest HTTP request model
type ApproveRequest struct {
	MeetingLink *string `json:"meetingLink"`
	AdminNote   *string `json:"adminNote"`
}

// RejectRequest HTTP request model
type RejectRequest struct {
	Reason    string  `json:"reason"`
	AdminNote *string `json:"adminNote"`
}

// ToServiceRequest конвертирует HTTP request в запрос сервиса
func (r *ApproveRequest) ToServiceRequest() *models.ApproveRequest {
	return &models.ApproveRequest{
		MeetingLink: r.MeetingLink,
		Note:        r.AdminNote,
	}
}

// ToServiceRequest конвертирует HTTP request в запрос сервиса
func (r *RejectRequest) ToServiceRequest() *models.RejectRequest {
	return &models.RejectRequest{
		Reason: r.Reason,
		Note:   r.AdminNote,
	}
}
