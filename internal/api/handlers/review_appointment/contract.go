package review_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/service/appointments/models"
)

type AppointmentService interface {
	Approve(ctx context.Context, id uuid.UUID, req *models.ApproveRequest) (*models.AppointmentResponse, error)
	Reject(ctx context.Context, id uuid.UUID, req *models.RejectRequest) (*models.AppointmentResponse, error)
	Complete(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
