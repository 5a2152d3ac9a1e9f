package appointment_types

import (
	"context"

	"github.com/m04kA/visa-booking-service/internal/service/catalog/models"
)

type CatalogService interface {
	ListAppointmentTypes(ctx context.Context, visibleOnly bool) ([]*models.AppointmentTypeResponse, error)
	CreateAppointmentType(ctx context.Context, req *models.CreateAppointmentTypeRequest) (*models.AppointmentTypeResponse, error)
	SetAppointmentTypeVisibility(ctx context.Context, id int64, visible bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
