package get_calendar

import (
	"context"

	"github.com/m04kA/visa-booking-service/internal/service/appointments/models"
)

type CalendarService interface {
	Calendar(ctx context.Context, month string) (*models.CalendarResponse, error)
	ExportICS(ctx context.Context, month string) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
