package get_available_hours

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// SlotsChecker калькулятор свободных часов
type SlotsChecker interface {
	OpenHours(ctx context.Context, date domain.Date, exclude *uuid.UUID) ([]domain.HourSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
