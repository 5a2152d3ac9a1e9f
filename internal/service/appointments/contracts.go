package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/domain"
	"github.com/m04kA/visa-booking-service/internal/infra/messaging/notifications"
	"github.com/m04kA/visa-booking-service/internal/infra/storage/receipts"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) error
}

// ReceiptStorage хранилище чеков
type ReceiptStorage interface {
	Open(ctx context.Context, key string) (*receipts.Object, error)
}

// Notifier публикует уведомления о записях
type Notifier interface {
	Publish(ctx context.Context, event notifications.Event) error
}

// Clock текущее время (подменяется в тестах)
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}
