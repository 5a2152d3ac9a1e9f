package create_appointment

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/domain"
	"github.com/m04kA/visa-booking-service/internal/infra/messaging/notifications"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
}

// CatalogRepository интерфейс справочников
type CatalogRepository interface {
	GetAppointmentType(ctx context.Context, id int64) (*domain.AppointmentType, error)
	GetBankAccount(ctx context.Context, id uuid.UUID) (*domain.BankAccount, error)
}

// SlotsChecker проверяет, что на час можно записаться
type SlotsChecker interface {
	CheckHour(ctx context.Context, date domain.Date, hour domain.HourSlot, exclude *uuid.UUID) error
}

// ReceiptStorage хранилище чеков об оплате
type ReceiptStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
}

// Notifier публикует уведомления о записях
type Notifier interface {
	Publish(ctx context.Context, event notifications.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
