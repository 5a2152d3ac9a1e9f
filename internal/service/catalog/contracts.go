package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// Repository интерфейс справочников: типы консультаций и банковские счета
type Repository interface {
	ListAppointmentTypes(ctx context.Context, visibleOnly bool) ([]*domain.AppointmentType, error)
	CreateAppointmentType(ctx context.Context, t *domain.AppointmentType) (*domain.AppointmentType, error)
	SetAppointmentTypeVisibility(ctx context.Context, id int64, visible bool) error

	ListBankAccounts(ctx context.Context, activeOnly bool) ([]*domain.BankAccount, error)
	CreateBankAccount(ctx context.Context, account *domain.BankAccount) (*domain.BankAccount, error)
	UpdateBankAccount(ctx context.Context, id uuid.UUID, update domain.BankAccountUpdate) (*domain.BankAccount, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
