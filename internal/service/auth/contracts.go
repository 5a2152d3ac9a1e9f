package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// AdminRepository интерфейс репозитория администраторов
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AdminUser, error)
	Create(ctx context.Context, user *domain.AdminUser) error
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
