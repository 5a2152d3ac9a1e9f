package get_me

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/service/auth"
)

type AuthService interface {
	Me(ctx context.Context, adminID uuid.UUID) (*auth.Profile, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
