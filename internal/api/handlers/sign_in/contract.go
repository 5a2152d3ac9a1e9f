package sign_in

import (
	"context"

	"github.com/m04kA/visa-booking-service/internal/service/auth"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*auth.Token, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
