package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/api/handlers"
)

type contextKey string

const adminIDKey contextKey = "admin_id"

const (
	msgMissingToken = "access token is required"
	msgInvalidToken = "invalid access token"
)

// TokenVerifier проверяет токен доступа и возвращает id администратора
type TokenVerifier interface {
	ParseToken(token string) (uuid.UUID, error)
}

// Auth требует заголовок Authorization: Bearer <token>
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			adminID, err := verifier.ParseToken(strings.TrimSpace(token))
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), adminIDKey, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminID возвращает id администратора, установленный Auth
func GetAdminID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(adminIDKey).(uuid.UUID)
	return id, ok
}
