package sign_in

import (
	"strings"
	"time"

	"github.com/m04kA/visa-booking-service/internal/service/auth"
)

// SignInRequest HTTP request model
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize обрезает пробелы в email
func (r *SignInRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// SignInResponse HTTP response model
type SignInResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresAt   string `json:"expiresAt"`
}

// FromToken конвертирует выданный токен в HTTP response
func FromToken(token *auth.Token) *SignInResponse {
	return &SignInResponse{
		AccessToken: token.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   token.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
