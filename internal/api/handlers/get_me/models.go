package get_me

import (
	"time"

	"github.com/m04kA/visa-booking-service/internal/service/auth"
)

// AdminUser HTTP response model
type AdminUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// MeResponse HTTP response model
type MeResponse struct {
	User AdminUser `json:"user"`
}

// FromProfile конвертирует профиль администратора в HTTP response
func FromProfile(p *auth.Profile) *MeResponse {
	return &MeResponse{User: AdminUser{
		ID:        p.ID.String(),
		Email:     p.Email,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
	}}
}
