package get_me

import (
	"errors"
	"net/http"

	"github.com/m04kA/visa-booking-service/internal/api/handlers"
	"github.com/m04kA/visa-booking-service/internal/api/middleware"
	"github.com/m04kA/visa-booking-service/internal/service/auth"
)

const (
	msgUnauthorized = "access token is required"
	msgAdminGone    = "admin account no longer exists"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("GET /me - Request without admin id in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	profile, err := h.service.Me(r.Context(), adminID)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAdminNotFound):
			h.logger.Warn("GET /me - Admin not found: id=%s", adminID)
			handlers.RespondUnauthorized(w, msgAdminGone)

		default:
			h.logger.Error("GET /me - Failed to get admin: id=%s, error=%v", adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromProfile(profile))
}
