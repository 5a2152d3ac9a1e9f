package sign_in

import (
	"errors"
	"net/http"

	"github.com/m04kA/visa-booking-service/internal/api/handlers"
	"github.com/m04kA/visa-booking-service/internal/service/auth"
)

const (
	msgInvalidRequest     = "invalid request body"
	msgMissingCredentials = "email and password are required"
	msgInvalidCredentials = "invalid email or password"
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

// Handle POST /api/v1/sign-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sign-in - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}
	req.Normalize()

	if req.Email == "" || req.Password == "" {
		handlers.RespondBadRequest(w, msgMissingCredentials)
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.logger.Warn("POST /sign-in - Invalid credentials: email=%s", req.Email)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		default:
			h.logger.Error("POST /sign-in - Failed to sign in: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sign-in - Admin signed in: email=%s", req.Email)
	handlers.RespondJSON(w, http.StatusOK, FromToken(token))
}
