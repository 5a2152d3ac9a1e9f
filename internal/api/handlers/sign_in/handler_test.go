package sign_in

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/visa-booking-service/internal/service/auth"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubAuth struct {
	email string
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (*auth.Token, error) {
	s.email = email
	if password != "secret" {
		return nil, auth.ErrInvalidCredentials
	}
	return &auth.Token{AccessToken: "jwt", ExpiresAt: time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)}, nil
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/sign-in", strings.NewReader(body)))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &stubAuth{}
	rec := post(NewHandler(svc, nopLogger{}), `{"email":" Admin@Example.com ","password":"secret"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"accessToken":"jwt","tokenType":"Bearer","expiresAt":"2025-12-20T00:00:00Z"}`, rec.Body.String())
	assert.Equal(t, "admin@example.com", svc.email)
}

func TestHandler_Handle_Errors(t *testing.T) {
	h := NewHandler(&stubAuth{}, nopLogger{})

	assert.Equal(t, http.StatusUnauthorized, post(h, `{"email":"a@b.c","password":"wrong"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, `{"email":"a@b.c"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, `{"login":"a"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, ``).Code)
}
