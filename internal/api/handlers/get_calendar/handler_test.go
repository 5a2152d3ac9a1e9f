package get_calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/visa-booking-service/internal/service/appointments"
	"github.com/m04kA/visa-booking-service/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubService struct {
	err error
}

func (s stubService) Calendar(ctx context.Context, month string) (*models.CalendarResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.CalendarResponse{Month: month, Days: []*models.CalendarDay{}}, nil
}

func (s stubService) ExportICS(ctx context.Context, month string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n", nil
}

func get(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	h := NewHandler(stubService{}, nopLogger{})

	rec := get(h.Handle, "/admin/calendar?month=2025-12")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"month":"2025-12","days":[]}`, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, get(h.Handle, "/admin/calendar").Code)
}

func TestHandler_HandleICS(t *testing.T) {
	rec := get(NewHandler(stubService{}, nopLogger{}).HandleICS, "/admin/calendar.ics?month=2025-12")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "appointments-2025-12.ics")
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
}

func TestHandler_InvalidMonth(t *testing.T) {
	h := NewHandler(stubService{err: appointments.ErrInvalidInput}, nopLogger{})

	assert.Equal(t, http.StatusBadRequest, get(h.Handle, "/admin/calendar?month=12-2025").Code)
	assert.Equal(t, http.StatusBadRequest, get(h.HandleICS, "/admin/calendar.ics?month=12-2025").Code)
}
