package create_appointment

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createAppointment "github.com/m04kA/visa-booking-service/internal/usecase/create_appointment"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubUseCase struct {
	req     *createAppointment.Request
	receipt []byte
	err     error
}

func (s *stubUseCase) Execute(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	s.req = req
	if req.Receipt != nil {
		s.receipt, _ = io.ReadAll(req.Receipt.Body)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &createAppointment.Response{
		ID:        "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		ShortID:   "1b4e28ba",
		Status:    "pending",
		Date:      req.AppointmentDate,
		Hour:      req.AppointmentHour,
		CreatedAt: time.Date(2025, time.December, 20, 12, 0, 0, 0, time.UTC),
	}, nil
}

func multipartRequest(t *testing.T, fields map[string]string, withReceipt bool) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if withReceipt {
		fw, err := mw.CreateFormFile("receipt", "transfer.pdf")
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func validFields() map[string]string {
	return map[string]string{
		"firstName":         "Ana",
		"lastName":          "Perez",
		"email":             "ana@example.com",
		"phoneNumber":       "809-555-1234",
		"appointmentDate":   "2025-12-24",
		"appointmentHour":   "15",
		"appointmentTypeId": "1",
	}
}

func TestHandler_Handle_Created(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, multipartRequest(t, validFields(), true))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"shortId":"1b4e28ba"`)
	require.NotNil(t, uc.req.Receipt)
	assert.Equal(t, "transfer.pdf", uc.req.Receipt.Filename)
	assert.Equal(t, "%PDF-1.4", string(uc.receipt))
	assert.Equal(t, 15, uc.req.AppointmentHour)
	assert.Equal(t, int64(1), uc.req.AppointmentTypeID)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		want  int
		field map[string]string
	}{
		{"bad hour field", nil, http.StatusBadRequest, map[string]string{"appointmentHour": "noon"}},
		{"slot taken", createAppointment.ErrSlotTaken, http.StatusConflict, nil},
		{"day blocked", createAppointment.ErrDayBlocked, http.StatusConflict, nil},
		{"type missing", createAppointment.ErrAppointmentTypeNotFound, http.StatusNotFound, nil},
		{"bad file", createAppointment.ErrUnsupportedReceipt, http.StatusBadRequest, nil},
		{"internal", createAppointment.ErrInternal, http.StatusInternalServerError, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			for k, v := range tt.field {
				fields[k] = v
			}
			h := NewHandler(&stubUseCase{err: tt.err}, nopLogger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, multipartRequest(t, fields, true))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandler_Handle_NotMultipart(t *testing.T) {
	h := NewHandler(&stubUseCase{}, nopLogger{})
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewBufferString(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
