package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNotFound(rec, "appointment not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"appointment not found"}`, rec.Body.String())
}

func TestRespondInternalError_HidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondInternalError(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var body struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana"}`))
	require.NoError(t, DecodeJSON(r, &body))
	assert.Equal(t, "Ana", body.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana","extra":1}`))
	assert.Error(t, DecodeJSON(r, &body))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.Error(t, DecodeJSON(r, &body))
}
