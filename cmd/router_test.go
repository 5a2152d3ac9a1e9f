package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/visa-booking-service/internal/config"
)

const frontendOrigin = "http://localhost:3000"

func testRouter() *mux.Router {
	r := mux.NewRouter()
	admin := r.PathPrefix("/api/v1/admin").Subrouter()
	admin.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	})
	admin.HandleFunc("/availability-rules", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	return r
}

func TestEdgeHandler_Preflight(t *testing.T) {
	h := edgeHandler(testRouter(), config.AppConfig{AllowedOrigins: []string{frontendOrigin}})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/admin/availability-rules", nil)
	req.Header.Set("Origin", frontendOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, frontendOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
}

func TestEdgeHandler_CORSOnRoutedRequest(t *testing.T) {
	h := edgeHandler(testRouter(), config.AppConfig{AllowedOrigins: []string{frontendOrigin}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/availability-rules", nil)
	req.Header.Set("Origin", frontendOrigin)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, frontendOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestEdgeHandler_UnknownOrigin(t *testing.T) {
	h := edgeHandler(testRouter(), config.AppConfig{AllowedOrigins: []string{frontendOrigin}})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/admin/availability-rules", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestEdgeHandler_RateLimitCoversUnmatchedPaths(t *testing.T) {
	h := edgeHandler(testRouter(), config.AppConfig{RateLimitPerSecond: 1})

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/no-such-path", nil))
	assert.Equal(t, http.StatusNotFound, first.Code)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/no-such-path", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
