package main

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/m04kA/visa-booking-service/internal/config"
)

// edgeHandler оборачивает весь роутер, а не вешается через r.Use:
// mux вызывает middleware только для совпавшего маршрута, и preflight OPTIONS получил бы 405
func edgeHandler(router http.Handler, app config.AppConfig) http.Handler {
	h := cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	})(router)

	if app.RateLimitPerSecond > 0 {
		h = httprate.LimitByIP(app.RateLimitPerSecond, time.Second)(h)
	}
	return h
}
