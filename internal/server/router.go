package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"monpro-diagnostic/internal/common/logger"
)

// NewRouter wires the submission endpoint with the middleware stack
// and the operational endpoints.
func NewRouter(handler *Handler, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware(log))
	r.Use(loggingMiddleware(log))

	r.Get("/healthz", handler.healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/diagnostic", handler.handleSubmit)
	})

	return r
}
