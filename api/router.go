package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(handler.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Health)
	r.Route("/provisioning", func(r chi.Router) {
		r.Post("/", handler.Provision)
		r.Get("/events", handler.Events)
		r.Get("/{"+ProjectCodeParameter+"}/logs", handler.Logs)
		r.Post("/{"+ProjectCodeParameter+"}/rollback", handler.Rollback)
	})
	r.Post("/tokens", handler.GenerateToken)
	r.Post("/tokens/validate", handler.ValidateToken)
	return r
}

func requestLogger(logger logr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.V(1).Info("request served",
					"requestID", middleware.GetReqID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
