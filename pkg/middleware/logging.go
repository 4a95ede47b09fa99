package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/greenroomhq/runsheet/pkg/composables"
	"github.com/greenroomhq/runsheet/pkg/configuration"
	"github.com/greenroomhq/runsheet/pkg/httpapi"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// ProvidePool injects the database pool into every request context.
func ProvidePool(pool *pgxpool.Pool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(composables.WithPool(r.Context(), pool)))
		})
	}
}

// LogRequests attaches a request-scoped log entry to the context and emits a
// completion line with method, path, status and duration.
func LogRequests(logger *logrus.Logger) mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := httpapi.EnsureRequestID(w, r, conf.RequestIDHeader)

			entry := logger.WithFields(logrus.Fields{
				"request-id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
			})

			ctx := composables.WithLogger(r.Context(), entry)
			ctx = composables.WithRequestID(ctx, requestID)

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(sw, r.WithContext(ctx))

			entry.WithFields(logrus.Fields{
				"status":   sw.status,
				"duration": time.Since(start).String(),
			}).Info("completed request")
		})
	}
}
