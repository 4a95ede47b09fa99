package middleware

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/greenroomhq/runsheet/pkg/composables"
)

// WithTransaction wraps each request in a transaction that commits on success.
// Routes that manage their own per-record transactions must not use it.
func WithTransaction() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if composables.HasTx(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}
			pool, err := composables.UsePool(r.Context())
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			tx, err := pool.Begin(r.Context())
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			defer func() {
				if err := tx.Rollback(r.Context()); err != nil {
					if errors.Is(err, pgx.ErrTxClosed) {
						return
					}
					logger := composables.UseLogger(r.Context())
					logger.WithError(err).Error("failed to rollback transaction")
				}
			}()
			r = r.WithContext(composables.WithTx(r.Context(), tx))
			next.ServeHTTP(w, r)
			if err := tx.Commit(r.Context()); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		})
	}
}
