package itf

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/greenroomhq/runsheet/pkg/composables"
)

// noopTx satisfies composables.Tx without touching a database. Its presence
// in the context makes composables.InTx run the callback inline, which is
// what in-memory repository tests need.
type noopTx struct{}

func (noopTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

// Context returns a background context wired for transactional code paths.
func Context() context.Context {
	return composables.WithTx(context.Background(), noopTx{})
}

// InjectTx is router middleware that arms each request context the way
// Context does, so write routes behind the transaction middleware can be
// exercised without a database.
func InjectTx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(composables.WithTx(r.Context(), noopTx{})))
	})
}

// CapturingBus records every published event for later assertions.
type CapturingBus struct {
	Events []interface{}
}

func (b *CapturingBus) Publish(args ...interface{}) {
	b.Events = append(b.Events, args...)
}

func (b *CapturingBus) Subscribe(handler interface{})   {}
func (b *CapturingBus) Unsubscribe(handler interface{}) {}
func (b *CapturingBus) Clear()                          { b.Events = nil }
func (b *CapturingBus) SubscribersCount() int           { return 0 }
