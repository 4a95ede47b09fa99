package composables

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stretchr/testify/require"
)

type stubTx struct{}

func (stubTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func TestUseTx_FallsBackToPoolError(t *testing.T) {
	_, err := UseTx(context.Background())
	require.ErrorIs(t, err, ErrNoPool)
}

func TestUseTx_ReturnsContextTx(t *testing.T) {
	ctx := WithTx(context.Background(), stubTx{})
	tx, err := UseTx(ctx)
	require.NoError(t, err)
	require.Equal(t, stubTx{}, tx)
}

func TestUsePool_Missing(t *testing.T) {
	_, err := UsePool(context.Background())
	require.ErrorIs(t, err, ErrNoPool)
}

func TestHasTx(t *testing.T) {
	require.False(t, HasTx(context.Background()))
	require.True(t, HasTx(WithTx(context.Background(), stubTx{})))
}

func TestInTx_JoinsExistingTransaction(t *testing.T) {
	ctx := WithTx(context.Background(), stubTx{})
	ran := false
	err := InTx(ctx, func(txCtx context.Context) error {
		ran = true
		require.True(t, HasTx(txCtx))
		return nil
	})
	require.NoError(t, err)
	require.True(t, ran)

	wantErr := errors.New("boom")
	err = InTx(ctx, func(context.Context) error { return wantErr })
	require.ErrorIs(t, err, wantErr)
}

func TestInTx_RequiresPoolWhenNoTx(t *testing.T) {
	err := InTx(context.Background(), func(context.Context) error { return nil })
	require.ErrorIs(t, err, ErrNoPool)
}
