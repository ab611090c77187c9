package pgsql

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct{ pgx.Tx }

type recordingTxManager struct {
	beginErr  error
	commits   int
	rollbacks int
}

func (m *recordingTxManager) Begin(context.Context) (pgx.Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return fakeTx{}, nil
}

func (m *recordingTxManager) Commit(context.Context, pgx.Tx) error {
	m.commits++
	return nil
}

func (m *recordingTxManager) Rollback(context.Context, pgx.Tx) error {
	m.rollbacks++
	return nil
}

func TestInTx_CommitsOnSuccess(t *testing.T) {
	tm := &recordingTxManager{}
	var got pgx.Tx

	err := inTx(context.Background(), tm, func(tx pgx.Tx) error {
		got = tx
		return nil
	})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, 1, tm.commits)
	assert.Zero(t, tm.rollbacks)
}

func TestInTx_RollsBackOnError(t *testing.T) {
	tm := &recordingTxManager{}
	boom := errors.New("insert failed")

	err := inTx(context.Background(), tm, func(pgx.Tx) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.Zero(t, tm.commits)
	assert.Equal(t, 1, tm.rollbacks)
}

func TestInTx_BeginFailureSkipsWork(t *testing.T) {
	tm := &recordingTxManager{beginErr: errors.New("pool exhausted")}
	called := false

	err := inTx(context.Background(), tm, func(pgx.Tx) error {
		called = true
		return nil
	})

	assert.EqualError(t, err, "pool exhausted")
	assert.False(t, called)
	assert.Zero(t, tm.commits+tm.rollbacks)
}

func TestPgErrorCode(t *testing.T) {
	assert.Equal(t, pgUniqueViolation, pgErrorCode(&pgconn.PgError{Code: "23505"}))
	assert.Equal(t, pgForeignKeyViolation, pgErrorCode(errors.Join(errors.New("wrapped"), &pgconn.PgError{Code: "23503"})))
	assert.Empty(t, pgErrorCode(errors.New("plain")))
}
