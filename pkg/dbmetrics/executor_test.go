package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type fakeDB struct {
	DBExecutor
}

func (fakeDB) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }

func TestGetExecutor(t *testing.T) {
	db := fakeDB{}
	tx := fakeTx{}

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))
	assert.Equal(t, DBExecutor(db), GetExecutor(ctx, db))

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, DBExecutor(tx), GetExecutor(txCtx, db))
}

func TestCanLockRows(t *testing.T) {
	tx := fakeTx{}
	ctx := context.Background()

	assert.False(t, CanLockRows(ctx))
	assert.True(t, CanLockRows(WithTx(ctx, tx)))

	readOnly := WithReadOnlyTx(ctx, tx)
	assert.False(t, CanLockRows(readOnly))
	assert.True(t, IsInTransaction(readOnly))
	assert.Equal(t, DBExecutor(tx), GetExecutor(readOnly, fakeDB{}))
}
