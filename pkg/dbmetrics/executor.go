package dbmetrics

import (
	"context"
	"database/sql"
)

// DBExecutor общий интерфейс для выполнения запросов (*sql.DB, *sql.Tx, *DB, *Tx)
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor исполнитель запросов внутри транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type txKey struct{}

type txState struct {
	tx       TxExecutor
	readOnly bool
}

// WithTx кладет транзакцию на запись в контекст
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, txState{tx: tx})
}

// WithReadOnlyTx кладет read-only транзакцию в контекст
func WithReadOnlyTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, txState{tx: tx, readOnly: true})
}

// GetTx достает транзакцию из контекста
func GetTx(ctx context.Context) (TxExecutor, bool) {
	st, ok := ctx.Value(txKey{}).(txState)
	if !ok {
		return nil, false
	}
	return st.tx, true
}

// IsInTransaction true, если в контексте есть активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := GetTx(ctx)
	return ok
}

// CanLockRows true только внутри транзакции на запись.
// PostgreSQL отклоняет SELECT ... FOR UPDATE в read-only транзакции (25006).
func CanLockRows(ctx context.Context) bool {
	st, ok := ctx.Value(txKey{}).(txState)
	return ok && !st.readOnly
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе db
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx, ok := GetTx(ctx); ok {
		return tx
	}
	return db
}
