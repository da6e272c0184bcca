// Package storagetest поднимает sqlmock-базу для тестов репозиториев
// и запоминает SQL, который репозиторий реально отправил в транзакции.
package storagetest

import (
	"context"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/txmanager"
)

// Recorder база на sqlmock, принимающая любой запрос
type Recorder struct {
	DB   *dbmetrics.DB
	mock sqlmock.Sqlmock

	mu      sync.Mutex
	queries []string
}

// New создает Recorder, база закрывается по окончании теста
func New(t *testing.T) *Recorder {
	t.Helper()

	rec := &Recorder{}
	matcher := sqlmock.QueryMatcherFunc(func(_, actual string) error {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.queries = append(rec.queries, actual)
		return nil
	})

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rec.DB = dbmetrics.Wrap(db, nil)
	rec.mock = mock
	return rec
}

// InTx выполняет один запрос репозитория в транзакции txmanager и возвращает отправленный SQL.
// Запрос получает пустой результат, ошибка репозитория (например, not found) игнорируется.
func (r *Recorder) InTx(t *testing.T, readOnly bool, query func(ctx context.Context)) []string {
	t.Helper()

	r.mu.Lock()
	r.queries = nil
	r.mu.Unlock()

	r.mock.ExpectBegin()
	r.mock.ExpectQuery("").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	r.mock.ExpectCommit()

	m := txmanager.NewTransactionManager(r.DB)
	run := m.Do
	if readOnly {
		run = m.DoReadOnly
	}

	err := run(context.Background(), func(ctx context.Context) error {
		query(ctx)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, r.mock.ExpectationsWereMet())

	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}
