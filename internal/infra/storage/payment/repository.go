package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/psqlbuilder"
)

const table = "payment_transactions"

var columns = []string{
	"id",
	"reference",
	"booking_id",
	"amount",
	"payment_method",
	"transaction_date",
	"status",
}

// Repository журнал платежей (только добавление)
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет платеж в журнал
func (r *Repository) Create(ctx context.Context, p *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("reference", "booking_id", "amount", "payment_method", "transaction_date", "status").
		Values(p.Reference, p.BookingID, p.Amount, p.PaymentMethod, p.TransactionDate, p.Status).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return p, nil
}

// ListByBookingID получает платежи бронирования в хронологическом порядке
func (r *Repository) ListByBookingID(ctx context.Context, bookingID int64) ([]*domain.PaymentTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("transaction_date ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// GetLatestByBookingIDs возвращает последний платеж каждого бронирования из списка
func (r *Repository) GetLatestByBookingIDs(ctx context.Context, bookingIDs []int64) (map[int64]*domain.PaymentTransaction, error) {
	result := make(map[int64]*domain.PaymentTransaction, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := latestByBookingIDsQuery(bookingIDs).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByBookingIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByBookingIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	payments, err := scanPayments(rows)
	if err != nil {
		return nil, err
	}

	for _, p := range payments {
		result[p.BookingID] = p
	}

	return result, nil
}

func latestByBookingIDsQuery(bookingIDs []int64) squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		Options("DISTINCT ON (booking_id)").
		From(table).
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		OrderBy("booking_id", "transaction_date DESC", "id DESC")
}

func scanPayments(rows *sql.Rows) ([]*domain.PaymentTransaction, error) {
	payments := make([]*domain.PaymentTransaction, 0)

	for rows.Next() {
		var p domain.PaymentTransaction
		err := rows.Scan(
			&p.ID,
			&p.Reference,
			&p.BookingID,
			&p.Amount,
			&p.PaymentMethod,
			&p.TransactionDate,
			&p.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanPayments - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPayments - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}
