package cancellation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/psqlbuilder"
)

const table = "cancellation_records"

// Repository репозиторий записей об отмене бронирований
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись об отмене
func (r *Repository) Create(ctx context.Context, rec *domain.CancellationRecord) (*domain.CancellationRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("booking_id", "canceled_by", "cancellation_time", "penalty_applied", "penalty_paid", "penalty_paid_at").
		Values(rec.BookingID, rec.CanceledBy, rec.CancellationTime, rec.PenaltyApplied, rec.PenaltyPaid, rec.PenaltyPaidAt).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rec.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return rec, nil
}

// GetLatestByBookingID получает последнюю запись об отмене бронирования
// Внутри транзакции на запись строка блокируется (FOR UPDATE)
func (r *Repository) GetLatestByBookingID(ctx context.Context, bookingID int64) (*domain.CancellationRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"booking_id",
		"canceled_by",
		"cancellation_time",
		"penalty_applied",
		"penalty_paid",
		"penalty_paid_at",
	).
		From(table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("cancellation_time DESC", "id DESC").
		Limit(1)

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var rec domain.CancellationRecord
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rec.ID,
		&rec.BookingID,
		&rec.CanceledBy,
		&rec.CancellationTime,
		&rec.PenaltyApplied,
		&rec.PenaltyPaid,
		&rec.PenaltyPaidAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCancellationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByBookingID - scan record: %w", ErrScanRow, err)
	}

	return &rec, nil
}

// MarkPenaltyPaid отмечает штраф по записи оплаченным
func (r *Repository) MarkPenaltyPaid(ctx context.Context, id int64, paidAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("penalty_paid", true).
		Set("penalty_paid_at", paidAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkPenaltyPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkPenaltyPaid - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkPenaltyPaid - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCancellationNotFound
	}

	return nil
}
