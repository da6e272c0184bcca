package invoice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/psqlbuilder"
)

const table = "invoices"

var columns = []string{
	"id",
	"number",
	"booking_id",
	"hotel_id",
	"room_charges",
	"service_charges",
	"total_amount",
	"issue_date",
	"status",
}

// Repository репозиторий счетов
// Строки счета хранятся в JSONB колонках room_charges и service_charges
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает счет
func (r *Repository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	roomCharges, serviceCharges, err := encodeCharges(inv)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("number", "booking_id", "hotel_id", "room_charges", "service_charges", "total_amount", "issue_date", "status").
		Values(inv.Number, inv.BookingID, inv.HotelID, roomCharges, serviceCharges, inv.TotalAmount, inv.IssueDate, inv.Status).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&inv.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return inv, nil
}

// Update перезаписывает строки счета, итог и статус
func (r *Repository) Update(ctx context.Context, inv *domain.Invoice) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	roomCharges, serviceCharges, err := encodeCharges(inv)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update(table).
		Set("room_charges", roomCharges).
		Set("service_charges", serviceCharges).
		Set("total_amount", inv.TotalAmount).
		Set("status", inv.Status).
		Where(squirrel.Eq{"id": inv.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrInvoiceNotFound
	}

	return nil
}

// GetLatestByBookingID получает последний выставленный счет бронирования
// Внутри транзакции на запись счет блокируется (FOR UPDATE)
func (r *Repository) GetLatestByBookingID(ctx context.Context, bookingID int64) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("issue_date DESC", "id DESC").
		Limit(1)

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	inv, err := scanInvoice(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByBookingID - scan invoice: %w", ErrScanRow, err)
	}

	return inv, nil
}

// ListByBookingID получает все счета бронирования
func (r *Repository) ListByBookingID(ctx context.Context, bookingID int64) ([]*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("issue_date ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	invoices := make([]*domain.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBookingID - scan row: %v", ErrScanRow, err)
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBookingID - rows error: %v", ErrScanRow, err)
	}

	return invoices, nil
}

// ListBookingIDsWithInvoices сообщает, у каких бронирований из списка есть хотя бы один счет
func (r *Repository) ListBookingIDsWithInvoices(ctx context.Context, bookingIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT booking_id").
		From(table).
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBookingIDsWithInvoices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookingIDsWithInvoices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListBookingIDsWithInvoices - scan booking_id: %v", ErrScanRow, err)
		}
		result[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookingIDsWithInvoices - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// encodeCharges сериализует строки счета в JSON-строки (lib/pq передает []byte как bytea)
func encodeCharges(inv *domain.Invoice) (string, string, error) {
	roomCharges := inv.RoomCharges
	if roomCharges == nil {
		roomCharges = []domain.RoomCharge{}
	}
	serviceCharges := inv.ServiceCharges
	if serviceCharges == nil {
		serviceCharges = []domain.ServiceCharge{}
	}

	rc, err := json.Marshal(roomCharges)
	if err != nil {
		return "", "", fmt.Errorf("%w: room charges: %v", ErrEncodeCharges, err)
	}
	sc, err := json.Marshal(serviceCharges)
	if err != nil {
		return "", "", fmt.Errorf("%w: service charges: %v", ErrEncodeCharges, err)
	}

	return string(rc), string(sc), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var inv domain.Invoice
	var roomCharges, serviceCharges []byte

	err := row.Scan(
		&inv.ID,
		&inv.Number,
		&inv.BookingID,
		&inv.HotelID,
		&roomCharges,
		&serviceCharges,
		&inv.TotalAmount,
		&inv.IssueDate,
		&inv.Status,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(roomCharges, &inv.RoomCharges); err != nil {
		return nil, fmt.Errorf("decode room charges: %w", err)
	}
	if err := json.Unmarshal(serviceCharges, &inv.ServiceCharges); err != nil {
		return nil, fmt.Errorf("decode service charges: %w", err)
	}

	return &inv, nil
}
