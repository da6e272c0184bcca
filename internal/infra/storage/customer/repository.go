package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/psqlbuilder"
)

const table = "customers"

var columns = []string{
	"id",
	"name",
	"contact_info",
	"phone_number",
	"id_type",
	"id_number",
	"balance",
	"created_at",
	"updated_at",
}

// Repository репозиторий клиентов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента по ID
// Внутри транзакции на запись строка блокируется (FOR UPDATE), чтобы проверка и списание баланса были атомарны
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %w", ErrScanRow, err)
	}

	return c, nil
}

// GetByIDs получает клиентов пачкой, отсутствующие пропускаются
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Customer, error) {
	if len(ids) == 0 {
		return []*domain.Customer{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0, len(ids))
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return customers, nil
}

// Debit списывает amount с баланса и возвращает новый баланс.
// Условие balance >= amount проверяется в самом UPDATE.
func (r *Repository) Debit(ctx context.Context, id int64, amount float64) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := debitQuery(id, amount).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Debit - build update query: %v", ErrBuildQuery, err)
	}

	var balance float64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		// Клиент есть, но баланса не хватает, либо клиента нет
		if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, ErrCustomerNotFound) {
			return 0, ErrCustomerNotFound
		}
		return 0, ErrInsufficientBalance
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Debit - execute update: %w", ErrExecQuery, err)
	}

	return balance, nil
}

func debitQuery(id int64, amount float64) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("balance", squirrel.Expr("balance - ?", amount)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.GtOrEq{"balance": amount}).
		Suffix("RETURNING balance")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.ContactInfo,
		&c.PhoneNumber,
		&c.IDType,
		&c.IDNumber,
		&c.Balance,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
