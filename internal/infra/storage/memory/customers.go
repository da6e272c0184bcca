package memory

import (
	"context"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	customerRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/customer"
)

type CustomerRepository struct {
	store *Store
}

// Create добавляет клиента (используется при наполнении хранилища)
func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	err := r.store.write(ctx, func(st *state) error {
		c.ID = st.nextID()
		c.CreatedAt = r.store.now()
		c.UpdatedAt = c.CreatedAt
		v := *c
		st.customers[c.ID] = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var result *domain.Customer
	err := r.store.read(ctx, func(st *state) error {
		c, ok := st.customers[id]
		if !ok {
			return customerRepo.ErrCustomerNotFound
		}
		v := *c
		result = &v
		return nil
	})
	return result, err
}

func (r *CustomerRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Customer, error) {
	result := make([]*domain.Customer, 0, len(ids))
	err := r.store.read(ctx, func(st *state) error {
		for _, id := range uniqueSorted(ids) {
			if c, ok := st.customers[id]; ok {
				v := *c
				result = append(result, &v)
			}
		}
		return nil
	})
	return result, err
}

// Debit списывает amount, баланс не может стать отрицательным
func (r *CustomerRepository) Debit(ctx context.Context, id int64, amount float64) (float64, error) {
	var balance float64
	err := r.store.write(ctx, func(st *state) error {
		c, ok := st.customers[id]
		if !ok {
			return customerRepo.ErrCustomerNotFound
		}
		if c.Balance < amount {
			return customerRepo.ErrInsufficientBalance
		}
		c.Balance -= amount
		c.UpdatedAt = r.store.now()
		balance = c.Balance
		return nil
	})
	return balance, err
}
