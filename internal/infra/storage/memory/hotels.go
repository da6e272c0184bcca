package memory

import (
	"context"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	hotelRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/hotel"
)

type HotelRepository struct {
	store *Store
}

// Create добавляет отель (используется при наполнении хранилища)
func (r *HotelRepository) Create(ctx context.Context, h *domain.Hotel) (*domain.Hotel, error) {
	err := r.store.write(ctx, func(st *state) error {
		h.ID = st.nextID()
		h.CreatedAt = r.store.now()
		v := *h
		st.hotels[h.ID] = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	var result *domain.Hotel
	err := r.store.read(ctx, func(st *state) error {
		h, ok := st.hotels[id]
		if !ok {
			return hotelRepo.ErrHotelNotFound
		}
		v := *h
		result = &v
		return nil
	})
	return result, err
}

func (r *HotelRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Hotel, error) {
	result := make([]*domain.Hotel, 0, len(ids))
	err := r.store.read(ctx, func(st *state) error {
		for _, id := range uniqueSorted(ids) {
			if h, ok := st.hotels[id]; ok {
				v := *h
				result = append(result, &v)
			}
		}
		return nil
	})
	return result, err
}
