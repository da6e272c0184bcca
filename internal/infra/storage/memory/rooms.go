package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
)

type RoomRepository struct {
	store *Store
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	err := r.store.write(ctx, func(st *state) error {
		for _, existing := range st.rooms {
			if existing.HotelID == room.HotelID && existing.RoomNumber == room.RoomNumber {
				return roomRepo.ErrRoomNumberTaken
			}
		}
		room.ID = st.nextID()
		room.CreatedAt = r.store.now()
		room.UpdatedAt = room.CreatedAt
		v := *room
		st.rooms[room.ID] = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var result *domain.Room
	err := r.store.read(ctx, func(st *state) error {
		room, ok := st.rooms[id]
		if !ok {
			return roomRepo.ErrRoomNotFound
		}
		v := *room
		result = &v
		return nil
	})
	return result, err
}

// GetByIDs номера по возрастанию id, отсутствующие пропускаются
func (r *RoomRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Room, error) {
	result := make([]*domain.Room, 0, len(ids))
	err := r.store.read(ctx, func(st *state) error {
		for _, id := range uniqueSorted(ids) {
			if room, ok := st.rooms[id]; ok {
				v := *room
				result = append(result, &v)
			}
		}
		return nil
	})
	return result, err
}

func (r *RoomRepository) ListByHotel(ctx context.Context, hotelID int64) ([]*domain.Room, error) {
	result := make([]*domain.Room, 0)
	err := r.store.read(ctx, func(st *state) error {
		for _, room := range st.rooms {
			if room.HotelID == hotelID {
				v := *room
				result = append(result, &v)
			}
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].RoomNumber < result[j].RoomNumber })
	return result, err
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	return r.store.write(ctx, func(st *state) error {
		room, ok := st.rooms[id]
		if !ok {
			return roomRepo.ErrRoomNotFound
		}
		room.Status = status
		room.UpdatedAt = r.store.now()
		return nil
	})
}
