package availability

import (
	"context"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByRooms(ctx context.Context, hotelID int64, roomIDs []int64, statuses []domain.BookingStatus) ([]*domain.Booking, error)
}

// RoomRepository интерфейс репозитория номеров
type RoomRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Room, error)
}
