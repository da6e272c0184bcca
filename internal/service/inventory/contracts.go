package inventory

import (
	"context"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// RoomRepository интерфейс репозитория номеров
type RoomRepository interface {
	UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByRooms(ctx context.Context, hotelID int64, roomIDs []int64, statuses []domain.BookingStatus) ([]*domain.Booking, error)
}
