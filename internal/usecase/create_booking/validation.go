package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.HotelID <= 0 {
		return fmt.Errorf("%w: hotelID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if len(req.RoomIDs) == 0 {
		return fmt.Errorf("%w: roomIds must not be empty", ErrInvalidInput)
	}

	seen := make(map[int64]bool, len(req.RoomIDs))
	for _, id := range req.RoomIDs {
		if id <= 0 {
			return fmt.Errorf("%w: room id must be positive", ErrInvalidInput)
		}
		if seen[id] {
			return fmt.Errorf("%w: room id=%d is listed twice", ErrInvalidInput, id)
		}
		seen[id] = true
	}

	if req.CheckInDate.IsZero() || req.CheckOutDate.IsZero() {
		return fmt.Errorf("%w: checkInDate and checkOutDate are required", ErrInvalidInput)
	}

	if !(domain.DateRange{CheckIn: req.CheckInDate, CheckOut: req.CheckOutDate}).IsValid() {
		return fmt.Errorf("%w: checkOutDate must be after checkInDate", ErrInvalidInput)
	}

	if req.CancellationGracePeriod != nil && *req.CancellationGracePeriod < 0 {
		return fmt.Errorf("%w: cancellationGracePeriod must not be negative", ErrInvalidInput)
	}

	return nil
}

// validateRooms проверяет, что найдены все номера и все они принадлежат отелю
func validateRooms(hotelID int64, requested []int64, rooms []*domain.Room) error {
	found := make(map[int64]*domain.Room, len(rooms))
	for _, r := range rooms {
		found[r.ID] = r
	}

	for _, id := range requested {
		room, ok := found[id]
		if !ok {
			return fmt.Errorf("%w: id=%d", ErrRoomNotFound, id)
		}
		if room.HotelID != hotelID {
			return fmt.Errorf("%w: room id=%d, hotel id=%d", ErrRoomHotelMismatch, id, room.HotelID)
		}
	}

	return nil
}
