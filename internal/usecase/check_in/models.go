package check_in

import "github.com/m04kA/SMC-HotelBookingService/internal/domain"

// Request модель запроса на заселение
type Request struct {
	HotelID   int64
	BookingID int64
}

// Response модель ответа на заселение
type Response struct {
	BookingID int64
	Status    domain.BookingStatus
	RoomIDs   []int64
}
