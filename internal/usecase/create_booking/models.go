package create_booking

import (
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	HotelID                 int64     // ID отеля
	CustomerID              int64     // ID клиента
	RoomIDs                 []int64   // Номера, не пустой список
	CheckInDate             time.Time // Дата заезда
	CheckOutDate            time.Time // Дата выезда, строго позже заезда
	CancellationGracePeriod *int      // Окно штрафа в часах (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                      int64
	HotelID                 int64
	CustomerID              int64
	RoomIDs                 []int64
	CheckInDate             time.Time
	CheckOutDate            time.Time
	Nights                  int
	CancellationGracePeriod int
	TotalAmount             float64
	Status                  domain.BookingStatus
	PaymentStatus           string
	CreatedAt               time.Time
}
