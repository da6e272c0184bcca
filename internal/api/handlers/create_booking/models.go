package create_booking

import (
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerID              *int64  `json:"customerId,omitempty"` // Обязателен для персонала
	RoomIDs                 []int64 `json:"roomIds" validate:"required,min=1,dive,gt=0"`
	CheckInDate             string  `json:"checkInDate" validate:"required"`  // "2025-06-01"
	CheckOutDate            string  `json:"checkOutDate" validate:"required"` // "2025-06-03"
	CancellationGracePeriod *int    `json:"cancellationGracePeriod,omitempty" validate:"omitempty,gte=0"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                      int64   `json:"id"`
	HotelID                 int64   `json:"hotelId"`
	CustomerID              int64   `json:"customerId"`
	RoomIDs                 []int64 `json:"roomIds"`
	CheckInDate             string  `json:"checkInDate"`
	CheckOutDate            string  `json:"checkOutDate"`
	Nights                  int     `json:"nights"`
	CancellationGracePeriod int     `json:"cancellationGracePeriod"`
	TotalAmount             float64 `json:"totalAmount"`
	Status                  string  `json:"status"`
	PaymentStatus           string  `json:"paymentStatus"`
	CreatedAt               string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(hotelID, customerID int64) (*createBooking.Request, error) {
	checkIn, err := time.Parse(domain.DateFormat, r.CheckInDate)
	if err != nil {
		return nil, err
	}

	checkOut, err := time.Parse(domain.DateFormat, r.CheckOutDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		HotelID:                 hotelID,
		CustomerID:              customerID,
		RoomIDs:                 r.RoomIDs,
		CheckInDate:             checkIn,
		CheckOutDate:            checkOut,
		CancellationGracePeriod: r.CancellationGracePeriod,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                      resp.ID,
		HotelID:                 resp.HotelID,
		CustomerID:              resp.CustomerID,
		RoomIDs:                 resp.RoomIDs,
		CheckInDate:             resp.CheckInDate.Format(domain.DateFormat),
		CheckOutDate:            resp.CheckOutDate.Format(domain.DateFormat),
		Nights:                  resp.Nights,
		CancellationGracePeriod: resp.CancellationGracePeriod,
		TotalAmount:             resp.TotalAmount,
		Status:                  string(resp.Status),
		PaymentStatus:           resp.PaymentStatus,
		CreatedAt:               resp.CreatedAt.Format(time.RFC3339),
	}
}
