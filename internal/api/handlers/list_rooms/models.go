package list_rooms

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/rooms/models"
)

var errPartialRange = errors.New("checkIn and checkOut must be set together")

// RoomsResponse HTTP response model
type RoomsResponse struct {
	HotelID  int64              `json:"hotelId"`
	CheckIn  *string            `json:"checkIn,omitempty"`
	CheckOut *string            `json:"checkOut,omitempty"`
	Rooms    []*models.RoomView `json:"rooms"`
}

// ToServiceRequest формирует запрос. Без дат доступность берется из текущего статуса номера
func ToServiceRequest(hotelID int64, checkInStr, checkOutStr string) (*models.ListRoomsRequest, error) {
	req := &models.ListRoomsRequest{HotelID: hotelID}

	if checkInStr == "" && checkOutStr == "" {
		return req, nil
	}
	if checkInStr == "" || checkOutStr == "" {
		return nil, errPartialRange
	}

	checkIn, err := time.Parse(domain.DateFormat, checkInStr)
	if err != nil {
		return nil, err
	}
	checkOut, err := time.Parse(domain.DateFormat, checkOutStr)
	if err != nil {
		return nil, err
	}

	req.Stay = &domain.DateRange{CheckIn: checkIn, CheckOut: checkOut}
	return req, nil
}
