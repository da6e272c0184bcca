package models

import (
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// ListRoomsRequest запрос на получение номеров отеля
type ListRoomsRequest struct {
	HotelID int64
	Stay    *domain.DateRange // Интервал проверки доступности (опционально)
}

// CreateRoomRequest запрос на создание номера
type CreateRoomRequest struct {
	Scope         domain.AccessScope
	HotelID       int64
	RoomNumber    string
	Type          string
	PricePerNight float64
}

// RoomView номер с признаком доступности
type RoomView struct {
	ID            int64     `json:"id"`
	HotelID       int64     `json:"hotelId"`
	RoomNumber    string    `json:"roomNumber"`
	Type          string    `json:"type"`
	PricePerNight float64   `json:"pricePerNight"`
	Status        string    `json:"status"`
	Available     bool      `json:"available"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromDomainRoom конвертирует номер
func FromDomainRoom(r *domain.Room, available bool) *RoomView {
	return &RoomView{
		ID:            r.ID,
		HotelID:       r.HotelID,
		RoomNumber:    r.RoomNumber,
		Type:          r.Type,
		PricePerNight: r.PricePerNight,
		Status:        string(r.Status),
		Available:     available,
		CreatedAt:     r.CreatedAt,
	}
}
