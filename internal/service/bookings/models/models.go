package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Request модели

// ListHotelBookingsRequest запрос на получение бронирований отеля
type ListHotelBookingsRequest struct {
	Scope      domain.AccessScope
	HotelID    int64
	Status     *string    // Фильтр по статусу (опционально)
	CustomerID *int64     // Фильтр по клиенту (опционально)
	From       *time.Time // Начало периода (опционально)
	To         *time.Time // Конец периода (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListHotelBookingsRequest) ToDomainFilter() (domain.HotelBookingsFilter, error) {
	filter := domain.HotelBookingsFilter{
		HotelID:    r.HotelID,
		CustomerID: r.CustomerID,
		From:       r.From,
		To:         r.To,
	}

	if r.Status != nil {
		status := domain.BookingStatus(*r.Status)
		if !status.IsValid() {
			return filter, fmt.Errorf("unknown status %q", *r.Status)
		}
		filter.Status = &status
	}

	if r.From != nil && r.To != nil && !r.To.After(*r.From) {
		return filter, errors.New("period end must be after start")
	}

	return filter, nil
}

// Response модели

// HotelSummary краткие данные отеля
type HotelSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
}

// CustomerSummary краткие данные клиента
type CustomerSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contactInfo,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// RoomSummary краткие данные номера
type RoomSummary struct {
	ID            int64   `json:"id"`
	RoomNumber    string  `json:"roomNumber"`
	Type          string  `json:"type"`
	PricePerNight float64 `json:"pricePerNight"`
}

// PaymentSummary данные последнего платежа
type PaymentSummary struct {
	ID              int64     `json:"id"`
	Reference       string    `json:"reference"`
	Amount          float64   `json:"amount"`
	PaymentMethod   string    `json:"paymentMethod"`
	TransactionDate time.Time `json:"transactionDate"`
	Status          string    `json:"status"`
}

// BookingView бронирование со связанными данными
type BookingView struct {
	ID                      int64            `json:"id"`
	HotelID                 int64            `json:"hotelId"`
	CustomerID              int64            `json:"customerId"`
	Hotel                   *HotelSummary    `json:"hotel,omitempty"`
	Customer                *CustomerSummary `json:"customer,omitempty"`
	RoomIDs                 []int64          `json:"roomIds"`
	Rooms                   []RoomSummary    `json:"rooms"`
	CheckInDate             string           `json:"checkInDate"`  // "2025-06-01"
	CheckOutDate            string           `json:"checkOutDate"` // "2025-06-03"
	CheckedOutAt            *time.Time       `json:"checkedOutAt,omitempty"`
	CancellationGracePeriod int              `json:"cancellationGracePeriod"`
	TotalAmount             float64          `json:"totalAmount"`
	Status                  string           `json:"status"`
	PaymentStatus           string           `json:"paymentStatus"`
	LatestPayment           *PaymentSummary  `json:"latestPayment,omitempty"`
	HasInvoice              bool             `json:"hasInvoice"`
	CreatedAt               time.Time        `json:"createdAt"`
	UpdatedAt               time.Time        `json:"updatedAt"`
}

// Owner бронирование с полями, нужными для проверки прав доступа
func (v *BookingView) Owner() *domain.Booking {
	return &domain.Booking{ID: v.ID, HotelID: v.HotelID, CustomerID: v.CustomerID}
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []*BookingView `json:"bookings"`
	Total    int            `json:"total"`
}

// CategorizedBookings бронирования, разбитые по категориям
type CategorizedBookings struct {
	History []*BookingView `json:"history"` // cancelled, checked-out
	Active  []*BookingView `json:"active"`  // checked-in
	Future  []*BookingView `json:"future"`  // booked
}

// FromDomainBooking конвертирует бронирование без связанных данных
func FromDomainBooking(b *domain.Booking) *BookingView {
	return &BookingView{
		ID:                      b.ID,
		HotelID:                 b.HotelID,
		CustomerID:              b.CustomerID,
		RoomIDs:                 append([]int64(nil), b.RoomIDs...),
		Rooms:                   []RoomSummary{},
		CheckInDate:             b.CheckInDate.Format(domain.DateFormat),
		CheckOutDate:            b.CheckOutDate.Format(domain.DateFormat),
		CheckedOutAt:            b.CheckedOutAt,
		CancellationGracePeriod: b.CancellationGracePeriod,
		TotalAmount:             b.TotalAmount,
		Status:                  string(b.Status),
		PaymentStatus:           b.PaymentStatus,
		CreatedAt:               b.CreatedAt,
		UpdatedAt:               b.UpdatedAt,
	}
}
