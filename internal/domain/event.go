package domain

import "time"

// BookingEventType names a committed lifecycle transition
type BookingEventType string

const (
	EventBookingCreated      BookingEventType = "booking.created"
	EventBookingCancelled    BookingEventType = "booking.cancelled"
	EventBookingCheckedIn    BookingEventType = "booking.checked_in"
	EventBookingCheckedOut   BookingEventType = "booking.checked_out"
	EventPenaltyPaid         BookingEventType = "booking.penalty_paid"
	EventServiceChargesAdded BookingEventType = "booking.service_charges_added"
)

// BookingEvent is published after a transition has been committed
type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	BookingID  int64            `json:"booking_id"`
	HotelID    int64            `json:"hotel_id"`
	CustomerID int64            `json:"customer_id"`
	Status     BookingStatus    `json:"status"`
	Amount     float64          `json:"amount"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// NewBookingEvent builds an event from the booking state after the transition
func NewBookingEvent(t BookingEventType, b *Booking, amount float64, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       t,
		BookingID:  b.ID,
		HotelID:    b.HotelID,
		CustomerID: b.CustomerID,
		Status:     b.Status,
		Amount:     amount,
		OccurredAt: at,
	}
}
