package domain

import "time"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusBooked     BookingStatus = "booked"
	StatusCheckedIn  BookingStatus = "checked-in"
	StatusCheckedOut BookingStatus = "checked-out"
	StatusCancelled  BookingStatus = "cancelled"
)

// IsValid reports whether the status is one of the known lifecycle states
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusBooked, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	}
	return false
}

// IsActive returns true if a booking in this status holds room inventory
func (s BookingStatus) IsActive() bool {
	return s == StatusBooked || s == StatusCheckedIn
}

// IsTerminal returns true if no transition leaves this status
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// Payment status labels stored on a booking
const (
	PaymentStatusPending     = "pending"
	PaymentStatusWaiting     = "waiting"
	PaymentStatusPaid        = "paid"
	PaymentStatusPenaltyPaid = "penalty paid"
	PaymentStatusPenaltyDue  = "penalty due"
	PaymentStatusNoPenalties = "no penalties"
)

// DefaultCancellationGracePeriod is applied when a booking request does not carry one (hours)
const DefaultCancellationGracePeriod = 24

// Booking represents a reservation of one or more rooms of a hotel
type Booking struct {
	ID           int64
	HotelID      int64
	CustomerID   int64
	RoomIDs      []int64 // ordered, non-empty
	CheckInDate  time.Time
	CheckOutDate time.Time
	CheckedOutAt *time.Time

	// CancellationGracePeriod in hours before check-in
	CancellationGracePeriod int
	TotalAmount             float64

	Status        BookingStatus
	PaymentStatus string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stay returns the booked interval
func (b *Booking) Stay() DateRange {
	return DateRange{CheckIn: b.CheckInDate, CheckOut: b.CheckOutDate}
}

// IsActive returns true if the booking is booked or checked-in
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusBooked || b.Status == StatusCheckedIn
}

// CanCheckIn returns true if the guest can be checked in
func (b *Booking) CanCheckIn() bool {
	return b.Status == StatusBooked
}

// CanCheckOut returns true if the guest can be checked out
func (b *Booking) CanCheckOut() bool {
	return b.Status == StatusCheckedIn
}

// AcceptsServiceCharges returns true if service charges can be added to the booking's invoice
func (b *Booking) AcceptsServiceCharges() bool {
	return b.Status == StatusCheckedIn || b.Status == StatusCheckedOut
}

// SharesRoom returns true if the booking references any of the given rooms
func (b *Booking) SharesRoom(roomIDs []int64) bool {
	for _, own := range b.RoomIDs {
		for _, id := range roomIDs {
			if own == id {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of the booking
func (b *Booking) Clone() *Booking {
	c := *b
	c.RoomIDs = append([]int64(nil), b.RoomIDs...)
	if b.CheckedOutAt != nil {
		t := *b.CheckedOutAt
		c.CheckedOutAt = &t
	}
	return &c
}

// HotelBookingsFilter filters the bookings of one hotel
type HotelBookingsFilter struct {
	HotelID    int64          // Required
	Status     *BookingStatus // Optional
	CustomerID *int64         // Optional
	From       *time.Time     // Optional, stays ending after From
	To         *time.Time     // Optional, stays starting before To
}

// Matches reports whether a booking satisfies the filter
func (f HotelBookingsFilter) Matches(b *Booking) bool {
	if b.HotelID != f.HotelID {
		return false
	}
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	if f.CustomerID != nil && b.CustomerID != *f.CustomerID {
		return false
	}
	if f.From != nil && !b.CheckOutDate.After(*f.From) {
		return false
	}
	if f.To != nil && !b.CheckInDate.Before(*f.To) {
		return false
	}
	return true
}
