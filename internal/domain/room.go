package domain

import "time"

// RoomStatus is a cached projection of the active bookings referencing a room
type RoomStatus string

const (
	RoomAvailable RoomStatus = "available"
	RoomBooked    RoomStatus = "booked"
	RoomOccupied  RoomStatus = "occupied"
)

// Room represents a bookable room of a hotel
type Room struct {
	ID            int64
	HotelID       int64
	RoomNumber    string
	Type          string
	PricePerNight float64
	Status        RoomStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Hotel represents a hotel owning rooms
type Hotel struct {
	ID        int64
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
}

// Customer represents a guest with a prepaid balance
type Customer struct {
	ID          int64
	Name        string
	ContactInfo string
	PhoneNumber string
	IDType      string
	IDNumber    string
	Balance     float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanAfford returns true if the balance covers the amount
func (c *Customer) CanAfford(amount float64) bool {
	return c.Balance >= amount
}
