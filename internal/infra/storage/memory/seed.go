package memory

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// SeedDemo наполняет хранилище демонстрационными данными:
// один отель с тремя номерами и два клиента
func (s *Store) SeedDemo(ctx context.Context) error {
	hotel, err := s.Hotels().Create(ctx, &domain.Hotel{
		Name:    "Grand Hotel",
		Address: "1 Main Street",
		Phone:   "+1-555-0100",
	})
	if err != nil {
		return fmt.Errorf("SeedDemo - hotel: %w", err)
	}

	rooms := []*domain.Room{
		{HotelID: hotel.ID, RoomNumber: "101", Type: "standard", PricePerNight: 100},
		{HotelID: hotel.ID, RoomNumber: "102", Type: "standard", PricePerNight: 100},
		{HotelID: hotel.ID, RoomNumber: "201", Type: "suite", PricePerNight: 250},
	}
	for _, room := range rooms {
		room.Status = domain.RoomAvailable
		if _, err := s.Rooms().Create(ctx, room); err != nil {
			return fmt.Errorf("SeedDemo - room %s: %w", room.RoomNumber, err)
		}
	}

	customers := []*domain.Customer{
		{Name: "Alice Smith", ContactInfo: "alice@example.com", PhoneNumber: "+1-555-0101", IDType: "passport", IDNumber: "P1234567", Balance: 1000},
		{Name: "Bob Jones", ContactInfo: "bob@example.com", PhoneNumber: "+1-555-0102", IDType: "passport", IDNumber: "P7654321", Balance: 50},
	}
	for _, c := range customers {
		if _, err := s.Customers().Create(ctx, c); err != nil {
			return fmt.Errorf("SeedDemo - customer %s: %w", c.Name, err)
		}
	}

	return nil
}
