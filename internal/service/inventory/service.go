package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Service поддерживает статус номеров как проекцию активных бронирований.
// Вызывается только внутри транзакции перехода бронирования.
type Service struct {
	roomRepo    RoomRepository
	bookingRepo BookingRepository
}

// NewService создает новый экземпляр сервиса номерного фонда
func NewService(roomRepo RoomRepository, bookingRepo BookingRepository) *Service {
	return &Service{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
	}
}

// Reserve помечает номера забронированными.
// Номер с заселённым гостем другого бронирования остаётся occupied.
func (s *Service) Reserve(ctx context.Context, rooms []*domain.Room) error {
	for _, room := range sortedRooms(rooms) {
		if room.Status == domain.RoomOccupied {
			continue
		}
		if err := s.roomRepo.UpdateStatus(ctx, room.ID, domain.RoomBooked); err != nil {
			return fmt.Errorf("%w: Reserve - room id=%d: %v", ErrInternal, room.ID, err)
		}
	}
	return nil
}

// Occupy помечает номера заселёнными
func (s *Service) Occupy(ctx context.Context, roomIDs []int64) error {
	for _, id := range sortedIDs(roomIDs) {
		if err := s.roomRepo.UpdateStatus(ctx, id, domain.RoomOccupied); err != nil {
			return fmt.Errorf("%w: Occupy - room id=%d: %v", ErrInternal, id, err)
		}
	}
	return nil
}

// Release освобождает номера бронирования.
// Номер, который держало только это бронирование, становится available.
// Если номер ещё держит другое активное бронирование, статус выводится из него:
// booked для будущего заезда, occupied для проживающего гостя.
func (s *Service) Release(ctx context.Context, booking *domain.Booking) error {
	others, err := s.bookingRepo.ListByRooms(ctx, booking.HotelID, booking.RoomIDs,
		[]domain.BookingStatus{domain.StatusBooked, domain.StatusCheckedIn})
	if err != nil {
		return fmt.Errorf("%w: Release - list bookings: %v", ErrInternal, err)
	}

	for _, id := range sortedIDs(booking.RoomIDs) {
		status := derivedStatus(id, booking.ID, others)
		if err := s.roomRepo.UpdateStatus(ctx, id, status); err != nil {
			return fmt.Errorf("%w: Release - room id=%d: %v", ErrInternal, id, err)
		}
	}
	return nil
}

// derivedStatus статус номера по остальным активным бронированиям
func derivedStatus(roomID, excludeBookingID int64, bookings []*domain.Booking) domain.RoomStatus {
	status := domain.RoomAvailable
	for _, b := range bookings {
		if b.ID == excludeBookingID || !b.IsActive() || !b.SharesRoom([]int64{roomID}) {
			continue
		}
		if b.Status == domain.StatusCheckedIn {
			return domain.RoomOccupied
		}
		status = domain.RoomBooked
	}
	return status
}

// Номера обновляются по возрастанию id, как и блокируются
func sortedIDs(ids []int64) []int64 {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}

func sortedRooms(rooms []*domain.Room) []*domain.Room {
	sorted := append([]*domain.Room(nil), rooms...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return sorted
}
