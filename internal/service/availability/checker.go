package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Options настройки проверки доступности
type Options struct {
	// CheckedOutBlocks учитывать завершённые проживания как занимающие интервал
	CheckedOutBlocks bool
}

// Checker проверяет, что номера свободны на интервале [checkIn, checkOut)
type Checker struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
	blocking    []domain.BookingStatus
}

// NewChecker создает новый экземпляр проверки доступности
func NewChecker(bookingRepo BookingRepository, roomRepo RoomRepository, opts Options) *Checker {
	blocking := []domain.BookingStatus{domain.StatusBooked, domain.StatusCheckedIn}
	if opts.CheckedOutBlocks {
		blocking = append(blocking, domain.StatusCheckedOut)
	}

	return &Checker{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		blocking:    blocking,
	}
}

// BlockingStatuses статусы бронирований, занимающих номер на своём интервале
func (c *Checker) BlockingStatuses() []domain.BookingStatus {
	return append([]domain.BookingStatus(nil), c.blocking...)
}

// IsAvailable возвращает true, если все номера существуют, принадлежат отелю
// и не пересекаются с блокирующими бронированиями
func (c *Checker) IsAvailable(ctx context.Context, hotelID int64, roomIDs []int64, stay domain.DateRange) (bool, error) {
	if err := validate(roomIDs, stay); err != nil {
		return false, err
	}

	rooms, err := c.roomRepo.GetByIDs(ctx, roomIDs)
	if err != nil {
		return false, fmt.Errorf("%w: IsAvailable - get rooms: %v", ErrInternal, err)
	}

	byID := make(map[int64]*domain.Room, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}
	for _, id := range roomIDs {
		room, ok := byID[id]
		if !ok || room.HotelID != hotelID {
			return false, nil
		}
	}

	conflicts, err := c.Conflicts(ctx, hotelID, roomIDs, stay)
	if err != nil {
		return false, err
	}

	return len(conflicts) == 0, nil
}

// Conflicts возвращает блокирующие бронирования, пересекающиеся с интервалом по любому из номеров
func (c *Checker) Conflicts(ctx context.Context, hotelID int64, roomIDs []int64, stay domain.DateRange) ([]*domain.Booking, error) {
	if err := validate(roomIDs, stay); err != nil {
		return nil, err
	}

	bookings, err := c.bookingRepo.ListByRooms(ctx, hotelID, roomIDs, c.blocking)
	if err != nil {
		return nil, fmt.Errorf("%w: Conflicts - list bookings: %v", ErrInternal, err)
	}

	return Overlapping(bookings, roomIDs, stay, c.blocking), nil
}

// RoomAvailability для каждого номера сообщает, свободен ли он на интервале
func (c *Checker) RoomAvailability(ctx context.Context, hotelID int64, roomIDs []int64, stay domain.DateRange) (map[int64]bool, error) {
	result := make(map[int64]bool, len(roomIDs))
	if len(roomIDs) == 0 {
		return result, nil
	}

	conflicts, err := c.Conflicts(ctx, hotelID, roomIDs, stay)
	if err != nil {
		return nil, err
	}

	for _, id := range roomIDs {
		result[id] = true
	}
	for _, b := range conflicts {
		for _, id := range b.RoomIDs {
			if _, ok := result[id]; ok {
				result[id] = false
			}
		}
	}

	return result, nil
}

// Overlapping отбирает бронирования с блокирующим статусом, которые делят хотя бы один номер
// и пересекаются с интервалом (полуоткрытые интервалы)
func Overlapping(bookings []*domain.Booking, roomIDs []int64, stay domain.DateRange, blocking []domain.BookingStatus) []*domain.Booking {
	result := make([]*domain.Booking, 0)
	for _, b := range bookings {
		if !isBlocking(b.Status, blocking) {
			continue
		}
		if !b.SharesRoom(roomIDs) {
			continue
		}
		if b.Stay().Overlaps(stay) {
			result = append(result, b)
		}
	}
	return result
}

func isBlocking(status domain.BookingStatus, blocking []domain.BookingStatus) bool {
	// Отменённые бронирования никогда не блокируют
	if status == domain.StatusCancelled {
		return false
	}
	for _, s := range blocking {
		if s == status {
			return true
		}
	}
	return false
}

func validate(roomIDs []int64, stay domain.DateRange) error {
	if len(roomIDs) == 0 {
		return ErrNoRooms
	}
	if !stay.IsValid() {
		return ErrInvalidStay
	}
	return nil
}
