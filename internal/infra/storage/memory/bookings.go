package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
)

type BookingRepository struct {
	store *Store
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	err := r.store.write(ctx, func(st *state) error {
		b.ID = st.nextID()
		b.CreatedAt = r.store.now()
		b.UpdatedAt = b.CreatedAt
		st.bookings[b.ID] = b.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var result *domain.Booking
	err := r.store.read(ctx, func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return bookingRepo.ErrBookingNotFound
		}
		result = b.Clone()
		return nil
	})
	return result, err
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	return r.store.write(ctx, func(st *state) error {
		existing, ok := st.bookings[b.ID]
		if !ok {
			return bookingRepo.ErrBookingNotFound
		}
		existing.Status = b.Status
		existing.PaymentStatus = b.PaymentStatus
		existing.CheckedOutAt = nil
		if b.CheckedOutAt != nil {
			t := *b.CheckedOutAt
			existing.CheckedOutAt = &t
		}
		existing.UpdatedAt = r.store.now()
		return nil
	})
}

func (r *BookingRepository) ListByHotel(ctx context.Context, filter domain.HotelBookingsFilter) ([]*domain.Booking, error) {
	return r.list(ctx, filter.Matches, byCheckInAsc)
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Booking, error) {
	return r.list(ctx, func(b *domain.Booking) bool {
		return b.CustomerID == customerID
	}, byCheckInDesc)
}

func (r *BookingRepository) ListByRooms(
	ctx context.Context,
	hotelID int64,
	roomIDs []int64,
	statuses []domain.BookingStatus,
) ([]*domain.Booking, error) {
	return r.list(ctx, func(b *domain.Booking) bool {
		if b.HotelID != hotelID || !b.SharesRoom(roomIDs) {
			return false
		}
		for _, s := range statuses {
			if b.Status == s {
				return true
			}
		}
		return false
	}, byCheckInAsc)
}

func (r *BookingRepository) list(
	ctx context.Context,
	match func(b *domain.Booking) bool,
	less func(a, b *domain.Booking) bool,
) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	err := r.store.read(ctx, func(st *state) error {
		for _, b := range st.bookings {
			if match(b) {
				result = append(result, b.Clone())
			}
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return less(result[i], result[j]) })
	return result, err
}

func byCheckInAsc(a, b *domain.Booking) bool {
	if a.CheckInDate.Equal(b.CheckInDate) {
		return a.ID < b.ID
	}
	return a.CheckInDate.Before(b.CheckInDate)
}

func byCheckInDesc(a, b *domain.Booking) bool {
	if a.CheckInDate.Equal(b.CheckInDate) {
		return a.ID > b.ID
	}
	return a.CheckInDate.After(b.CheckInDate)
}
