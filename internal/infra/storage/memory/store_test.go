package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/customer"
	invoiceRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/invoice"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
)

func seedRoom(t *testing.T, s *Store, hotelID int64, number string) *domain.Room {
	t.Helper()
	room, err := s.Rooms().Create(context.Background(), &domain.Room{
		HotelID:       hotelID,
		RoomNumber:    number,
		Type:          "standard",
		PricePerNight: 100,
		Status:        domain.RoomAvailable,
	})
	require.NoError(t, err)
	return room
}

func TestStore_DoCommitsOnSuccess(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	room := seedRoom(t, s, 1, "101")

	err := s.Do(ctx, func(txCtx context.Context) error {
		return s.Rooms().UpdateStatus(txCtx, room.ID, domain.RoomBooked)
	})
	require.NoError(t, err)

	got, err := s.Rooms().GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomBooked, got.Status)
}

func TestStore_DoRollsBackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	room := seedRoom(t, s, 1, "101")
	failure := errors.New("boom")

	err := s.Do(ctx, func(txCtx context.Context) error {
		require.NoError(t, s.Rooms().UpdateStatus(txCtx, room.ID, domain.RoomBooked))

		inTx, err := s.Rooms().GetByID(txCtx, room.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoomBooked, inTx.Status)

		outside, err := s.Rooms().GetByID(ctx, room.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoomAvailable, outside.Status)

		return failure
	})
	assert.ErrorIs(t, err, failure)

	got, err := s.Rooms().GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, got.Status)
}

func TestStore_DoRollsBackOnPanic(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	room := seedRoom(t, s, 1, "101")

	assert.Panics(t, func() {
		_ = s.Do(ctx, func(txCtx context.Context) error {
			_ = s.Rooms().UpdateStatus(txCtx, room.ID, domain.RoomOccupied)
			panic("boom")
		})
	})

	got, err := s.Rooms().GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, got.Status)

	// хранилище остаётся рабочим после паники
	require.NoError(t, s.Rooms().UpdateStatus(ctx, room.ID, domain.RoomBooked))
}

func TestStore_DoReadOnlyDiscardsWrites(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	room := seedRoom(t, s, 1, "101")

	err := s.DoReadOnly(ctx, func(txCtx context.Context) error {
		return s.Rooms().UpdateStatus(txCtx, room.ID, domain.RoomBooked)
	})
	require.NoError(t, err)

	got, err := s.Rooms().GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, got.Status)
}

func TestStore_NestedDoJoinsOuter(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	room := seedRoom(t, s, 1, "101")

	err := s.Do(ctx, func(txCtx context.Context) error {
		if err := s.Do(txCtx, func(inner context.Context) error {
			return s.Rooms().UpdateStatus(inner, room.ID, domain.RoomBooked)
		}); err != nil {
			return err
		}
		return errors.New("outer failure")
	})
	require.Error(t, err)

	got, err := s.Rooms().GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, got.Status)
}

func TestStore_DoSerializesTransactions(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	customer, err := s.Customers().Create(ctx, &domain.Customer{Name: "C", Balance: 1000})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(ctx, func(txCtx context.Context) error {
				_, err := s.Customers().Debit(txCtx, customer.ID, 10)
				return err
			})
		}()
	}
	wg.Wait()

	got, err := s.Customers().GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.InDelta(t, 500.0, got.Balance, 0.0001)
}

func TestStore_ReturnedValuesAreCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	room := seedRoom(t, s, 1, "101")

	got, err := s.Rooms().GetByID(ctx, room.ID)
	require.NoError(t, err)
	got.Status = domain.RoomOccupied

	again, err := s.Rooms().GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, again.Status)
}

func TestRoomRepository(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	r1 := seedRoom(t, s, 1, "102")
	r2 := seedRoom(t, s, 1, "101")
	seedRoom(t, s, 2, "101")

	_, err := s.Rooms().Create(ctx, &domain.Room{HotelID: 1, RoomNumber: "101"})
	assert.ErrorIs(t, err, roomRepo.ErrRoomNumberTaken)

	_, err = s.Rooms().GetByID(ctx, 999)
	assert.ErrorIs(t, err, roomRepo.ErrRoomNotFound)
	assert.ErrorIs(t, s.Rooms().UpdateStatus(ctx, 999, domain.RoomBooked), roomRepo.ErrRoomNotFound)

	rooms, err := s.Rooms().GetByIDs(ctx, []int64{r2.ID, 999, r1.ID, r2.ID})
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, r1.ID, rooms[0].ID)
	assert.Equal(t, r2.ID, rooms[1].ID)

	listed, err := s.Rooms().ListByHotel(ctx, 1)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "101", listed[0].RoomNumber)
	assert.Equal(t, "102", listed[1].RoomNumber)
}

func TestCustomerRepository_Debit(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	c, err := s.Customers().Create(ctx, &domain.Customer{Name: "C", Balance: 100})
	require.NoError(t, err)

	balance, err := s.Customers().Debit(ctx, c.ID, 60)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, balance, 0.0001)

	_, err = s.Customers().Debit(ctx, c.ID, 50)
	assert.ErrorIs(t, err, customerRepo.ErrInsufficientBalance)

	_, err = s.Customers().Debit(ctx, 999, 1)
	assert.ErrorIs(t, err, customerRepo.ErrCustomerNotFound)
}

func TestBookingRepository(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC) }

	first, err := s.Bookings().Create(ctx, &domain.Booking{
		HotelID: 1, CustomerID: 7, RoomIDs: []int64{10, 11},
		CheckInDate: day(1), CheckOutDate: day(3), Status: domain.StatusBooked,
	})
	require.NoError(t, err)
	second, err := s.Bookings().Create(ctx, &domain.Booking{
		HotelID: 1, CustomerID: 7, RoomIDs: []int64{12},
		CheckInDate: day(5), CheckOutDate: day(6), Status: domain.StatusCancelled,
	})
	require.NoError(t, err)

	_, err = s.Bookings().GetByID(ctx, 999)
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)

	byRooms, err := s.Bookings().ListByRooms(ctx, 1, []int64{11, 12}, []domain.BookingStatus{domain.StatusBooked})
	require.NoError(t, err)
	require.Len(t, byRooms, 1)
	assert.Equal(t, first.ID, byRooms[0].ID)

	byCustomer, err := s.Bookings().ListByCustomer(ctx, 7)
	require.NoError(t, err)
	require.Len(t, byCustomer, 2)
	assert.Equal(t, second.ID, byCustomer[0].ID)

	checkedOut := day(3)
	first.Status = domain.StatusCheckedOut
	first.PaymentStatus = domain.PaymentStatusPaid
	first.CheckedOutAt = &checkedOut
	require.NoError(t, s.Bookings().Update(ctx, first))

	got, err := s.Bookings().GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCheckedOut, got.Status)
	require.NotNil(t, got.CheckedOutAt)
	assert.True(t, got.CheckedOutAt.Equal(checkedOut))

	status := domain.StatusCheckedOut
	filtered, err := s.Bookings().ListByHotel(ctx, domain.HotelBookingsFilter{HotelID: 1, Status: &status})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, first.ID, filtered[0].ID)
}

func TestInvoiceAndPaymentRepositories(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := s.Invoices().GetLatestByBookingID(ctx, 1)
	assert.ErrorIs(t, err, invoiceRepo.ErrInvoiceNotFound)

	inv, err := s.Invoices().Create(ctx, &domain.Invoice{
		Number: "INV-1", BookingID: 1, HotelID: 1, IssueDate: at, Status: domain.InvoiceStatusIssued,
		ServiceCharges: []domain.ServiceCharge{{Name: "Breakfast", Total: 20, Quantity: 2, Unit: "meal"}},
	})
	require.NoError(t, err)
	inv.Recalculate()
	inv.Status = domain.InvoiceStatusPaid
	require.NoError(t, s.Invoices().Update(ctx, inv))

	latest, err := s.Invoices().GetLatestByBookingID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, latest.Status)
	assert.InDelta(t, 20.0, latest.TotalAmount, 0.0001)

	flags, err := s.Invoices().ListBookingIDsWithInvoices(ctx, []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{1: true}, flags)

	_, err = s.Payments().Create(ctx, &domain.PaymentTransaction{BookingID: 1, Amount: 10, TransactionDate: at})
	require.NoError(t, err)
	last, err := s.Payments().Create(ctx, &domain.PaymentTransaction{BookingID: 1, Amount: 30, TransactionDate: at.Add(time.Hour)})
	require.NoError(t, err)

	payments, err := s.Payments().GetLatestByBookingIDs(ctx, []int64{1, 2})
	require.NoError(t, err)
	require.Contains(t, payments, int64(1))
	assert.Equal(t, last.ID, payments[1].ID)
	assert.NotContains(t, payments, int64(2))
}

func TestStore_SeedDemo(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.SeedDemo(ctx))

	hotel, err := s.Hotels().GetByID(ctx, 1)
	require.NoError(t, err)
	rooms, err := s.Rooms().ListByHotel(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Len(t, rooms, 3)
}
