package check_out

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/billing"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/inventory"
	"github.com/m04kA/SMC-HotelBookingService/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-HotelBookingService/internal/usecase/check_in"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
)

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopPublisher struct {
	events []domain.BookingEvent
}

func (p *nopPublisher) Publish(_ context.Context, event domain.BookingEvent) error {
	p.events = append(p.events, event)
	return nil
}

var checkedOutAt = time.Date(2025, 6, 3, 10, 30, 0, 0, time.UTC)

func setup(t *testing.T, status domain.BookingStatus) (*UseCase, *memory.Store, *domain.Booking, *nopPublisher) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	hotel, err := store.Hotels().Create(ctx, &domain.Hotel{Name: "H1"})
	require.NoError(t, err)

	r1, err := store.Rooms().Create(ctx, &domain.Room{HotelID: hotel.ID, RoomNumber: "101", Type: "standard", PricePerNight: 100, Status: domain.RoomOccupied})
	require.NoError(t, err)
	r2, err := store.Rooms().Create(ctx, &domain.Room{HotelID: hotel.ID, RoomNumber: "201", Type: "suite", PricePerNight: 250, Status: domain.RoomOccupied})
	require.NoError(t, err)

	b, err := store.Bookings().Create(ctx, &domain.Booking{
		HotelID: hotel.ID, CustomerID: 1, RoomIDs: []int64{r1.ID, r2.ID},
		CheckInDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		TotalAmount:  700, Status: status, PaymentStatus: domain.PaymentStatusPending,
	})
	require.NoError(t, err)

	publisher := &nopPublisher{}
	uc := NewUseCase(store.Bookings(), store.Rooms(), inventory.NewService(store.Rooms(), store.Bookings()),
		billing.NewRecorder(store.Payments(), store.Invoices()), store, publisher,
		Options{DefaultPaymentMethod: "cash"}, logger.Discard())
	uc.timeProvider = fixedTime{now: checkedOutAt}
	return uc, store, b, publisher
}

func TestUseCase_CheckOut(t *testing.T) {
	uc, store, b, publisher := setup(t, domain.StatusCheckedIn)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{HotelID: b.HotelID, BookingID: b.ID, PaymentMethod: "card"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCheckedOut, resp.Status)
	assert.Equal(t, domain.PaymentStatusPaid, resp.PaymentStatus)
	assert.Equal(t, 2, resp.Nights)
	assert.InDelta(t, 700.0, resp.AmountPaid, 0.0001)
	assert.InDelta(t, 700.0, resp.InvoiceTotal, 0.0001)

	got, err := store.Bookings().GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CheckedOutAt)
	assert.True(t, got.CheckedOutAt.Equal(checkedOutAt))

	rooms, err := store.Rooms().GetByIDs(ctx, b.RoomIDs)
	require.NoError(t, err)
	for _, r := range rooms {
		assert.Equal(t, domain.RoomAvailable, r.Status)
	}

	payments, err := store.Payments().ListByBookingID(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, domain.TransactionStatusApproved, payments[0].Status)
	assert.Equal(t, "card", payments[0].PaymentMethod)

	inv, err := store.Invoices().GetLatestByBookingID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.RoomCharge{
		{Description: "Room 101 (standard) x 2 night(s)", Total: 200},
		{Description: "Room 201 (suite) x 2 night(s)", Total: 500},
	}, inv.RoomCharges)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, domain.EventBookingCheckedOut, publisher.events[0].Type)
}

func TestUseCase_CheckOutDefaultPaymentMethod(t *testing.T) {
	uc, store, b, _ := setup(t, domain.StatusCheckedIn)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{HotelID: b.HotelID, BookingID: b.ID})
	require.NoError(t, err)

	payments, err := store.Payments().ListByBookingID(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "cash", payments[0].PaymentMethod)
}

func TestUseCase_CheckOutInvalidTransitions(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusBooked, domain.StatusCheckedOut, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			uc, _, b, _ := setup(t, status)

			_, err := uc.Execute(context.Background(), &Request{HotelID: b.HotelID, BookingID: b.ID})
			assert.ErrorIs(t, err, ErrCannotCheckOut)
			assert.Equal(t, domain.KindInvalidTransition, domain.KindOf(err))
		})
	}
}

// После выезда ни один переход не допускается
func TestLifecycle_TerminalStateIsClosed(t *testing.T) {
	uc, store, b, _ := setup(t, domain.StatusBooked)
	ctx := context.Background()
	publisher := &nopPublisher{}

	checkIn := check_in.NewUseCase(store.Bookings(), store.Rooms(),
		inventory.NewService(store.Rooms(), store.Bookings()), store, publisher, logger.Discard())
	cancel := cancel_booking.NewUseCase(store.Bookings(), store.Rooms(), store.Customers(), store.Cancellations(),
		inventory.NewService(store.Rooms(), store.Bookings()), billing.NewRecorder(store.Payments(), store.Invoices()),
		store, publisher, cancel_booking.Options{DefaultPaymentMethod: "cash"}, logger.Discard())

	_, err := checkIn.Execute(ctx, &check_in.Request{HotelID: b.HotelID, BookingID: b.ID})
	require.NoError(t, err)
	_, err = uc.Execute(ctx, &Request{HotelID: b.HotelID, BookingID: b.ID})
	require.NoError(t, err)

	_, err = checkIn.Execute(ctx, &check_in.Request{HotelID: b.HotelID, BookingID: b.ID})
	assert.Equal(t, domain.KindInvalidTransition, domain.KindOf(err))
	_, err = uc.Execute(ctx, &Request{HotelID: b.HotelID, BookingID: b.ID})
	assert.Equal(t, domain.KindInvalidTransition, domain.KindOf(err))
	_, err = cancel.Execute(ctx, &cancel_booking.Request{HotelID: b.HotelID, BookingID: b.ID})
	assert.Equal(t, domain.KindInvalidTransition, domain.KindOf(err))
}
