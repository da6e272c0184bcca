package projection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
)

type fixture struct {
	store    *memory.Store
	builder  *Builder
	hotel    *domain.Hotel
	customer *domain.Customer
	room     *domain.Room
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	hotel, err := store.Hotels().Create(ctx, &domain.Hotel{Name: "H1", Address: "Street 1"})
	require.NoError(t, err)
	customer, err := store.Customers().Create(ctx, &domain.Customer{Name: "C", Balance: 100})
	require.NoError(t, err)
	room, err := store.Rooms().Create(ctx, &domain.Room{HotelID: hotel.ID, RoomNumber: "101", Type: "standard", PricePerNight: 100})
	require.NoError(t, err)

	builder := NewBuilder(store.Hotels(), store.Rooms(), store.Customers(), store.Payments(), store.Invoices(), logger.Discard())
	return &fixture{store: store, builder: builder, hotel: hotel, customer: customer, room: room}
}

func (f *fixture) booking(t *testing.T, hotelID, customerID int64, roomIDs []int64, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		HotelID:      hotelID,
		CustomerID:   customerID,
		RoomIDs:      roomIDs,
		CheckInDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		TotalAmount:  200,
		Status:       status,
	})
	require.NoError(t, err)
	return b
}

func TestBuilder_Build(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok := f.booking(t, f.hotel.ID, f.customer.ID, []int64{f.room.ID, 999}, domain.StatusCheckedOut)
	noHotel := f.booking(t, 555, f.customer.ID, []int64{f.room.ID}, domain.StatusBooked)
	noCustomer := f.booking(t, f.hotel.ID, 777, []int64{f.room.ID}, domain.StatusBooked)

	paidAt := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)
	_, err := f.store.Payments().Create(ctx, &domain.PaymentTransaction{
		BookingID: ok.ID, Amount: 200, PaymentMethod: "cash", TransactionDate: paidAt, Status: domain.TransactionStatusApproved,
	})
	require.NoError(t, err)
	_, err = f.store.Invoices().Create(ctx, &domain.Invoice{BookingID: ok.ID, HotelID: f.hotel.ID, IssueDate: paidAt})
	require.NoError(t, err)

	views, err := f.builder.Build(ctx, []*domain.Booking{ok, noHotel, noCustomer})
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, ok.ID, v.ID)
	require.NotNil(t, v.Hotel)
	assert.Equal(t, "H1", v.Hotel.Name)
	require.NotNil(t, v.Customer)
	assert.Equal(t, "C", v.Customer.Name)
	require.Len(t, v.Rooms, 1, "missing room is omitted")
	assert.Equal(t, "101", v.Rooms[0].RoomNumber)
	assert.Equal(t, []int64{f.room.ID, 999}, v.RoomIDs)
	require.NotNil(t, v.LatestPayment)
	assert.Equal(t, domain.TransactionStatusApproved, v.LatestPayment.Status)
	assert.True(t, v.HasInvoice)
	assert.Equal(t, "2025-06-01", v.CheckInDate)
	assert.Equal(t, "2025-06-03", v.CheckOutDate)
}

func TestBuilder_BuildEmpty(t *testing.T) {
	f := newFixture(t)

	views, err := f.builder.Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestBuilder_BuildOneDegrades(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, 555, f.customer.ID, []int64{f.room.ID}, domain.StatusBooked)

	view, err := f.builder.BuildOne(context.Background(), b)
	require.NoError(t, err)
	assert.Nil(t, view.Hotel)
	assert.NotNil(t, view.Customer)
	assert.False(t, view.HasInvoice)
	assert.Nil(t, view.LatestPayment)
}

type failingHotels struct{}

func (failingHotels) GetByIDs(context.Context, []int64) ([]*domain.Hotel, error) {
	return nil, errors.New("connection refused")
}

func TestBuilder_BuildStorageError(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, f.hotel.ID, f.customer.ID, []int64{f.room.ID}, domain.StatusBooked)
	builder := NewBuilder(failingHotels{}, f.store.Rooms(), f.store.Customers(), f.store.Payments(), f.store.Invoices(), logger.Discard())

	_, err := builder.Build(context.Background(), []*domain.Booking{b})
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestCategorize(t *testing.T) {
	views := []*models.BookingView{
		{ID: 1, Status: string(domain.StatusBooked)},
		{ID: 2, Status: string(domain.StatusCheckedIn)},
		{ID: 3, Status: string(domain.StatusCheckedOut)},
		{ID: 4, Status: string(domain.StatusCancelled)},
		{ID: 5, Status: string(domain.StatusBooked)},
	}

	got := Categorize(views)

	ids := func(vs []*models.BookingView) []int64 {
		out := make([]int64, 0, len(vs))
		for _, v := range vs {
			out = append(out, v.ID)
		}
		return out
	}
	assert.Equal(t, []int64{3, 4}, ids(got.History))
	assert.Equal(t, []int64{2}, ids(got.Active))
	assert.Equal(t, []int64{1, 5}, ids(got.Future))
}

func TestCategorize_Empty(t *testing.T) {
	got := Categorize(nil)
	assert.NotNil(t, got.History)
	assert.NotNil(t, got.Active)
	assert.NotNil(t, got.Future)
}
