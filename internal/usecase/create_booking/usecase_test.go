package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/inventory"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
)

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.BookingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

// failingRooms отказывает на n-м обновлении статуса
type failingRooms struct {
	inventory.RoomRepository
	failOn int
	calls  int
}

func (f *failingRooms) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	f.calls++
	if f.calls == f.failOn {
		return errors.New("disk full")
	}
	return f.RoomRepository.UpdateStatus(ctx, id, status)
}

type fixture struct {
	store        *memory.Store
	uc           *UseCase
	publisher    *recordingPublisher
	hotelID      int64
	otherHotelID int64
	r101         *domain.Room
	r102         *domain.Room
	foreignRoom  *domain.Room
	customerID   int64
	poorID       int64
}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func newFixture(t *testing.T, wrapRooms func(inventory.RoomRepository) inventory.RoomRepository) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	f := &fixture{store: store, publisher: &recordingPublisher{}}

	hotel, err := store.Hotels().Create(ctx, &domain.Hotel{Name: "H1"})
	require.NoError(t, err)
	other, err := store.Hotels().Create(ctx, &domain.Hotel{Name: "H2"})
	require.NoError(t, err)
	f.hotelID, f.otherHotelID = hotel.ID, other.ID

	room := func(hotelID int64, number string, price float64) *domain.Room {
		r, err := store.Rooms().Create(ctx, &domain.Room{
			HotelID: hotelID, RoomNumber: number, Type: "standard", PricePerNight: price, Status: domain.RoomAvailable,
		})
		require.NoError(t, err)
		return r
	}
	f.r101 = room(hotel.ID, "101", 100)
	f.r102 = room(hotel.ID, "102", 150)
	f.foreignRoom = room(other.ID, "101", 90)

	rich, err := store.Customers().Create(ctx, &domain.Customer{Name: "C", Balance: 1000})
	require.NoError(t, err)
	poor, err := store.Customers().Create(ctx, &domain.Customer{Name: "P", Balance: 10})
	require.NoError(t, err)
	f.customerID, f.poorID = rich.ID, poor.ID

	var roomsForInventory inventory.RoomRepository = store.Rooms()
	if wrapRooms != nil {
		roomsForInventory = wrapRooms(roomsForInventory)
	}
	checker := availability.NewChecker(store.Bookings(), store.Rooms(), availability.Options{})
	inv := inventory.NewService(roomsForInventory, store.Bookings())

	f.uc = NewUseCase(store.Hotels(), store.Rooms(), store.Customers(), store.Bookings(),
		checker, inv, store, f.publisher, Options{DefaultGracePeriodHours: 24}, logger.Discard())
	f.uc.timeProvider = fixedTime{now: day(1).Add(-72 * time.Hour)}
	return f
}

func (f *fixture) request(customerID int64, from, to int, rooms ...int64) *Request {
	return &Request{
		HotelID:      f.hotelID,
		CustomerID:   customerID,
		RoomIDs:      rooms,
		CheckInDate:  day(from),
		CheckOutDate: day(to),
	}
}

func TestUseCase_Scenario(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, f.request(f.customerID, 1, 3, f.r101.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBooked, resp.Status)
	assert.Equal(t, 2, resp.Nights)
	assert.InDelta(t, 200.0, resp.TotalAmount, 0.0001)
	assert.Equal(t, domain.PaymentStatusPending, resp.PaymentStatus)
	assert.Equal(t, domain.DefaultCancellationGracePeriod, resp.CancellationGracePeriod)

	room, err := f.store.Rooms().GetByID(ctx, f.r101.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomBooked, room.Status)

	_, err = f.uc.Execute(ctx, f.request(f.poorID, 2, 4, f.r101.ID))
	assert.ErrorIs(t, err, ErrRoomsUnavailable)
	assert.Equal(t, domain.KindUnavailable, domain.KindOf(err))

	// выезд в день заезда следующего гостя не пересекается
	_, err = f.uc.Execute(ctx, f.request(f.poorID, 3, 5, f.r101.ID))
	require.NoError(t, err)

	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, domain.EventBookingCreated, f.publisher.events[0].Type)
	assert.Equal(t, resp.ID, f.publisher.events[0].BookingID)
	assert.InDelta(t, 200.0, f.publisher.events[0].Amount, 0.0001)
}

func TestUseCase_TotalAcrossRooms(t *testing.T) {
	f := newFixture(t, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		HotelID:      f.hotelID,
		CustomerID:   f.customerID,
		RoomIDs:      []int64{f.r102.ID, f.r101.ID},
		CheckInDate:  day(1),
		CheckOutDate: day(1).Add(36 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Nights, "partial day rounds up")
	assert.InDelta(t, 500.0, resp.TotalAmount, 0.0001)
	assert.Equal(t, []int64{f.r102.ID, f.r101.ID}, resp.RoomIDs)
}

func TestUseCase_InsufficientBalanceDoesNotBlock(t *testing.T) {
	f := newFixture(t, nil)

	resp, err := f.uc.Execute(context.Background(), f.request(f.poorID, 1, 3, f.r101.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusWaiting, resp.PaymentStatus)
}

func TestUseCase_CustomGracePeriod(t *testing.T) {
	f := newFixture(t, nil)
	req := f.request(f.customerID, 1, 3, f.r101.ID)
	req.CancellationGracePeriod = ptr.Ptr(0)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CancellationGracePeriod)
}

func TestUseCase_Validation(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "no rooms", mutate: func(r *Request) { r.RoomIDs = nil }, wantErr: ErrInvalidInput},
		{name: "duplicate rooms", mutate: func(r *Request) { r.RoomIDs = []int64{f.r101.ID, f.r101.ID} }, wantErr: ErrInvalidInput},
		{name: "checkout equals checkin", mutate: func(r *Request) { r.CheckOutDate = r.CheckInDate }, wantErr: ErrInvalidInput},
		{name: "checkout before checkin", mutate: func(r *Request) { r.CheckOutDate = day(0) }, wantErr: ErrInvalidInput},
		{name: "negative grace", mutate: func(r *Request) { r.CancellationGracePeriod = ptr.Ptr(-1) }, wantErr: ErrInvalidInput},
		{name: "missing customer id", mutate: func(r *Request) { r.CustomerID = 0 }, wantErr: ErrInvalidInput},
		{name: "unknown hotel", mutate: func(r *Request) { r.HotelID = 999 }, wantErr: ErrHotelNotFound},
		{name: "unknown room", mutate: func(r *Request) { r.RoomIDs = []int64{f.r101.ID, 999} }, wantErr: ErrRoomNotFound},
		{name: "room of another hotel", mutate: func(r *Request) { r.RoomIDs = []int64{f.foreignRoom.ID} }, wantErr: ErrRoomHotelMismatch},
		{name: "unknown customer", mutate: func(r *Request) { r.CustomerID = 999 }, wantErr: ErrCustomerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request(f.customerID, 1, 3, f.r101.ID)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	bookings, err := f.store.Bookings().ListByHotel(context.Background(), domain.HotelBookingsFilter{HotelID: f.hotelID})
	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.Equal(t, domain.KindValidation, domain.KindOf(ErrInvalidInput))
	assert.Equal(t, domain.KindHotelMismatch, domain.KindOf(ErrRoomHotelMismatch))
}

func TestUseCase_ConcurrentReservationsOneWinner(t *testing.T) {
	f := newFixture(t, nil)
	const attempts = 20

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// пересекающиеся интервалы: [1,3), [2,4) ...
			from := 1 + i%2
			_, err := f.uc.Execute(context.Background(), f.request(f.customerID, from, from+2, f.r101.ID))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrRoomsUnavailable):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	active, err := f.store.Bookings().ListByRooms(context.Background(), f.hotelID, []int64{f.r101.ID},
		[]domain.BookingStatus{domain.StatusBooked, domain.StatusCheckedIn})
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestUseCase_AtomicOnMidTransactionFailure(t *testing.T) {
	failing := &failingRooms{failOn: 2}
	f := newFixture(t, func(r inventory.RoomRepository) inventory.RoomRepository {
		failing.RoomRepository = r
		return failing
	})
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, f.request(f.customerID, 1, 3, f.r101.ID, f.r102.ID))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 2, failing.calls)

	for _, id := range []int64{f.r101.ID, f.r102.ID} {
		room, err := f.store.Rooms().GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.RoomAvailable, room.Status, "room id=%d", id)
	}
	bookings, err := f.store.Bookings().ListByCustomer(ctx, f.customerID)
	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.Empty(t, f.publisher.events)
}

func TestUseCase_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture(t, nil)
	f.publisher.err = errors.New("broker down")

	resp, err := f.uc.Execute(context.Background(), f.request(f.customerID, 1, 3, f.r101.ID))
	require.NoError(t, err)

	got, err := f.store.Bookings().GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBooked, got.Status)
}
