package bookings

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
	"github.com/m04kA/SMC-HotelBookingService/internal/service/projection"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
)

type mapCache struct {
	views map[int64]*models.BookingView
	gets  int
}

func (c *mapCache) Get(_ context.Context, id int64) (*models.BookingView, error) {
	c.gets++
	v, ok := c.views[id]
	if !ok {
		return nil, errors.New("miss")
	}
	return v, nil
}

func (c *mapCache) Set(_ context.Context, view *models.BookingView) error {
	c.views[view.ID] = view
	return nil
}

type fixture struct {
	store   *memory.Store
	service *Service
	cache   *mapCache
	hotelID int64
	alice   int64
	bob     int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	hotel, err := store.Hotels().Create(ctx, &domain.Hotel{Name: "H1"})
	require.NoError(t, err)
	alice, err := store.Customers().Create(ctx, &domain.Customer{Name: "Alice"})
	require.NoError(t, err)
	bob, err := store.Customers().Create(ctx, &domain.Customer{Name: "Bob"})
	require.NoError(t, err)

	builder := projection.NewBuilder(store.Hotels(), store.Rooms(), store.Customers(), store.Payments(), store.Invoices(), logger.Discard())
	cache := &mapCache{views: make(map[int64]*models.BookingView)}
	svc := NewService(store.Bookings(), builder, cache, store, logger.Discard())

	return &fixture{store: store, service: svc, cache: cache, hotelID: hotel.ID, alice: alice.ID, bob: bob.ID}
}

func (f *fixture) booking(t *testing.T, customerID int64, day int, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		HotelID:      f.hotelID,
		CustomerID:   customerID,
		RoomIDs:      []int64{100},
		CheckInDate:  time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2025, 6, day+1, 0, 0, 0, 0, time.UTC),
		Status:       status,
	})
	require.NoError(t, err)
	return b
}

func TestService_GetByID_Access(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, f.alice, 1, domain.StatusBooked)
	otherHotel := f.hotelID + 100

	tests := []struct {
		name    string
		scope   domain.AccessScope
		wantErr error
	}{
		{name: "owner", scope: domain.AccessScope{UserID: f.alice, Role: domain.RoleCustomer}},
		{name: "other customer", scope: domain.AccessScope{UserID: f.bob, Role: domain.RoleCustomer}, wantErr: ErrBookingNotFound},
		{name: "receptionist of hotel", scope: domain.AccessScope{UserID: 50, Role: domain.RoleReceptionist, HotelID: ptr.Ptr(f.hotelID)}},
		{name: "manager of other hotel", scope: domain.AccessScope{UserID: 51, Role: domain.RoleManager, HotelID: ptr.Ptr(otherHotel)}, wantErr: ErrBookingNotFound},
		{name: "admin", scope: domain.AccessScope{UserID: 1, Role: domain.RoleAdmin}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := f.service.GetByID(context.Background(), b.ID, tt.scope)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, b.ID, view.ID)
		})
	}
}

func TestService_GetByID_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetByID(context.Background(), 999, domain.AccessScope{Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetByID_UsesCache(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, f.alice, 1, domain.StatusBooked)
	scope := domain.AccessScope{UserID: f.alice, Role: domain.RoleCustomer}

	_, err := f.service.GetByID(context.Background(), b.ID, scope)
	require.NoError(t, err)
	require.Contains(t, f.cache.views, b.ID)

	f.cache.views[b.ID].PaymentStatus = "from cache"
	view, err := f.service.GetByID(context.Background(), b.ID, scope)
	require.NoError(t, err)
	assert.Equal(t, "from cache", view.PaymentStatus)

	_, err = f.service.GetByID(context.Background(), b.ID, domain.AccessScope{UserID: f.bob, Role: domain.RoleCustomer})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_ListHotelBookings(t *testing.T) {
	f := newFixture(t)
	f.booking(t, f.alice, 1, domain.StatusBooked)
	f.booking(t, f.bob, 3, domain.StatusCancelled)
	manager := domain.AccessScope{UserID: 50, Role: domain.RoleManager, HotelID: ptr.Ptr(f.hotelID)}

	all, err := f.service.ListHotelBookings(context.Background(), &models.ListHotelBookingsRequest{Scope: manager, HotelID: f.hotelID})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	booked, err := f.service.ListHotelBookings(context.Background(), &models.ListHotelBookingsRequest{
		Scope: manager, HotelID: f.hotelID, Status: ptr.Ptr("booked"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, booked.Total)
	assert.Equal(t, f.alice, booked.Bookings[0].CustomerID)

	_, err = f.service.ListHotelBookings(context.Background(), &models.ListHotelBookingsRequest{
		Scope: manager, HotelID: f.hotelID, Status: ptr.Ptr("unknown"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.service.ListHotelBookings(context.Background(), &models.ListHotelBookingsRequest{
		Scope: domain.AccessScope{UserID: f.alice, Role: domain.RoleCustomer}, HotelID: f.hotelID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_ListCustomerBookings(t *testing.T) {
	f := newFixture(t)
	f.booking(t, f.alice, 1, domain.StatusCheckedOut)
	f.booking(t, f.alice, 5, domain.StatusCheckedIn)
	f.booking(t, f.alice, 9, domain.StatusBooked)
	f.booking(t, f.alice, 12, domain.StatusBooked)
	f.booking(t, f.bob, 9, domain.StatusBooked)

	got, err := f.service.ListCustomerBookings(context.Background(), f.alice)
	require.NoError(t, err)
	assert.Len(t, got.History, 1)
	assert.Len(t, got.Active, 1)
	assert.Len(t, got.Future, 2)

	_, err = f.service.ListCustomerBookings(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
