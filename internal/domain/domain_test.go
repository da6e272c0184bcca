package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRange_Overlaps(t *testing.T) {
	base := DateRange{CheckIn: day(1), CheckOut: day(3)}

	tests := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"same interval", DateRange{day(1), day(3)}, true},
		{"shifted by one night", DateRange{day(2), day(4)}, true},
		{"contained", DateRange{day(1), day(2)}, true},
		{"adjacent after", DateRange{day(3), day(5)}, false},
		{"adjacent before", DateRange{day(0), day(1)}, false},
		{"disjoint", DateRange{day(10), day(12)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestDateRange_IsValid(t *testing.T) {
	assert.True(t, DateRange{day(1), day(2)}.IsValid())
	assert.False(t, DateRange{day(2), day(2)}.IsValid())
	assert.False(t, DateRange{day(3), day(2)}.IsValid())
}

func TestBookingTransitions(t *testing.T) {
	tests := []struct {
		status   BookingStatus
		cancel   bool
		checkIn  bool
		checkOut bool
		active   bool
		terminal bool
	}{
		{StatusBooked, true, true, false, true, false},
		{StatusCheckedIn, true, false, true, true, false},
		{StatusCheckedOut, false, false, false, false, true},
		{StatusCancelled, false, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.cancel, b.CanBeCancelled())
			assert.Equal(t, tt.checkIn, b.CanCheckIn())
			assert.Equal(t, tt.checkOut, b.CanCheckOut())
			assert.Equal(t, tt.active, b.IsActive())
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
		})
	}
}

func TestBooking_SharesRoom(t *testing.T) {
	b := &Booking{RoomIDs: []int64{1, 2}}
	assert.True(t, b.SharesRoom([]int64{5, 2}))
	assert.False(t, b.SharesRoom([]int64{3}))
}

func TestBooking_Clone(t *testing.T) {
	now := day(1)
	b := &Booking{RoomIDs: []int64{1}, CheckedOutAt: &now}
	c := b.Clone()
	c.RoomIDs[0] = 9
	*c.CheckedOutAt = day(5)

	assert.Equal(t, int64(1), b.RoomIDs[0])
	assert.Equal(t, day(1), *b.CheckedOutAt)
}

func TestHotelBookingsFilter_Matches(t *testing.T) {
	b := &Booking{HotelID: 1, CustomerID: 7, Status: StatusBooked, CheckInDate: day(5), CheckOutDate: day(8)}

	booked := StatusBooked
	cancelled := StatusCancelled
	customer := int64(7)
	other := int64(8)
	from := day(8)
	to := day(6)

	assert.True(t, HotelBookingsFilter{HotelID: 1}.Matches(b))
	assert.False(t, HotelBookingsFilter{HotelID: 2}.Matches(b))
	assert.True(t, HotelBookingsFilter{HotelID: 1, Status: &booked, CustomerID: &customer}.Matches(b))
	assert.False(t, HotelBookingsFilter{HotelID: 1, Status: &cancelled}.Matches(b))
	assert.False(t, HotelBookingsFilter{HotelID: 1, CustomerID: &other}.Matches(b))
	assert.False(t, HotelBookingsFilter{HotelID: 1, From: &from}.Matches(b))
	assert.True(t, HotelBookingsFilter{HotelID: 1, To: &to}.Matches(b))
}

func TestInvoice_Recalculate(t *testing.T) {
	inv := &Invoice{
		RoomCharges:    []RoomCharge{{Description: "Room 101", Total: 200}},
		ServiceCharges: []ServiceCharge{{Name: "Breakfast", Total: 30, Quantity: 2, Unit: "portion"}},
	}
	inv.Recalculate()
	assert.Equal(t, 230.0, inv.TotalAmount)
}

func TestAccessScope(t *testing.T) {
	hotel := int64(1)
	b := &Booking{HotelID: 1, CustomerID: 7}

	assert.True(t, AccessScope{UserID: 7, Role: RoleCustomer}.CanView(b))
	assert.False(t, AccessScope{UserID: 8, Role: RoleCustomer}.CanView(b))
	assert.True(t, AccessScope{UserID: 100, Role: RoleReceptionist, HotelID: &hotel}.CanView(b))
	assert.False(t, AccessScope{UserID: 100, Role: RoleManager}.CanView(b))
	assert.True(t, AccessScope{UserID: 1, Role: RoleAdmin}.CanView(b))

	other := int64(2)
	assert.False(t, AccessScope{Role: RoleManager, HotelID: &other}.CanManageHotel(1))
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("%w: create_booking: room not found", ErrNotFound)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindUnavailable, KindOf(fmt.Errorf("outer: %w", ErrUnavailable)))
	assert.Equal(t, KindInternal, KindOf(errors.New("unknown")))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}
