package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

func TestListByRoomsQuery(t *testing.T) {
	query, args, err := listByRoomsQuery(1, []int64{101, 102},
		[]domain.BookingStatus{domain.StatusBooked, domain.StatusCheckedIn}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM bookings WHERE hotel_id = $1 AND room_ids && $2 AND status IN ($3,$4)")
	assert.Contains(t, query, "ORDER BY check_in_date ASC, id ASC")
	require.Len(t, args, 4)
	assert.Equal(t, int64(1), args[0])
	assert.Equal(t, "booked", args[2])
	assert.Equal(t, "checked-in", args[3])
}

func TestListByHotelQuery(t *testing.T) {
	status := domain.StatusBooked
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	query, args, err := listByHotelQuery(domain.HotelBookingsFilter{
		HotelID: 7,
		Status:  &status,
		From:    &from,
		To:      &to,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE hotel_id = $1 AND status = $2 AND check_out_date > $3 AND check_in_date < $4")
	assert.Len(t, args, 4)
}

func TestListByHotelQuery_NoOptionalFilters(t *testing.T) {
	query, args, err := listByHotelQuery(domain.HotelBookingsFilter{HotelID: 7}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE hotel_id = $1 ORDER BY")
	assert.Equal(t, []interface{}{int64(7)}, args)
}
