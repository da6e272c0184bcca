package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
)

// fakeClient хранит значения в map и возвращает готовые результаты команд
type fakeClient struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeClient) fail(ctx context.Context) error {
	if f.failErr != nil {
		return f.failErr
	}
	return ctx.Err()
}

func (f *fakeClient) Get(ctx context.Context, key string) *redis.StringCmd {
	if err := f.fail(ctx); err != nil {
		return redis.NewStringResult("", err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeClient) store(key string, value interface{}, expiration time.Duration) {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
}

func (f *fakeClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if err := f.fail(ctx); err != nil {
		return redis.NewStatusResult("", err)
	}
	f.store(key, value, expiration)
	return redis.NewStatusResult("OK", nil)
}

// Eval повторяет setUnlessGuarded: KEYS = {key, guard}, ARGV = {value, ttl ms}
func (f *fakeClient) Eval(ctx context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	if err := f.fail(ctx); err != nil {
		return redis.NewCmdResult(nil, err)
	}
	if _, guarded := f.data[keys[1]]; guarded {
		return redis.NewCmdResult(int64(0), nil)
	}
	f.store(keys[0], args[0], time.Duration(args[1].(int64))*time.Millisecond)
	return redis.NewCmdResult(int64(1), nil)
}

func (f *fakeClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if err := f.fail(ctx); err != nil {
		return redis.NewIntResult(0, err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestBookingCache_SetGet(t *testing.T) {
	client := newFakeClient()
	c := NewBookingCache(client, time.Minute, 0)
	ctx := context.Background()

	view := &models.BookingView{
		ID: 7, HotelID: 1, CustomerID: 2, RoomIDs: []int64{3, 4},
		CheckInDate: "2025-06-01", CheckOutDate: "2025-06-03",
		TotalAmount: 200, Status: "booked", PaymentStatus: "pending",
	}
	require.NoError(t, c.Set(ctx, view))
	assert.Equal(t, time.Minute, client.ttls["hotel-booking:booking:7"])

	got, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, view.ID, got.ID)
	assert.Equal(t, view.RoomIDs, got.RoomIDs)
	assert.Equal(t, view.CheckInDate, got.CheckInDate)
	assert.Equal(t, view.Status, got.Status)
	assert.InDelta(t, view.TotalAmount, got.TotalAmount, 0.0001)
}

func TestBookingCache_Miss(t *testing.T) {
	c := NewBookingCache(newFakeClient(), time.Minute, 0)

	_, err := c.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestBookingCache_ClientError(t *testing.T) {
	client := newFakeClient()
	client.failErr = errors.New("connection refused")
	c := NewBookingCache(client, time.Minute, 0)
	ctx := context.Background()

	_, err := c.Get(ctx, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)

	assert.Error(t, c.Set(ctx, &models.BookingView{ID: 1}))
	assert.Error(t, c.Invalidate(ctx, 1))
}

func TestBookingCache_PublishInvalidates(t *testing.T) {
	client := newFakeClient()
	c := NewBookingCache(client, time.Minute, 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, &models.BookingView{ID: 5}))
	require.NoError(t, c.Set(ctx, &models.BookingView{ID: 6}))

	require.NoError(t, c.Publish(ctx, domain.BookingEvent{Type: domain.EventBookingCancelled, BookingID: 5}))

	_, err := c.Get(ctx, 5)
	assert.ErrorIs(t, err, ErrMiss)
	_, err = c.Get(ctx, 6)
	assert.NoError(t, err)
}

func TestBookingCache_CorruptedEntry(t *testing.T) {
	client := newFakeClient()
	client.data["hotel-booking:booking:9"] = "{not json"
	c := NewBookingCache(client, time.Minute, 0)

	_, err := c.Get(context.Background(), 9)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}

func TestBookingCache_InvalidationBlocksStaleSet(t *testing.T) {
	client := newFakeClient()
	c := NewBookingCache(client, time.Minute, 5*time.Second)
	ctx := context.Background()

	// читатель собрал представление до отмены, а записывает его уже после инвалидации
	stale := &models.BookingView{ID: 5, Status: "booked"}
	require.NoError(t, c.Publish(ctx, domain.BookingEvent{Type: domain.EventBookingCancelled, BookingID: 5}))
	require.NoError(t, c.Set(ctx, stale))

	_, err := c.Get(ctx, 5)
	assert.ErrorIs(t, err, ErrMiss)
	assert.Equal(t, 5*time.Second, client.ttls["hotel-booking:booking:5:invalidated"])

	// другие бронирования кэшируются как обычно
	require.NoError(t, c.Set(ctx, &models.BookingView{ID: 6}))
	_, err = c.Get(ctx, 6)
	assert.NoError(t, err)
}

func TestBookingCache_InvalidateSurvivesCanceledContext(t *testing.T) {
	client := newFakeClient()
	c := NewBookingCache(client, time.Minute, 0)

	require.NoError(t, c.Set(context.Background(), &models.BookingView{ID: 5}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, c.Publish(ctx, domain.BookingEvent{Type: domain.EventBookingCheckedOut, BookingID: 5}))

	_, err := c.Get(context.Background(), 5)
	assert.ErrorIs(t, err, ErrMiss)
	assert.Equal(t, DefaultInvalidationGuard, client.ttls["hotel-booking:booking:5:invalidated"])
}
