package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
)

const (
	keyPrefix   = "hotel-booking:booking:"
	guardSuffix = ":invalidated"

	// DefaultInvalidationGuard сколько после инвалидации запрещено класть представление обратно
	DefaultInvalidationGuard = 15 * time.Second
)

// setUnlessGuarded атомарно пишет представление, если бронирование не инвалидировали недавно
const setUnlessGuarded = `
if redis.call('EXISTS', KEYS[2]) == 1 then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
return 1
`

var (
	// ErrMiss представление отсутствует в кэше
	ErrMiss = errors.New("cache: miss")
)

// Client подмножество команд redis, которые использует кэш
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// BookingCache кэш read-моделей бронирований в redis.
// Инвалидация оставляет guard-ключ: читатель, собравший представление до коммита перехода,
// не может записать его обратно, пока guard жив.
type BookingCache struct {
	client Client
	ttl    time.Duration
	guard  time.Duration
}

// NewBookingCache создает кэш с заданным временем жизни записей и guard-интервалом.
// guard <= 0 заменяется на DefaultInvalidationGuard.
func NewBookingCache(client Client, ttl, guard time.Duration) *BookingCache {
	if guard <= 0 {
		guard = DefaultInvalidationGuard
	}
	return &BookingCache{client: client, ttl: ttl, guard: guard}
}

// NewClient подключается к redis и проверяет соединение
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

func key(id int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, id)
}

func guardKey(id int64) string {
	return key(id) + guardSuffix
}

// Get возвращает представление по ID бронирования или ErrMiss
func (c *BookingCache) Get(ctx context.Context, id int64) (*models.BookingView, error) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("cache: get booking %d: %w", id, err)
	}

	var view models.BookingView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("cache: decode booking %d: %w", id, err)
	}
	return &view, nil
}

// Set сохраняет представление. Пока действует guard после инвалидации, запись пропускается.
func (c *BookingCache) Set(ctx context.Context, view *models.BookingView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("cache: encode booking %d: %w", view.ID, err)
	}
	keys := []string{key(view.ID), guardKey(view.ID)}
	if err := c.client.Eval(ctx, setUnlessGuarded, keys, data, c.ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("cache: set booking %d: %w", view.ID, err)
	}
	return nil
}

// Invalidate ставит guard и удаляет представление.
// Выполняется и после отмены ctx: переход уже закоммичен.
func (c *BookingCache) Invalidate(ctx context.Context, id int64) error {
	ctx = context.WithoutCancel(ctx)

	if err := c.client.Set(ctx, guardKey(id), "1", c.guard).Err(); err != nil {
		return fmt.Errorf("cache: guard booking %d: %w", id, err)
	}
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("cache: delete booking %d: %w", id, err)
	}
	return nil
}

// Publish сбрасывает представление бронирования, состояние которого изменилось
func (c *BookingCache) Publish(ctx context.Context, event domain.BookingEvent) error {
	return c.Invalidate(ctx, event.BookingID)
}
