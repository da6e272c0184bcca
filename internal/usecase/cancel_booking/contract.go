package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// RoomRepository интерфейс репозитория номеров
type RoomRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Room, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Debit(ctx context.Context, id int64, amount float64) (float64, error)
}

// CancellationRepository интерфейс журнала отмен
type CancellationRepository interface {
	Create(ctx context.Context, rec *domain.CancellationRecord) (*domain.CancellationRecord, error)
}

// Inventory обновление статусов номеров
type Inventory interface {
	Release(ctx context.Context, booking *domain.Booking) error
}

// BillingRecorder запись платежей и счетов
type BillingRecorder interface {
	RecordPenalty(ctx context.Context, b *domain.Booking, amount float64, method string, at time.Time) (*domain.PaymentTransaction, *domain.Invoice, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий после фиксации транзакции
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
