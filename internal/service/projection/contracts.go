package projection

import (
	"context"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// HotelRepository интерфейс репозитория отелей
type HotelRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Hotel, error)
}

// RoomRepository интерфейс репозитория номеров
type RoomRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Room, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Customer, error)
}

// PaymentRepository интерфейс журнала платежей
type PaymentRepository interface {
	GetLatestByBookingIDs(ctx context.Context, bookingIDs []int64) (map[int64]*domain.PaymentTransaction, error)
}

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	ListBookingIDsWithInvoices(ctx context.Context, bookingIDs []int64) (map[int64]bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
