package billing

import (
	"context"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// PaymentRepository интерфейс журнала платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.PaymentTransaction) (*domain.PaymentTransaction, error)
}

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	GetLatestByBookingID(ctx context.Context, bookingID int64) (*domain.Invoice, error)
}

// IDGenerator генерирует внешние идентификаторы платежей и счетов
type IDGenerator interface {
	NewID() string
}
