package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Request модель запроса на отмену бронирования
type Request struct {
	HotelID       int64  // ID отеля
	BookingID     int64  // ID бронирования
	CanceledBy    int64  // ID пользователя, отменившего бронирование
	CustomerID    *int64 // Если указан, бронирование должно принадлежать этому клиенту
	DeferPenalty  bool   // Штраф не списывается сразу, оплачивается позже через pay_penalty
	PaymentMethod string // Способ оплаты штрафа (по умолчанию из конфигурации)
}

// Response модель ответа на отмену
type Response struct {
	BookingID        int64
	Status           domain.BookingStatus
	PaymentStatus    string
	CancellationID   int64
	CancellationTime time.Time
	PenaltyApplied   float64
	PenaltyPaid      bool
	PaymentID        *int64
	InvoiceID        *int64
}
