package check_out

import (
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Request модель запроса на выезд
type Request struct {
	HotelID       int64
	BookingID     int64
	PaymentMethod string // Способ оплаты (по умолчанию из конфигурации)
}

// Response модель ответа на выезд
type Response struct {
	BookingID     int64
	Status        domain.BookingStatus
	PaymentStatus string
	CheckedOutAt  time.Time
	Nights        int
	PaymentID     int64
	AmountPaid    float64
	InvoiceID     int64
	InvoiceTotal  float64
}
