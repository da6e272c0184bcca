package pay_penalty

// Request модель запроса на оплату штрафа
type Request struct {
	HotelID       int64
	BookingID     int64
	CustomerID    int64
	PaymentMethod string // Способ оплаты (по умолчанию из конфигурации)
}

// Response модель ответа на оплату штрафа
type Response struct {
	BookingID      int64
	PaymentStatus  string
	AmountPaid     float64
	Balance        float64
	PaymentID      int64
	InvoiceID      int64
	CancellationID int64
}
