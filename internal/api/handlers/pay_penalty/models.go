package pay_penalty

import (
	payPenalty "github.com/m04kA/SMC-HotelBookingService/internal/usecase/pay_penalty"
)

// PayPenaltyRequest HTTP request model
type PayPenaltyRequest struct {
	CustomerID    *int64 `json:"customerId,omitempty"` // Обязателен для персонала
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,max=32"`
}

// PayPenaltyResponse HTTP response model
type PayPenaltyResponse struct {
	BookingID      int64   `json:"bookingId"`
	PaymentStatus  string  `json:"paymentStatus"`
	AmountPaid     float64 `json:"amountPaid"`
	Balance        float64 `json:"balance"`
	PaymentID      int64   `json:"paymentId"`
	InvoiceID      int64   `json:"invoiceId"`
	CancellationID int64   `json:"cancellationId"`
}

func FromUseCaseResponse(resp *payPenalty.Response) *PayPenaltyResponse {
	return &PayPenaltyResponse{
		BookingID:      resp.BookingID,
		PaymentStatus:  resp.PaymentStatus,
		AmountPaid:     resp.AmountPaid,
		Balance:        resp.Balance,
		PaymentID:      resp.PaymentID,
		InvoiceID:      resp.InvoiceID,
		CancellationID: resp.CancellationID,
	}
}
