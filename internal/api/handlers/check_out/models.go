package check_out

import (
	"time"

	checkOut "github.com/m04kA/SMC-HotelBookingService/internal/usecase/check_out"
)

// CheckOutRequest HTTP request model, тело опционально
type CheckOutRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,max=32"`
}

// CheckOutResponse HTTP response model
type CheckOutResponse struct {
	BookingID     int64   `json:"bookingId"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	CheckedOutAt  string  `json:"checkedOutAt"`
	Nights        int     `json:"nights"`
	PaymentID     int64   `json:"paymentId"`
	AmountPaid    float64 `json:"amountPaid"`
	InvoiceID     int64   `json:"invoiceId"`
	InvoiceTotal  float64 `json:"invoiceTotal"`
}

func FromUseCaseResponse(resp *checkOut.Response) *CheckOutResponse {
	return &CheckOutResponse{
		BookingID:     resp.BookingID,
		Status:        string(resp.Status),
		PaymentStatus: resp.PaymentStatus,
		CheckedOutAt:  resp.CheckedOutAt.Format(time.RFC3339),
		Nights:        resp.Nights,
		PaymentID:     resp.PaymentID,
		AmountPaid:    resp.AmountPaid,
		InvoiceID:     resp.InvoiceID,
		InvoiceTotal:  resp.InvoiceTotal,
	}
}
