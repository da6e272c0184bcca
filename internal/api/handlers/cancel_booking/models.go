package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model, тело опционально
type CancelBookingRequest struct {
	DeferPenalty  bool   `json:"deferPenalty"`
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,max=32"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID        int64   `json:"bookingId"`
	Status           string  `json:"status"`
	PaymentStatus    string  `json:"paymentStatus"`
	CancellationID   int64   `json:"cancellationId"`
	CancellationTime string  `json:"cancellationTime"`
	PenaltyApplied   float64 `json:"penaltyApplied"`
	PenaltyPaid      bool    `json:"penaltyPaid"`
	PaymentID        *int64  `json:"paymentId,omitempty"`
	InvoiceID        *int64  `json:"invoiceId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(hotelID, bookingID int64, scope domain.AccessScope) *cancelBooking.Request {
	req := &cancelBooking.Request{
		HotelID:       hotelID,
		BookingID:     bookingID,
		CanceledBy:    scope.UserID,
		DeferPenalty:  r.DeferPenalty,
		PaymentMethod: r.PaymentMethod,
	}
	// Клиент может отменить только свое бронирование и без отсрочки штрафа
	if scope.Role == domain.RoleCustomer {
		customerID := scope.UserID
		req.CustomerID = &customerID
		req.DeferPenalty = false
	}
	return req
}

func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		BookingID:        resp.BookingID,
		Status:           string(resp.Status),
		PaymentStatus:    resp.PaymentStatus,
		CancellationID:   resp.CancellationID,
		CancellationTime: resp.CancellationTime.Format(time.RFC3339),
		PenaltyApplied:   resp.PenaltyApplied,
		PenaltyPaid:      resp.PenaltyPaid,
		PaymentID:        resp.PaymentID,
		InvoiceID:        resp.InvoiceID,
	}
}
