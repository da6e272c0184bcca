package pay_penalty

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	payPenalty "github.com/m04kA/SMC-HotelBookingService/internal/usecase/pay_penalty"
)

const (
	msgInvalidHotelID     = "некорректный ID отеля"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgCustomerNotFound   = "клиент не найден"
	msgNoPenaltyDue       = "по бронированию нет неоплаченного штрафа"
	msgInsufficientFunds  = "недостаточно средств для оплаты штрафа"
)

type Handler struct {
	useCase PayPenaltyUseCase
	logger  Logger
}

func NewHandler(useCase PayPenaltyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/hotels/{hotelId}/bookings/{bookingId}/pay-penalty
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hotelID, err := handlers.PathInt64(r, "hotelId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/pay-penalty - Invalid hotel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHotelID)
		return
	}
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/pay-penalty - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	scope, ok := handlers.RequireScope(w, r)
	if !ok {
		return
	}

	var req PayPenaltyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/pay-penalty - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings/{id}/pay-penalty - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	customerID, ok := handlers.ResolveCustomer(w, scope, hotelID, req.CustomerID)
	if !ok {
		h.logger.Warn("POST /bookings/{id}/pay-penalty - Customer not resolved: booking_id=%d, user_id=%d", bookingID, scope.UserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &payPenalty.Request{
		HotelID:       hotelID,
		BookingID:     bookingID,
		CustomerID:    customerID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, payPenalty.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/pay-penalty - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payPenalty.ErrCustomerNotFound):
			h.logger.Warn("POST /bookings/{id}/pay-penalty - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, payPenalty.ErrNoPenaltyDue):
			h.logger.Warn("POST /bookings/{id}/pay-penalty - No penalty due: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNoPenaltyDue)

		case errors.Is(err, payPenalty.ErrInsufficientFunds):
			h.logger.Warn("POST /bookings/{id}/pay-penalty - Insufficient funds: customer_id=%d", customerID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgInsufficientFunds)

		default:
			h.logger.Error("POST /bookings/{id}/pay-penalty - Failed to pay penalty: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/pay-penalty - Penalty paid: booking_id=%d, amount=%.2f", bookingID, result.AmountPaid)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
