package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/cancel_booking"
)

const (
	msgInvalidHotelID     = "некорректный ID отеля"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCannotCancel       = "бронирование не может быть отменено"
	msgInsufficientFunds  = "недостаточно средств для оплаты штрафа"
	msgDeferForbidden     = "отложить оплату штрафа может только персонал отеля"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/hotels/{hotelId}/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hotelID, err := handlers.PathInt64(r, "hotelId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid hotel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHotelID)
		return
	}
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	scope, ok := handlers.RequireScope(w, r)
	if !ok {
		return
	}
	// Клиент отменяет свое бронирование, персонал только в своем отеле
	if scope.Role != domain.RoleCustomer && !scope.CanManageHotel(hotelID) {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Access denied: hotel_id=%d, user_id=%d", hotelID, scope.UserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	// Клиент платит штраф при отмене, отсрочку дает только персонал
	if req.DeferPenalty && scope.Role == domain.RoleCustomer {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Customer cannot defer penalty: booking_id=%d, user_id=%d",
			bookingID, scope.UserID)
		handlers.RespondForbidden(w, msgDeferForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(hotelID, bookingID, scope))
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Cannot cancel: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, cancelBooking.ErrInsufficientFunds):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Insufficient funds: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgInsufficientFunds)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%d, user_id=%d, penalty=%.2f",
		bookingID, scope.UserID, result.PenaltyApplied)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
