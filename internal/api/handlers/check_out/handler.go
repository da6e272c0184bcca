package check_out

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	checkOut "github.com/m04kA/SMC-HotelBookingService/internal/usecase/check_out"
)

const (
	msgInvalidHotelID     = "некорректный ID отеля"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgCannotCheckOut     = "выезд по бронированию невозможен"
)

type Handler struct {
	useCase CheckOutUseCase
	logger  Logger
}

func NewHandler(useCase CheckOutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/hotels/{hotelId}/bookings/{bookingId}/check-out
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hotelID, err := handlers.PathInt64(r, "hotelId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/check-out - Invalid hotel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHotelID)
		return
	}
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/check-out - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	scope, ok := handlers.RequireHotelStaff(w, r, hotelID)
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/check-out - Access denied: hotel_id=%d, user_id=%d", hotelID, scope.UserID)
		return
	}

	var req CheckOutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/check-out - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/check-out - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkOut.Request{
		HotelID:       hotelID,
		BookingID:     bookingID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkOut.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/check-out - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, checkOut.ErrCannotCheckOut):
			h.logger.Warn("PATCH /bookings/{id}/check-out - Cannot check out: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotCheckOut)

		default:
			h.logger.Error("PATCH /bookings/{id}/check-out - Failed to check out: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/check-out - Guest checked out: booking_id=%d, amount=%.2f", bookingID, result.AmountPaid)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
