package check_in

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	checkIn "github.com/m04kA/SMC-HotelBookingService/internal/usecase/check_in"
)

const (
	msgInvalidHotelID   = "некорректный ID отеля"
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgCannotCheckIn    = "заселение по бронированию невозможно"
)

// CheckInResponse HTTP response model
type CheckInResponse struct {
	BookingID int64   `json:"bookingId"`
	Status    string  `json:"status"`
	RoomIDs   []int64 `json:"roomIds"`
}

type Handler struct {
	useCase CheckInUseCase
	logger  Logger
}

func NewHandler(useCase CheckInUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/hotels/{hotelId}/bookings/{bookingId}/check-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hotelID, err := handlers.PathInt64(r, "hotelId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/check-in - Invalid hotel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHotelID)
		return
	}
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/check-in - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	scope, ok := handlers.RequireHotelStaff(w, r, hotelID)
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/check-in - Access denied: hotel_id=%d, user_id=%d", hotelID, scope.UserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkIn.Request{HotelID: hotelID, BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, checkIn.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/check-in - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, checkIn.ErrCannotCheckIn):
			h.logger.Warn("PATCH /bookings/{id}/check-in - Cannot check in: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotCheckIn)

		default:
			h.logger.Error("PATCH /bookings/{id}/check-in - Failed to check in: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/check-in - Guest checked in: booking_id=%d, user_id=%d", bookingID, scope.UserID)
	handlers.RespondJSON(w, http.StatusOK, &CheckInResponse{
		BookingID: result.BookingID,
		Status:    string(result.Status),
		RoomIDs:   result.RoomIDs,
	})
}
