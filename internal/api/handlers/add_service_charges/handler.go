package add_service_charges

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	addServiceCharges "github.com/m04kA/SMC-HotelBookingService/internal/usecase/add_service_charges"
)

const (
	msgInvalidHotelID     = "некорректный ID отеля"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgCannotAddCharges   = "услуги добавляются только после заселения"
)

type Handler struct {
	useCase AddServiceChargesUseCase
	logger  Logger
}

func NewHandler(useCase AddServiceChargesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/hotels/{hotelId}/bookings/{bookingId}/service-charges
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hotelID, err := handlers.PathInt64(r, "hotelId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/service-charges - Invalid hotel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHotelID)
		return
	}
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/service-charges - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	scope, ok := handlers.RequireHotelStaff(w, r, hotelID)
	if !ok {
		h.logger.Warn("POST /bookings/{id}/service-charges - Access denied: hotel_id=%d, user_id=%d", hotelID, scope.UserID)
		return
	}

	var req AddServiceChargesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/service-charges - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings/{id}/service-charges - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), &addServiceCharges.Request{
		HotelID:   hotelID,
		BookingID: bookingID,
		Charges:   req.ToDomainCharges(),
	})
	if err != nil {
		switch {
		case errors.Is(err, addServiceCharges.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/service-charges - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, addServiceCharges.ErrCannotAddCharges):
			h.logger.Warn("POST /bookings/{id}/service-charges - Booking does not accept charges: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotAddCharges)

		case errors.Is(err, addServiceCharges.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/service-charges - Invalid charges: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/{id}/service-charges - Failed to add charges: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/service-charges - Charges added: booking_id=%d, invoice_total=%.2f",
		bookingID, result.Invoice.TotalAmount)
	handlers.RespondJSON(w, http.StatusOK, FromDomainInvoice(result.Invoice))
}
