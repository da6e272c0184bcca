package get_hotel_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings"
)

const (
	msgInvalidHotelID = "некорректный ID отеля"
	msgInvalidParams  = "некорректные параметры запроса"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/hotels/{hotelId}/bookings
// Query params: status, customerId, from, to (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hotelID, err := handlers.PathInt64(r, "hotelId")
	if err != nil {
		h.logger.Warn("GET /hotels/{id}/bookings - Invalid hotel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHotelID)
		return
	}

	scope, ok := handlers.RequireScope(w, r)
	if !ok {
		h.logger.Warn("GET /hotels/{id}/bookings - Missing access scope")
		return
	}

	serviceReq, err := ToServiceRequest(hotelID, scope, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /hotels/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит, что вызывающий управляет отелем
	result, err := h.service.ListHotelBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /hotels/{id}/bookings - Access denied: hotel_id=%d, user_id=%d", hotelID, scope.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /hotels/{id}/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /hotels/{id}/bookings - Failed to get bookings: hotel_id=%d, error=%v", hotelID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("GET /hotels/{id}/bookings - Bookings retrieved successfully: hotel_id=%d, count=%d",
		hotelID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
