package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidHotelID     = "некорректный ID отеля"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgHotelNotFound      = "отель не найден"
	msgRoomNotFound       = "номер не найден"
	msgCustomerNotFound   = "клиент не найден"
	msgRoomsUnavailable   = "выбранные номера недоступны на указанные даты"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/hotels/{hotelId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hotelID, err := handlers.PathInt64(r, "hotelId")
	if err != nil {
		h.logger.Warn("POST /hotels/{id}/bookings - Invalid hotel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHotelID)
		return
	}

	scope, ok := handlers.RequireScope(w, r)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /hotels/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /hotels/{id}/bookings - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	customerID, ok := handlers.ResolveCustomer(w, scope, hotelID, req.CustomerID)
	if !ok {
		h.logger.Warn("POST /hotels/{id}/bookings - Customer not resolved: hotel_id=%d, user_id=%d, role=%s",
			hotelID, scope.UserID, scope.Role)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(hotelID, customerID)
	if err != nil {
		h.logger.Warn("POST /hotels/{id}/bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrRoomsUnavailable):
			h.logger.Warn("POST /hotels/{id}/bookings - Rooms unavailable: hotel_id=%d, rooms=%v", hotelID, req.RoomIDs)
			handlers.RespondConflict(w, msgRoomsUnavailable)

		case errors.Is(err, createBooking.ErrHotelNotFound):
			h.logger.Warn("POST /hotels/{id}/bookings - Hotel not found: hotel_id=%d", hotelID)
			handlers.RespondNotFound(w, msgHotelNotFound)

		case errors.Is(err, createBooking.ErrRoomNotFound), errors.Is(err, createBooking.ErrRoomHotelMismatch):
			h.logger.Warn("POST /hotels/{id}/bookings - Room not found: hotel_id=%d, rooms=%v", hotelID, req.RoomIDs)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrCustomerNotFound):
			h.logger.Warn("POST /hotels/{id}/bookings - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /hotels/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /hotels/{id}/bookings - Failed to create booking: hotel_id=%d, customer_id=%d, error=%v",
				hotelID, customerID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("POST /hotels/{id}/bookings - Booking created successfully: booking_id=%d, hotel_id=%d, customer_id=%d",
		result.ID, hotelID, customerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
