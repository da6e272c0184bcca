package list_rooms

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/rooms"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/rooms/models"
)

const (
	msgInvalidHotelID = "некорректный ID отеля"
	msgInvalidDates   = "некорректный интервал дат, ожидается checkIn < checkOut в формате YYYY-MM-DD"
	msgHotelNotFound  = "отель не найден"
)

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/hotels/{hotelId}/rooms
// Query params: checkIn, checkOut (опционально, только вместе)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hotelID, err := handlers.PathInt64(r, "hotelId")
	if err != nil {
		h.logger.Warn("GET /hotels/{id}/rooms - Invalid hotel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHotelID)
		return
	}

	checkIn := r.URL.Query().Get("checkIn")
	checkOut := r.URL.Query().Get("checkOut")

	serviceReq, err := ToServiceRequest(hotelID, checkIn, checkOut)
	if err != nil {
		h.logger.Warn("GET /hotels/{id}/rooms - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.service.ListRooms(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrHotelNotFound):
			h.logger.Warn("GET /hotels/{id}/rooms - Hotel not found: hotel_id=%d", hotelID)
			handlers.RespondNotFound(w, msgHotelNotFound)

		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("GET /hotels/{id}/rooms - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDates)

		default:
			h.logger.Error("GET /hotels/{id}/rooms - Failed to list rooms: hotel_id=%d, error=%v", hotelID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	resp := &RoomsResponse{HotelID: hotelID, Rooms: result}
	if resp.Rooms == nil {
		resp.Rooms = []*models.RoomView{}
	}
	if serviceReq.Stay != nil {
		resp.CheckIn = &checkIn
		resp.CheckOut = &checkOut
	}

	h.logger.Info("GET /hotels/{id}/rooms - Rooms retrieved: hotel_id=%d, count=%d", hotelID, len(resp.Rooms))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
