package create_room

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/rooms"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/rooms/models"
)

const (
	msgInvalidHotelID     = "некорректный ID отеля"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgHotelNotFound      = "отель не найден"
	msgRoomNumberTaken    = "номер с таким обозначением уже существует"
	msgForbidden          = "доступ запрещен"
)

// CreateRoomRequest HTTP request model
type CreateRoomRequest struct {
	RoomNumber    string  `json:"roomNumber" validate:"required,max=16"`
	Type          string  `json:"type" validate:"required,max=32"`
	PricePerNight float64 `json:"pricePerNight" validate:"gt=0"`
}

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

// Handle POST /api/v1/hotels/{hotelId}/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hotelID, err := handlers.PathInt64(r, "hotelId")
	if err != nil {
		h.logger.Warn("POST /hotels/{id}/rooms - Invalid hotel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHotelID)
		return
	}

	scope, ok := handlers.RequireScope(w, r)
	if !ok {
		return
	}

	var req CreateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /hotels/{id}/rooms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /hotels/{id}/rooms - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.CreateRoom(r.Context(), &models.CreateRoomRequest{
		Scope:         scope,
		HotelID:       hotelID,
		RoomNumber:    req.RoomNumber,
		Type:          req.Type,
		PricePerNight: req.PricePerNight,
	})
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrAccessDenied):
			h.logger.Warn("POST /hotels/{id}/rooms - Access denied: hotel_id=%d, user_id=%d", hotelID, scope.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rooms.ErrHotelNotFound):
			h.logger.Warn("POST /hotels/{id}/rooms - Hotel not found: hotel_id=%d", hotelID)
			handlers.RespondNotFound(w, msgHotelNotFound)

		case errors.Is(err, rooms.ErrRoomNumberTaken):
			h.logger.Warn("POST /hotels/{id}/rooms - Room number taken: hotel_id=%d, number=%s", hotelID, req.RoomNumber)
			handlers.RespondConflict(w, msgRoomNumberTaken)

		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("POST /hotels/{id}/rooms - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /hotels/{id}/rooms - Failed to create room: hotel_id=%d, error=%v", hotelID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("POST /hotels/{id}/rooms - Room created: room_id=%d, hotel_id=%d", result.ID, hotelID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
