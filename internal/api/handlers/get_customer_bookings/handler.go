package get_customer_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

const (
	msgCustomersOnly = "история бронирований доступна только клиентам"
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

// Handle GET /api/v1/customers/me/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scope, ok := handlers.RequireScope(w, r)
	if !ok {
		h.logger.Warn("GET /customers/me/bookings - Missing access scope")
		return
	}
	if scope.Role != domain.RoleCustomer {
		h.logger.Warn("GET /customers/me/bookings - Not a customer: user_id=%d, role=%s", scope.UserID, scope.Role)
		handlers.RespondForbidden(w, msgCustomersOnly)
		return
	}

	result, err := h.service.ListCustomerBookings(r.Context(), scope.UserID)
	if err != nil {
		h.logger.Error("GET /customers/me/bookings - Failed to get bookings: customer_id=%d, error=%v",
			scope.UserID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /customers/me/bookings - Bookings retrieved successfully: customer_id=%d, history=%d, active=%d, future=%d",
		scope.UserID, len(result.History), len(result.Active), len(result.Future))
	handlers.RespondJSON(w, http.StatusOK, result)
}
