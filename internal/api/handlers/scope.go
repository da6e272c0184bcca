package handlers

import (
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

const (
	msgMissingScope = "требуется авторизация"
	msgForbidden    = "доступ запрещен"
)

// RequireScope возвращает scope вызывающего, иначе отвечает 401
func RequireScope(w http.ResponseWriter, r *http.Request) (domain.AccessScope, bool) {
	scope, ok := middleware.GetScope(r.Context())
	if !ok {
		RespondUnauthorized(w, msgMissingScope)
		return domain.AccessScope{}, false
	}
	return scope, true
}

// RequireHotelStaff пропускает персонал отеля и администратора, иначе отвечает 403
func RequireHotelStaff(w http.ResponseWriter, r *http.Request, hotelID int64) (domain.AccessScope, bool) {
	scope, ok := RequireScope(w, r)
	if !ok {
		return scope, false
	}
	if !scope.CanManageHotel(hotelID) {
		RespondForbidden(w, msgForbidden)
		return scope, false
	}
	return scope, true
}

// ResolveCustomer определяет клиента операции: клиент действует только от своего имени,
// персонал отеля и администратор указывают клиента явно
func ResolveCustomer(w http.ResponseWriter, scope domain.AccessScope, hotelID int64, customerID *int64) (int64, bool) {
	if scope.Role == domain.RoleCustomer {
		if customerID != nil && *customerID != scope.UserID {
			RespondForbidden(w, msgForbidden)
			return 0, false
		}
		return scope.UserID, true
	}
	if !scope.CanManageHotel(hotelID) {
		RespondForbidden(w, msgForbidden)
		return 0, false
	}
	if customerID == nil || *customerID <= 0 {
		RespondBadRequest(w, "не указан ID клиента")
		return 0, false
	}
	return *customerID, true
}
