package get_customer_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
)

type fakeService struct {
	customerID int64
}

func (f *fakeService) ListCustomerBookings(_ context.Context, customerID int64) (*models.CategorizedBookings, error) {
	f.customerID = customerID
	return &models.CategorizedBookings{
		History: []*models.BookingView{},
		Active:  []*models.BookingView{},
		Future:  []*models.BookingView{{ID: 1}},
	}, nil
}

func TestHandler(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.Discard())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/me/bookings", nil)
	req = req.WithContext(middleware.WithScope(req.Context(), domain.AccessScope{UserID: 7, Role: domain.RoleCustomer}))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.customerID)
	assert.Contains(t, rec.Body.String(), `"future"`)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/customers/me/bookings", nil)
	req = req.WithContext(middleware.WithScope(req.Context(),
		domain.AccessScope{UserID: 3, Role: domain.RoleManager, HotelID: ptr.Ptr(int64(1))}))
	rec = httptest.NewRecorder()
	h.Handle(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
