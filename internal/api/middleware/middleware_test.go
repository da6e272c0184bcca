package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
)

const secret = "test-secret"

func TestParseToken(t *testing.T) {
	customer, err := SignToken(secret, domain.AccessScope{UserID: 7, Role: domain.RoleCustomer}, time.Hour)
	require.NoError(t, err)
	staff, err := SignToken(secret, domain.AccessScope{UserID: 3, Role: domain.RoleManager, HotelID: ptr.Ptr(int64(1))}, time.Hour)
	require.NoError(t, err)
	staffNoHotel, err := SignToken(secret, domain.AccessScope{UserID: 3, Role: domain.RoleReceptionist}, time.Hour)
	require.NoError(t, err)
	expired, err := SignToken(secret, domain.AccessScope{UserID: 7, Role: domain.RoleCustomer}, -time.Minute)
	require.NoError(t, err)
	foreign, err := SignToken("other", domain.AccessScope{UserID: 7, Role: domain.RoleCustomer}, time.Hour)
	require.NoError(t, err)
	badRole, err := SignToken(secret, domain.AccessScope{UserID: 7, Role: "guest"}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		want    domain.AccessScope
		wantErr error
	}{
		{name: "customer", header: "Bearer " + customer, want: domain.AccessScope{UserID: 7, Role: domain.RoleCustomer}},
		{name: "manager", header: "Bearer " + staff, want: domain.AccessScope{UserID: 3, Role: domain.RoleManager, HotelID: ptr.Ptr(int64(1))}},
		{name: "missing header", header: "", wantErr: ErrMissingToken},
		{name: "no bearer prefix", header: customer, wantErr: ErrMissingToken},
		{name: "staff without hotel", header: "Bearer " + staffNoHotel, wantErr: ErrInvalidToken},
		{name: "expired", header: "Bearer " + expired, wantErr: ErrInvalidToken},
		{name: "wrong secret", header: "Bearer " + foreign, wantErr: ErrInvalidToken},
		{name: "unknown role", header: "Bearer " + badRole, wantErr: ErrInvalidToken},
		{name: "garbage", header: "Bearer abc.def.ghi", wantErr: ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseToken(secret, tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		Role:             "customer",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "7"},
	})
	raw, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = ParseToken(secret, "Bearer "+raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuth(t *testing.T) {
	var seen domain.AccessScope
	h := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope, ok := GetScope(r.Context())
		require.True(t, ok)
		seen = scope
		w.WriteHeader(http.StatusNoContent)
	}))

	token, err := SignToken(secret, domain.AccessScope{UserID: 9, Role: domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, domain.AccessScope{UserID: 9, Role: domain.RoleAdmin}, seen)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

type observation struct {
	method string
	route  string
	status int
}

type fakeRecorder struct {
	observed []observation
}

func (f *fakeRecorder) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.observed = append(f.observed, observation{method: method, route: route, status: status})
}

func TestMetrics(t *testing.T) {
	rec := &fakeRecorder{}
	r := mux.NewRouter()
	r.Use(Metrics(rec))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/15", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, []observation{
		{method: http.MethodGet, route: "/bookings/{bookingId}", status: http.StatusNotFound},
		{method: http.MethodGet, route: "/health", status: http.StatusOK},
	}, rec.observed)
}
