package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

type contextKey string

const scopeKey contextKey = "access_scope"

var (
	ErrMissingToken = errors.New("middleware: missing bearer token")
	ErrInvalidToken = errors.New("middleware: invalid token")
)

// Claims токен идентичности: sub = ID пользователя (для клиента ID клиента)
type Claims struct {
	Role    string `json:"role"`
	HotelID *int64 `json:"hotel_id,omitempty"`
	jwt.RegisteredClaims
}

// Auth проверяет Bearer токен (HS256) и кладет AccessScope в контекст
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope, err := ParseToken(secret, r.Header.Get("Authorization"))
			if err != nil {
				respondUnauthorized(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithScope(r.Context(), scope)))
		})
	}
}

// ParseToken разбирает значение заголовка Authorization
func ParseToken(secret, header string) (domain.AccessScope, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return domain.AccessScope{}, ErrMissingToken
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return domain.AccessScope{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return domain.AccessScope{}, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}

	role := domain.Role(claims.Role)
	if !role.IsValid() {
		return domain.AccessScope{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}

	scope := domain.AccessScope{UserID: userID, Role: role}
	if scope.IsStaff() {
		if claims.HotelID == nil {
			return domain.AccessScope{}, fmt.Errorf("%w: staff token without hotel_id", ErrInvalidToken)
		}
		scope.HotelID = claims.HotelID
	}
	return scope, nil
}

// SignToken выпускает токен для scope
func SignToken(secret string, scope domain.AccessScope, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role:    string(scope.Role),
		HotelID: scope.HotelID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(scope.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// WithScope кладет scope в контекст
func WithScope(ctx context.Context, scope domain.AccessScope) context.Context {
	return context.WithValue(ctx, scopeKey, scope)
}

// GetScope извлекает scope вызывающего из контекста
func GetScope(ctx context.Context) (domain.AccessScope, bool) {
	scope, ok := ctx.Value(scopeKey).(domain.AccessScope)
	return scope, ok
}

func respondUnauthorized(w http.ResponseWriter, err error) {
	msg := "недействительный токен"
	if errors.Is(err, ErrMissingToken) {
		msg = "отсутствует токен авторизации"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
