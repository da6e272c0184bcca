package bookings

import (
	"context"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByHotel(ctx context.Context, filter domain.HotelBookingsFilter) ([]*domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Booking, error)
}

// ViewBuilder собирает read-модели бронирований
type ViewBuilder interface {
	Build(ctx context.Context, bookings []*domain.Booking) ([]*models.BookingView, error)
	BuildOne(ctx context.Context, booking *domain.Booking) (*models.BookingView, error)
}

// ViewCache кэш представлений бронирований
type ViewCache interface {
	Get(ctx context.Context, id int64) (*models.BookingView, error)
	Set(ctx context.Context, view *models.BookingView) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
