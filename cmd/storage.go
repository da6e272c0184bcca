package main

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
	cancellationRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/cancellation"
	customerRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/customer"
	hotelRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/hotel"
	invoiceRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/invoice"
	"github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/memory"
	paymentRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/payment"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/txmanager"
)

type hotelStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Hotel, error)
}

type roomStore interface {
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Room, error)
	ListByHotel(ctx context.Context, hotelID int64) ([]*domain.Room, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error
}

type customerStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Customer, error)
	Debit(ctx context.Context, id int64, amount float64) (float64, error)
}

type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	ListByHotel(ctx context.Context, filter domain.HotelBookingsFilter) ([]*domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Booking, error)
	ListByRooms(ctx context.Context, hotelID int64, roomIDs []int64, statuses []domain.BookingStatus) ([]*domain.Booking, error)
}

type cancellationStore interface {
	Create(ctx context.Context, rec *domain.CancellationRecord) (*domain.CancellationRecord, error)
	GetLatestByBookingID(ctx context.Context, bookingID int64) (*domain.CancellationRecord, error)
	MarkPenaltyPaid(ctx context.Context, id int64, paidAt time.Time) error
}

type paymentStore interface {
	Create(ctx context.Context, p *domain.PaymentTransaction) (*domain.PaymentTransaction, error)
	ListByBookingID(ctx context.Context, bookingID int64) ([]*domain.PaymentTransaction, error)
	GetLatestByBookingIDs(ctx context.Context, bookingIDs []int64) (map[int64]*domain.PaymentTransaction, error)
}

type invoiceStore interface {
	Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	GetLatestByBookingID(ctx context.Context, bookingID int64) (*domain.Invoice, error)
	ListByBookingID(ctx context.Context, bookingID int64) ([]*domain.Invoice, error)
	ListBookingIDsWithInvoices(ctx context.Context, bookingIDs []int64) (map[int64]bool, error)
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage набор репозиториев выбранного драйвера
type storage struct {
	hotels        hotelStore
	rooms         roomStore
	customers     customerStore
	bookings      bookingStore
	cancellations cancellationStore
	payments      paymentStore
	invoices      invoiceStore
	tx            txManager
}

func newPostgresStorage(db *dbmetrics.DB) *storage {
	return &storage{
		hotels:        hotelRepo.NewRepository(db),
		rooms:         roomRepo.NewRepository(db),
		customers:     customerRepo.NewRepository(db),
		bookings:      bookingRepo.NewRepository(db),
		cancellations: cancellationRepo.NewRepository(db),
		payments:      paymentRepo.NewRepository(db),
		invoices:      invoiceRepo.NewRepository(db),
		tx:            txmanager.NewTransactionManager(db),
	}
}

func newMemoryStorage(store *memory.Store) *storage {
	return &storage{
		hotels:        store.Hotels(),
		rooms:         store.Rooms(),
		customers:     store.Customers(),
		bookings:      store.Bookings(),
		cancellations: store.Cancellations(),
		payments:      store.Payments(),
		invoices:      store.Invoices(),
		tx:            store,
	}
}
