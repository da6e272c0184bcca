package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// state снимок всех таблиц хранилища
type state struct {
	hotels        map[int64]*domain.Hotel
	rooms         map[int64]*domain.Room
	customers     map[int64]*domain.Customer
	bookings      map[int64]*domain.Booking
	cancellations map[int64]*domain.CancellationRecord
	payments      map[int64]*domain.PaymentTransaction
	invoices      map[int64]*domain.Invoice
	lastID        int64
}

func newState() *state {
	return &state{
		hotels:        make(map[int64]*domain.Hotel),
		rooms:         make(map[int64]*domain.Room),
		customers:     make(map[int64]*domain.Customer),
		bookings:      make(map[int64]*domain.Booking),
		cancellations: make(map[int64]*domain.CancellationRecord),
		payments:      make(map[int64]*domain.PaymentTransaction),
		invoices:      make(map[int64]*domain.Invoice),
	}
}

func (s *state) nextID() int64 {
	s.lastID++
	return s.lastID
}

// clone глубокая копия снимка для транзакции
func (s *state) clone() *state {
	c := newState()
	c.lastID = s.lastID
	for id, h := range s.hotels {
		v := *h
		c.hotels[id] = &v
	}
	for id, r := range s.rooms {
		v := *r
		c.rooms[id] = &v
	}
	for id, cu := range s.customers {
		v := *cu
		c.customers[id] = &v
	}
	for id, b := range s.bookings {
		c.bookings[id] = b.Clone()
	}
	for id, rec := range s.cancellations {
		v := *rec
		if rec.PenaltyPaidAt != nil {
			t := *rec.PenaltyPaidAt
			v.PenaltyPaidAt = &t
		}
		c.cancellations[id] = &v
	}
	for id, p := range s.payments {
		v := *p
		c.payments[id] = &v
	}
	for id, inv := range s.invoices {
		c.invoices[id] = inv.Clone()
	}
	return c
}

type txKey struct{}

// Store хранилище в памяти.
// Транзакция работает с копией снимка и подменяет снимок при успешном завершении,
// транзакции и записи вне транзакций выполняются строго по одной.
type Store struct {
	mu    sync.RWMutex
	txMu  sync.Mutex
	state *state
	now   func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		state: newState(),
		now:   time.Now,
	}
}

// read выполняет fn над снимком транзакции из ctx либо над текущим снимком
func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if st, ok := ctx.Value(txKey{}).(*state); ok {
		return fn(st)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// write выполняет fn над снимком транзакции из ctx.
// Вне транзакции запись ждет завершения текущей транзакции и применяется сразу.
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if st, ok := ctx.Value(txKey{}).(*state); ok {
		return fn(st)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// Repositories

func (s *Store) Hotels() *HotelRepository {
	return &HotelRepository{store: s}
}

func (s *Store) Rooms() *RoomRepository {
	return &RoomRepository{store: s}
}

func (s *Store) Customers() *CustomerRepository {
	return &CustomerRepository{store: s}
}

func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

func (s *Store) Cancellations() *CancellationRepository {
	return &CancellationRepository{store: s}
}

func (s *Store) Payments() *PaymentRepository {
	return &PaymentRepository{store: s}
}

func (s *Store) Invoices() *InvoiceRepository {
	return &InvoiceRepository{store: s}
}
