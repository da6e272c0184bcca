package projection

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
)

// Builder собирает read-модели бронирований.
// Связанные данные загружаются пачкой на весь список бронирований.
type Builder struct {
	hotelRepo    HotelRepository
	roomRepo     RoomRepository
	customerRepo CustomerRepository
	paymentRepo  PaymentRepository
	invoiceRepo  InvoiceRepository
	logger       Logger
}

// NewBuilder создает новый экземпляр Builder
func NewBuilder(
	hotelRepo HotelRepository,
	roomRepo RoomRepository,
	customerRepo CustomerRepository,
	paymentRepo PaymentRepository,
	invoiceRepo InvoiceRepository,
	logger Logger,
) *Builder {
	return &Builder{
		hotelRepo:    hotelRepo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
		invoiceRepo:  invoiceRepo,
		logger:       logger,
	}
}

type related struct {
	hotels    map[int64]*domain.Hotel
	rooms     map[int64]*domain.Room
	customers map[int64]*domain.Customer
	payments  map[int64]*domain.PaymentTransaction
	invoices  map[int64]bool
}

// Build собирает представления для списка.
// Бронирование без отеля или клиента пропускается с предупреждением в логе,
// отсутствующие номера не попадают в список номеров.
func (b *Builder) Build(ctx context.Context, bookings []*domain.Booking) ([]*models.BookingView, error) {
	rel, err := b.load(ctx, bookings)
	if err != nil {
		return nil, err
	}

	views := make([]*models.BookingView, 0, len(bookings))
	for _, booking := range bookings {
		view := assemble(booking, rel)
		if view.Hotel == nil {
			b.logger.Warn("Build: skip booking id=%d: hotel id=%d not found", booking.ID, booking.HotelID)
			continue
		}
		if view.Customer == nil {
			b.logger.Warn("Build: skip booking id=%d: customer id=%d not found", booking.ID, booking.CustomerID)
			continue
		}
		views = append(views, view)
	}

	return views, nil
}

// BuildOne собирает представление одного бронирования.
// Отсутствующие связанные данные не приводят к ошибке, соответствующие поля остаются пустыми.
func (b *Builder) BuildOne(ctx context.Context, booking *domain.Booking) (*models.BookingView, error) {
	rel, err := b.load(ctx, []*domain.Booking{booking})
	if err != nil {
		return nil, err
	}

	view := assemble(booking, rel)
	if view.Hotel == nil || view.Customer == nil {
		b.logger.Warn("BuildOne: booking id=%d has missing related data (hotel=%t, customer=%t)",
			booking.ID, view.Hotel != nil, view.Customer != nil)
	}
	return view, nil
}

func (b *Builder) load(ctx context.Context, bookings []*domain.Booking) (*related, error) {
	var hotelIDs, roomIDs, customerIDs, bookingIDs []int64
	for _, booking := range bookings {
		hotelIDs = append(hotelIDs, booking.HotelID)
		customerIDs = append(customerIDs, booking.CustomerID)
		bookingIDs = append(bookingIDs, booking.ID)
		roomIDs = append(roomIDs, booking.RoomIDs...)
	}

	rel := &related{
		hotels:    make(map[int64]*domain.Hotel),
		rooms:     make(map[int64]*domain.Room),
		customers: make(map[int64]*domain.Customer),
		payments:  make(map[int64]*domain.PaymentTransaction),
		invoices:  make(map[int64]bool),
	}
	if len(bookings) == 0 {
		return rel, nil
	}

	hotels, err := b.hotelRepo.GetByIDs(ctx, hotelIDs)
	if err != nil {
		b.logger.Error("Build: failed to load hotels: %v", err)
		return nil, fmt.Errorf("%w: load hotels: %v", ErrInternal, err)
	}
	for _, h := range hotels {
		rel.hotels[h.ID] = h
	}

	rooms, err := b.roomRepo.GetByIDs(ctx, roomIDs)
	if err != nil {
		b.logger.Error("Build: failed to load rooms: %v", err)
		return nil, fmt.Errorf("%w: load rooms: %v", ErrInternal, err)
	}
	for _, r := range rooms {
		rel.rooms[r.ID] = r
	}

	customers, err := b.customerRepo.GetByIDs(ctx, customerIDs)
	if err != nil {
		b.logger.Error("Build: failed to load customers: %v", err)
		return nil, fmt.Errorf("%w: load customers: %v", ErrInternal, err)
	}
	for _, c := range customers {
		rel.customers[c.ID] = c
	}

	rel.payments, err = b.paymentRepo.GetLatestByBookingIDs(ctx, bookingIDs)
	if err != nil {
		b.logger.Error("Build: failed to load payments: %v", err)
		return nil, fmt.Errorf("%w: load payments: %v", ErrInternal, err)
	}

	rel.invoices, err = b.invoiceRepo.ListBookingIDsWithInvoices(ctx, bookingIDs)
	if err != nil {
		b.logger.Error("Build: failed to load invoices: %v", err)
		return nil, fmt.Errorf("%w: load invoices: %v", ErrInternal, err)
	}

	return rel, nil
}

func assemble(booking *domain.Booking, rel *related) *models.BookingView {
	view := models.FromDomainBooking(booking)

	if h, ok := rel.hotels[booking.HotelID]; ok {
		view.Hotel = &models.HotelSummary{ID: h.ID, Name: h.Name, Address: h.Address, Phone: h.Phone}
	}
	if c, ok := rel.customers[booking.CustomerID]; ok {
		view.Customer = &models.CustomerSummary{
			ID:          c.ID,
			Name:        c.Name,
			ContactInfo: c.ContactInfo,
			PhoneNumber: c.PhoneNumber,
		}
	}
	for _, id := range booking.RoomIDs {
		if r, ok := rel.rooms[id]; ok {
			view.Rooms = append(view.Rooms, models.RoomSummary{
				ID:            r.ID,
				RoomNumber:    r.RoomNumber,
				Type:          r.Type,
				PricePerNight: r.PricePerNight,
			})
		}
	}
	if p, ok := rel.payments[booking.ID]; ok && p != nil {
		view.LatestPayment = &models.PaymentSummary{
			ID:              p.ID,
			Reference:       p.Reference,
			Amount:          p.Amount,
			PaymentMethod:   p.PaymentMethod,
			TransactionDate: p.TransactionDate,
			Status:          p.Status,
		}
	}
	view.HasInvoice = rel.invoices[booking.ID]

	return view
}

// Categorize раскладывает бронирования по категориям:
// history - cancelled и checked-out, active - checked-in, future - booked
func Categorize(views []*models.BookingView) *models.CategorizedBookings {
	result := &models.CategorizedBookings{
		History: []*models.BookingView{},
		Active:  []*models.BookingView{},
		Future:  []*models.BookingView{},
	}
	for _, v := range views {
		switch domain.BookingStatus(v.Status) {
		case domain.StatusCancelled, domain.StatusCheckedOut:
			result.History = append(result.History, v)
		case domain.StatusCheckedIn:
			result.Active = append(result.Active, v)
		case domain.StatusBooked:
			result.Future = append(result.Future, v)
		}
	}
	return result
}
