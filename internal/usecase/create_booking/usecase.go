package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	customerRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/customer"
	hotelRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/hotel"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-HotelBookingService/pkg/txmanager"
)

// Options параметры бронирования по умолчанию
type Options struct {
	DefaultGracePeriodHours int
}

// UseCase use case для создания бронирования
type UseCase struct {
	hotelRepo    HotelRepository
	roomRepo     RoomRepository
	customerRepo CustomerRepository
	bookingRepo  BookingRepository
	checker      AvailabilityChecker
	inventory    Inventory
	txManager    TransactionManager
	publisher    EventPublisher
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	hotelRepo HotelRepository,
	roomRepo RoomRepository,
	customerRepo CustomerRepository,
	bookingRepo BookingRepository,
	checker AvailabilityChecker,
	inventory Inventory,
	txManager TransactionManager,
	publisher EventPublisher,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		hotelRepo:    hotelRepo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		bookingRepo:  bookingRepo,
		checker:      checker,
		inventory:    inventory,
		txManager:    txManager,
		publisher:    publisher,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Номера блокируются до проверки доступности, поэтому конкурирующее бронирование тех же номеров
// дожидается завершения транзакции и видит её результат.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: hotel=%d, customer=%d, rooms=%v, checkIn=%s, checkOut=%s",
		req.HotelID, req.CustomerID, req.RoomIDs,
		req.CheckInDate.Format(domain.DateFormat), req.CheckOutDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	stay := domain.DateRange{CheckIn: req.CheckInDate, CheckOut: req.CheckOutDate}
	grace := uc.opts.DefaultGracePeriodHours
	if req.CancellationGracePeriod != nil {
		grace = *req.CancellationGracePeriod
	}

	var (
		result *domain.Booking
		nights int
	)

	// 2. Все проверки и записи выполняются в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Проверяем отель
		if _, err := uc.hotelRepo.GetByID(txCtx, req.HotelID); err != nil {
			if errors.Is(err, hotelRepo.ErrHotelNotFound) {
				uc.logger.Warn("CreateBooking: hotel id=%d not found", req.HotelID)
				return ErrHotelNotFound
			}
			uc.logger.Error("CreateBooking: failed to get hotel id=%d: %v", req.HotelID, err)
			return fmt.Errorf("%w: failed to get hotel: %v", ErrInternal, err)
		}

		// 2.2. Получаем номера с блокировкой (FOR UPDATE, по возрастанию id)
		rooms, err := uc.roomRepo.GetByIDs(txCtx, req.RoomIDs)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get rooms: %v", err)
			return fmt.Errorf("%w: failed to get rooms: %v", ErrInternal, err)
		}
		if err := validateRooms(req.HotelID, req.RoomIDs, rooms); err != nil {
			uc.logger.Warn("CreateBooking: rooms validation failed: %v", err)
			return err
		}

		// 2.3. Считаем стоимость на сервере
		var total float64
		total, nights, err = pricing.StayTotal(rooms, stay)
		if err != nil {
			uc.logger.Warn("CreateBooking: pricing failed: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 2.4. Получаем клиента с блокировкой
		customer, err := uc.customerRepo.GetByID(txCtx, req.CustomerID)
		if err != nil {
			if errors.Is(err, customerRepo.ErrCustomerNotFound) {
				uc.logger.Warn("CreateBooking: customer id=%d not found", req.CustomerID)
				return ErrCustomerNotFound
			}
			uc.logger.Error("CreateBooking: failed to get customer id=%d: %v", req.CustomerID, err)
			return fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
		}

		// 2.5. Недостаточный баланс не блокирует бронирование, оплата откладывается
		paymentStatus := domain.PaymentStatusPending
		if !customer.CanAfford(total) {
			paymentStatus = domain.PaymentStatusWaiting
			uc.logger.Info("CreateBooking: customer id=%d balance %.2f is below total %.2f, payment is waiting",
				customer.ID, customer.Balance, total)
		}

		// 2.6. Проверяем доступность под блокировкой номеров
		conflicts, err := uc.checker.Conflicts(txCtx, req.HotelID, req.RoomIDs, stay)
		if err != nil {
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("CreateBooking: rooms %v unavailable, %d conflicting bookings (first id=%d)",
				req.RoomIDs, len(conflicts), conflicts[0].ID)
			return ErrRoomsUnavailable
		}

		// 2.7. Помечаем номера забронированными
		if err := uc.inventory.Reserve(txCtx, rooms); err != nil {
			uc.logger.Error("CreateBooking: failed to reserve rooms: %v", err)
			return fmt.Errorf("%w: failed to reserve rooms: %v", ErrInternal, err)
		}

		// 2.8. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			HotelID:                 req.HotelID,
			CustomerID:              req.CustomerID,
			RoomIDs:                 append([]int64(nil), req.RoomIDs...),
			CheckInDate:             req.CheckInDate,
			CheckOutDate:            req.CheckOutDate,
			CancellationGracePeriod: grace,
			TotalAmount:             total,
			Status:                  domain.StatusBooked,
			PaymentStatus:           paymentStatus,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конкурирующая транзакция зафиксировала пересекающееся бронирование
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: concurrent reservation of rooms %v: %v", req.RoomIDs, err)
			return nil, ErrRoomsUnavailable
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%.2f", result.ID, result.TotalAmount)

	uc.publish(ctx, domain.NewBookingEvent(domain.EventBookingCreated, result, result.TotalAmount, uc.timeProvider.Now()))

	return &Response{
		ID:                      result.ID,
		HotelID:                 result.HotelID,
		CustomerID:              result.CustomerID,
		RoomIDs:                 result.RoomIDs,
		CheckInDate:             result.CheckInDate,
		CheckOutDate:            result.CheckOutDate,
		Nights:                  nights,
		CancellationGracePeriod: result.CancellationGracePeriod,
		TotalAmount:             result.TotalAmount,
		Status:                  result.Status,
		PaymentStatus:           result.PaymentStatus,
		CreatedAt:               result.CreatedAt,
	}, nil
}

// publish ошибки публикации только логируются: бронирование уже зафиксировано
func (uc *UseCase) publish(ctx context.Context, event domain.BookingEvent) {
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish %s for booking id=%d: %v", event.Type, event.BookingID, err)
	}
}
