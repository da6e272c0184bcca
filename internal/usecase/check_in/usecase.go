package check_in

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
)

// UseCase use case для заселения гостя
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	inventory    Inventory
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	inventory Inventory,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		inventory:    inventory,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переводит бронирование в checked-in, номера в occupied
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckIn: hotel=%d, booking=%d", req.HotelID, req.BookingID)

	if req.HotelID <= 0 || req.BookingID <= 0 {
		uc.logger.Warn("CheckIn: invalid ids hotel=%d booking=%d", req.HotelID, req.BookingID)
		return nil, fmt.Errorf("%w: hotelID and bookingID must be positive", ErrInvalidInput)
	}

	var booking *domain.Booking

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CheckIn: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CheckIn: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if b.HotelID != req.HotelID {
			uc.logger.Warn("CheckIn: booking id=%d belongs to hotel=%d, not %d", b.ID, b.HotelID, req.HotelID)
			return ErrBookingNotFound
		}

		if !b.CanCheckIn() {
			uc.logger.Warn("CheckIn: booking id=%d in status %s cannot be checked in", b.ID, b.Status)
			return fmt.Errorf("%w: status %s", ErrCannotCheckIn, b.Status)
		}

		if _, err := uc.roomRepo.GetByIDs(txCtx, b.RoomIDs); err != nil {
			uc.logger.Error("CheckIn: failed to lock rooms: %v", err)
			return fmt.Errorf("%w: failed to lock rooms: %v", ErrInternal, err)
		}

		b.Status = domain.StatusCheckedIn
		if err := uc.bookingRepo.Update(txCtx, b); err != nil {
			uc.logger.Error("CheckIn: failed to update booking id=%d: %v", b.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		if err := uc.inventory.Occupy(txCtx, b.RoomIDs); err != nil {
			uc.logger.Error("CheckIn: failed to occupy rooms: %v", err)
			return fmt.Errorf("%w: failed to occupy rooms: %v", ErrInternal, err)
		}

		booking = b
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CheckIn: successfully checked in booking id=%d", booking.ID)

	event := domain.NewBookingEvent(domain.EventBookingCheckedIn, booking, 0, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CheckIn: failed to publish event for booking id=%d: %v", booking.ID, err)
	}

	return &Response{
		BookingID: booking.ID,
		Status:    booking.Status,
		RoomIDs:   booking.RoomIDs,
	}, nil
}
