package add_service_charges

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
)

// UseCase use case для добавления услуг в счет бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	billing      BillingRecorder
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	billing BillingRecorder,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		billing:      billing,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute дописывает услуги в последний счет бронирования и пересчитывает итог
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AddServiceCharges: hotel=%d, booking=%d, lines=%d", req.HotelID, req.BookingID, len(req.Charges))

	if req.HotelID <= 0 || req.BookingID <= 0 {
		uc.logger.Warn("AddServiceCharges: invalid ids hotel=%d booking=%d", req.HotelID, req.BookingID)
		return nil, fmt.Errorf("%w: hotelID and bookingID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var (
		booking *domain.Booking
		invoice *domain.Invoice
		added   float64
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("AddServiceCharges: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("AddServiceCharges: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if b.HotelID != req.HotelID {
			uc.logger.Warn("AddServiceCharges: booking id=%d belongs to hotel=%d, not %d", b.ID, b.HotelID, req.HotelID)
			return ErrBookingNotFound
		}

		if !b.AcceptsServiceCharges() {
			uc.logger.Warn("AddServiceCharges: booking id=%d in status %s does not accept charges", b.ID, b.Status)
			return fmt.Errorf("%w: status %s", ErrCannotAddCharges, b.Status)
		}

		inv, err := uc.billing.AddServiceCharges(txCtx, b, req.Charges, now)
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				uc.logger.Warn("AddServiceCharges: invalid charges: %v", err)
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			uc.logger.Error("AddServiceCharges: failed to add charges: %v", err)
			return fmt.Errorf("%w: failed to add charges: %v", ErrInternal, err)
		}

		for _, c := range req.Charges {
			added += c.Total
		}
		booking = b
		invoice = inv
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("AddServiceCharges: invoice id=%d of booking id=%d total=%.2f", invoice.ID, booking.ID, invoice.TotalAmount)

	event := domain.NewBookingEvent(domain.EventServiceChargesAdded, booking, added, now)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("AddServiceCharges: failed to publish event for booking id=%d: %v", booking.ID, err)
	}

	return &Response{BookingID: booking.ID, Invoice: invoice}, nil
}
