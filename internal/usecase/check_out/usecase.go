package check_out

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
)

// Options параметры выезда по умолчанию
type Options struct {
	DefaultPaymentMethod string
}

// UseCase use case для выезда гостя
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	inventory    Inventory
	billing      BillingRecorder
	txManager    TransactionManager
	publisher    EventPublisher
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	inventory Inventory,
	billing BillingRecorder,
	txManager TransactionManager,
	publisher EventPublisher,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		inventory:    inventory,
		billing:      billing,
		txManager:    txManager,
		publisher:    publisher,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переводит бронирование в checked-out, освобождает номера,
// записывает платеж на полную стоимость и счет с проживанием
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckOut: hotel=%d, booking=%d", req.HotelID, req.BookingID)

	if req.HotelID <= 0 || req.BookingID <= 0 {
		uc.logger.Warn("CheckOut: invalid ids hotel=%d booking=%d", req.HotelID, req.BookingID)
		return nil, fmt.Errorf("%w: hotelID and bookingID must be positive", ErrInvalidInput)
	}

	method := req.PaymentMethod
	if method == "" {
		method = uc.opts.DefaultPaymentMethod
	}

	now := uc.timeProvider.Now()

	var (
		booking *domain.Booking
		resp    *Response
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CheckOut: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CheckOut: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if b.HotelID != req.HotelID {
			uc.logger.Warn("CheckOut: booking id=%d belongs to hotel=%d, not %d", b.ID, b.HotelID, req.HotelID)
			return ErrBookingNotFound
		}

		if !b.CanCheckOut() {
			uc.logger.Warn("CheckOut: booking id=%d in status %s cannot be checked out", b.ID, b.Status)
			return fmt.Errorf("%w: status %s", ErrCannotCheckOut, b.Status)
		}

		rooms, err := uc.roomRepo.GetByIDs(txCtx, b.RoomIDs)
		if err != nil {
			uc.logger.Error("CheckOut: failed to lock rooms: %v", err)
			return fmt.Errorf("%w: failed to lock rooms: %v", ErrInternal, err)
		}

		nights, err := pricing.Nights(b.CheckInDate, b.CheckOutDate)
		if err != nil {
			uc.logger.Error("CheckOut: booking id=%d has invalid stay: %v", b.ID, err)
			return fmt.Errorf("%w: invalid stay: %v", ErrInternal, err)
		}

		b.Status = domain.StatusCheckedOut
		b.PaymentStatus = domain.PaymentStatusPaid
		b.CheckedOutAt = ptr.Ptr(now)
		if err := uc.bookingRepo.Update(txCtx, b); err != nil {
			uc.logger.Error("CheckOut: failed to update booking id=%d: %v", b.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		if err := uc.inventory.Release(txCtx, b); err != nil {
			uc.logger.Error("CheckOut: failed to release rooms: %v", err)
			return fmt.Errorf("%w: failed to release rooms: %v", ErrInternal, err)
		}

		payment, invoice, err := uc.billing.RecordCheckOut(txCtx, b, rooms, nights, method, now)
		if err != nil {
			uc.logger.Error("CheckOut: failed to record payment: %v", err)
			return fmt.Errorf("%w: failed to record payment: %v", ErrInternal, err)
		}

		booking = b
		resp = &Response{
			BookingID:     b.ID,
			Status:        b.Status,
			PaymentStatus: b.PaymentStatus,
			CheckedOutAt:  now,
			Nights:        nights,
			PaymentID:     payment.ID,
			AmountPaid:    payment.Amount,
			InvoiceID:     invoice.ID,
			InvoiceTotal:  invoice.TotalAmount,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CheckOut: successfully checked out booking id=%d, paid=%.2f", booking.ID, resp.AmountPaid)

	event := domain.NewBookingEvent(domain.EventBookingCheckedOut, booking, resp.AmountPaid, now)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CheckOut: failed to publish event for booking id=%d: %v", booking.ID, err)
	}

	return resp, nil
}
