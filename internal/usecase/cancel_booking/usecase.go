package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
)

// Options параметры отмены по умолчанию
type Options struct {
	DefaultPaymentMethod string
}

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	roomRepo         RoomRepository
	customerRepo     CustomerRepository
	cancellationRepo CancellationRepository
	inventory        Inventory
	billing          BillingRecorder
	txManager        TransactionManager
	publisher        EventPublisher
	opts             Options
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	customerRepo CustomerRepository,
	cancellationRepo CancellationRepository,
	inventory Inventory,
	billing BillingRecorder,
	txManager TransactionManager,
	publisher EventPublisher,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		roomRepo:         roomRepo,
		customerRepo:     customerRepo,
		cancellationRepo: cancellationRepo,
		inventory:        inventory,
		billing:          billing,
		txManager:        txManager,
		publisher:        publisher,
		opts:             opts,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет отмену бронирования.
// Штраф, статус бронирования, статусы номеров, баланс клиента и записи биллинга
// меняются в одной транзакции. Порядок блокировок: бронирование, номера, клиент.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: hotel=%d, booking=%d, canceledBy=%d, deferPenalty=%t",
		req.HotelID, req.BookingID, req.CanceledBy, req.DeferPenalty)

	if req.HotelID <= 0 || req.BookingID <= 0 {
		uc.logger.Warn("CancelBooking: invalid ids hotel=%d booking=%d", req.HotelID, req.BookingID)
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
		// 1. Получаем бронирование с блокировкой
		b, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Бронирование другого отеля или другого клиента неотличимо от отсутствующего
		if b.HotelID != req.HotelID || (req.CustomerID != nil && b.CustomerID != *req.CustomerID) {
			uc.logger.Warn("CancelBooking: booking id=%d does not belong to hotel=%d/customer=%v",
				req.BookingID, req.HotelID, req.CustomerID)
			return ErrBookingNotFound
		}

		// 2. Проверяем переход
		if !b.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d in status %s cannot be cancelled", b.ID, b.Status)
			return fmt.Errorf("%w: status %s", ErrCannotCancel, b.Status)
		}

		// 3. Считаем штраф по статусу до отмены
		penalty := pricing.Penalty(b, now)
		payNow := penalty > 0 && !req.DeferPenalty
		uc.logger.Info("CancelBooking: booking id=%d status=%s penalty=%.2f payNow=%t", b.ID, b.Status, penalty, payNow)

		// 4. Блокируем номера
		if _, err := uc.roomRepo.GetByIDs(txCtx, b.RoomIDs); err != nil {
			uc.logger.Error("CancelBooking: failed to lock rooms: %v", err)
			return fmt.Errorf("%w: failed to lock rooms: %v", ErrInternal, err)
		}

		// 5. Проверяем баланс до любых изменений
		if payNow {
			customer, err := uc.customerRepo.GetByID(txCtx, b.CustomerID)
			if err != nil {
				if errors.Is(err, customerRepo.ErrCustomerNotFound) {
					uc.logger.Warn("CancelBooking: customer id=%d not found", b.CustomerID)
					return ErrCustomerNotFound
				}
				uc.logger.Error("CancelBooking: failed to get customer id=%d: %v", b.CustomerID, err)
				return fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
			}
			if !customer.CanAfford(penalty) {
				uc.logger.Warn("CancelBooking: customer id=%d balance %.2f is below penalty %.2f",
					customer.ID, customer.Balance, penalty)
				return ErrInsufficientFunds
			}
		}

		// 6. Меняем статус бронирования
		b.Status = domain.StatusCancelled
		switch {
		case payNow:
			b.PaymentStatus = domain.PaymentStatusPenaltyPaid
		case penalty > 0:
			b.PaymentStatus = domain.PaymentStatusPenaltyDue
		default:
			b.PaymentStatus = domain.PaymentStatusNoPenalties
		}
		if err := uc.bookingRepo.Update(txCtx, b); err != nil {
			uc.logger.Error("CancelBooking: failed to update booking id=%d: %v", b.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		// 7. Освобождаем номера
		if err := uc.inventory.Release(txCtx, b); err != nil {
			uc.logger.Error("CancelBooking: failed to release rooms: %v", err)
			return fmt.Errorf("%w: failed to release rooms: %v", ErrInternal, err)
		}

		resp = &Response{
			BookingID:        b.ID,
			Status:           b.Status,
			PaymentStatus:    b.PaymentStatus,
			CancellationTime: now,
			PenaltyApplied:   penalty,
			PenaltyPaid:      payNow,
		}

		// 8. Списываем штраф и записываем платеж со счетом
		if payNow {
			if _, err := uc.customerRepo.Debit(txCtx, b.CustomerID, penalty); err != nil {
				if errors.Is(err, customerRepo.ErrInsufficientBalance) {
					uc.logger.Warn("CancelBooking: debit of %.2f rejected for customer id=%d", penalty, b.CustomerID)
					return ErrInsufficientFunds
				}
				uc.logger.Error("CancelBooking: failed to debit customer id=%d: %v", b.CustomerID, err)
				return fmt.Errorf("%w: failed to debit customer: %v", ErrInternal, err)
			}

			payment, invoice, err := uc.billing.RecordPenalty(txCtx, b, penalty, method, now)
			if err != nil {
				uc.logger.Error("CancelBooking: failed to record penalty: %v", err)
				return fmt.Errorf("%w: failed to record penalty: %v", ErrInternal, err)
			}
			resp.PaymentID = ptr.Ptr(payment.ID)
			resp.InvoiceID = ptr.Ptr(invoice.ID)
		}

		// 9. Фиксируем факт отмены
		rec := &domain.CancellationRecord{
			BookingID:        b.ID,
			CanceledBy:       req.CanceledBy,
			CancellationTime: now,
			PenaltyApplied:   penalty,
			PenaltyPaid:      payNow,
		}
		if payNow {
			rec.PenaltyPaidAt = ptr.Ptr(now)
		}
		created, err := uc.cancellationRepo.Create(txCtx, rec)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to create cancellation record: %v", err)
			return fmt.Errorf("%w: failed to create cancellation record: %v", ErrInternal, err)
		}
		resp.CancellationID = created.ID

		booking = b
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d, penalty=%.2f", booking.ID, resp.PenaltyApplied)

	if err := uc.publisher.Publish(ctx, domain.NewBookingEvent(domain.EventBookingCancelled, booking, resp.PenaltyApplied, now)); err != nil {
		uc.logger.Warn("CancelBooking: failed to publish event for booking id=%d: %v", booking.ID, err)
	}

	return resp, nil
}
