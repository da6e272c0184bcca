package pay_penalty

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
	cancellationRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/cancellation"
	customerRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/customer"
)

// Options параметры оплаты по умолчанию
type Options struct {
	DefaultPaymentMethod string
}

// UseCase use case для оплаты отложенного штрафа за отмену
type UseCase struct {
	bookingRepo      BookingRepository
	cancellationRepo CancellationRepository
	customerRepo     CustomerRepository
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
	cancellationRepo CancellationRepository,
	customerRepo CustomerRepository,
	billing BillingRecorder,
	txManager TransactionManager,
	publisher EventPublisher,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		cancellationRepo: cancellationRepo,
		customerRepo:     customerRepo,
		billing:          billing,
		txManager:        txManager,
		publisher:        publisher,
		opts:             opts,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute списывает неоплаченный штраф отменённого бронирования,
// записывает платеж со счетом и отмечает штраф оплаченным
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PayPenalty: hotel=%d, booking=%d, customer=%d", req.HotelID, req.BookingID, req.CustomerID)

	if req.HotelID <= 0 || req.BookingID <= 0 || req.CustomerID <= 0 {
		uc.logger.Warn("PayPenalty: invalid ids hotel=%d booking=%d customer=%d", req.HotelID, req.BookingID, req.CustomerID)
		return nil, fmt.Errorf("%w: hotelID, bookingID and customerID must be positive", ErrInvalidInput)
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
				uc.logger.Warn("PayPenalty: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("PayPenalty: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if b.HotelID != req.HotelID || b.CustomerID != req.CustomerID {
			uc.logger.Warn("PayPenalty: booking id=%d does not belong to hotel=%d/customer=%d",
				b.ID, req.HotelID, req.CustomerID)
			return ErrBookingNotFound
		}

		if b.Status != domain.StatusCancelled {
			uc.logger.Warn("PayPenalty: booking id=%d in status %s has no penalty", b.ID, b.Status)
			return fmt.Errorf("%w: booking is %s", ErrNoPenaltyDue, b.Status)
		}

		rec, err := uc.cancellationRepo.GetLatestByBookingID(txCtx, b.ID)
		if err != nil {
			if errors.Is(err, cancellationRepo.ErrCancellationNotFound) {
				uc.logger.Warn("PayPenalty: booking id=%d has no cancellation record", b.ID)
				return ErrNoPenaltyDue
			}
			uc.logger.Error("PayPenalty: failed to get cancellation of booking id=%d: %v", b.ID, err)
			return fmt.Errorf("%w: failed to get cancellation record: %v", ErrInternal, err)
		}
		if !rec.HasUnpaidPenalty() {
			uc.logger.Warn("PayPenalty: booking id=%d penalty=%.2f paid=%t", b.ID, rec.PenaltyApplied, rec.PenaltyPaid)
			return ErrNoPenaltyDue
		}

		customer, err := uc.customerRepo.GetByID(txCtx, b.CustomerID)
		if err != nil {
			if errors.Is(err, customerRepo.ErrCustomerNotFound) {
				uc.logger.Warn("PayPenalty: customer id=%d not found", b.CustomerID)
				return ErrCustomerNotFound
			}
			uc.logger.Error("PayPenalty: failed to get customer id=%d: %v", b.CustomerID, err)
			return fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
		}
		if !customer.CanAfford(rec.PenaltyApplied) {
			uc.logger.Warn("PayPenalty: customer id=%d balance %.2f is below penalty %.2f",
				customer.ID, customer.Balance, rec.PenaltyApplied)
			return ErrInsufficientFunds
		}

		balance, err := uc.customerRepo.Debit(txCtx, b.CustomerID, rec.PenaltyApplied)
		if err != nil {
			if errors.Is(err, customerRepo.ErrInsufficientBalance) {
				return ErrInsufficientFunds
			}
			uc.logger.Error("PayPenalty: failed to debit customer id=%d: %v", b.CustomerID, err)
			return fmt.Errorf("%w: failed to debit customer: %v", ErrInternal, err)
		}

		payment, invoice, err := uc.billing.RecordPenalty(txCtx, b, rec.PenaltyApplied, method, now)
		if err != nil {
			uc.logger.Error("PayPenalty: failed to record penalty: %v", err)
			return fmt.Errorf("%w: failed to record penalty: %v", ErrInternal, err)
		}

		if err := uc.cancellationRepo.MarkPenaltyPaid(txCtx, rec.ID, now); err != nil {
			uc.logger.Error("PayPenalty: failed to mark penalty paid for cancellation id=%d: %v", rec.ID, err)
			return fmt.Errorf("%w: failed to mark penalty paid: %v", ErrInternal, err)
		}

		b.PaymentStatus = domain.PaymentStatusPenaltyPaid
		if err := uc.bookingRepo.Update(txCtx, b); err != nil {
			uc.logger.Error("PayPenalty: failed to update booking id=%d: %v", b.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		booking = b
		resp = &Response{
			BookingID:      b.ID,
			PaymentStatus:  b.PaymentStatus,
			AmountPaid:     rec.PenaltyApplied,
			Balance:        balance,
			PaymentID:      payment.ID,
			InvoiceID:      invoice.ID,
			CancellationID: rec.ID,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("PayPenalty: successfully paid penalty %.2f for booking id=%d", resp.AmountPaid, booking.ID)

	event := domain.NewBookingEvent(domain.EventPenaltyPaid, booking, resp.AmountPaid, now)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("PayPenalty: failed to publish event for booking id=%d: %v", booking.ID, err)
	}

	return resp, nil
}
