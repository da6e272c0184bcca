package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	invoiceRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/invoice"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/pricing"
)

// PenaltyChargeName название строки штрафа в счете
const PenaltyChargeName = "Cancellation penalty"

// UUIDGenerator генератор идентификаторов на основе UUID v4
type UUIDGenerator struct{}

// NewID возвращает новый UUID
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Recorder создает платежи и счета как побочный эффект переходов бронирования.
// Все методы пишут в транзакцию вызывающего через ctx.
type Recorder struct {
	paymentRepo PaymentRepository
	invoiceRepo InvoiceRepository
	ids         IDGenerator
}

// NewRecorder создает новый экземпляр Recorder
func NewRecorder(paymentRepo PaymentRepository, invoiceRepo InvoiceRepository) *Recorder {
	return &Recorder{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		ids:         UUIDGenerator{},
	}
}

// WithIDGenerator подменяет генератор идентификаторов
func (r *Recorder) WithIDGenerator(ids IDGenerator) *Recorder {
	r.ids = ids
	return r
}

// RecordPenalty фиксирует оплату штрафа за отмену: платеж и оплаченный счет с одной строкой штрафа
func (r *Recorder) RecordPenalty(
	ctx context.Context,
	b *domain.Booking,
	amount float64,
	method string,
	at time.Time,
) (*domain.PaymentTransaction, *domain.Invoice, error) {
	payment, err := r.paymentRepo.Create(ctx, &domain.PaymentTransaction{
		Reference:       r.ids.NewID(),
		BookingID:       b.ID,
		Amount:          amount,
		PaymentMethod:   method,
		TransactionDate: at,
		Status:          domain.TransactionStatusPenaltyPaid,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: RecordPenalty - create payment: %v", ErrInternal, err)
	}

	inv := &domain.Invoice{
		Number:    r.invoiceNumber(),
		BookingID: b.ID,
		HotelID:   b.HotelID,
		ServiceCharges: []domain.ServiceCharge{
			{Name: PenaltyChargeName, Total: amount, Quantity: 1, Unit: "booking"},
		},
		IssueDate: at,
		Status:    domain.InvoiceStatusPaid,
	}
	inv.Recalculate()

	created, err := r.invoiceRepo.Create(ctx, inv)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: RecordPenalty - create invoice: %v", ErrInternal, err)
	}

	return payment, created, nil
}

// RecordCheckOut фиксирует оплату проживания при выезде.
// Строки проживания дописываются в последний неоплаченный счет бронирования
// (например, открытый начислением услуг) либо в новый счет.
func (r *Recorder) RecordCheckOut(
	ctx context.Context,
	b *domain.Booking,
	rooms []*domain.Room,
	nights int,
	method string,
	at time.Time,
) (*domain.PaymentTransaction, *domain.Invoice, error) {
	payment, err := r.paymentRepo.Create(ctx, &domain.PaymentTransaction{
		Reference:       r.ids.NewID(),
		BookingID:       b.ID,
		Amount:          b.TotalAmount,
		PaymentMethod:   method,
		TransactionDate: at,
		Status:          domain.TransactionStatusApproved,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: RecordCheckOut - create payment: %v", ErrInternal, err)
	}

	charges := RoomCharges(rooms, nights)

	inv, err := r.openInvoice(ctx, b)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: RecordCheckOut - %v", ErrInternal, err)
	}

	if inv != nil {
		inv.RoomCharges = append(inv.RoomCharges, charges...)
		inv.Status = domain.InvoiceStatusPaid
		inv.Recalculate()
		if err := r.invoiceRepo.Update(ctx, inv); err != nil {
			return nil, nil, fmt.Errorf("%w: RecordCheckOut - update invoice id=%d: %v", ErrInternal, inv.ID, err)
		}
		return payment, inv, nil
	}

	inv = &domain.Invoice{
		Number:      r.invoiceNumber(),
		BookingID:   b.ID,
		HotelID:     b.HotelID,
		RoomCharges: charges,
		IssueDate:   at,
		Status:      domain.InvoiceStatusPaid,
	}
	inv.Recalculate()

	created, err := r.invoiceRepo.Create(ctx, inv)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: RecordCheckOut - create invoice: %v", ErrInternal, err)
	}

	return payment, created, nil
}

// AddServiceCharges дописывает услуги в последний счет бронирования
// либо открывает новый счет со статусом issued, итог пересчитывается
func (r *Recorder) AddServiceCharges(
	ctx context.Context,
	b *domain.Booking,
	charges []domain.ServiceCharge,
	at time.Time,
) (*domain.Invoice, error) {
	if err := validateCharges(charges); err != nil {
		return nil, err
	}

	inv, err := r.invoiceRepo.GetLatestByBookingID(ctx, b.ID)
	if err != nil && !errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
		return nil, fmt.Errorf("%w: AddServiceCharges - get invoice: %v", ErrInternal, err)
	}

	if inv != nil {
		inv.ServiceCharges = append(inv.ServiceCharges, charges...)
		inv.Recalculate()
		if err := r.invoiceRepo.Update(ctx, inv); err != nil {
			return nil, fmt.Errorf("%w: AddServiceCharges - update invoice id=%d: %v", ErrInternal, inv.ID, err)
		}
		return inv, nil
	}

	inv = &domain.Invoice{
		Number:         r.invoiceNumber(),
		BookingID:      b.ID,
		HotelID:        b.HotelID,
		ServiceCharges: append([]domain.ServiceCharge(nil), charges...),
		IssueDate:      at,
		Status:         domain.InvoiceStatusIssued,
	}
	inv.Recalculate()

	created, err := r.invoiceRepo.Create(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("%w: AddServiceCharges - create invoice: %v", ErrInternal, err)
	}

	return created, nil
}

// RoomCharges строки проживания: по одной на номер
func RoomCharges(rooms []*domain.Room, nights int) []domain.RoomCharge {
	charges := make([]domain.RoomCharge, 0, len(rooms))
	for _, room := range rooms {
		charges = append(charges, domain.RoomCharge{
			Description: fmt.Sprintf("Room %s (%s) x %d night(s)", room.RoomNumber, room.Type, nights),
			Total:       pricing.RoomCharge(room, nights),
		})
	}
	return charges
}

// openInvoice последний счет бронирования в статусе issued, nil если такого нет
func (r *Recorder) openInvoice(ctx context.Context, b *domain.Booking) (*domain.Invoice, error) {
	inv, err := r.invoiceRepo.GetLatestByBookingID(ctx, b.ID)
	if err != nil {
		if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %v", err)
	}
	if inv.Status != domain.InvoiceStatusIssued {
		return nil, nil
	}
	return inv, nil
}

func (r *Recorder) invoiceNumber() string {
	id := strings.ReplaceAll(r.ids.NewID(), "-", "")
	if len(id) > 12 {
		id = id[:12]
	}
	return "INV-" + strings.ToUpper(id)
}

func validateCharges(charges []domain.ServiceCharge) error {
	if len(charges) == 0 {
		return ErrNoCharges
	}
	for i, c := range charges {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: line %d: name is required", ErrInvalidCharge, i)
		}
		if c.Quantity <= 0 {
			return fmt.Errorf("%w: line %d: quantity must be positive", ErrInvalidCharge, i)
		}
		if c.Total < 0 {
			return fmt.Errorf("%w: line %d: total must not be negative", ErrInvalidCharge, i)
		}
	}
	return nil
}
