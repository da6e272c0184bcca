package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	cancellationRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/cancellation"
	invoiceRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/invoice"
)

type CancellationRepository struct {
	store *Store
}

func (r *CancellationRepository) Create(ctx context.Context, rec *domain.CancellationRecord) (*domain.CancellationRecord, error) {
	err := r.store.write(ctx, func(st *state) error {
		rec.ID = st.nextID()
		v := *rec
		st.cancellations[rec.ID] = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *CancellationRepository) GetLatestByBookingID(ctx context.Context, bookingID int64) (*domain.CancellationRecord, error) {
	var result *domain.CancellationRecord
	err := r.store.read(ctx, func(st *state) error {
		for _, rec := range st.cancellations {
			if rec.BookingID != bookingID {
				continue
			}
			if result == nil || rec.CancellationTime.After(result.CancellationTime) ||
				(rec.CancellationTime.Equal(result.CancellationTime) && rec.ID > result.ID) {
				v := *rec
				result = &v
			}
		}
		if result == nil {
			return cancellationRepo.ErrCancellationNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *CancellationRepository) MarkPenaltyPaid(ctx context.Context, id int64, paidAt time.Time) error {
	return r.store.write(ctx, func(st *state) error {
		rec, ok := st.cancellations[id]
		if !ok {
			return cancellationRepo.ErrCancellationNotFound
		}
		rec.PenaltyPaid = true
		rec.PenaltyPaidAt = &paidAt
		return nil
	})
}

type PaymentRepository struct {
	store *Store
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
	err := r.store.write(ctx, func(st *state) error {
		p.ID = st.nextID()
		v := *p
		st.payments[p.ID] = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PaymentRepository) ListByBookingID(ctx context.Context, bookingID int64) ([]*domain.PaymentTransaction, error) {
	result := make([]*domain.PaymentTransaction, 0)
	err := r.store.read(ctx, func(st *state) error {
		for _, p := range st.payments {
			if p.BookingID == bookingID {
				v := *p
				result = append(result, &v)
			}
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return paymentBefore(result[i], result[j]) })
	return result, err
}

func (r *PaymentRepository) GetLatestByBookingIDs(ctx context.Context, bookingIDs []int64) (map[int64]*domain.PaymentTransaction, error) {
	wanted := make(map[int64]bool, len(bookingIDs))
	for _, id := range bookingIDs {
		wanted[id] = true
	}

	result := make(map[int64]*domain.PaymentTransaction, len(bookingIDs))
	err := r.store.read(ctx, func(st *state) error {
		for _, p := range st.payments {
			if !wanted[p.BookingID] {
				continue
			}
			if latest, ok := result[p.BookingID]; !ok || paymentBefore(latest, p) {
				v := *p
				result[p.BookingID] = &v
			}
		}
		return nil
	})
	return result, err
}

func paymentBefore(a, b *domain.PaymentTransaction) bool {
	if a.TransactionDate.Equal(b.TransactionDate) {
		return a.ID < b.ID
	}
	return a.TransactionDate.Before(b.TransactionDate)
}

type InvoiceRepository struct {
	store *Store
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	err := r.store.write(ctx, func(st *state) error {
		inv.ID = st.nextID()
		st.invoices[inv.ID] = inv.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *domain.Invoice) error {
	return r.store.write(ctx, func(st *state) error {
		existing, ok := st.invoices[inv.ID]
		if !ok {
			return invoiceRepo.ErrInvoiceNotFound
		}
		updated := inv.Clone()
		updated.Number = existing.Number
		updated.BookingID = existing.BookingID
		updated.HotelID = existing.HotelID
		updated.IssueDate = existing.IssueDate
		st.invoices[inv.ID] = updated
		return nil
	})
}

func (r *InvoiceRepository) GetLatestByBookingID(ctx context.Context, bookingID int64) (*domain.Invoice, error) {
	invoices, err := r.ListByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, invoiceRepo.ErrInvoiceNotFound
	}
	return invoices[len(invoices)-1], nil
}

func (r *InvoiceRepository) ListByBookingID(ctx context.Context, bookingID int64) ([]*domain.Invoice, error) {
	result := make([]*domain.Invoice, 0)
	err := r.store.read(ctx, func(st *state) error {
		for _, inv := range st.invoices {
			if inv.BookingID == bookingID {
				result = append(result, inv.Clone())
			}
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool {
		if result[i].IssueDate.Equal(result[j].IssueDate) {
			return result[i].ID < result[j].ID
		}
		return result[i].IssueDate.Before(result[j].IssueDate)
	})
	return result, err
}

func (r *InvoiceRepository) ListBookingIDsWithInvoices(ctx context.Context, bookingIDs []int64) (map[int64]bool, error) {
	wanted := make(map[int64]bool, len(bookingIDs))
	for _, id := range bookingIDs {
		wanted[id] = true
	}

	result := make(map[int64]bool, len(bookingIDs))
	err := r.store.read(ctx, func(st *state) error {
		for _, inv := range st.invoices {
			if wanted[inv.BookingID] {
				result[inv.BookingID] = true
			}
		}
		return nil
	})
	return result, err
}
