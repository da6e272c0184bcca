package billing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/memory"
)

type seqIDs struct {
	n int
}

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%04d-abcdefgh", s.n)
}

var at = time.Date(2025, 6, 3, 11, 0, 0, 0, time.UTC)

func newRecorder() (*Recorder, *memory.Store) {
	store := memory.NewStore()
	r := NewRecorder(store.Payments(), store.Invoices()).WithIDGenerator(&seqIDs{})
	return r, store
}

func testBooking() *domain.Booking {
	return &domain.Booking{ID: 42, HotelID: 1, CustomerID: 7, RoomIDs: []int64{10, 11}, TotalAmount: 500}
}

func testRooms() []*domain.Room {
	return []*domain.Room{
		{ID: 10, RoomNumber: "101", Type: "standard", PricePerNight: 100},
		{ID: 11, RoomNumber: "201", Type: "suite", PricePerNight: 150},
	}
}

func TestRecorder_RecordPenalty(t *testing.T) {
	r, store := newRecorder()
	ctx := context.Background()

	payment, inv, err := r.RecordPenalty(ctx, testBooking(), 100, "cash", at)
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionStatusPenaltyPaid, payment.Status)
	assert.InDelta(t, 100.0, payment.Amount, 0.0001)
	assert.Equal(t, "cash", payment.PaymentMethod)
	assert.NotEmpty(t, payment.Reference)

	assert.Equal(t, domain.InvoiceStatusPaid, inv.Status)
	require.Len(t, inv.ServiceCharges, 1)
	assert.Equal(t, PenaltyChargeName, inv.ServiceCharges[0].Name)
	assert.Empty(t, inv.RoomCharges)
	assert.InDelta(t, 100.0, inv.TotalAmount, 0.0001)
	assert.Equal(t, "INV-ID0002ABCDEF", inv.Number)

	payments, err := store.Payments().ListByBookingID(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestRecorder_RecordCheckOut_NewInvoice(t *testing.T) {
	r, _ := newRecorder()

	payment, inv, err := r.RecordCheckOut(context.Background(), testBooking(), testRooms(), 2, "card", at)
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionStatusApproved, payment.Status)
	assert.InDelta(t, 500.0, payment.Amount, 0.0001)

	assert.Equal(t, domain.InvoiceStatusPaid, inv.Status)
	assert.Equal(t, []domain.RoomCharge{
		{Description: "Room 101 (standard) x 2 night(s)", Total: 200},
		{Description: "Room 201 (suite) x 2 night(s)", Total: 300},
	}, inv.RoomCharges)
	assert.InDelta(t, 500.0, inv.TotalAmount, 0.0001)
}

func TestRecorder_RecordCheckOut_AmendsOpenInvoice(t *testing.T) {
	r, store := newRecorder()
	ctx := context.Background()
	b := testBooking()

	opened, err := r.AddServiceCharges(ctx, b, []domain.ServiceCharge{
		{Name: "Breakfast", Total: 30, Quantity: 2, Unit: "meal"},
	}, at.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusIssued, opened.Status)

	_, inv, err := r.RecordCheckOut(ctx, b, testRooms(), 2, "cash", at)
	require.NoError(t, err)
	assert.Equal(t, opened.ID, inv.ID)
	assert.Equal(t, domain.InvoiceStatusPaid, inv.Status)
	assert.Len(t, inv.RoomCharges, 2)
	assert.Len(t, inv.ServiceCharges, 1)
	assert.InDelta(t, 530.0, inv.TotalAmount, 0.0001)

	invoices, err := store.Invoices().ListByBookingID(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, invoices, 1)
}

func TestRecorder_AddServiceCharges_AmendsLatest(t *testing.T) {
	r, _ := newRecorder()
	ctx := context.Background()
	b := testBooking()

	_, paid, err := r.RecordCheckOut(ctx, b, testRooms(), 2, "cash", at)
	require.NoError(t, err)

	inv, err := r.AddServiceCharges(ctx, b, []domain.ServiceCharge{
		{Name: "Minibar", Total: 12.5, Quantity: 1, Unit: "item"},
		{Name: "Laundry", Total: 7.5, Quantity: 3, Unit: "kg"},
	}, at)
	require.NoError(t, err)
	assert.Equal(t, paid.ID, inv.ID)
	assert.Len(t, inv.ServiceCharges, 2)
	assert.InDelta(t, 520.0, inv.TotalAmount, 0.0001)
}

func TestRecorder_AddServiceCharges_Validation(t *testing.T) {
	r, _ := newRecorder()
	ctx := context.Background()

	tests := []struct {
		name    string
		charges []domain.ServiceCharge
		wantErr error
	}{
		{name: "empty", charges: nil, wantErr: ErrNoCharges},
		{name: "no name", charges: []domain.ServiceCharge{{Total: 1, Quantity: 1}}, wantErr: ErrInvalidCharge},
		{name: "zero quantity", charges: []domain.ServiceCharge{{Name: "Spa", Total: 1}}, wantErr: ErrInvalidCharge},
		{name: "negative total", charges: []domain.ServiceCharge{{Name: "Spa", Total: -1, Quantity: 1}}, wantErr: ErrInvalidCharge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.AddServiceCharges(ctx, testBooking(), tt.charges, at)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
