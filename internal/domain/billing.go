package domain

import "time"

// Payment transaction status labels
const (
	TransactionStatusApproved    = "approved"
	TransactionStatusPenaltyPaid = "penalty paid"
)

// Invoice status labels
const (
	InvoiceStatusIssued = "issued"
	InvoiceStatusPaid   = "paid"
)

// CancellationRecord captures one cancellation event
type CancellationRecord struct {
	ID               int64
	BookingID        int64
	CanceledBy       int64
	CancellationTime time.Time
	PenaltyApplied   float64
	PenaltyPaid      bool
	PenaltyPaidAt    *time.Time
}

// HasUnpaidPenalty returns true if a penalty was applied and not settled yet
func (c *CancellationRecord) HasUnpaidPenalty() bool {
	return c.PenaltyApplied > 0 && !c.PenaltyPaid
}

// PaymentTransaction is an append-only ledger entry
type PaymentTransaction struct {
	ID              int64
	Reference       string
	BookingID       int64
	Amount          float64
	PaymentMethod   string
	TransactionDate time.Time
	Status          string
}

// RoomCharge is an invoice line for accommodation
type RoomCharge struct {
	Description string  `json:"description"`
	Total       float64 `json:"total"`
}

// ServiceCharge is an invoice line for an extra service
type ServiceCharge struct {
	Name     string  `json:"name"`
	Total    float64 `json:"total"`
	Quantity int     `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Invoice summarizes charges of a booking
type Invoice struct {
	ID             int64
	Number         string
	BookingID      int64
	HotelID        int64
	RoomCharges    []RoomCharge
	ServiceCharges []ServiceCharge
	TotalAmount    float64
	IssueDate      time.Time
	Status         string
}

// Recalculate sets TotalAmount to the sum of all charge lines
func (i *Invoice) Recalculate() {
	total := 0.0
	for _, c := range i.RoomCharges {
		total += c.Total
	}
	for _, c := range i.ServiceCharges {
		total += c.Total
	}
	i.TotalAmount = total
}

// Clone returns a deep copy of the invoice
func (i *Invoice) Clone() *Invoice {
	c := *i
	c.RoomCharges = append([]RoomCharge(nil), i.RoomCharges...)
	c.ServiceCharges = append([]ServiceCharge(nil), i.ServiceCharges...)
	return &c
}
