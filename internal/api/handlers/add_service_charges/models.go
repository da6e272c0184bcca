package add_service_charges

import (
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// ServiceChargeItem строка услуги
type ServiceChargeItem struct {
	Name     string  `json:"name" validate:"required,max=128"`
	Total    float64 `json:"total" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=1"`
	Unit     string  `json:"unit" validate:"max=32"`
}

// AddServiceChargesRequest HTTP request model
type AddServiceChargesRequest struct {
	Charges []ServiceChargeItem `json:"charges" validate:"required,min=1,dive"`
}

// ToDomainCharges конвертирует строки запроса
func (r *AddServiceChargesRequest) ToDomainCharges() []domain.ServiceCharge {
	charges := make([]domain.ServiceCharge, 0, len(r.Charges))
	for _, c := range r.Charges {
		charges = append(charges, domain.ServiceCharge{
			Name:     c.Name,
			Total:    c.Total,
			Quantity: c.Quantity,
			Unit:     c.Unit,
		})
	}
	return charges
}

// InvoiceResponse HTTP response model
type InvoiceResponse struct {
	ID             int64                  `json:"id"`
	Number         string                 `json:"number"`
	BookingID      int64                  `json:"bookingId"`
	RoomCharges    []domain.RoomCharge    `json:"roomCharges"`
	ServiceCharges []domain.ServiceCharge `json:"serviceCharges"`
	TotalAmount    float64                `json:"totalAmount"`
	IssueDate      string                 `json:"issueDate"`
	Status         string                 `json:"status"`
}

func FromDomainInvoice(inv *domain.Invoice) *InvoiceResponse {
	resp := &InvoiceResponse{
		ID:             inv.ID,
		Number:         inv.Number,
		BookingID:      inv.BookingID,
		RoomCharges:    inv.RoomCharges,
		ServiceCharges: inv.ServiceCharges,
		TotalAmount:    inv.TotalAmount,
		IssueDate:      inv.IssueDate.Format(domain.DateFormat),
		Status:         inv.Status,
	}
	if resp.RoomCharges == nil {
		resp.RoomCharges = []domain.RoomCharge{}
	}
	if resp.ServiceCharges == nil {
		resp.ServiceCharges = []domain.ServiceCharge{}
	}
	return resp
}
