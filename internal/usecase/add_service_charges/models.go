package add_service_charges

import "github.com/m04kA/SMC-HotelBookingService/internal/domain"

// Request модель запроса на добавление услуг в счет
type Request struct {
	HotelID   int64
	BookingID int64
	Charges   []domain.ServiceCharge
}

// Response модель ответа с обновленным счетом
type Response struct {
	BookingID int64
	Invoice   *domain.Invoice
}
