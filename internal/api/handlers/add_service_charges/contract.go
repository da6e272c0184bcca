package add_service_charges

import (
	"context"

	addServiceCharges "github.com/m04kA/SMC-HotelBookingService/internal/usecase/add_service_charges"
)

type AddServiceChargesUseCase interface {
	Execute(ctx context.Context, req *addServiceCharges.Request) (*addServiceCharges.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
