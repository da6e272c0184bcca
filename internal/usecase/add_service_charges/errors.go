package add_service_charges

import (
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: add_service_charges: invalid input data", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда бронирование не найдено в отеле
	ErrBookingNotFound = fmt.Errorf("%w: add_service_charges: booking not found", domain.ErrNotFound)

	// ErrCannotAddCharges возвращается, когда гость еще не заселен или бронирование отменено
	ErrCannotAddCharges = fmt.Errorf("%w: add_service_charges: charges are accepted only after check-in", domain.ErrInvalidTransition)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: add_service_charges", domain.ErrInternal)
)
