package check_in

import (
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: check_in: invalid input data", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда бронирование не найдено в отеле
	ErrBookingNotFound = fmt.Errorf("%w: check_in: booking not found", domain.ErrNotFound)

	// ErrCannotCheckIn возвращается, когда бронирование не в статусе booked
	ErrCannotCheckIn = fmt.Errorf("%w: check_in: booking cannot be checked in", domain.ErrInvalidTransition)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: check_in", domain.ErrInternal)
)
