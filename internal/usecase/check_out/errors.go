package check_out

import (
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: check_out: invalid input data", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда бронирование не найдено в отеле
	ErrBookingNotFound = fmt.Errorf("%w: check_out: booking not found", domain.ErrNotFound)

	// ErrCannotCheckOut возвращается, когда бронирование не в статусе checked-in
	ErrCannotCheckOut = fmt.Errorf("%w: check_out: booking cannot be checked out", domain.ErrInvalidTransition)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: check_out", domain.ErrInternal)
)
