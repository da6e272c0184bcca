package cancel_booking

import (
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: cancel_booking: invalid input data", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда бронирование не найдено в отеле
	ErrBookingNotFound = fmt.Errorf("%w: cancel_booking: booking not found", domain.ErrNotFound)

	// ErrCustomerNotFound возвращается, когда клиент бронирования не найден
	ErrCustomerNotFound = fmt.Errorf("%w: cancel_booking: customer not found", domain.ErrNotFound)

	// ErrCannotCancel возвращается, когда бронирование в статусе, из которого отмена невозможна
	ErrCannotCancel = fmt.Errorf("%w: cancel_booking: booking cannot be cancelled", domain.ErrInvalidTransition)

	// ErrInsufficientFunds возвращается, когда баланса клиента не хватает на штраф
	ErrInsufficientFunds = fmt.Errorf("%w: cancel_booking: insufficient balance to pay the penalty", domain.ErrInsufficientFunds)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: cancel_booking", domain.ErrInternal)
)
