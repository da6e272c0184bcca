package pay_penalty

import (
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: pay_penalty: invalid input data", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда бронирование не найдено у отеля или клиента
	ErrBookingNotFound = fmt.Errorf("%w: pay_penalty: booking not found", domain.ErrNotFound)

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = fmt.Errorf("%w: pay_penalty: customer not found", domain.ErrNotFound)

	// ErrNoPenaltyDue возвращается, когда у бронирования нет неоплаченного штрафа
	ErrNoPenaltyDue = fmt.Errorf("%w: pay_penalty: no penalty due", domain.ErrInvalidTransition)

	// ErrInsufficientFunds возвращается, когда баланса клиента не хватает на штраф
	ErrInsufficientFunds = fmt.Errorf("%w: pay_penalty: insufficient balance to pay the penalty", domain.ErrInsufficientFunds)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: pay_penalty", domain.ErrInternal)
)
