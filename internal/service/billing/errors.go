package billing

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrNoCharges возвращается, когда не передано ни одной строки начислений
	ErrNoCharges = fmt.Errorf("%w: billing: no charges", domain.ErrValidation)

	// ErrInvalidCharge возвращается при некорректной строке начислений
	ErrInvalidCharge = fmt.Errorf("%w: billing: invalid charge", domain.ErrValidation)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("billing: internal error")
)
