package projection

import (
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("%w: projection", domain.ErrInternal)
)
