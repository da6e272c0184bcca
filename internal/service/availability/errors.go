package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrNoRooms возвращается, когда список номеров пуст
	ErrNoRooms = fmt.Errorf("%w: availability: room list is empty", domain.ErrValidation)

	// ErrInvalidStay возвращается, когда дата выезда не позже даты заезда
	ErrInvalidStay = fmt.Errorf("%w: availability: check-out must be after check-in", domain.ErrValidation)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("availability: internal error")
)
