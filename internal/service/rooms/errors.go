package rooms

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrHotelNotFound возвращается, когда отель не найден
	ErrHotelNotFound = fmt.Errorf("%w: rooms: hotel not found", domain.ErrNotFound)

	// ErrRoomNumberTaken возвращается, когда номер с таким названием уже есть в отеле
	ErrRoomNumberTaken = fmt.Errorf("%w: rooms: room number already exists", domain.ErrUnavailable)

	// ErrAccessDenied возвращается, когда у пользователя нет прав управлять номерами отеля
	ErrAccessDenied = errors.New("rooms: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: rooms: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: rooms", domain.ErrInternal)
)
