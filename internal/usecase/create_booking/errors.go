package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrValidation)

	// ErrHotelNotFound возвращается, когда отель не найден
	ErrHotelNotFound = fmt.Errorf("%w: create_booking: hotel not found", domain.ErrNotFound)

	// ErrRoomNotFound возвращается, когда один из номеров не найден
	ErrRoomNotFound = fmt.Errorf("%w: create_booking: room not found", domain.ErrNotFound)

	// ErrRoomHotelMismatch возвращается, когда номер принадлежит другому отелю
	ErrRoomHotelMismatch = fmt.Errorf("%w: create_booking: room belongs to another hotel", domain.ErrHotelMismatch)

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = fmt.Errorf("%w: create_booking: customer not found", domain.ErrNotFound)

	// ErrRoomsUnavailable возвращается, когда номера уже заняты на указанные даты
	ErrRoomsUnavailable = fmt.Errorf("%w: create_booking: rooms are not available for the selected dates", domain.ErrUnavailable)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: create_booking", domain.ErrInternal)
)
