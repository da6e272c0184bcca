package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// PenaltyRate доля стоимости, удерживаемая при поздней отмене
const PenaltyRate = 0.5

var (
	// ErrInvalidDateRange возвращается, когда дата выезда не позже даты заезда
	ErrInvalidDateRange = fmt.Errorf("%w: pricing: check-out must be after check-in", domain.ErrValidation)
)

// Nights количество ночей проживания, неполные сутки округляются вверх
func Nights(checkIn, checkOut time.Time) (int, error) {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0, ErrInvalidDateRange
	}
	return int(math.Ceil(d.Hours() / 24)), nil
}

// Total стоимость проживания: сумма цен номеров за ночь, умноженная на число ночей
func Total(rooms []*domain.Room, nights int) float64 {
	perNight := 0.0
	for _, r := range rooms {
		perNight += r.PricePerNight
	}
	return RoundMoney(perNight * float64(nights))
}

// StayTotal считает число ночей и стоимость проживания за интервал
func StayTotal(rooms []*domain.Room, stay domain.DateRange) (float64, int, error) {
	nights, err := Nights(stay.CheckIn, stay.CheckOut)
	if err != nil {
		return 0, 0, err
	}
	return Total(rooms, nights), nights, nil
}

// RoomCharge стоимость одного номера за проживание
func RoomCharge(room *domain.Room, nights int) float64 {
	return RoundMoney(room.PricePerNight * float64(nights))
}

// Penalty штраф за отмену бронирования в момент now:
// после заезда удерживается полная стоимость,
// до заезда внутри окна cancellationGracePeriod удерживается PenaltyRate от стоимости,
// ранняя отмена бесплатна
func Penalty(b *domain.Booking, now time.Time) float64 {
	switch b.Status {
	case domain.StatusCheckedIn:
		return RoundMoney(b.TotalAmount)
	case domain.StatusBooked:
		hoursUntilCheckIn := b.CheckInDate.Sub(now).Hours()
		if hoursUntilCheckIn <= float64(b.CancellationGracePeriod) {
			return RoundMoney(b.TotalAmount * PenaltyRate)
		}
		return 0
	default:
		return 0
	}
}

// RoundMoney округляет сумму до копеек
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
