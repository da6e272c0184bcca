package handlers

import (
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var kindStatus = map[domain.ErrorKind]int{
	domain.KindValidation:        http.StatusBadRequest,
	domain.KindNotFound:          http.StatusNotFound,
	domain.KindHotelMismatch:     http.StatusNotFound, // не раскрываем существование в чужом отеле
	domain.KindUnavailable:       http.StatusConflict,
	domain.KindInsufficientFunds: http.StatusPaymentRequired,
	domain.KindInvalidTransition: http.StatusConflict,
	domain.KindInternal:          http.StatusInternalServerError,
}

var kindMessage = map[domain.ErrorKind]string{
	domain.KindValidation:        "некорректные данные запроса",
	domain.KindNotFound:          "не найдено",
	domain.KindHotelMismatch:     "не найдено",
	domain.KindUnavailable:       "ресурс недоступен",
	domain.KindInsufficientFunds: "недостаточно средств на балансе",
	domain.KindInvalidTransition: "операция недопустима в текущем статусе бронирования",
}

// StatusFromError HTTP код для доменной ошибки
func StatusFromError(err error) int {
	if status, ok := kindStatus[domain.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// RespondDomainError отвечает кодом и общим сообщением по виду ошибки
func RespondDomainError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	msg, ok := kindMessage[kind]
	if !ok {
		RespondInternalError(w)
		return
	}
	RespondError(w, StatusFromError(err), msg)
}
