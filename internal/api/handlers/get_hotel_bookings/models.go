package get_hotel_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров: status, customerId, from, to
func ToServiceRequest(hotelID int64, scope domain.AccessScope, query url.Values) (*models.ListHotelBookingsRequest, error) {
	req := &models.ListHotelBookingsRequest{
		Scope:   scope,
		HotelID: hotelID,
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("customerId"); raw != "" {
		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.CustomerID = &customerID
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	return req, nil
}
