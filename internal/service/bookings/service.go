package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/projection"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	builder     ViewBuilder
	cache       ViewCache
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// cache может быть nil.
func NewService(
	bookingRepo BookingRepository,
	builder ViewBuilder,
	cache ViewCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		builder:     builder,
		cache:       cache,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Клиент видит только свои бронирования, персонал - бронирования своего отеля, администратор - все.
// Нарушение прав доступа неотличимо от отсутствия бронирования.
func (s *Service) GetByID(ctx context.Context, id int64, scope domain.AccessScope) (*models.BookingView, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d role=%s", id, scope.UserID, scope.Role)

	if view := s.fromCache(ctx, id); view != nil {
		if !scope.CanView(view.Owner()) {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", scope.UserID, id)
			return nil, ErrBookingNotFound
		}
		return view, nil
	}

	var view *models.BookingView
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("GetByID: booking id=%d not found", id)
				return ErrBookingNotFound
			}
			s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
		}

		if !scope.CanView(booking) {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", scope.UserID, id)
			return ErrBookingNotFound
		}

		view, err = s.builder.BuildOne(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: GetByID - build view: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, view)

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return view, nil
}

// ListHotelBookings получает бронирования отеля с фильтрацией.
// Доступно персоналу отеля и администратору.
func (s *Service) ListHotelBookings(ctx context.Context, req *models.ListHotelBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListHotelBookings: fetching bookings for hotel=%d, user=%d", req.HotelID, req.Scope.UserID)

	if !req.Scope.CanManageHotel(req.HotelID) {
		s.logger.Warn("ListHotelBookings: access denied for user=%d to hotel=%d", req.Scope.UserID, req.HotelID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListHotelBookings: invalid filter for hotel=%d: %v", req.HotelID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var views []*models.BookingView
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		bookings, err := s.bookingRepo.ListByHotel(txCtx, filter)
		if err != nil {
			s.logger.Error("ListHotelBookings: repository error for hotel=%d: %v", req.HotelID, err)
			return fmt.Errorf("%w: ListHotelBookings - repository error: %v", ErrInternal, err)
		}

		views, err = s.builder.Build(txCtx, bookings)
		if err != nil {
			return fmt.Errorf("%w: ListHotelBookings - build views: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ListHotelBookings: successfully fetched %d bookings for hotel=%d", len(views), req.HotelID)
	return &models.BookingListResponse{Bookings: views, Total: len(views)}, nil
}

// ListCustomerBookings получает бронирования клиента, разбитые на history/active/future
func (s *Service) ListCustomerBookings(ctx context.Context, customerID int64) (*models.CategorizedBookings, error) {
	s.logger.Info("ListCustomerBookings: fetching bookings for customer=%d", customerID)

	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	var views []*models.BookingView
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		bookings, err := s.bookingRepo.ListByCustomer(txCtx, customerID)
		if err != nil {
			s.logger.Error("ListCustomerBookings: repository error for customer=%d: %v", customerID, err)
			return fmt.Errorf("%w: ListCustomerBookings - repository error: %v", ErrInternal, err)
		}

		views, err = s.builder.Build(txCtx, bookings)
		if err != nil {
			return fmt.Errorf("%w: ListCustomerBookings - build views: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ListCustomerBookings: successfully fetched %d bookings for customer=%d", len(views), customerID)
	return projection.Categorize(views), nil
}

// fromCache ошибки кэша не влияют на ответ
func (s *Service) fromCache(ctx context.Context, id int64) *models.BookingView {
	if s.cache == nil {
		return nil
	}
	view, err := s.cache.Get(ctx, id)
	if err != nil {
		return nil
	}
	return view
}

func (s *Service) toCache(ctx context.Context, view *models.BookingView) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, view); err != nil {
		s.logger.Warn("GetByID: failed to cache booking id=%d: %v", view.ID, err)
	}
}
