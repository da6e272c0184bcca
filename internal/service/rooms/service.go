package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	hotelRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/hotel"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/rooms/models"
)

// Service сервис номерного фонда отеля
type Service struct {
	roomRepo  RoomRepository
	hotelRepo HotelRepository
	checker   AvailabilityChecker
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса номеров
func NewService(
	roomRepo RoomRepository,
	hotelRepo HotelRepository,
	checker AvailabilityChecker,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		roomRepo:  roomRepo,
		hotelRepo: hotelRepo,
		checker:   checker,
		txManager: txManager,
		logger:    logger,
	}
}

// ListRooms получает номера отеля.
// Если указан интервал, доступность считается по бронированиям на этот интервал,
// иначе по текущему статусу номера.
func (s *Service) ListRooms(ctx context.Context, req *models.ListRoomsRequest) ([]*models.RoomView, error) {
	s.logger.Info("ListRooms: hotel=%d, stay=%v", req.HotelID, req.Stay)

	if req.Stay != nil && !req.Stay.IsValid() {
		s.logger.Warn("ListRooms: invalid stay for hotel=%d", req.HotelID)
		return nil, fmt.Errorf("%w: checkOut must be after checkIn", ErrInvalidInput)
	}

	var result []*models.RoomView
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		if err := s.ensureHotel(txCtx, req.HotelID, "ListRooms"); err != nil {
			return err
		}

		rooms, err := s.roomRepo.ListByHotel(txCtx, req.HotelID)
		if err != nil {
			s.logger.Error("ListRooms: failed to list rooms for hotel=%d: %v", req.HotelID, err)
			return fmt.Errorf("%w: ListRooms - list rooms: %v", ErrInternal, err)
		}

		availability := make(map[int64]bool, len(rooms))
		if req.Stay != nil && len(rooms) > 0 {
			ids := make([]int64, 0, len(rooms))
			for _, r := range rooms {
				ids = append(ids, r.ID)
			}
			availability, err = s.checker.RoomAvailability(txCtx, req.HotelID, ids, *req.Stay)
			if err != nil {
				s.logger.Error("ListRooms: availability check failed for hotel=%d: %v", req.HotelID, err)
				return fmt.Errorf("%w: ListRooms - availability: %v", ErrInternal, err)
			}
		} else {
			for _, r := range rooms {
				availability[r.ID] = r.Status == domain.RoomAvailable
			}
		}

		result = make([]*models.RoomView, 0, len(rooms))
		for _, r := range rooms {
			result = append(result, models.FromDomainRoom(r, availability[r.ID]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ListRooms: successfully fetched %d rooms for hotel=%d", len(result), req.HotelID)
	return result, nil
}

// CreateRoom создает номер. Доступно менеджеру отеля и администратору.
func (s *Service) CreateRoom(ctx context.Context, req *models.CreateRoomRequest) (*models.RoomView, error) {
	s.logger.Info("CreateRoom: hotel=%d, number=%s, user=%d", req.HotelID, req.RoomNumber, req.Scope.UserID)

	if !canManageRooms(req.Scope, req.HotelID) {
		s.logger.Warn("CreateRoom: access denied for user=%d to hotel=%d", req.Scope.UserID, req.HotelID)
		return nil, ErrAccessDenied
	}

	if err := validateCreateRoom(req); err != nil {
		s.logger.Warn("CreateRoom: validation failed: %v", err)
		return nil, err
	}

	if err := s.ensureHotel(ctx, req.HotelID, "CreateRoom"); err != nil {
		return nil, err
	}

	created, err := s.roomRepo.Create(ctx, &domain.Room{
		HotelID:       req.HotelID,
		RoomNumber:    strings.TrimSpace(req.RoomNumber),
		Type:          strings.TrimSpace(req.Type),
		PricePerNight: req.PricePerNight,
		Status:        domain.RoomAvailable,
	})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNumberTaken) {
			s.logger.Warn("CreateRoom: room %s already exists in hotel=%d", req.RoomNumber, req.HotelID)
			return nil, ErrRoomNumberTaken
		}
		s.logger.Error("CreateRoom: failed to create room: %v", err)
		return nil, fmt.Errorf("%w: CreateRoom - create room: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRoom: successfully created room id=%d", created.ID)
	return models.FromDomainRoom(created, true), nil
}

func (s *Service) ensureHotel(ctx context.Context, hotelID int64, op string) error {
	if _, err := s.hotelRepo.GetByID(ctx, hotelID); err != nil {
		if errors.Is(err, hotelRepo.ErrHotelNotFound) {
			s.logger.Warn("%s: hotel id=%d not found", op, hotelID)
			return ErrHotelNotFound
		}
		s.logger.Error("%s: failed to get hotel id=%d: %v", op, hotelID, err)
		return fmt.Errorf("%w: %s - get hotel: %v", ErrInternal, op, err)
	}
	return nil
}

// canManageRooms менеджер своего отеля или администратор
func canManageRooms(scope domain.AccessScope, hotelID int64) bool {
	if scope.Role == domain.RoleAdmin {
		return true
	}
	return scope.Role == domain.RoleManager && scope.CanManageHotel(hotelID)
}

func validateCreateRoom(req *models.CreateRoomRequest) error {
	if req.HotelID <= 0 {
		return fmt.Errorf("%w: hotelID must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.RoomNumber) == "" {
		return fmt.Errorf("%w: roomNumber is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Type) == "" {
		return fmt.Errorf("%w: type is required", ErrInvalidInput)
	}
	if req.PricePerNight <= 0 {
		return fmt.Errorf("%w: pricePerNight must be positive", ErrInvalidInput)
	}
	return nil
}
