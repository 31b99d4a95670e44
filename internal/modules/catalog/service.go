package catalog

import (
	"context"
	"errors"

	"github.com/hanaa-nabil/Hotel-managment/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrHotelNotFound = errors.New("hotel not found")
	ErrRoomNotFound  = errors.New("room not found")
	ErrInvalidRate   = errors.New("price per night must be positive")
)

type HotelRepository interface {
	Create(ctx context.Context, h *domain.Hotel) error
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	ListAll(ctx context.Context) ([]domain.Hotel, error)
}

type RoomRepository interface {
	Create(ctx context.Context, r *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error)
	ListAll(ctx context.Context) ([]domain.Room, error)
	Update(ctx context.Context, r *domain.Room) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	hotels HotelRepository
	rooms  RoomRepository
}

func NewService(hotels HotelRepository, rooms RoomRepository) *Service {
	return &Service{hotels: hotels, rooms: rooms}
}

func (s *Service) CreateHotel(ctx context.Context, req CreateHotelRequest) (*domain.Hotel, error) {
	h := &domain.Hotel{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
		Stars:   req.Stars,
	}
	if err := s.hotels.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) GetHotel(ctx context.Context, id int64) (*domain.Hotel, error) {
	h, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return h, nil
}

func (s *Service) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return s.hotels.ListAll(ctx)
}

// CreateRoom rejects a non-positive nightly rate outright: a room that can
// never be priced is a configuration error, not a bookable resource.
func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	if req.PricePerNight <= 0 {
		return nil, ErrInvalidRate
	}
	if _, err := s.hotels.GetByID(ctx, req.HotelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}

	r := &domain.Room{
		HotelID:       req.HotelID,
		RoomNumber:    req.RoomNumber,
		Type:          req.Type,
		PricePerNight: req.PricePerNight,
		IsAvailable:   req.IsAvailable,
	}
	if err := s.rooms.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	r, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *Service) ListRooms(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	if hotelID > 0 {
		return s.rooms.ListByHotel(ctx, hotelID)
	}
	return s.rooms.ListAll(ctx)
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req CreateRoomRequest) (*domain.Room, error) {
	if req.PricePerNight <= 0 {
		return nil, ErrInvalidRate
	}
	r, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	r.HotelID = req.HotelID
	r.RoomNumber = req.RoomNumber
	r.Type = req.Type
	r.PricePerNight = req.PricePerNight
	r.IsAvailable = req.IsAvailable
	if err := s.rooms.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	if err := s.rooms.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	return nil
}
