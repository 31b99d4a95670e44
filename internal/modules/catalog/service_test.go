package catalog

import (
	"context"
	"testing"

	"github.com/hanaa-nabil/Hotel-managment/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockHotelRepo struct {
	mock.Mock
}

func (m *mockHotelRepo) Create(ctx context.Context, h *domain.Hotel) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *mockHotelRepo) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	args := m.Called(ctx, id)
	if h := args.Get(0); h != nil {
		return h.(*domain.Hotel), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHotelRepo) ListAll(ctx context.Context) ([]domain.Hotel, error) {
	args := m.Called(ctx)
	if hs := args.Get(0); hs != nil {
		return hs.([]domain.Hotel), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockRoomRepo struct {
	mock.Mock
}

func (m *mockRoomRepo) Create(ctx context.Context, r *domain.Room) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockRoomRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*domain.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoomRepo) ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	args := m.Called(ctx, hotelID)
	if rs := args.Get(0); rs != nil {
		return rs.([]domain.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoomRepo) ListAll(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if rs := args.Get(0); rs != nil {
		return rs.([]domain.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoomRepo) Update(ctx context.Context, r *domain.Room) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockRoomRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("valid room", func(t *testing.T) {
		hotels := new(mockHotelRepo)
		rooms := new(mockRoomRepo)
		hotels.On("GetByID", ctx, int64(1)).Return(&domain.Hotel{ID: 1}, nil)
		rooms.On("Create", ctx, mock.AnythingOfType("*domain.Room")).Return(nil)

		svc := NewService(hotels, rooms)
		r, err := svc.CreateRoom(ctx, CreateRoomRequest{
			HotelID: 1, RoomNumber: "101", PricePerNight: 120, IsAvailable: true,
		})
		require.NoError(t, err)
		assert.Equal(t, 120.0, r.PricePerNight)
	})

	t.Run("non-positive rate rejected", func(t *testing.T) {
		svc := NewService(new(mockHotelRepo), new(mockRoomRepo))
		_, err := svc.CreateRoom(ctx, CreateRoomRequest{HotelID: 1, RoomNumber: "101", PricePerNight: 0})
		assert.ErrorIs(t, err, ErrInvalidRate)

		_, err = svc.CreateRoom(ctx, CreateRoomRequest{HotelID: 1, RoomNumber: "101", PricePerNight: -10})
		assert.ErrorIs(t, err, ErrInvalidRate)
	})

	t.Run("unknown hotel", func(t *testing.T) {
		hotels := new(mockHotelRepo)
		hotels.On("GetByID", ctx, int64(9)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewService(hotels, new(mockRoomRepo))
		_, err := svc.CreateRoom(ctx, CreateRoomRequest{HotelID: 9, RoomNumber: "101", PricePerNight: 120})
		assert.ErrorIs(t, err, ErrHotelNotFound)
	})
}

func TestUpdateRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("rate change persists", func(t *testing.T) {
		hotels := new(mockHotelRepo)
		rooms := new(mockRoomRepo)
		rooms.On("GetByID", ctx, int64(7)).
			Return(&domain.Room{ID: 7, HotelID: 1, RoomNumber: "101", PricePerNight: 100}, nil)
		rooms.On("Update", ctx, mock.AnythingOfType("*domain.Room")).Return(nil)

		svc := NewService(hotels, rooms)
		r, err := svc.UpdateRoom(ctx, 7, CreateRoomRequest{
			HotelID: 1, RoomNumber: "101", PricePerNight: 150, IsAvailable: true,
		})
		require.NoError(t, err)
		assert.Equal(t, 150.0, r.PricePerNight)
	})

	t.Run("non-positive rate rejected", func(t *testing.T) {
		svc := NewService(new(mockHotelRepo), new(mockRoomRepo))
		_, err := svc.UpdateRoom(ctx, 7, CreateRoomRequest{HotelID: 1, RoomNumber: "101", PricePerNight: 0})
		assert.ErrorIs(t, err, ErrInvalidRate)
	})

	t.Run("unknown room", func(t *testing.T) {
		rooms := new(mockRoomRepo)
		rooms.On("GetByID", ctx, int64(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewService(new(mockHotelRepo), rooms)
		_, err := svc.UpdateRoom(ctx, 99, CreateRoomRequest{HotelID: 1, RoomNumber: "x", PricePerNight: 100})
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})
}
