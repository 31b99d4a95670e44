package repository

import (
	"context"
	"time"

	"github.com/hanaa-nabil/Hotel-managment/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	HotelID       int64     `gorm:"column:hotel_id"`
	RoomNumber    string    `gorm:"column:room_number"`
	Type          string    `gorm:"column:type"`
	PricePerNight float64   `gorm:"column:price_per_night"`
	IsAvailable   bool      `gorm:"column:is_available"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:            m.ID,
		HotelID:       m.HotelID,
		RoomNumber:    m.RoomNumber,
		Type:          m.Type,
		PricePerNight: m.PricePerNight,
		IsAvailable:   m.IsAvailable,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := roomModel{
		HotelID:       room.HotelID,
		RoomNumber:    room.RoomNumber,
		Type:          room.Type,
		PricePerNight: room.PricePerNight,
		IsAvailable:   room.IsAvailable,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	var ms []roomModel
	if err := r.db.WithContext(ctx).Where("hotel_id = ?", hotelID).Order("room_number").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Room, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) ListAll(ctx context.Context) ([]domain.Room, error) {
	var ms []roomModel
	if err := r.db.WithContext(ctx).Order("id").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Room, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	res := r.db.WithContext(ctx).Model(&roomModel{}).
		Where("id = ?", room.ID).
		Updates(map[string]interface{}{
			"hotel_id":        room.HotelID,
			"room_number":     room.RoomNumber,
			"type":            room.Type,
			"price_per_night": room.PricePerNight,
			"is_available":    room.IsAvailable,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&roomModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
