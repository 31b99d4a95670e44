package repository

import (
	"context"

	"github.com/hanaa-nabil/Hotel-managment/internal/domain"

	"gorm.io/gorm"
)

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

type hotelModel struct {
	ID      int64  `gorm:"column:id;primaryKey"`
	Name    string `gorm:"column:name"`
	Address string `gorm:"column:address"`
	City    string `gorm:"column:city"`
	Country string `gorm:"column:country"`
	Stars   int    `gorm:"column:stars"`
}

func (hotelModel) TableName() string { return "hotels" }

func toDomainHotel(m hotelModel) *domain.Hotel {
	return &domain.Hotel{
		ID:      m.ID,
		Name:    m.Name,
		Address: m.Address,
		City:    m.City,
		Country: m.Country,
		Stars:   m.Stars,
	}
}

func (r *HotelRepository) Create(ctx context.Context, h *domain.Hotel) error {
	m := hotelModel{
		Name:    h.Name,
		Address: h.Address,
		City:    h.City,
		Country: h.Country,
		Stars:   h.Stars,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*h = *toDomainHotel(m)
	return nil
}

func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	var m hotelModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainHotel(m), nil
}

func (r *HotelRepository) ListAll(ctx context.Context) ([]domain.Hotel, error) {
	var ms []hotelModel
	if err := r.db.WithContext(ctx).Order("id").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Hotel, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainHotel(m))
	}
	return out, nil
}
