package domain

type Hotel struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Stars   int    `json:"stars"`
}

type Room struct {
	ID         int64  `json:"id"`
	HotelID    int64  `json:"hotel_id"`
	RoomNumber string `json:"room_number"`
	Type       string `json:"type"`
	// Price per night in display units, snapshotted onto bookings at
	// creation time.
	PricePerNight float64 `json:"price_per_night"`
	// Nominal availability (maintenance/closure), independent of bookings.
	IsAvailable bool `json:"is_available"`

	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}
