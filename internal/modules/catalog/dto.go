package catalog

type CreateHotelRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Stars   int    `json:"stars" binding:"gte=0,lte=5"`
}

type CreateRoomRequest struct {
	HotelID       int64   `json:"hotel_id" binding:"required"`
	RoomNumber    string  `json:"room_number" binding:"required"`
	Type          string  `json:"type"`
	PricePerNight float64 `json:"price_per_night" binding:"required"`
	IsAvailable   bool    `json:"is_available"`
}
