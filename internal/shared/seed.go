package shared

import "hotel_console/internal/domain"

// DefaultRooms is the inventory a fresh hotel starts with.
func DefaultRooms() []*domain.Room {
	return []*domain.Room{
		domain.NewStandardRoom("101", 2, 100),
		domain.NewStandardRoom("102", 2, 100),
		domain.NewStandardRoom("103", 2, 100),
		domain.NewStandardRoom("104", 2, 100),
		domain.NewDeluxeRoom("201", 4, 200, 0.20),
		domain.NewDeluxeRoom("202", 4, 200, 0.20),
		domain.NewDeluxeRoom("203", 4, 200, 0.20),
	}
}
