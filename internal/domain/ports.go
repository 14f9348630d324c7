package domain

import (
	"context"
	"time"
)

const (
	VIPThreshold = 3

	// loyalty
	PointsPerCurrencyUnit = 10
	EarnRate              = 0.05
)

// Snapshot is the full hotel state exchanged with persistence.
type Snapshot struct {
	Rooms        []*Room
	Customers    []*Customer
	Reservations []*Reservation
}

type SkippedLine struct {
	Source string // file or table
	Line   int
	Reason string
}

// LoadReport lists the records a Store dropped while loading.
type LoadReport struct {
	Skipped []SkippedLine
}

func (r *LoadReport) Skip(source string, line int, reason string) {
	r.Skipped = append(r.Skipped, SkippedLine{Source: source, Line: line, Reason: reason})
}

type Store interface {
	Load(ctx context.Context) (Snapshot, LoadReport, error)
	Save(ctx context.Context, s Snapshot) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models

type RoomView struct {
	Number       string  `json:"number"`
	Type         string  `json:"type"`
	Capacity     int     `json:"capacity"`
	BasePrice    float64 `json:"base_price"`
	PriceTonight float64 `json:"price_tonight"`
	Clean        bool    `json:"clean"`
	Reservations int     `json:"reservations"`
}

type CustomerView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	LoyaltyPoints int    `json:"loyalty_points"`
	Reservations  int    `json:"reservations"`
}

type ReportSummary struct {
	GeneratedAt     time.Time      `json:"generated_at"`
	Revenue         float64        `json:"revenue"`
	OccupancyRate   float64        `json:"occupancy_rate"`
	MostPopularRoom *RoomView      `json:"most_popular_room,omitempty"`
	VIPCustomers    []CustomerView `json:"vip_customers"`
	TotalRooms      int            `json:"total_rooms"`
	Reservations    int            `json:"reservations"`
}

func NewRoomView(r *Room, today time.Time) RoomView {
	return RoomView{
		Number:       r.Number,
		Type:         r.Kind.String(),
		Capacity:     r.Capacity,
		BasePrice:    r.BasePrice,
		PriceTonight: NightlyPrice(r, today),
		Clean:        r.Clean(),
		Reservations: len(r.Reservations),
	}
}

func NewCustomerView(c *Customer) CustomerView {
	return CustomerView{
		ID:            c.ID,
		Name:          c.FullName(),
		Email:         c.Email,
		LoyaltyPoints: c.LoyaltyPoints,
		Reservations:  len(c.History),
	}
}
