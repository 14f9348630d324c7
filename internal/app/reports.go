package app

import (
	"context"
	"fmt"
	"time"

	"hotel_console/internal/domain"
)

const SummaryCacheKey = "report:summary"

// Revenue is the lifetime total of every reservation.
func (h *Hotel) Revenue() float64 {
	sum := 0.0
	for _, res := range h.reservations {
		sum += res.Total()
	}
	return sum
}

// OccupancyRate is the percentage of rooms with a reservation covering today.
// It is derived from dates and may disagree with the per-room clean flag.
func (h *Hotel) OccupancyRate(today time.Time) float64 {
	if len(h.rooms) == 0 {
		return 0
	}
	occupied := 0
	for _, r := range h.rooms {
		for _, res := range r.Reservations {
			if res.Covers(today) {
				occupied++
				break
			}
		}
	}
	return float64(occupied) / float64(len(h.rooms)) * 100
}

// MostPopularRoom returns the room with the most reservations; the first one
// in room order wins ties. ok is false when nothing has been booked.
func (h *Hotel) MostPopularRoom() (room *domain.Room, ok bool) {
	best := 0
	for _, r := range h.rooms {
		if n := len(r.Reservations); n > best {
			room, best = r, n
		}
	}
	return room, room != nil
}

func (h *Hotel) VIPCustomers() []*domain.Customer {
	var out []*domain.Customer
	for _, c := range h.customers {
		if c.IsVIP() {
			out = append(out, c)
		}
	}
	return out
}

func (h *Hotel) Summary() domain.ReportSummary {
	now := h.now()
	s := domain.ReportSummary{
		GeneratedAt:   now.UTC(),
		Revenue:       h.Revenue(),
		OccupancyRate: h.OccupancyRate(now),
		VIPCustomers:  []domain.CustomerView{},
		TotalRooms:    len(h.rooms),
		Reservations:  len(h.reservations),
	}
	if r, ok := h.MostPopularRoom(); ok {
		v := domain.NewRoomView(r, now)
		s.MostPopularRoom = &v
	}
	for _, c := range h.VIPCustomers() {
		s.VIPCustomers = append(s.VIPCustomers, domain.NewCustomerView(c))
	}
	return s
}

// ReportService serves the admin summary through an optional cache. Backed by
// a LiveHotel, a cache miss reloads storage first so the summary reflects
// bookings made by other processes.
type ReportService struct {
	hotel    *Hotel
	live     *LiveHotel
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewReportService(h *Hotel, c domain.Cache, ttl time.Duration) *ReportService {
	return &ReportService{hotel: h, cache: c, cacheTTL: ttl}
}

func NewLiveReportService(l *LiveHotel, c domain.Cache, ttl time.Duration) *ReportService {
	return &ReportService{live: l, cache: c, cacheTTL: ttl}
}

func (s *ReportService) Summary(ctx context.Context) (domain.ReportSummary, error) {
	var out domain.ReportSummary
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, SummaryCacheKey, &out); ok {
			return out, nil
		}
	}
	h := s.hotel
	if s.live != nil {
		var err error
		if h, err = s.live.Reload(ctx); err != nil {
			return domain.ReportSummary{}, fmt.Errorf("reload for summary: %w", err)
		}
	}
	out = h.Summary()
	if s.cache != nil {
		_ = s.cache.Set(ctx, SummaryCacheKey, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}
