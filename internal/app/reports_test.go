package app_test

import (
	"context"
	"testing"
	"time"

	"hotel_console/internal/app"
	"hotel_console/internal/domain"
)

// ---- fakes ----

type fakeCache struct {
	store   map[string]any
	deleted []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.ReportSummary:
		*d = v.(domain.ReportSummary)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.deleted = append(c.deleted, key)
	delete(c.store, key)
	return nil
}

// ---- tests ----

func TestRevenue(t *testing.T) {
	f := newFixture(t)
	if got := f.hotel.Revenue(); got != 0 {
		t.Fatalf("empty hotel revenue: %v", got)
	}
	f.book(t, reqFor(f.cust, f.std, wed, thu)) // 100
	f.book(t, reqFor(f.cust, f.dlx, sat, sun)) // 312
	if got := f.hotel.Revenue(); got < 411.99 || got > 412.01 {
		t.Fatalf("revenue: %v", got)
	}
}

func TestRevenue_UsesReservedRoomRates(t *testing.T) {
	f := newFixture(t)
	req := reqFor(f.cust, f.dlx, wed, thu)
	req.FreeUpgrade = true
	f.book(t, req)
	// revenue re-prices the reservation at the Deluxe room's rate
	if got := f.hotel.Revenue(); got < 239.99 || got > 240.01 {
		t.Fatalf("revenue: %v", got)
	}
}

func TestOccupancyRate(t *testing.T) {
	f := newFixture(t)
	if got := f.hotel.OccupancyRate(wed); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	f.book(t, reqFor(f.cust, f.std, wed, thu))

	for _, tc := range []struct {
		day  time.Time
		want float64
	}{
		{wed, 50},
		{thu, 50}, // check-out day is inclusive
		{sat, 0},
	} {
		if got := f.hotel.OccupancyRate(tc.day); got != tc.want {
			t.Fatalf("occupancy on %s: want %v got %v", domain.FormatDate(tc.day), tc.want, got)
		}
	}
}

func TestOccupancyRate_IgnoresCleanFlag(t *testing.T) {
	f := newFixture(t)
	f.book(t, reqFor(f.cust, f.std, wed, thu))
	if err := f.hotel.MarkRoomClean(ctx(), "101"); err != nil {
		t.Fatalf("mark clean: %v", err)
	}
	if got := f.hotel.OccupancyRate(wed); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
	if got := app.NewHotel("H", "A").OccupancyRate(wed); got != 0 {
		t.Fatalf("no rooms: %v", got)
	}
}

func TestMostPopularRoom(t *testing.T) {
	f := newFixture(t)
	if _, ok := f.hotel.MostPopularRoom(); ok {
		t.Fatalf("expected no popular room before any booking")
	}
	f.book(t, reqFor(f.cust, f.dlx, wed, thu))
	f.book(t, reqFor(f.cust, f.std, wed, thu))
	r, ok := f.hotel.MostPopularRoom()
	if !ok || r != f.std {
		t.Fatalf("tie should go to the first room in order, got %+v", r)
	}
	f.book(t, reqFor(f.cust, f.dlx, wed, thu))
	if r, _ := f.hotel.MostPopularRoom(); r != f.dlx {
		t.Fatalf("expected deluxe, got %s", r.Number)
	}
}

func TestVIPCustomers(t *testing.T) {
	f := newFixture(t)
	other, err := f.hotel.RegisterCustomer("Ayse", "Kaya", "ayse@test.com", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	f.book(t, reqFor(other, f.std, wed, thu))
	for i := 0; i < 3; i++ {
		f.book(t, reqFor(f.cust, f.std, wed, thu))
	}
	vips := f.hotel.VIPCustomers()
	if len(vips) != 1 || vips[0] != f.cust {
		t.Fatalf("unexpected VIPs: %+v", vips)
	}
}

func TestReportService_CacheMissThenHitThenInvalidate(t *testing.T) {
	cache := &fakeCache{}
	clk := newClock(at(wed, 9))
	h := app.NewHotel("H", "A", app.WithClock(clk.now), app.WithCache(cache))
	room := domain.NewStandardRoom("101", 2, 100)
	if err := h.AddRoom(room); err != nil {
		t.Fatal(err)
	}
	c, _ := h.RegisterCustomer("A", "B", "a@b.io", "")
	q := app.NewReportService(h, cache, 10*time.Minute)

	// Miss (first time, populates cache)
	s, err := q.Summary(ctx())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if s.Reservations != 0 || s.TotalRooms != 1 || s.MostPopularRoom != nil {
		t.Fatalf("unexpected summary: %+v", s)
	}

	// Mutate state behind the cache's back: still served from cache
	(&domain.Reservation{Customer: c, Room: room, CheckIn: wed, CheckOut: thu}).Link()
	s2, _ := q.Summary(ctx())
	if s2.Reservations != 0 {
		t.Fatalf("expected cached summary, got %+v", s2)
	}

	// A booking evicts it
	if _, err := h.Book(ctx(), reqFor(c, room, wed, thu)); err != nil {
		t.Fatalf("book: %v", err)
	}
	s3, _ := q.Summary(ctx())
	if s3.Reservations != 1 || s3.Revenue != 100 || s3.OccupancyRate != 100 {
		t.Fatalf("expected fresh summary, got %+v", s3)
	}
	if s3.MostPopularRoom == nil || s3.MostPopularRoom.Number != "101" {
		t.Fatalf("expected room 101 most popular, got %+v", s3.MostPopularRoom)
	}
}

func TestReportService_NoCache(t *testing.T) {
	f := newFixture(t)
	q := app.NewReportService(f.hotel, nil, time.Minute)
	s, err := q.Summary(ctx())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if s.TotalRooms != 2 || s.VIPCustomers == nil {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
