package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"hotel_console/internal/domain"
)

const (
	DefaultBookingCooldown  = 60 * time.Second
	DefaultUpgradeBasePrice = 100.0
)

// Hotel owns rooms, customers and reservations and runs every booking
// operation against them. It is not safe for concurrent mutation.
type Hotel struct {
	Name    string
	Address string

	rooms        []*domain.Room
	customers    []*domain.Customer
	reservations []*domain.Reservation

	customerIDs    *Sequence
	reservationIDs *Sequence

	validate         *validator.Validate
	now              func() time.Time
	cooldown         time.Duration
	upgradeBasePrice float64
	cache            domain.Cache
}

type Option func(*Hotel)

func WithClock(now func() time.Time) Option { return func(h *Hotel) { h.now = now } }

func WithBookingCooldown(d time.Duration) Option { return func(h *Hotel) { h.cooldown = d } }

func WithUpgradeBasePrice(p float64) Option { return func(h *Hotel) { h.upgradeBasePrice = p } }

// WithCache lets bookings evict cached reports.
func WithCache(c domain.Cache) Option { return func(h *Hotel) { h.cache = c } }

func NewHotel(name, address string, opts ...Option) *Hotel {
	h := &Hotel{
		Name:             name,
		Address:          address,
		customerIDs:      NewSequence("CUST"),
		reservationIDs:   NewSequence("RES"),
		validate:         validator.New(),
		now:              time.Now,
		cooldown:         DefaultBookingCooldown,
		upgradeBasePrice: DefaultUpgradeBasePrice,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *Hotel) Now() time.Time { return h.now() }

func (h *Hotel) Rooms() []*domain.Room               { return h.rooms }
func (h *Hotel) Customers() []*domain.Customer       { return h.customers }
func (h *Hotel) Reservations() []*domain.Reservation { return h.reservations }
func (h *Hotel) TotalRooms() int                     { return len(h.rooms) }

func (h *Hotel) AddRoom(r *domain.Room) error {
	if h.FindRoom(r.Number) != nil {
		return fmt.Errorf("add room %s: %w", r.Number, domain.ErrDuplicateRoom)
	}
	h.rooms = append(h.rooms, r)
	return nil
}

func (h *Hotel) RegisterCustomer(firstName, lastName, email, phone string) (*domain.Customer, error) {
	c := &domain.Customer{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
	}
	if err := h.validate.Struct(c); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCustomer, err)
	}
	c.ID = h.customerIDs.Next()
	h.customers = append(h.customers, c)
	log.Info().Str("customer", c.ID).Str("email", c.Email).Msg("customer registered")
	return c, nil
}

// FindCustomerByEmail returns the first customer registered with email, or nil.
func (h *Hotel) FindCustomerByEmail(email string) *domain.Customer {
	for _, c := range h.customers {
		if c.Email == email {
			return c
		}
	}
	return nil
}

func (h *Hotel) FindRoom(number string) *domain.Room {
	for _, r := range h.rooms {
		if r.Number == number {
			return r
		}
	}
	return nil
}

// SearchAvailableRooms returns the clean rooms. The dates are not consulted:
// availability is the per-room flag, not a calendar.
func (h *Hotel) SearchAvailableRooms(checkIn, checkOut time.Time) []*domain.Room {
	var out []*domain.Room
	for _, r := range h.rooms {
		if r.Clean() {
			out = append(out, r)
		}
	}
	return out
}

func (h *Hotel) CustomerReservations(email string) ([]*domain.Reservation, error) {
	c := h.FindCustomerByEmail(email)
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return c.History, nil
}

func (h *Hotel) MarkRoomClean(ctx context.Context, number string) error {
	r := h.FindRoom(number)
	if r == nil {
		return domain.ErrRoomNotFound
	}
	r.Occupied = false
	h.invalidateReports(ctx)
	return nil
}

// Recommend picks a clean room matching the customer's booking habits:
// Deluxe when most past stays were Deluxe, Standard otherwise.
func (h *Hotel) Recommend(email string) (*domain.Room, error) {
	c := h.FindCustomerByEmail(email)
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	deluxe, other := 0, 0
	for _, res := range c.History {
		if res.Room.IsDeluxe() {
			deluxe++
		} else {
			other++
		}
	}
	if deluxe > other {
		if r := h.firstClean(domain.KindDeluxe); r != nil {
			return r, nil
		}
	}
	if r := h.firstClean(domain.KindStandard); r != nil {
		return r, nil
	}
	return nil, domain.ErrNoSuitableRoom
}

func (h *Hotel) firstClean(kind domain.RoomKind) *domain.Room {
	for _, r := range h.rooms {
		if r.Kind == kind && r.Clean() {
			return r
		}
	}
	return nil
}

// ---- persistence ----

func (h *Hotel) Snapshot() domain.Snapshot {
	return domain.Snapshot{Rooms: h.rooms, Customers: h.customers, Reservations: h.reservations}
}

// Restore replaces the hotel state with s. Reservations must already be
// linked to their rooms and customers.
func (h *Hotel) Restore(ctx context.Context, s domain.Snapshot) {
	h.rooms = s.Rooms
	h.customers = s.Customers
	h.reservations = s.Reservations

	for _, c := range h.customers {
		h.customerIDs.Observe(c.ID)
	}
	for _, res := range h.reservations {
		h.reservationIDs.Observe(res.ID)
	}
	// second pass so fresh ids never collide with stored ones
	for _, c := range h.customers {
		if c.ID == "" {
			c.ID = h.customerIDs.Next()
		}
	}
	for _, res := range h.reservations {
		if res.ID == "" {
			res.ID = h.reservationIDs.Next()
		}
	}
	h.invalidateReports(ctx)
}

func (h *Hotel) invalidateReports(ctx context.Context) {
	if h.cache != nil {
		_ = h.cache.Del(ctx, SummaryCacheKey)
	}
}
