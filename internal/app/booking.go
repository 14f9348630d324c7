package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_console/internal/adapters/observability"
	"hotel_console/internal/domain"
)

type BookingRequest struct {
	Customer    *domain.Customer
	Room        *domain.Room
	CheckIn     time.Time
	CheckOut    time.Time
	UsePoints   bool
	FreeUpgrade bool // charge reference Standard rates for the requested room
}

// Receipt itemizes a booking. Reservation is nil for a quote.
type Receipt struct {
	Reservation *domain.Reservation

	Room     *domain.Room
	CheckIn  time.Time
	CheckOut time.Time
	Nights   int
	Upgraded bool
	Lines    []domain.Night // per-night rates actually charged

	Total    float64
	Discount float64
	Final    float64

	PointsRedeemed int
	PointsEarned   int
}

// Quote prices a booking without committing it.
func (h *Hotel) Quote(req BookingRequest) (Receipt, error) {
	if req.Customer == nil {
		return Receipt{}, domain.ErrCustomerNotFound
	}
	if req.Room == nil {
		return Receipt{}, domain.ErrRoomNotFound
	}
	if last := req.Customer.LastBookingTime; last != nil && h.now().Sub(*last) < h.cooldown {
		return Receipt{}, domain.ErrBookingTooSoon
	}
	in, out := domain.Day(req.CheckIn), domain.Day(req.CheckOut)
	if !out.After(in) {
		return Receipt{}, domain.ErrInvalidDateRange
	}

	pricing := req.Room
	if req.FreeUpgrade {
		pricing = h.upgradeReference()
	}
	nights := domain.Nights(pricing, in, out)

	rc := Receipt{
		Room:     req.Room,
		CheckIn:  in,
		CheckOut: out,
		Nights:   len(nights),
		Upgraded: req.FreeUpgrade,
		Lines:    nights,
	}
	for _, n := range nights {
		rc.Total += n.Price
	}
	if req.UsePoints && req.Customer.LoyaltyPoints > 0 {
		rc.Discount, rc.PointsRedeemed = redeem(req.Customer.LoyaltyPoints, rc.Total)
	}
	rc.Final = rc.Total - rc.Discount
	rc.PointsEarned = int(rc.Final * domain.EarnRate)
	return rc, nil
}

// Book quotes the request and, on success, commits the reservation: the
// customer pays with points, earns new ones and the room is marked occupied.
func (h *Hotel) Book(ctx context.Context, req BookingRequest) (Receipt, error) {
	rc, err := h.Quote(req)
	if err != nil {
		observability.ObserveBooking(outcome(err))
		log.Warn().Err(err).Str("room", roomNumber(req.Room)).Msg("booking rejected")
		return Receipt{}, err
	}

	c := req.Customer
	if err := c.RedeemPoints(rc.PointsRedeemed); err != nil {
		observability.ObserveBooking(outcome(err))
		return Receipt{}, fmt.Errorf("redeem %d points: %w", rc.PointsRedeemed, err)
	}
	c.AddPoints(rc.PointsEarned)

	res := &domain.Reservation{
		ID:       h.reservationIDs.Next(),
		Customer: c,
		Room:     req.Room,
		CheckIn:  rc.CheckIn,
		CheckOut: rc.CheckOut,
		Status:   domain.StatusConfirmed,
	}
	res.Link()
	h.reservations = append(h.reservations, res)
	req.Room.Occupied = true
	now := h.now()
	c.LastBookingTime = &now
	rc.Reservation = res

	h.invalidateReports(ctx)

	observability.ObserveBooking("confirmed")
	observability.ObserveAmounts(rc.Total, rc.Discount, rc.Final)
	observability.ObservePoints(rc.PointsRedeemed, rc.PointsEarned)
	log.Info().
		Str("reservation", res.ID).
		Str("customer", c.ID).
		Str("room", req.Room.Number).
		Float64("total", rc.Total).
		Float64("final", rc.Final).
		Int("points_earned", rc.PointsEarned).
		Bool("upgraded", rc.Upgraded).
		Msg("booking confirmed")
	return rc, nil
}

// redeem converts points to a discount at PointsPerCurrencyUnit points per unit,
// capped at total.
func redeem(points int, total float64) (discount float64, redeemed int) {
	value := float64(points) / domain.PointsPerCurrencyUnit
	if value >= total {
		return total, int(total * domain.PointsPerCurrencyUnit)
	}
	return value, points
}

func (h *Hotel) upgradeReference() *domain.Room {
	return domain.NewStandardRoom("UPGRADE", 2, h.upgradeBasePrice)
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrBookingTooSoon):
		return "too_soon"
	case errors.Is(err, domain.ErrInvalidDateRange):
		return "invalid_range"
	case errors.Is(err, domain.ErrInsufficientPoints):
		return "insufficient_points"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	}
	return "error"
}

func roomNumber(r *domain.Room) string {
	if r == nil {
		return ""
	}
	return r.Number
}
