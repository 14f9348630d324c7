package domain

import "time"

const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

type Reservation struct {
	ID       string
	Customer *Customer
	Room     *Room
	CheckIn  time.Time
	CheckOut time.Time
	Status   string
}

// Total is the lifetime price of the stay at the reserved room's rates.
func (r *Reservation) Total() float64 {
	return StayTotal(r.Room, r.CheckIn, r.CheckOut)
}

// Covers reports whether day falls in the inclusive [CheckIn, CheckOut] range.
func (r *Reservation) Covers(day time.Time) bool {
	d := Day(day)
	return !d.Before(Day(r.CheckIn)) && !d.After(Day(r.CheckOut))
}

// Link attaches the reservation to its room and customer histories.
func (r *Reservation) Link() {
	r.Room.addReservation(r)
	r.Customer.addReservation(r)
}
