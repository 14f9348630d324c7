package domain

import "time"

const (
	StandardWeekendRate = 1.20
	DeluxeWeekendRate   = 1.30
)

// IsWeekend reports Friday, Saturday and Sunday (ISO weekday >= 5).
func IsWeekend(d time.Time) bool {
	switch d.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	}
	return false
}

// NightlyPrice is the price of one night in room starting on date.
func NightlyPrice(room *Room, date time.Time) float64 {
	switch room.Kind {
	case KindDeluxe:
		tax := 0.0
		if room.Deluxe != nil {
			tax = room.Deluxe.LuxuryTaxRate
		}
		p := room.BasePrice * (1 + tax)
		if IsWeekend(date) {
			p *= DeluxeWeekendRate
		}
		return p
	default:
		p := room.BasePrice
		if IsWeekend(date) {
			p *= StandardWeekendRate
		}
		return p
	}
}

type Night struct {
	Date  time.Time
	Price float64
}

// Nights lists one entry per night of [checkIn, checkOut). Empty when checkIn >= checkOut.
func Nights(room *Room, checkIn, checkOut time.Time) []Night {
	var nights []Night
	for d := Day(checkIn); d.Before(Day(checkOut)); d = d.AddDate(0, 0, 1) {
		nights = append(nights, Night{Date: d, Price: NightlyPrice(room, d)})
	}
	return nights
}

// StayTotal sums the nightly prices of [checkIn, checkOut).
func StayTotal(room *Room, checkIn, checkOut time.Time) float64 {
	total := 0.0
	for _, n := range Nights(room, checkIn, checkOut) {
		total += n.Price
	}
	return total
}
