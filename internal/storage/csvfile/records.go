package csvfile

import (
	"fmt"
	"strconv"
	"strings"

	"hotel_console/internal/domain"
)

const (
	typeStandard = "STANDARD"
	typeDeluxe   = "DELUXE"
)

/********** rooms **********/

func formatRooms(rooms []*domain.Room) ([]string, error) {
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		var typ, extras string
		switch {
		case r.Kind == domain.KindDeluxe && r.Deluxe != nil:
			typ = typeDeluxe
			extras = joinExtras(
				strconv.FormatBool(r.Deluxe.MiniBar),
				strconv.FormatBool(r.Deluxe.Jacuzzi),
				strconv.FormatBool(r.Deluxe.Balcony),
				fmtFloat(r.Deluxe.LuxuryTaxRate),
			)
		case r.Kind == domain.KindStandard && r.Standard != nil:
			typ = typeStandard
			extras = joinExtras(strconv.FormatBool(r.Standard.WiFi), strconv.FormatBool(r.Standard.TV))
		default:
			continue
		}
		line, err := record(typ, r.Number, strconv.Itoa(r.Capacity), fmtFloat(r.BasePrice), extras)
		if err != nil {
			return nil, fmt.Errorf("room %s: %w", r.Number, err)
		}
		out = append(out, line)
	}
	return out, nil
}

func parseRooms(lines []string, rep *domain.LoadReport) []*domain.Room {
	var rooms []*domain.Room
	seen := map[string]bool{}
	eachRecord(lines, 5, RoomsFile, rep, func(line int, f []string) error {
		r, err := parseRoom(f)
		if err != nil {
			return err
		}
		if seen[r.Number] {
			return fmt.Errorf("duplicate room number %q", r.Number)
		}
		seen[r.Number] = true
		rooms = append(rooms, r)
		return nil
	})
	return rooms
}

func parseRoom(f []string) (*domain.Room, error) {
	number := strings.TrimSpace(f[1])
	if number == "" {
		return nil, fmt.Errorf("empty room number")
	}
	capacity, err := strconv.Atoi(strings.TrimSpace(f[2]))
	if err != nil {
		return nil, fmt.Errorf("capacity: %w", err)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(f[3]), 64)
	if err != nil {
		return nil, fmt.Errorf("base price: %w", err)
	}
	extras := strings.Split(f[4], ";")

	r := &domain.Room{Number: number, Capacity: capacity, BasePrice: price}
	switch strings.TrimSpace(f[0]) {
	case typeStandard:
		b, err := parseBools(extras, 2)
		if err != nil {
			return nil, err
		}
		r.Kind = domain.KindStandard
		r.Standard = &domain.StandardExtras{WiFi: b[0], TV: b[1]}
	case typeDeluxe:
		if len(extras) != 4 {
			return nil, fmt.Errorf("deluxe extras: expected 4 values, got %d", len(extras))
		}
		b, err := parseBools(extras[:3], 3)
		if err != nil {
			return nil, err
		}
		tax, err := strconv.ParseFloat(strings.TrimSpace(extras[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("luxury tax: %w", err)
		}
		r.Kind = domain.KindDeluxe
		r.Deluxe = &domain.DeluxeExtras{MiniBar: b[0], Jacuzzi: b[1], Balcony: b[2], LuxuryTaxRate: tax}
	default:
		return nil, fmt.Errorf("unknown room type %q", f[0])
	}
	return r, nil
}

/********** customers **********/

func formatCustomers(cs []*domain.Customer) ([]string, error) {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		line, err := record(c.ID, c.FirstName, c.LastName, c.Email, c.Phone, strconv.Itoa(c.LoyaltyPoints))
		if err != nil {
			return nil, fmt.Errorf("customer %s: %w", c.ID, err)
		}
		out = append(out, line)
	}
	return out, nil
}

func parseCustomers(lines []string, rep *domain.LoadReport) []*domain.Customer {
	var out []*domain.Customer
	eachRecord(lines, 6, CustomersFile, rep, func(line int, f []string) error {
		points, err := strconv.Atoi(strings.TrimSpace(f[5]))
		if err != nil {
			return fmt.Errorf("points: %w", err)
		}
		if points < 0 {
			return fmt.Errorf("negative points %d", points)
		}
		out = append(out, &domain.Customer{
			ID:            strings.TrimSpace(f[0]),
			FirstName:     f[1],
			LastName:      f[2],
			Email:         strings.TrimSpace(f[3]),
			Phone:         f[4],
			LoyaltyPoints: points,
		})
		return nil
	})
	return out
}

/********** reservations **********/

func formatReservations(rs []*domain.Reservation) ([]string, error) {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		line, err := record(r.ID, r.Customer.Email, r.Room.Number,
			domain.FormatDate(r.CheckIn), domain.FormatDate(r.CheckOut), r.Status)
		if err != nil {
			return nil, fmt.Errorf("reservation %s: %w", r.ID, err)
		}
		out = append(out, line)
	}
	return out, nil
}

// parseReservations re-links each record to its customer (by email) and room
// (by number); the stored ids of those are not consulted.
func parseReservations(lines []string, rooms []*domain.Room, cs []*domain.Customer, rep *domain.LoadReport) []*domain.Reservation {
	var out []*domain.Reservation
	eachRecord(lines, 6, ReservationsFile, rep, func(line int, f []string) error {
		c := findCustomer(cs, strings.TrimSpace(f[1]))
		if c == nil {
			return fmt.Errorf("customer %q: %w", f[1], domain.ErrCustomerNotFound)
		}
		r := findRoom(rooms, strings.TrimSpace(f[2]))
		if r == nil {
			return fmt.Errorf("room %q: %w", f[2], domain.ErrRoomNotFound)
		}
		in, err := domain.ParseDate(strings.TrimSpace(f[3]))
		if err != nil {
			return fmt.Errorf("check-in: %w", err)
		}
		outDate, err := domain.ParseDate(strings.TrimSpace(f[4]))
		if err != nil {
			return fmt.Errorf("check-out: %w", err)
		}
		res := &domain.Reservation{
			ID:       strings.TrimSpace(f[0]),
			Customer: c,
			Room:     r,
			CheckIn:  in,
			CheckOut: outDate,
			Status:   strings.TrimSpace(f[5]),
		}
		res.Link()
		out = append(out, res)
		return nil
	})
	return out
}

/********** tiny helpers **********/

// eachRecord skips the header and blank lines, checks the field count and
// records every line fn rejects. Line numbers are 1-based file lines.
func eachRecord(lines []string, fields int, source string, rep *domain.LoadReport, fn func(line int, f []string) error) {
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		f := strings.Split(lines[i], ",")
		if len(f) != fields {
			rep.Skip(source, i+1, fmt.Sprintf("expected %d fields, got %d", fields, len(f)))
			continue
		}
		if err := fn(i+1, f); err != nil {
			rep.Skip(source, i+1, err.Error())
		}
	}
}

func parseBools(vals []string, n int) ([]bool, error) {
	if len(vals) != n {
		return nil, fmt.Errorf("extras: expected %d values, got %d", n, len(vals))
	}
	out := make([]bool, n)
	for i, v := range vals {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("extras[%d]: %w", i, err)
		}
		out[i] = b
	}
	return out, nil
}

// record joins fields into one line. The format has no quoting, so a field
// holding the delimiter or a line break cannot be stored.
func record(fields ...string) (string, error) {
	for _, f := range fields {
		if strings.ContainsAny(f, ",\r\n") {
			return "", fmt.Errorf("%w: %q", ErrUnstorableField, f)
		}
	}
	return strings.Join(fields, ","), nil
}

func joinExtras(vals ...string) string { return strings.Join(vals, ";") }

func fmtFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func findCustomer(cs []*domain.Customer, email string) *domain.Customer {
	for _, c := range cs {
		if c.Email == email {
			return c
		}
	}
	return nil
}

func findRoom(rooms []*domain.Room, number string) *domain.Room {
	for _, r := range rooms {
		if r.Number == number {
			return r
		}
	}
	return nil
}
