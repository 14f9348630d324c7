package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_console/internal/adapters/observability"
	"hotel_console/internal/domain"
)

const (
	kindStandard = "STANDARD"
	kindDeluxe   = "DELUXE"
)

func valBool(p *bool) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// Repo is a snapshot store: Save replaces every table inside one transaction.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaSQL {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *Repo) Save(ctx context.Context, s domain.Snapshot) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range wipeSQL {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	if err = insertRooms(ctx, tx, s.Rooms); err != nil {
		return fmt.Errorf("insert rooms: %w", err)
	}
	if err = insertCustomers(ctx, tx, s.Customers); err != nil {
		return fmt.Errorf("insert customers: %w", err)
	}
	if err = insertReservations(ctx, tx, s.Reservations); err != nil {
		return fmt.Errorf("insert reservations: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	log.Info().Int("rooms", len(s.Rooms)).Int("reservations", len(s.Reservations)).Msg("data saved to mysql")
	return nil
}

func insertRooms(ctx context.Context, tx *sql.Tx, rooms []*domain.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	values := make([]string, 0, len(rooms))
	args := make([]any, 0, len(rooms)*11) // 11 params per row
	for i, rm := range rooms {
		var (
			kind                                string
			wifi, tv, minibar, jacuzzi, balcony *bool
			tax                                 *float64
		)
		switch {
		case rm.Kind == domain.KindDeluxe && rm.Deluxe != nil:
			kind = kindDeluxe
			minibar, jacuzzi, balcony = &rm.Deluxe.MiniBar, &rm.Deluxe.Jacuzzi, &rm.Deluxe.Balcony
			tax = &rm.Deluxe.LuxuryTaxRate
		case rm.Kind == domain.KindStandard && rm.Standard != nil:
			kind = kindStandard
			wifi, tv = &rm.Standard.WiFi, &rm.Standard.TV
		default:
			return fmt.Errorf("room %s has no variant payload", rm.Number)
		}
		values = append(values, "(?,?,?,?,?,?,?,?,?,?,?)")
		args = append(args,
			rm.Number, kind, rm.Capacity, rm.BasePrice,
			valBool(wifi), valBool(tv),
			valBool(minibar), valBool(jacuzzi), valBool(balcony), valF64(tax),
			i,
		)
	}
	_, err := tx.ExecContext(ctx, insertRoomsPrefix+strings.Join(values, ","), args...)
	return err
}

func insertCustomers(ctx context.Context, tx *sql.Tx, cs []*domain.Customer) error {
	if len(cs) == 0 {
		return nil
	}
	values := make([]string, 0, len(cs))
	args := make([]any, 0, len(cs)*7)
	for i, c := range cs {
		values = append(values, "(?,?,?,?,?,?,?)")
		args = append(args, c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.LoyaltyPoints, i)
	}
	_, err := tx.ExecContext(ctx, insertCustomersPrefix+strings.Join(values, ","), args...)
	return err
}

func insertReservations(ctx context.Context, tx *sql.Tx, rs []*domain.Reservation) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*7)
	for i, res := range rs {
		values = append(values, "(?,?,?,?,?,?,?)")
		args = append(args,
			res.ID,
			res.Customer.Email, // re-linked by email on load
			res.Room.Number,
			domain.FormatDate(res.CheckIn),
			domain.FormatDate(res.CheckOut),
			res.Status,
			i,
		)
	}
	_, err := tx.ExecContext(ctx, insertReservationsPrefix+strings.Join(values, ","), args...)
	return err
}

// Load reads every table. Rows that cannot be turned into domain values are
// skipped and reported with their 1-based row position.
func (r *Repo) Load(ctx context.Context) (domain.Snapshot, domain.LoadReport, error) {
	var (
		snap domain.Snapshot
		rep  domain.LoadReport
		err  error
	)
	if snap.Rooms, err = r.loadRooms(ctx, &rep); err != nil {
		return domain.Snapshot{}, domain.LoadReport{}, err
	}
	if snap.Customers, err = r.loadCustomers(ctx); err != nil {
		return domain.Snapshot{}, domain.LoadReport{}, err
	}
	if snap.Reservations, err = r.loadReservations(ctx, snap, &rep); err != nil {
		return domain.Snapshot{}, domain.LoadReport{}, err
	}
	for _, sk := range rep.Skipped {
		observability.ObserveSkipped(sk.Source)
		log.Warn().Str("table", sk.Source).Int("row", sk.Line).Str("reason", sk.Reason).Msg("skipping corrupted record")
	}
	return snap, rep, nil
}

func (r *Repo) loadRooms(ctx context.Context, rep *domain.LoadReport) ([]*domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, selectRoomsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Room
	for row := 1; rows.Next(); row++ {
		var (
			rm                                  domain.Room
			kind                                string
			wifi, tv, minibar, jacuzzi, balcony sql.NullBool
			tax                                 sql.NullFloat64
		)
		if err := rows.Scan(&rm.Number, &kind, &rm.Capacity, &rm.BasePrice,
			&wifi, &tv, &minibar, &jacuzzi, &balcony, &tax); err != nil {
			return nil, err
		}
		switch kind {
		case kindStandard:
			rm.Kind = domain.KindStandard
			rm.Standard = &domain.StandardExtras{WiFi: wifi.Bool, TV: tv.Bool}
		case kindDeluxe:
			if !tax.Valid {
				rep.Skip("rooms", row, "deluxe room without luxury tax")
				continue
			}
			rm.Kind = domain.KindDeluxe
			rm.Deluxe = &domain.DeluxeExtras{
				MiniBar: minibar.Bool, Jacuzzi: jacuzzi.Bool, Balcony: balcony.Bool,
				LuxuryTaxRate: tax.Float64,
			}
		default:
			rep.Skip("rooms", row, fmt.Sprintf("unknown room type %q", kind))
			continue
		}
		out = append(out, &rm)
	}
	return out, rows.Err()
}

func (r *Repo) loadCustomers(ctx context.Context) ([]*domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, selectCustomersSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.LoyaltyPoints); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *Repo) loadReservations(ctx context.Context, snap domain.Snapshot, rep *domain.LoadReport) ([]*domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, selectReservationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Reservation
	for row := 1; rows.Next(); row++ {
		var (
			res               domain.Reservation
			email, number     string
			checkIn, checkOut time.Time
		)
		if err := rows.Scan(&res.ID, &email, &number, &checkIn, &checkOut, &res.Status); err != nil {
			return nil, err
		}
		res.Customer = customerByEmail(snap.Customers, email)
		if res.Customer == nil {
			rep.Skip("reservations", row, fmt.Sprintf("customer %q not found", email))
			continue
		}
		res.Room = roomByNumber(snap.Rooms, number)
		if res.Room == nil {
			rep.Skip("reservations", row, fmt.Sprintf("room %q not found", number))
			continue
		}
		res.CheckIn, res.CheckOut = domain.Day(checkIn), domain.Day(checkOut)
		res.Link()
		out = append(out, &res)
	}
	return out, rows.Err()
}

func customerByEmail(cs []*domain.Customer, email string) *domain.Customer {
	for _, c := range cs {
		if c.Email == email {
			return c
		}
	}
	return nil
}

func roomByNumber(rooms []*domain.Room, number string) *domain.Room {
	for _, rm := range rooms {
		if rm.Number == number {
			return rm
		}
	}
	return nil
}
