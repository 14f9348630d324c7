package csvfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hotel_console/internal/adapters/observability"
	"hotel_console/internal/domain"
)

const (
	RoomsFile        = "rooms.csv"
	CustomersFile    = "customers.csv"
	ReservationsFile = "reservations.csv"

	roomsHeader        = "Type,RoomNumber,Capacity,BasePrice,Extras"
	customersHeader    = "ID,FirstName,LastName,Email,Phone,Points"
	reservationsHeader = "ID,CustomerEmail,RoomNumber,CheckIn,CheckOut,Status"
)

// ErrUnstorableField is returned by Save for a value containing a comma or a line break.
var ErrUnstorableField = errors.New("csv: field contains a delimiter")

// Store keeps the hotel in three comma-delimited files under dir.
type Store struct{ dir string }

func New(dir string) *Store { return &Store{dir: dir} }

func (s *Store) path(name string) string { return filepath.Join(s.dir, name) }

// Load reads all three files. Missing files are empty collections; malformed
// lines are dropped and listed in the report.
func (s *Store) Load(ctx context.Context) (domain.Snapshot, domain.LoadReport, error) {
	var rooms, customers, reservations []string

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) { rooms, err = readLines(s.path(RoomsFile)); return })
	g.Go(func() (err error) { customers, err = readLines(s.path(CustomersFile)); return })
	g.Go(func() (err error) { reservations, err = readLines(s.path(ReservationsFile)); return })
	if err := g.Wait(); err != nil {
		return domain.Snapshot{}, domain.LoadReport{}, err
	}

	var (
		snap domain.Snapshot
		rep  domain.LoadReport
	)
	// rooms and customers first: reservations link to them
	snap.Rooms = parseRooms(rooms, &rep)
	snap.Customers = parseCustomers(customers, &rep)
	snap.Reservations = parseReservations(reservations, snap.Rooms, snap.Customers, &rep)

	for _, sk := range rep.Skipped {
		observability.ObserveSkipped(sk.Source)
		log.Warn().Str("file", sk.Source).Int("line", sk.Line).Str("reason", sk.Reason).Msg("skipping corrupted record")
	}
	log.Info().
		Int("rooms", len(snap.Rooms)).
		Int("customers", len(snap.Customers)).
		Int("reservations", len(snap.Reservations)).
		Int("skipped", len(rep.Skipped)).
		Str("dir", s.dir).
		Msg("data loaded")
	return snap, rep, nil
}

// Save rewrites all three files. Each file is replaced atomically.
func (s *Store) Save(ctx context.Context, snap domain.Snapshot) error {
	// format everything first: a record that cannot be stored leaves the files untouched
	rooms, err := formatRooms(snap.Rooms)
	if err != nil {
		return err
	}
	customers, err := formatCustomers(snap.Customers)
	if err != nil {
		return err
	}
	reservations, err := formatReservations(snap.Reservations)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return s.write(RoomsFile, roomsHeader, rooms) })
	g.Go(func() error { return s.write(CustomersFile, customersHeader, customers) })
	g.Go(func() error { return s.write(ReservationsFile, reservationsHeader, reservations) })
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Str("dir", s.dir).Msg("data saved")
	return nil
}

func (s *Store) write(name, header string, lines []string) error {
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	w := bufio.NewWriter(tmp)
	fmt.Fprintln(w, header)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return lines, nil
}
