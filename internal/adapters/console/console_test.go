package console_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hotel_console/internal/adapters/console"
	"hotel_console/internal/app"
	"hotel_console/internal/domain"
)

type memStore struct {
	saved *domain.Snapshot
	saves int
}

func (m *memStore) Load(context.Context) (domain.Snapshot, domain.LoadReport, error) {
	if m.saved == nil {
		return domain.Snapshot{}, domain.LoadReport{}, nil
	}
	return *m.saved, domain.LoadReport{}, nil
}

func (m *memStore) Save(_ context.Context, s domain.Snapshot) error {
	m.saved = &s
	m.saves++
	return nil
}

func newHotel(t *testing.T) *app.Hotel {
	t.Helper()
	now := time.Date(2026, time.January, 8, 10, 0, 0, 0, time.UTC)
	h := app.NewHotel("Grand Hotel", "123 Main St", app.WithClock(func() time.Time { return now }))
	require.NoError(t, h.AddRoom(domain.NewStandardRoom("101", 2, 100)))
	require.NoError(t, h.AddRoom(domain.NewDeluxeRoom("201", 4, 200, 0.2)))
	return h
}

func run(t *testing.T, h *app.Hotel, store *memStore, script ...string) (string, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	dir := t.TempDir()
	var out strings.Builder
	c := console.New(console.Deps{
		Hotel:      h,
		Reports:    app.NewReportService(h, nil, 0),
		Gate:       app.NewAdminGate(hash, 5),
		Store:      store,
		ReceiptDir: dir,
	}, strings.NewReader(strings.Join(script, "\n")+"\n"), &out)
	require.NoError(t, c.Run(context.Background()))
	return out.String(), dir
}

func TestConsole_FullSession(t *testing.T) {
	h := newHotel(t)
	store := &memStore{}
	out, dir := run(t, h, store,
		"1",
		"3", "Ali", "Veli", "ali@test.com", "5551234",
		"4", "ali@test.com", "201", "2026-01-09", "not-a-date", "2026-01-10", "y",
		"6", "ali@test.com",
		"7", "RES1",
		"9",
		"admin", "wrong",
		"admin", "secret", "1", "2", "201", "3",
		"8",
	)

	assert.Contains(t, out, "Welcome to Grand Hotel, 123 Main St")
	assert.Contains(t, out, "Deluxe Room")
	assert.Contains(t, out, "Customer registered! ID: CUST1")
	assert.Contains(t, out, `Invalid date "not-a-date"`)
	assert.Contains(t, out, "Total: 312.00")
	assert.Contains(t, out, "Reservation RES1 confirmed. Paid 312.00, earned 15 points (balance 15).")
	assert.Contains(t, out, "Invalid choice.")
	assert.Contains(t, out, "Access denied.")
	assert.Contains(t, out, "Total revenue:   312.00")
	assert.Contains(t, out, "Most popular:    room 201 (1 reservations)")
	assert.Contains(t, out, "Room 201 is clean.")
	assert.Contains(t, out, "Goodbye!")
	assert.NotContains(t, out, "loyalty points?", "no points to offer yet")

	_, err := os.Stat(filepath.Join(dir, "receipt_RES1.pdf"))
	assert.NoError(t, err)

	require.Equal(t, 1, store.saves)
	require.Len(t, store.saved.Reservations, 1)
	assert.True(t, h.FindRoom("201").Clean())
}

func TestConsole_VIPUpgradeWithPoints(t *testing.T) {
	h := newHotel(t)
	std, dlx := h.FindRoom("101"), h.FindRoom("201")
	vip := &domain.Customer{ID: "CUST1", FirstName: "Ayse", LastName: "Kaya", Email: "ayse@test.com", LoyaltyPoints: 1000}
	var past []*domain.Reservation
	for i := 0; i < domain.VIPThreshold; i++ {
		in := domain.Date(2025, time.March, 2+i*7)
		res := &domain.Reservation{ID: "RES" + string(rune('1'+i)), Customer: vip, Room: std,
			CheckIn: in, CheckOut: in.AddDate(0, 0, 1), Status: domain.StatusConfirmed}
		res.Link()
		past = append(past, res)
	}
	h.Restore(context.Background(), domain.Snapshot{
		Rooms: []*domain.Room{std, dlx}, Customers: []*domain.Customer{vip}, Reservations: past,
	})

	out, _ := run(t, h, &memStore{},
		"4", "ayse@test.com", "201", "2026-01-09", "2026-01-10", "y", "y", "y",
		"8",
	)

	assert.Contains(t, out, "Use 1000 loyalty points?")
	assert.Contains(t, out, "Free upgrade applied.")
	assert.Contains(t, out, "Total: 120.00")
	assert.Contains(t, out, "Points discount: -100.00 (1000 points)")
	assert.Contains(t, out, "Reservation RES4 confirmed. Paid 20.00, earned 1 points (balance 1).")
	assert.Equal(t, 1, vip.LoyaltyPoints)
	assert.Same(t, dlx, vip.History[len(vip.History)-1].Room)
}

func TestConsole_DeclinedBookingAndUnknownCustomer(t *testing.T) {
	h := newHotel(t)
	_, err := h.RegisterCustomer("Ali", "Veli", "ali@test.com", "")
	require.NoError(t, err)

	out, _ := run(t, h, &memStore{},
		"4", "ghost@test.com",
		"4", "ali@test.com", "999",
		"4", "ali@test.com", "101", "2026-01-12", "2026-01-10",
		"4", "ali@test.com", "101", "2026-01-12", "2026-01-13", "n",
		"5", "ali@test.com",
		"7", "RES1",
		"8",
	)

	assert.Contains(t, out, "Customer not found!")
	assert.Contains(t, out, "Room not found!")
	assert.Contains(t, out, "Booking failed: check-out must be after check-in")
	assert.Contains(t, out, "Booking cancelled.")
	assert.Contains(t, out, "We recommend room 101")
	assert.Contains(t, out, `No receipt for "RES1" in this session.`)
	assert.Empty(t, h.Reservations())
}

func TestConsole_EndOfInputSaves(t *testing.T) {
	store := &memStore{}
	out, _ := run(t, newHotel(t), store, "1")
	assert.Contains(t, out, "Data saved.")
	assert.Equal(t, 1, store.saves)
}
