package app_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_console/internal/app"
	"hotel_console/internal/domain"
)

func TestAddRoom_RejectsDuplicateNumber(t *testing.T) {
	h := app.NewHotel("H", "A")
	require.NoError(t, h.AddRoom(domain.NewStandardRoom("101", 2, 100)))
	err := h.AddRoom(domain.NewDeluxeRoom("101", 4, 200, 0.2))
	assert.True(t, errors.Is(err, domain.ErrDuplicateRoom))
	assert.Equal(t, 1, h.TotalRooms())
}

func TestRegisterCustomer(t *testing.T) {
	h := app.NewHotel("H", "A")
	a, err := h.RegisterCustomer(" Ali ", "Veli", "ali@test.com", "1234567890")
	require.NoError(t, err)
	b, err := h.RegisterCustomer("Ayse", "Kaya", "ayse@test.com", "")
	require.NoError(t, err)

	assert.Equal(t, "CUST1", a.ID)
	assert.Equal(t, "CUST2", b.ID)
	assert.Equal(t, "Ali", a.FirstName)
	assert.Zero(t, a.LoyaltyPoints)
	assert.Same(t, a, h.FindCustomerByEmail("ali@test.com"))
	assert.Nil(t, h.FindCustomerByEmail("nobody@test.com"))
}

func TestRegisterCustomer_Validation(t *testing.T) {
	h := app.NewHotel("H", "A")
	for _, tc := range []struct{ first, last, email, phone string }{
		{"", "Veli", "ali@test.com", ""},
		{"Ali", "", "ali@test.com", ""},
		{"Ali", "Veli", "not-an-email", ""},
		{"Ali", "Veli", "ali@test.com", "12"},
		// a quoted local part is a valid address but cannot be stored
		{"Ali", "Veli", `"a,b"@example.com`, ""},
	} {
		_, err := h.RegisterCustomer(tc.first, tc.last, tc.email, tc.phone)
		assert.True(t, errors.Is(err, domain.ErrInvalidCustomer), "%+v", tc)
	}
	assert.Empty(t, h.Customers())

	// a rejected registration does not consume an id
	c, err := h.RegisterCustomer("Ali", "Veli", "ali@test.com", "")
	require.NoError(t, err)
	assert.Equal(t, "CUST1", c.ID)
}

func TestSearchAvailableRooms(t *testing.T) {
	f := newFixture(t)
	f.std.Occupied = true
	avail := f.hotel.SearchAvailableRooms(wed, thu)
	require.Len(t, avail, 1)
	assert.Equal(t, "201", avail[0].Number)
}

func TestRecommend_PrefersDeluxeForDeluxeGuests(t *testing.T) {
	f := newFixture(t)
	f.book(t, reqFor(f.cust, f.dlx, wed, thu))
	f.book(t, reqFor(f.cust, f.dlx, wed, thu))

	dlx2 := domain.NewDeluxeRoom("202", 4, 200, 0.2)
	require.NoError(t, f.hotel.AddRoom(dlx2))

	rec, err := f.hotel.Recommend(f.cust.Email)
	require.NoError(t, err)
	assert.Same(t, dlx2, rec)
}

func TestRecommend_TieFavoursStandard(t *testing.T) {
	f := newFixture(t)
	f.book(t, reqFor(f.cust, f.dlx, wed, thu))
	f.book(t, reqFor(f.cust, f.std, wed, thu))
	f.std.Occupied = false
	f.dlx.Occupied = false

	rec, err := f.hotel.Recommend(f.cust.Email)
	require.NoError(t, err)
	assert.Same(t, f.std, rec)
}

func TestRecommend_NewCustomerGetsStandard(t *testing.T) {
	f := newFixture(t)
	rec, err := f.hotel.Recommend(f.cust.Email)
	require.NoError(t, err)
	assert.Same(t, f.std, rec)
}

func TestRecommend_DeluxeGuestFallsBackToStandard(t *testing.T) {
	f := newFixture(t)
	f.book(t, reqFor(f.cust, f.dlx, wed, thu)) // dlx now occupied
	rec, err := f.hotel.Recommend(f.cust.Email)
	require.NoError(t, err)
	assert.Same(t, f.std, rec)
}

func TestRecommend_NothingAvailable(t *testing.T) {
	f := newFixture(t)
	f.std.Occupied = true
	f.dlx.Occupied = true
	_, err := f.hotel.Recommend(f.cust.Email)
	assert.True(t, errors.Is(err, domain.ErrNoSuitableRoom))

	_, err = f.hotel.Recommend("ghost@test.com")
	assert.True(t, errors.Is(err, domain.ErrCustomerNotFound))
}

func TestCustomerReservations(t *testing.T) {
	f := newFixture(t)
	f.book(t, reqFor(f.cust, f.std, wed, thu))
	list, err := f.hotel.CustomerReservations("ali@test.com")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.hotel.CustomerReservations("ghost@test.com")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMarkRoomClean(t *testing.T) {
	f := newFixture(t)
	f.book(t, reqFor(f.cust, f.std, wed, thu))
	require.False(t, f.std.Clean())

	require.NoError(t, f.hotel.MarkRoomClean(ctx(), "101"))
	assert.True(t, f.std.Clean())
	assert.True(t, errors.Is(f.hotel.MarkRoomClean(ctx(), "999"), domain.ErrRoomNotFound))
}

func TestRestore_AdvancesSequences(t *testing.T) {
	room := domain.NewStandardRoom("101", 2, 100)
	c1 := &domain.Customer{ID: "CUST7", FirstName: "A", LastName: "B", Email: "a@b.io"}
	c2 := &domain.Customer{FirstName: "C", LastName: "D", Email: "c@d.io"}
	res := &domain.Reservation{ID: "RES12", Customer: c1, Room: room, CheckIn: wed, CheckOut: thu, Status: domain.StatusConfirmed}
	res.Link()

	clk := newClock(at(wed, 9))
	h := app.NewHotel("H", "A", app.WithClock(clk.now))
	h.Restore(ctx(), domain.Snapshot{
		Rooms:        []*domain.Room{room},
		Customers:    []*domain.Customer{c1, c2},
		Reservations: []*domain.Reservation{res},
	})

	assert.Equal(t, "CUST8", c2.ID)
	c3, err := h.RegisterCustomer("E", "F", "e@f.io", "")
	require.NoError(t, err)
	assert.Equal(t, "CUST9", c3.ID)

	rc, err := h.Book(ctx(), reqFor(c3, room, wed, thu))
	require.NoError(t, err)
	assert.Equal(t, "RES13", rc.Reservation.ID)

	snap := h.Snapshot()
	assert.Len(t, snap.Rooms, 1)
	assert.Len(t, snap.Customers, 3)
	assert.Len(t, snap.Reservations, 2)
}

func TestSequence(t *testing.T) {
	s := app.NewSequence("RES")
	s.Observe("RES5")
	s.Observe("RES3")
	s.Observe("CUST40")
	s.Observe("RESx")
	assert.Equal(t, "RES6", s.Next())
}
