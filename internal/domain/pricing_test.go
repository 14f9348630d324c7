package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_console/internal/domain"
)

var (
	tue = domain.Date(2026, time.January, 6)
	wed = domain.Date(2026, time.January, 7)
	thu = domain.Date(2026, time.January, 8)
	fri = domain.Date(2026, time.January, 9)
	sat = domain.Date(2026, time.January, 10)
	sun = domain.Date(2026, time.January, 11)
	mon = domain.Date(2026, time.January, 12)
)

func TestIsWeekend(t *testing.T) {
	for _, d := range []time.Time{fri, sat, sun} {
		assert.True(t, domain.IsWeekend(d), d.Weekday().String())
	}
	for _, d := range []time.Time{mon, tue, wed, thu} {
		assert.False(t, domain.IsWeekend(d), d.Weekday().String())
	}
}

func TestNightlyPrice_Standard(t *testing.T) {
	r := domain.NewStandardRoom("101", 2, 100)
	for d := mon; d.Before(mon.AddDate(0, 0, 7)); d = d.AddDate(0, 0, 1) {
		want := 100.0
		if domain.IsWeekend(d) {
			want = 120.0
		}
		assert.InDelta(t, want, domain.NightlyPrice(r, d), 0.001, d.Weekday().String())
	}
}

func TestNightlyPrice_Deluxe(t *testing.T) {
	r := domain.NewDeluxeRoom("201", 4, 200, 0.20)
	assert.InDelta(t, 240.0, domain.NightlyPrice(r, wed), 0.001)
	assert.InDelta(t, 312.0, domain.NightlyPrice(r, sat), 0.001)
	assert.InDelta(t, 312.0, domain.NightlyPrice(r, fri), 0.001)
}

func TestNightlyPrice_DeluxeWithoutPayloadHasNoTax(t *testing.T) {
	r := &domain.Room{Number: "x", BasePrice: 100, Kind: domain.KindDeluxe}
	assert.InDelta(t, 100.0, domain.NightlyPrice(r, tue), 0.001)
	assert.InDelta(t, 130.0, domain.NightlyPrice(r, sun), 0.001)
}

func TestStayTotal(t *testing.T) {
	r := domain.NewStandardRoom("101", 2, 100)

	// Wed, Thu
	assert.InDelta(t, 200.0, domain.StayTotal(r, wed, fri), 0.001)
	// Thu, Fri, Sat, Sun
	assert.InDelta(t, 100+120*3, domain.StayTotal(r, thu, mon), 0.001)
}

func TestStayTotal_EmptyOrInvertedRangeIsZero(t *testing.T) {
	r := domain.NewDeluxeRoom("201", 4, 200, 0.2)
	assert.Zero(t, domain.StayTotal(r, wed, wed))
	assert.Zero(t, domain.StayTotal(r, sat, wed))
	assert.Empty(t, domain.Nights(r, sat, wed))
}

func TestNights_Breakdown(t *testing.T) {
	r := domain.NewStandardRoom("101", 2, 100)
	nights := domain.Nights(r, thu, sat)
	require.Len(t, nights, 2)
	assert.Equal(t, thu, nights[0].Date)
	assert.InDelta(t, 100.0, nights[0].Price, 0.001)
	assert.Equal(t, fri, nights[1].Date)
	assert.InDelta(t, 120.0, nights[1].Price, 0.001)
}

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2026-01-10")
	require.NoError(t, err)
	assert.Equal(t, sat, d)
	assert.Equal(t, "2026-01-10", domain.FormatDate(d))

	_, err = domain.ParseDate("10/01/2026")
	assert.Error(t, err)
}
