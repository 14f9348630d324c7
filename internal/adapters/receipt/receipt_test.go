package receipt_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_console/internal/adapters/receipt"
	"hotel_console/internal/app"
	"hotel_console/internal/domain"
)

func booked(t *testing.T) app.Receipt {
	t.Helper()
	h := app.NewHotel("Grand", "1 Main St")
	room := domain.NewDeluxeRoom("201", 4, 200, 0.2)
	require.NoError(t, h.AddRoom(room))
	c, err := h.RegisterCustomer("Ali", "Veli", "ali@test.com", "")
	require.NoError(t, err)
	in := domain.Date(2026, time.January, 9)
	rc, err := h.Book(context.Background(), app.BookingRequest{Customer: c, Room: room, CheckIn: in, CheckOut: in.AddDate(0, 0, 2)})
	require.NoError(t, err)
	return rc
}

func TestRender_ProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, receipt.Render(&buf, receipt.Issuer{Name: "Grand"}, booked(t)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRender_RejectsQuote(t *testing.T) {
	var buf bytes.Buffer
	err := receipt.Render(&buf, receipt.Issuer{}, app.Receipt{})
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "receipts")
	rc := booked(t)
	path, err := receipt.WriteFile(dir, receipt.Issuer{Name: "Grand", Address: "1 Main St"}, rc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "receipt_"+rc.Reservation.ID+".pdf"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}
