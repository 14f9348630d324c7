package receipt

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phpdave11/gofpdf"

	"hotel_console/internal/app"
	"hotel_console/internal/domain"
)

// Issuer is printed in the receipt header.
type Issuer struct {
	Name    string
	Address string
}

// Render writes rc as a single-page A4 PDF.
func Render(w io.Writer, iss Issuer, rc app.Receipt) error {
	if rc.Reservation == nil {
		return fmt.Errorf("receipt: booking not committed")
	}
	res := rc.Reservation

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Receipt "+res.ID, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, safe(iss.Name, "Hotel"))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, safe(iss.Address, ""))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "RECEIPT "+res.ID)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		fmt.Sprintf("Guest     : %s <%s>", res.Customer.FullName(), res.Customer.Email),
		fmt.Sprintf("Room      : %s (%s)", res.Room.Number, res.Room.Kind),
		fmt.Sprintf("Stay      : %s -> %s, %d night(s)", domain.FormatDate(rc.CheckIn), domain.FormatDate(rc.CheckOut), rc.Nights),
		fmt.Sprintf("Status    : %s", res.Status),
	}
	if rc.Upgraded {
		header = append(header, "Upgrade   : complimentary, charged at standard rates")
	}
	for _, s := range header {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(60, 7, "Night", "B", 0, "", false, 0, "")
	pdf.CellFormat(40, 7, "Rate", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, n := range rc.Lines {
		pdf.CellFormat(60, 7, n.Date.Format("Mon 2006-01-02"), "", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, money(n.Price), "", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	totals := [][2]string{
		{"Total", money(rc.Total)},
		{"Points discount", "-" + money(rc.Discount)},
		{"Amount due", money(rc.Final)},
	}
	for i, t := range totals {
		if i == len(totals)-1 {
			pdf.SetFont("Helvetica", "B", 12)
		}
		pdf.CellFormat(60, 7, t[0], "", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, t[1], "", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf(
		"Points redeemed: %d. Points earned: %d. Balance: %d.",
		rc.PointsRedeemed, rc.PointsEarned, res.Customer.LoyaltyPoints), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteFile renders rc into dir as receipt_<reservation id>.pdf and returns the path.
func WriteFile(dir string, iss Issuer, rc app.Receipt) (string, error) {
	if rc.Reservation == nil {
		return "", fmt.Errorf("receipt: booking not committed")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "receipt_"+rc.Reservation.ID+".pdf")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Render(f, iss, rc); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, f.Close()
}

func money(v float64) string { return fmt.Sprintf("%.2f", v) }

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
