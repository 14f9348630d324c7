package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_console/internal/adapters/receipt"
	"hotel_console/internal/app"
	"hotel_console/internal/domain"
)

const adminCommand = "admin"

type Deps struct {
	Hotel      *app.Hotel
	Reports    *app.ReportService
	Gate       *app.AdminGate
	Store      domain.Store
	ReceiptDir string
}

// Console is the interactive menu. It owns the hotel for the session.
type Console struct {
	Deps
	in  *bufio.Scanner
	out io.Writer

	receipts map[string]app.Receipt // bookings made this session, by reservation id
}

func New(d Deps, in io.Reader, out io.Writer) *Console {
	return &Console{Deps: d, in: bufio.NewScanner(in), out: out, receipts: map[string]app.Receipt{}}
}

// Run loops over the main menu until the user saves and exits or input ends.
// End of input saves like the exit option does.
func (c *Console) Run(ctx context.Context) error {
	c.printf("Welcome to %s, %s\n", c.Hotel.Name, c.Hotel.Address)
	for {
		c.menu()
		choice, ok := c.prompt("Choice: ")
		if !ok {
			return c.save(ctx)
		}
		switch choice {
		case "1":
			c.listRooms(c.Hotel.Rooms())
		case "2":
			c.searchRooms()
		case "3":
			c.registerCustomer()
		case "4":
			c.makeReservation(ctx)
		case "5":
			c.recommend()
		case "6":
			c.viewReservations()
		case "7":
			c.exportReceipt()
		case "8":
			if err := c.save(ctx); err != nil {
				continue
			}
			c.printf("Goodbye!\n")
			return nil
		case adminCommand:
			c.admin(ctx)
		default:
			c.printf("Invalid choice. Please enter a number from the menu.\n")
		}
	}
}

func (c *Console) menu() {
	c.printf("\n--- HOTEL SYSTEM ---\n" +
		"1. List Rooms\n" +
		"2. Search Available Rooms\n" +
		"3. Register Customer\n" +
		"4. Make Reservation\n" +
		"5. Recommend a Room\n" +
		"6. View Customer Reservations\n" +
		"7. Export Receipt\n" +
		"8. Save & Exit\n")
}

// ---- prompts ----

func (c *Console) printf(format string, a ...any) { _, _ = fmt.Fprintf(c.out, format, a...) }

func (c *Console) prompt(label string) (string, bool) {
	c.printf("%s", label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// promptDate re-prompts until the input parses as YYYY-MM-DD.
func (c *Console) promptDate(label string) (time.Time, bool) {
	for {
		s, ok := c.prompt(label)
		if !ok {
			return time.Time{}, false
		}
		d, err := domain.ParseDate(s)
		if err == nil {
			return d, true
		}
		c.printf("Invalid date %q, expected YYYY-MM-DD.\n", s)
	}
}

func (c *Console) confirm(label string) (yes, ok bool) {
	s, ok := c.prompt(label + " (y/n): ")
	s = strings.ToLower(s)
	return s == "y" || s == "yes", ok
}

func (c *Console) customer() (*domain.Customer, bool) {
	email, ok := c.prompt("Customer Email: ")
	if !ok {
		return nil, false
	}
	cust := c.Hotel.FindCustomerByEmail(email)
	if cust == nil {
		c.printf("Customer not found!\n")
		return nil, false
	}
	return cust, true
}

// ---- menu actions ----

func (c *Console) listRooms(rooms []*domain.Room) {
	if len(rooms) == 0 {
		c.printf("No rooms.\n")
		return
	}
	today := domain.Day(c.Hotel.Now())
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ROOM\tTYPE\tCAPACITY\tBASE\tTONIGHT\tSTATUS\tEXTRAS")
	for _, r := range rooms {
		status := "Available"
		if !r.Clean() {
			status = "Occupied"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%.2f\t%s\t%s\n",
			r.Number, r.Kind, r.Capacity, r.BasePrice, domain.NightlyPrice(r, today), status, extras(r))
	}
	_ = tw.Flush()
}

func extras(r *domain.Room) string {
	var out []string
	add := func(on bool, name string) {
		if on {
			out = append(out, name)
		}
	}
	switch {
	case r.Standard != nil:
		add(r.Standard.WiFi, "wifi")
		add(r.Standard.TV, "tv")
	case r.Deluxe != nil:
		add(r.Deluxe.MiniBar, "minibar")
		add(r.Deluxe.Jacuzzi, "jacuzzi")
		add(r.Deluxe.Balcony, "balcony")
		out = append(out, fmt.Sprintf("tax %.0f%%", r.Deluxe.LuxuryTaxRate*100))
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, ", ")
}

func (c *Console) searchRooms() {
	in, ok := c.promptDate("Check-in (YYYY-MM-DD): ")
	if !ok {
		return
	}
	out, ok := c.promptDate("Check-out (YYYY-MM-DD): ")
	if !ok {
		return
	}
	c.listRooms(c.Hotel.SearchAvailableRooms(in, out))
}

func (c *Console) registerCustomer() {
	var fields [4]string
	for i, label := range []string{"First Name: ", "Last Name: ", "Email: ", "Phone: "} {
		v, ok := c.prompt(label)
		if !ok {
			return
		}
		fields[i] = v
	}
	cust, err := c.Hotel.RegisterCustomer(fields[0], fields[1], fields[2], fields[3])
	if err != nil {
		c.printf("Registration failed: %s\n", message(err))
		return
	}
	c.printf("Customer registered! ID: %s\n", cust.ID)
}

func (c *Console) makeReservation(ctx context.Context) {
	cust, ok := c.customer()
	if !ok {
		return
	}
	number, ok := c.prompt("Room Number: ")
	if !ok {
		return
	}
	room := c.Hotel.FindRoom(number)
	if room == nil {
		c.printf("Room not found!\n")
		return
	}
	req := app.BookingRequest{Customer: cust, Room: room}
	if req.CheckIn, ok = c.promptDate("Check-in (YYYY-MM-DD): "); !ok {
		return
	}
	if req.CheckOut, ok = c.promptDate("Check-out (YYYY-MM-DD): "); !ok {
		return
	}
	if cust.LoyaltyPoints > 0 {
		if req.UsePoints, ok = c.confirm(fmt.Sprintf("Use %d loyalty points?", cust.LoyaltyPoints)); !ok {
			return
		}
	}
	if room.IsDeluxe() && cust.IsVIP() {
		if req.FreeUpgrade, ok = c.confirm("VIP free upgrade: pay standard rates for this room?"); !ok {
			return
		}
	}

	q, err := c.Hotel.Quote(req)
	if err != nil {
		c.printf("Booking failed: %s\n", message(err))
		return
	}
	c.printReceipt(q)
	yes, ok := c.confirm("Confirm booking?")
	if !ok {
		return
	}
	if !yes {
		c.printf("Booking cancelled.\n")
		return
	}

	rc, err := c.Hotel.Book(ctx, req)
	if err != nil {
		c.printf("Booking failed: %s\n", message(err))
		return
	}
	c.receipts[rc.Reservation.ID] = rc
	c.printf("Reservation %s confirmed. Paid %.2f, earned %d points (balance %d).\n",
		rc.Reservation.ID, rc.Final, rc.PointsEarned, cust.LoyaltyPoints)
}

func (c *Console) printReceipt(rc app.Receipt) {
	c.printf("Room %s (%s), %s -> %s, %d night(s)\n",
		rc.Room.Number, rc.Room.Kind, domain.FormatDate(rc.CheckIn), domain.FormatDate(rc.CheckOut), rc.Nights)
	if rc.Upgraded {
		c.printf("Free upgrade applied.\n")
	}
	for _, n := range rc.Lines {
		c.printf("  %s  %8.2f\n", n.Date.Format("Mon 2006-01-02"), n.Price)
	}
	c.printf("Total: %.2f\n", rc.Total)
	if rc.PointsRedeemed > 0 {
		c.printf("Points discount: -%.2f (%d points)\n", rc.Discount, rc.PointsRedeemed)
	}
	c.printf("Amount due: %.2f (earns %d points)\n", rc.Final, rc.PointsEarned)
}

func (c *Console) recommend() {
	email, ok := c.prompt("Customer Email: ")
	if !ok {
		return
	}
	r, err := c.Hotel.Recommend(email)
	if err != nil {
		c.printf("No recommendation: %s\n", message(err))
		return
	}
	c.printf("We recommend room %s (%s), %.2f tonight.\n",
		r.Number, r.Kind, domain.NightlyPrice(r, c.Hotel.Now()))
}

func (c *Console) viewReservations() {
	email, ok := c.prompt("Customer Email: ")
	if !ok {
		return
	}
	list, err := c.Hotel.CustomerReservations(email)
	if err != nil {
		c.printf("%s\n", message(err))
		return
	}
	if len(list) == 0 {
		c.printf("No reservations.\n")
		return
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tROOM\tCHECK-IN\tCHECK-OUT\tSTATUS\tTOTAL")
	for _, res := range list {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f\n", res.ID, res.Room.Number,
			domain.FormatDate(res.CheckIn), domain.FormatDate(res.CheckOut), res.Status, res.Total())
	}
	_ = tw.Flush()
}

func (c *Console) exportReceipt() {
	id, ok := c.prompt("Reservation ID: ")
	if !ok {
		return
	}
	rc, found := c.receipts[id]
	if !found {
		c.printf("No receipt for %q in this session.\n", id)
		return
	}
	path, err := receipt.WriteFile(c.ReceiptDir, receipt.Issuer{Name: c.Hotel.Name, Address: c.Hotel.Address}, rc)
	if err != nil {
		log.Error().Err(err).Str("reservation", id).Msg("receipt export failed")
		c.printf("Export failed: %v\n", err)
		return
	}
	c.printf("Receipt written to %s\n", path)
}

func (c *Console) save(ctx context.Context) error {
	if err := c.Store.Save(ctx, c.Hotel.Snapshot()); err != nil {
		log.Error().Err(err).Msg("save failed")
		c.printf("Save failed: %v\n", err)
		return err
	}
	c.printf("Data saved.\n")
	return nil
}

// ---- admin ----

func (c *Console) admin(ctx context.Context) {
	pw, ok := c.prompt("Password: ")
	if !ok {
		return
	}
	if err := c.Gate.Unlock(pw); err != nil {
		if errors.Is(err, app.ErrAdminThrottled) {
			c.printf("Too many attempts. Try again later.\n")
		} else {
			c.printf("Access denied.\n")
		}
		return
	}
	for {
		c.printf("\n--- ADMIN ---\n1. Reports\n2. Mark Room Clean\n3. Back\n")
		choice, ok := c.prompt("Choice: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			c.reports(ctx)
		case "2":
			number, ok := c.prompt("Room Number: ")
			if !ok {
				return
			}
			if err := c.Hotel.MarkRoomClean(ctx, number); err != nil {
				c.printf("%s\n", message(err))
				continue
			}
			c.printf("Room %s is clean.\n", number)
		case "3":
			return
		default:
			c.printf("Invalid choice.\n")
		}
	}
}

func (c *Console) reports(ctx context.Context) {
	s, err := c.Reports.Summary(ctx)
	if err != nil {
		c.printf("Reports unavailable: %v\n", err)
		return
	}
	c.printf("Total revenue:   %.2f\n", s.Revenue)
	c.printf("Occupancy rate:  %.2f%%\n", s.OccupancyRate)
	c.printf("Rooms:           %d\n", s.TotalRooms)
	c.printf("Reservations:    %d\n", s.Reservations)
	if s.MostPopularRoom != nil {
		c.printf("Most popular:    room %s (%d reservations)\n", s.MostPopularRoom.Number, s.MostPopularRoom.Reservations)
	} else {
		c.printf("Most popular:    none\n")
	}
	if len(s.VIPCustomers) == 0 {
		c.printf("VIP customers:   none\n")
		return
	}
	c.printf("VIP customers:\n")
	for _, v := range s.VIPCustomers {
		c.printf("  %s <%s>, %d reservations, %d points\n", v.Name, v.Email, v.Reservations, v.LoyaltyPoints)
	}
}

// message turns domain errors into console text.
func message(err error) string {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		return "customer not found"
	case errors.Is(err, domain.ErrRoomNotFound):
		return "room not found"
	case errors.Is(err, domain.ErrBookingTooSoon):
		return "please wait before booking again"
	case errors.Is(err, domain.ErrInvalidDateRange):
		return "check-out must be after check-in"
	case errors.Is(err, domain.ErrInsufficientPoints):
		return "not enough loyalty points"
	case errors.Is(err, domain.ErrNoSuitableRoom):
		return "no suitable room is available"
	}
	return err.Error()
}
