package domain

type RoomKind int

const (
	KindStandard RoomKind = iota + 1
	KindDeluxe
)

func (k RoomKind) String() string {
	switch k {
	case KindStandard:
		return "Standard Room"
	case KindDeluxe:
		return "Deluxe Room"
	}
	return "Unknown Room"
}

type StandardExtras struct {
	WiFi bool
	TV   bool
}

type DeluxeExtras struct {
	MiniBar       bool
	Jacuzzi       bool
	Balcony       bool
	LuxuryTaxRate float64 // 0.20 == 20%
}

// Room is a tagged variant: exactly one of Standard/Deluxe is set, matching Kind.
type Room struct {
	Number    string
	Capacity  int
	BasePrice float64
	Occupied  bool // false == clean

	Kind     RoomKind
	Standard *StandardExtras
	Deluxe   *DeluxeExtras

	Reservations []*Reservation
}

// NewStandardRoom builds a Standard room with WiFi and TV.
func NewStandardRoom(number string, capacity int, basePrice float64) *Room {
	return &Room{
		Number:    number,
		Capacity:  capacity,
		BasePrice: basePrice,
		Kind:      KindStandard,
		Standard:  &StandardExtras{WiFi: true, TV: true},
	}
}

// NewDeluxeRoom builds a Deluxe room with every amenity and the given tax rate.
func NewDeluxeRoom(number string, capacity int, basePrice, taxRate float64) *Room {
	return &Room{
		Number:    number,
		Capacity:  capacity,
		BasePrice: basePrice,
		Kind:      KindDeluxe,
		Deluxe:    &DeluxeExtras{MiniBar: true, Jacuzzi: true, Balcony: true, LuxuryTaxRate: taxRate},
	}
}

func (r *Room) IsDeluxe() bool { return r.Kind == KindDeluxe }

func (r *Room) Clean() bool { return !r.Occupied }

func (r *Room) addReservation(res *Reservation) {
	r.Reservations = append(r.Reservations, res)
}
