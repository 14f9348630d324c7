package domain

import "time"

type Customer struct {
	ID        string
	FirstName string `validate:"required,excludesall=0x2C"`
	LastName  string `validate:"required,excludesall=0x2C"`
	Email     string `validate:"required,email,excludesall=0x2C"`
	Phone     string `validate:"omitempty,min=5,max=20,excludesall=0x2C"`

	LoyaltyPoints   int
	LastBookingTime *time.Time
	History         []*Reservation
}

func (c *Customer) FullName() string { return c.FirstName + " " + c.LastName }

// RedeemPoints takes points from the balance. The balance is untouched on failure.
func (c *Customer) RedeemPoints(points int) error {
	if points < 0 || points > c.LoyaltyPoints {
		return ErrInsufficientPoints
	}
	c.LoyaltyPoints -= points
	return nil
}

func (c *Customer) AddPoints(points int) {
	if points > 0 {
		c.LoyaltyPoints += points
	}
}

func (c *Customer) IsVIP() bool { return len(c.History) >= VIPThreshold }

func (c *Customer) addReservation(res *Reservation) {
	c.History = append(c.History, res)
}
