package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// ParseBookingStatus rejects anything outside the closed status set.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return BookingStatus(s), true
	}
	return "", false
}

// CanTransition encodes the booking state machine:
//
//	pending   -> confirmed | cancelled
//	confirmed -> cancelled | completed
//	cancelled, completed: terminal
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case BookingPending:
		return to == BookingConfirmed || to == BookingCancelled
	case BookingConfirmed:
		return to == BookingCancelled || to == BookingCompleted
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is permitted.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

type Booking struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"user_id"`
	RoomID     int64         `json:"room_id"`
	CheckIn    time.Time     `json:"check_in"`
	CheckOut   time.Time     `json:"check_out"`
	TotalPrice float64       `json:"total_price"`
	Status     BookingStatus `json:"status"`
	Paid       bool          `json:"is_paid"`

	// Provider reference, immutable once set. A new payment attempt
	// requires a new booking, never an overwrite.
	PaymentIntentID *string    `json:"payment_intent_id,omitempty"`
	PaymentDate     *time.Time `json:"payment_date,omitempty"`
	RefundAmount    *float64   `json:"refund_amount,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

// Nights is the whole-day span of the half-open interval [CheckIn, CheckOut).
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}
