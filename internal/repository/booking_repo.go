package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hanaa-nabil/Hotel-managment/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrOverlap is returned when the transactional re-check finds a
	// non-cancelled booking overlapping the requested interval.
	ErrOverlap = errors.New("booking interval overlaps an existing booking")
	// ErrIntentAlreadySet guards the provider reference: once written it
	// is immutable for the life of the booking.
	ErrIntentAlreadySet = errors.New("payment intent already set on booking")
	// ErrBookingCancelled is returned when a payment confirmation arrives
	// for a booking that was cancelled in the meantime. Cancelled is
	// terminal; a late capture must never resurrect the booking.
	ErrBookingCancelled = errors.New("booking is cancelled")
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	UserID          int64      `gorm:"column:user_id"`
	RoomID          int64      `gorm:"column:room_id"`
	CheckIn         time.Time  `gorm:"column:check_in"`
	CheckOut        time.Time  `gorm:"column:check_out"`
	TotalPrice      float64    `gorm:"column:total_price"`
	Status          string     `gorm:"column:status"`
	IsPaid          bool       `gorm:"column:is_paid"`
	PaymentIntentID *string    `gorm:"column:payment_intent_id"`
	PaymentDate     *time.Time `gorm:"column:payment_date"`
	RefundAmount    *float64   `gorm:"column:refund_amount"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
	CancelledAt     *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:              m.ID,
		UserID:          m.UserID,
		RoomID:          m.RoomID,
		CheckIn:         m.CheckIn,
		CheckOut:        m.CheckOut,
		TotalPrice:      m.TotalPrice,
		Status:          domain.BookingStatus(m.Status),
		Paid:            m.IsPaid,
		PaymentIntentID: m.PaymentIntentID,
		PaymentDate:     m.PaymentDate,
		RefundAmount:    m.RefundAmount,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		CancelledAt:     m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:              b.ID,
		UserID:          b.UserID,
		RoomID:          b.RoomID,
		CheckIn:         b.CheckIn,
		CheckOut:        b.CheckOut,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		IsPaid:          b.Paid,
		PaymentIntentID: b.PaymentIntentID,
		PaymentDate:     b.PaymentDate,
		RefundAmount:    b.RefundAmount,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		CancelledAt:     b.CancelledAt,
	}
}

// lockForUpdate appends a row lock on postgres. SQLite serializes writers
// at the database level, so the clause is postgres-only.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Create inserts a pending booking after re-checking the interval inside
// the same transaction that holds the room row. Two racing writers on the
// same room therefore serialize on the row lock; whichever commits second
// sees the winner's row and fails with ErrOverlap. On postgres the
// idx_no_room_overlap exclusion constraint backstops the same guarantee.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var roomID int64
		res := lockForUpdate(tx).
			Table("rooms").
			Select("id").
			Where("id = ?", b.RoomID).
			Scan(&roomID)
		if res.Error != nil {
			return res.Error
		}
		if roomID == 0 {
			return gorm.ErrRecordNotFound
		}

		var cnt int64
		err := tx.Model(&bookingModel{}).
			Where("room_id = ? AND status <> ? AND check_in < ? AND check_out > ?",
				b.RoomID, string(domain.BookingCancelled), b.CheckOut, b.CheckIn).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlap
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByPaymentIntentID(ctx context.Context, ref string) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).Where("payment_intent_id = ?", ref).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

// CountOverlapping counts non-cancelled bookings on the room that overlap
// the half-open interval [checkIn, checkOut): a < d AND b > c.
func (r *BookingRepository) CountOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("room_id = ? AND status <> ? AND check_in < ? AND check_out > ?",
			roomID, string(domain.BookingCancelled), checkOut, checkIn).
		Count(&cnt).Error
	return cnt, err
}

// BookingDetails is the read projection joined with room and hotel rows.
type BookingDetails struct {
	ID            int64      `gorm:"column:id" json:"id"`
	UserID        int64      `gorm:"column:user_id" json:"user_id"`
	RoomID        int64      `gorm:"column:room_id" json:"room_id"`
	RoomNumber    string     `gorm:"column:room_number" json:"room_number"`
	RoomType      string     `gorm:"column:room_type" json:"room_type"`
	HotelName     string     `gorm:"column:hotel_name" json:"hotel_name"`
	CheckIn       time.Time  `gorm:"column:check_in" json:"check_in"`
	CheckOut      time.Time  `gorm:"column:check_out" json:"check_out"`
	PricePerNight float64    `gorm:"column:price_per_night" json:"price_per_night"`
	TotalPrice    float64    `gorm:"column:total_price" json:"total_price"`
	Status        string     `gorm:"column:status" json:"status"`
	IsPaid        bool       `gorm:"column:is_paid" json:"is_paid"`
	PaymentDate   *time.Time `gorm:"column:payment_date" json:"payment_date,omitempty"`
	RefundAmount  *float64   `gorm:"column:refund_amount" json:"refund_amount,omitempty"`
}

const bookingDetailsSelect = `
SELECT b.id, b.user_id, b.room_id, r.room_number, r.type AS room_type, h.name AS hotel_name,
       b.check_in, b.check_out, r.price_per_night, b.total_price,
       b.status, b.is_paid, b.payment_date, b.refund_amount
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN hotels h ON h.id = r.hotel_id
`

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]BookingDetails, error) {
	var rows []BookingDetails
	err := r.db.WithContext(ctx).
		Raw(bookingDetailsSelect+"WHERE b.user_id = ? ORDER BY b.check_in DESC", userID).
		Scan(&rows).Error
	return rows, err
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]BookingDetails, error) {
	var rows []BookingDetails
	err := r.db.WithContext(ctx).
		Raw(bookingDetailsSelect + "ORDER BY b.check_in DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	res := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) Cancel(ctx context.Context, id int64, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       string(domain.BookingCancelled),
			"cancelled_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetPaymentIntentID writes the provider reference only when none is
// recorded yet.
func (r *BookingRepository) SetPaymentIntentID(ctx context.Context, id int64, ref string) error {
	res := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND payment_intent_id IS NULL", id).
		Update("payment_intent_id", ref)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var existing int64
		if err := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Count(&existing).Error; err != nil {
			return err
		}
		if existing == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrIntentAlreadySet
	}
	return nil
}

// ConfirmPaidIdempotent marks the booking paid and confirmed exactly once.
// The row lock serializes duplicate provider callbacks; re-invocation on
// an already-paid booking is a no-op reporting changed=false. A cancelled
// booking is refused with ErrBookingCancelled: the slot may already be
// rebooked, so confirming it would create a second non-cancelled booking
// on the same interval.
func (r *BookingRepository) ConfirmPaidIdempotent(ctx context.Context, id int64, paidAt time.Time) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m bookingModel
		if err := lockForUpdate(tx).Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		if m.IsPaid {
			changed = false
			return nil
		}
		if m.Status == string(domain.BookingCancelled) {
			return ErrBookingCancelled
		}
		res := tx.Model(&bookingModel{}).Where("id = ?", id).Updates(map[string]interface{}{
			"is_paid":      true,
			"status":       string(domain.BookingConfirmed),
			"payment_date": paidAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("booking row not updated")
		}
		changed = true
		return nil
	})
	return changed, err
}

// AddRefund accumulates a refund amount on the booking. Status and the
// paid flag are untouched: a refund is a financial event, not a lifecycle
// transition.
func (r *BookingRepository) AddRefund(ctx context.Context, id int64, amount float64) (*domain.Booking, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m bookingModel
		if err := lockForUpdate(tx).Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		total := amount
		if m.RefundAmount != nil {
			total += *m.RefundAmount
		}
		return tx.Model(&bookingModel{}).Where("id = ?", id).
			Update("refund_amount", total).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}
