package repository

import (
	"context"
	"time"

	"github.com/hanaa-nabil/Hotel-managment/internal/domain"

	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// UserStats aggregates one user's booking history.
type UserStats struct {
	TotalBookings     int64   `json:"total_bookings"`
	PendingBookings   int64   `json:"pending_bookings"`
	ConfirmedBookings int64   `json:"confirmed_bookings"`
	CancelledBookings int64   `json:"cancelled_bookings"`
	CompletedBookings int64   `json:"completed_bookings"`
	TotalSpent        float64 `json:"total_spent"`
	UpcomingCheckIns  int64   `json:"upcoming_check_ins"`
}

// AdminStats aggregates platform-wide booking and revenue figures.
type AdminStats struct {
	TotalBookings  int64   `json:"total_bookings"`
	ActiveBookings int64   `json:"active_bookings"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalRefunded  float64 `json:"total_refunded"`
	TotalRooms     int64   `json:"total_rooms"`
	OccupiedRooms  int64   `json:"occupied_rooms"`
}

func (r *StatsRepository) UserStats(ctx context.Context, userID int64, now time.Time) (*UserStats, error) {
	var s UserStats
	db := r.db.WithContext(ctx)

	type statusRow struct {
		Status string
		Cnt    int64
	}
	var rows []statusRow
	err := db.Model(&bookingModel{}).
		Select("status, COUNT(*) AS cnt").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		s.TotalBookings += row.Cnt
		switch domain.BookingStatus(row.Status) {
		case domain.BookingPending:
			s.PendingBookings = row.Cnt
		case domain.BookingConfirmed:
			s.ConfirmedBookings = row.Cnt
		case domain.BookingCancelled:
			s.CancelledBookings = row.Cnt
		case domain.BookingCompleted:
			s.CompletedBookings = row.Cnt
		}
	}

	err = db.Model(&bookingModel{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("user_id = ? AND status <> ?", userID, string(domain.BookingCancelled)).
		Scan(&s.TotalSpent).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&bookingModel{}).
		Where("user_id = ? AND status IN ? AND check_in > ?",
			userID,
			[]string{string(domain.BookingPending), string(domain.BookingConfirmed)},
			now).
		Count(&s.UpcomingCheckIns).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StatsRepository) AdminStats(ctx context.Context, now time.Time) (*AdminStats, error) {
	var s AdminStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&bookingModel{}).Count(&s.TotalBookings).Error; err != nil {
		return nil, err
	}

	err := db.Model(&bookingModel{}).
		Where("status IN ?", []string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Count(&s.ActiveBookings).Error
	if err != nil {
		return nil, err
	}

	// Revenue counts captured payments only; refunds are reported
	// separately rather than netted out.
	err = db.Model(&bookingModel{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("is_paid = ?", true).
		Scan(&s.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&bookingModel{}).
		Select("COALESCE(SUM(refund_amount), 0)").
		Where("refund_amount IS NOT NULL").
		Scan(&s.TotalRefunded).Error
	if err != nil {
		return nil, err
	}

	if err := db.Table("rooms").Count(&s.TotalRooms).Error; err != nil {
		return nil, err
	}

	err = db.Model(&bookingModel{}).
		Distinct("room_id").
		Where("status <> ? AND check_in <= ? AND check_out > ?",
			string(domain.BookingCancelled), now, now).
		Count(&s.OccupiedRooms).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
