package booking

import (
	"context"
	"errors"
	"time"

	"github.com/hanaa-nabil/Hotel-managment/internal/domain"
	"github.com/hanaa-nabil/Hotel-managment/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	payments PaymentChecker
	events   EventPublisher
}

func NewService(bookings BookingRepository, rooms RoomRepository, payments PaymentChecker, events EventPublisher) *Service {
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		payments: payments,
		events:   events,
	}
}

// CreateBooking validates the interval, checks availability, snapshots the
// price and persists a pending booking. The check-and-insert runs atomically
// in the repository; a lost race surfaces as ErrConflict, never as a second
// overlapping row.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if !req.CheckOut.After(req.CheckIn) {
		return nil, ErrInvalidInterval
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !room.IsAvailable {
		return nil, ErrRoomUnavailable
	}

	total, err := Quote(room.PricePerNight, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	if err := s.AssertAvailable(ctx, req.RoomID, req.CheckIn, req.CheckOut); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		UserID:     req.UserID,
		RoomID:     req.RoomID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		TotalPrice: total,
		Status:     domain.BookingPending,
		Paid:       false,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, ErrConflict
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// 23P01 exclusion_violation, 23505 unique_violation: the
			// no-overlap constraint rejected a racing writer.
			if pgErr.Code == "23P01" || pgErr.Code == "23505" {
				return nil, ErrConflict
			}
		}
		return nil, err
	}

	if s.events != nil {
		s.events.BookingCreated(b)
	}
	return b, nil
}

// IsAvailable evaluates the half-open overlap test against every
// non-cancelled booking on the room.
func (s *Service) IsAvailable(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	if !checkOut.After(checkIn) {
		return false, ErrInvalidInterval
	}
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrRoomNotFound
		}
		return false, err
	}
	if !room.IsAvailable {
		return false, nil
	}
	cnt, err := s.bookings.CountOverlapping(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return cnt == 0, nil
}

func (s *Service) AssertAvailable(ctx context.Context, roomID int64, checkIn, checkOut time.Time) error {
	cnt, err := s.bookings.CountOverlapping(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrConflict
	}
	return nil
}

// CancelBooking moves a non-terminal booking to cancelled. actorID == 0
// skips the ownership check (internal/admin callers). Cancelling an
// already-cancelled booking is an idempotent success. A paid booking is
// cancellable, but the captured funds are only released by an explicit
// Refund call — never implicitly here.
func (s *Service) CancelBooking(ctx context.Context, bookingID, actorID int64, isAdmin bool) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if actorID != 0 && b.UserID != actorID && !isAdmin {
		return nil, ErrForbidden
	}

	if b.Status == domain.BookingCancelled {
		return b, nil
	}
	if b.Status == domain.BookingCompleted {
		return nil, ErrInvalidState
	}

	// A confirmation may be in flight: re-pull provider status before
	// honoring the cancel when an intent exists but the booking is not
	// yet marked paid.
	if s.payments != nil && b.PaymentIntentID != nil && !b.Paid {
		if refreshed, err := s.payments.RecheckBeforeCancel(ctx, b); err == nil && refreshed != nil {
			b = refreshed
		}
	}

	if err := s.bookings.Cancel(ctx, bookingID, time.Now().UTC()); err != nil {
		return nil, err
	}

	b, err = s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	// Void the open intent so the client's in-progress payment flow cannot
	// capture funds for the released slot.
	if s.payments != nil && b.PaymentIntentID != nil && !b.Paid {
		s.payments.ReleaseAfterCancel(ctx, b)
	}
	if s.events != nil {
		s.events.BookingCancelled(b)
	}
	return b, nil
}

// UpdateStatus applies an administrative transition validated against the
// closed state machine.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, newStatus string) (*domain.Booking, error) {
	status, ok := domain.ParseBookingStatus(newStatus)
	if !ok {
		return nil, ErrInvalidState
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.Status == status {
		return b, nil
	}
	if !domain.CanTransition(b.Status, status) {
		return nil, ErrInvalidState
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}

	b, err = s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.BookingStatusChanged(b)
	}
	return b, nil
}

func (s *Service) GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]repository.BookingDetails, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]repository.BookingDetails, error) {
	return s.bookings.ListAll(ctx)
}
