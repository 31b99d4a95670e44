package booking

import (
	"context"
	"time"

	"github.com/hanaa-nabil/Hotel-managment/internal/domain"
	"github.com/hanaa-nabil/Hotel-managment/internal/repository"
)

// BookingRepository defines the persistence operations the service needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CountOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]repository.BookingDetails, error)
	ListAll(ctx context.Context) ([]repository.BookingDetails, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, at time.Time) error
}

// RoomRepository defines the room lookups the service needs.
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// PaymentChecker couples cancellation to the payment provider: the
// confirmation re-check before a cancel and the intent void after it.
// Implemented by the payment service; nil disables both.
type PaymentChecker interface {
	RecheckBeforeCancel(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	ReleaseAfterCancel(ctx context.Context, b *domain.Booking)
}

// EventPublisher receives booking lifecycle events. Implemented by the
// event hub; nil disables publishing.
type EventPublisher interface {
	BookingCreated(b *domain.Booking)
	BookingCancelled(b *domain.Booking)
	BookingStatusChanged(b *domain.Booking)
}
