package payment

import (
	"context"
	"time"

	"github.com/hanaa-nabil/Hotel-managment/internal/domain"
	"github.com/hanaa-nabil/Hotel-managment/internal/pkg/stripeapi"
)

// Provider is the payment gateway boundary. Amounts cross it in integer
// minor-currency units only.
type Provider interface {
	CreateIntent(ctx context.Context, req stripeapi.CreateIntentRequest) (*stripeapi.Intent, error)
	RetrieveIntent(ctx context.Context, ref string) (*stripeapi.Intent, error)
	ConfirmIntent(ctx context.Context, ref, paymentMethod string) (*stripeapi.Intent, error)
	CancelIntent(ctx context.Context, ref string) (*stripeapi.Intent, error)
	CreateRefund(ctx context.Context, ref string, amount *int64) (*stripeapi.Refund, error)
}

type bookingRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByPaymentIntentID(ctx context.Context, ref string) (*domain.Booking, error)
	SetPaymentIntentID(ctx context.Context, id int64, ref string) error
	ConfirmPaidIdempotent(ctx context.Context, id int64, paidAt time.Time) (bool, error)
	Cancel(ctx context.Context, id int64, at time.Time) error
	AddRefund(ctx context.Context, id int64, amount float64) (*domain.Booking, error)
}

// EventPublisher receives payment-driven lifecycle events. nil disables
// publishing.
type EventPublisher interface {
	BookingStatusChanged(b *domain.Booking)
}
