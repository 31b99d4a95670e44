package payment

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/hanaa-nabil/Hotel-managment/internal/domain"
	"github.com/hanaa-nabil/Hotel-managment/internal/pkg/stripeapi"
	"github.com/hanaa-nabil/Hotel-managment/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const metadataBookingID = "booking_id"

// Config is injected at construction; the orchestrator owns its provider
// settings, there is no process-wide mutable configuration.
type Config struct {
	Currency string
}

type Service struct {
	bookings bookingRepo
	provider Provider
	events   EventPublisher
	log      logrus.FieldLogger
	currency string
}

func NewService(bookings bookingRepo, provider Provider, events EventPublisher, cfg Config, log logrus.FieldLogger) *Service {
	currency := cfg.Currency
	if currency == "" {
		currency = "usd"
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		bookings: bookings,
		provider: provider,
		events:   events,
		log:      log,
		currency: currency,
	}
}

// toMinorUnits / fromMinorUnits convert at the provider boundary only; the
// rest of the system works in decimal display units.
func toMinorUnits(v float64) int64 {
	return int64(math.Round(v * 100))
}

func fromMinorUnits(m int64) float64 {
	return float64(m) / 100
}

type IntentResponse struct {
	BookingID       int64   `json:"booking_id"`
	PaymentIntentID string  `json:"payment_intent_id"`
	ClientSecret    string  `json:"client_secret"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Status          string  `json:"status"`
}

// OpenPaymentIntent opens a provider intent for a pending, unpaid booking
// and binds its reference to the booking. Retrying after a provider
// failure reuses the same pending booking; an already-bound reference is
// returned as-is, never overwritten.
func (s *Service) OpenPaymentIntent(ctx context.Context, bookingID int64) (*IntentResponse, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.Paid {
		return nil, ErrAlreadyPaid
	}
	if b.Status != domain.BookingPending {
		return nil, ErrInvalidState
	}

	if b.PaymentIntentID != nil {
		intent, err := s.provider.RetrieveIntent(ctx, *b.PaymentIntentID)
		if err != nil {
			return nil, s.providerErr("retrieve existing intent", err)
		}
		return s.intentResponse(b.ID, intent), nil
	}

	intent, err := s.provider.CreateIntent(ctx, stripeapi.CreateIntentRequest{
		Amount:      toMinorUnits(b.TotalPrice),
		Currency:    s.currency,
		Description: "Hotel booking #" + strconv.FormatInt(b.ID, 10),
		Metadata:    map[string]string{metadataBookingID: strconv.FormatInt(b.ID, 10)},
	})
	if err != nil {
		// The pending row stays as-is; the caller retries against it.
		return nil, s.providerErr("create intent", err)
	}

	if err := s.bookings.SetPaymentIntentID(ctx, b.ID, intent.ID); err != nil {
		if errors.Is(err, repository.ErrIntentAlreadySet) {
			// Lost a race with a concurrent open; honor the bound ref.
			cur, gerr := s.bookings.GetByID(ctx, b.ID)
			if gerr == nil && cur.PaymentIntentID != nil {
				existing, rerr := s.provider.RetrieveIntent(ctx, *cur.PaymentIntentID)
				if rerr == nil {
					return s.intentResponse(b.ID, existing), nil
				}
			}
			return nil, ErrInvalidState
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"intent_id":  intent.ID,
		"amount":     intent.Amount,
	}).Info("payment intent opened")

	return s.intentResponse(b.ID, intent), nil
}

type ReconcileResult struct {
	Booking        *domain.Booking `json:"booking"`
	ProviderStatus string          `json:"provider_status"`
	Changed        bool            `json:"changed"`
	// RefundRequired flags a capture that landed after the booking was
	// cancelled: the money is the provider's, the room is not held.
	RefundRequired bool `json:"refund_required,omitempty"`
}

// Reconcile pulls the provider's authoritative status and applies it to
// the booking. Safe to run any number of times with the same reference:
// a succeeded intent confirms the booking exactly once, re-invocations
// are no-ops returning the same state.
func (s *Service) Reconcile(ctx context.Context, ref string) (*ReconcileResult, error) {
	intent, err := s.provider.RetrieveIntent(ctx, ref)
	if err != nil {
		return nil, s.providerErr("retrieve intent", err)
	}
	return s.applyIntent(ctx, intent)
}

// ConfirmPayment asks the provider to confirm the intent with the given
// payment method, then reconciles the resulting status.
func (s *Service) ConfirmPayment(ctx context.Context, ref, paymentMethod string) (*ReconcileResult, error) {
	intent, err := s.provider.ConfirmIntent(ctx, ref, paymentMethod)
	if err != nil {
		var apiErr *stripeapi.APIError
		if errors.As(err, &apiErr) {
			// Declines and invalid confirms come back as API errors;
			// the authoritative state is whatever the intent reads now.
			current, rerr := s.provider.RetrieveIntent(ctx, ref)
			if rerr != nil {
				return nil, s.providerErr("retrieve intent after failed confirm", rerr)
			}
			return s.applyIntent(ctx, current)
		}
		return nil, s.providerErr("confirm intent", err)
	}
	return s.applyIntent(ctx, intent)
}

// applyIntent maps a provider intent onto the local booking. The booking
// id embedded in intent metadata is the sole correlation source.
func (s *Service) applyIntent(ctx context.Context, intent *stripeapi.Intent) (*ReconcileResult, error) {
	raw, ok := intent.Metadata[metadataBookingID]
	if !ok || raw == "" {
		return nil, ErrCorrelation
	}
	bookingID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, ErrCorrelation
	}
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCorrelation
		}
		return nil, err
	}
	if b.PaymentIntentID != nil && *b.PaymentIntentID != intent.ID {
		return nil, ErrCorrelation
	}

	switch intent.Status {
	case stripeapi.StatusSucceeded:
		changed, err := s.bookings.ConfirmPaidIdempotent(ctx, b.ID, time.Now().UTC())
		if err != nil {
			if errors.Is(err, repository.ErrBookingCancelled) {
				// Late capture on a cancelled booking. The booking stays
				// cancelled, the slot may be rebooked; flag the captured
				// funds for an explicit refund instead.
				s.log.WithFields(logrus.Fields{
					"booking_id": b.ID,
					"intent_id":  intent.ID,
				}).Warn("payment captured for cancelled booking, refund required")
				return &ReconcileResult{
					Booking:        b,
					ProviderStatus: intent.Status,
					Changed:        false,
					RefundRequired: true,
				}, nil
			}
			return nil, err
		}
		b, err = s.bookings.GetByID(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		if changed {
			s.log.WithFields(logrus.Fields{
				"booking_id": b.ID,
				"intent_id":  intent.ID,
			}).Info("booking confirmed by payment")
			if s.events != nil {
				s.events.BookingStatusChanged(b)
			}
		}
		return &ReconcileResult{Booking: b, ProviderStatus: intent.Status, Changed: changed}, nil

	case stripeapi.StatusCanceled:
		changed := false
		if b.Status == domain.BookingPending {
			if err := s.bookings.Cancel(ctx, b.ID, time.Now().UTC()); err != nil {
				return nil, err
			}
			changed = true
			b, err = s.bookings.GetByID(ctx, b.ID)
			if err != nil {
				return nil, err
			}
			if s.events != nil {
				s.events.BookingStatusChanged(b)
			}
		}
		return &ReconcileResult{Booking: b, ProviderStatus: intent.Status, Changed: changed}, nil

	default:
		// Still pending user action; report without error.
		return &ReconcileResult{Booking: b, ProviderStatus: intent.Status, Changed: false}, nil
	}
}

// Refund requests a full (amount == nil) or partial refund. Returns false
// when the underlying payment never succeeded: an expected outcome the
// caller checks, not a fault. The booking status is untouched — a refund
// is a financial event, not a lifecycle transition.
func (s *Service) Refund(ctx context.Context, ref string, amount *float64) (bool, *domain.Booking, error) {
	intent, err := s.provider.RetrieveIntent(ctx, ref)
	if err != nil {
		return false, nil, s.providerErr("retrieve intent", err)
	}
	if intent.Status != stripeapi.StatusSucceeded {
		return false, nil, nil
	}

	b, err := s.bookings.GetByPaymentIntentID(ctx, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, ErrCorrelation
		}
		return false, nil, err
	}

	captured := fromMinorUnits(intent.Amount)
	requested := captured
	var already float64
	if b.RefundAmount != nil {
		already = *b.RefundAmount
	}
	if amount != nil {
		requested = *amount
	} else {
		requested = captured - already
	}
	if requested <= 0 || already+requested > captured {
		return false, nil, ErrRefundExceedsTotal
	}

	var minor *int64
	if amount != nil {
		v := toMinorUnits(*amount)
		minor = &v
	}
	refund, err := s.provider.CreateRefund(ctx, ref, minor)
	if err != nil {
		return false, nil, s.providerErr("create refund", err)
	}

	b, err = s.bookings.AddRefund(ctx, b.ID, requested)
	if err != nil {
		return false, nil, err
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"intent_id":  ref,
		"refund_id":  refund.ID,
		"amount":     requested,
	}).Info("refund recorded")

	return true, b, nil
}

// RecheckBeforeCancel implements the booking module's PaymentChecker: a
// cancel racing an in-flight confirmation first pulls provider status so a
// payment that already captured is reflected before the cancel proceeds.
func (s *Service) RecheckBeforeCancel(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if b.PaymentIntentID == nil || b.Paid {
		return b, nil
	}
	intent, err := s.provider.RetrieveIntent(ctx, *b.PaymentIntentID)
	if err != nil {
		// Best effort: an unreachable provider must not block the cancel
		// of an unpaid booking.
		s.log.WithError(err).WithField("booking_id", b.ID).Warn("provider recheck before cancel failed")
		return b, nil
	}
	if intent.Status != stripeapi.StatusSucceeded {
		return b, nil
	}
	if _, err := s.bookings.ConfirmPaidIdempotent(ctx, b.ID, time.Now().UTC()); err != nil {
		// A concurrent cancel already won; the caller's cancel is then a
		// no-op on the re-read state.
		if errors.Is(err, repository.ErrBookingCancelled) {
			return s.bookings.GetByID(ctx, b.ID)
		}
		return nil, err
	}
	return s.bookings.GetByID(ctx, b.ID)
}

// ReleaseAfterCancel voids the open provider intent of a booking that was
// just cancelled, so a later confirm on the client cannot capture funds for
// a slot that is no longer held. Best effort: the repository guard refuses
// a late capture either way, this only spares the user the charge.
func (s *Service) ReleaseAfterCancel(ctx context.Context, b *domain.Booking) {
	if b.PaymentIntentID == nil || b.Paid {
		return
	}
	if _, err := s.provider.CancelIntent(ctx, *b.PaymentIntentID); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"booking_id": b.ID,
			"intent_id":  *b.PaymentIntentID,
		}).Warn("failed to void intent after booking cancel")
	}
}

func (s *Service) intentResponse(bookingID int64, intent *stripeapi.Intent) *IntentResponse {
	return &IntentResponse{
		BookingID:       bookingID,
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          fromMinorUnits(intent.Amount),
		Currency:        intent.Currency,
		Status:          intent.Status,
	}
}

// providerErr keeps provider diagnostics in logs and surfaces a uniform
// retryable error to callers, distinct from domain errors.
func (s *Service) providerErr(op string, err error) error {
	s.log.WithError(err).Warnf("stripe %s failed", op)
	return ErrProviderUnavailable
}
