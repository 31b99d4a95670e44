package payment

import "errors"

var (
	ErrNotFound            = errors.New("booking not found")
	ErrInvalidState        = errors.New("booking state does not allow this payment operation")
	ErrAlreadyPaid         = errors.New("booking is already paid")
	ErrCorrelation         = errors.New("payment intent does not resolve to a booking")
	ErrProviderUnavailable = errors.New("payment provider unavailable")
	ErrRefundExceedsTotal  = errors.New("refund exceeds captured amount")
)
