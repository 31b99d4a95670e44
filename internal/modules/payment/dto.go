package payment

type OpenIntentRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

type ConfirmRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
	PaymentMethod   string `json:"payment_method"`
}

type RefundRequest struct {
	PaymentIntentID string   `json:"payment_intent_id" binding:"required"`
	Amount          *float64 `json:"amount"`
}
