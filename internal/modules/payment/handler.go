package payment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/intent", h.OpenIntent)
	rg.POST("/payments/confirm", h.Confirm)
	rg.GET("/payments/:ref/status", h.Status)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/refund", h.Refund)
}

func (h *Handler) OpenIntent(c *gin.Context) {
	var req OpenIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	resp, err := h.service.OpenPaymentIntent(c.Request.Context(), req.BookingID)
	if err != nil {
		writePaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

func (h *Handler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.ConfirmPayment(c.Request.Context(), req.PaymentIntentID, req.PaymentMethod)
	if err != nil {
		writePaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": res})
}

// Status reconciles on read: it pulls the provider's current state and
// applies it before answering, so polling callers always converge.
func (h *Handler) Status(c *gin.Context) {
	ref := c.Param("ref")
	if ref == "" {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing payment intent reference")
		return
	}

	res, err := h.service.Reconcile(c.Request.Context(), ref)
	if err != nil {
		writePaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": res})
}

func (h *Handler) Refund(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	ok, b, err := h.service.Refund(c.Request.Context(), req.PaymentIntentID, req.Amount)
	if err != nil {
		writePaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"refunded": ok,
			"booking":  b,
		},
	})
}

func writePaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		fail(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrAlreadyPaid):
		fail(c, http.StatusConflict, "ALREADY_PAID", "Booking is already paid")
	case errors.Is(err, ErrInvalidState):
		fail(c, http.StatusConflict, "INVALID_STATE", "Booking state does not allow this payment operation")
	case errors.Is(err, ErrCorrelation):
		fail(c, http.StatusNotFound, "UNKNOWN_PAYMENT", "Payment reference does not resolve to a booking")
	case errors.Is(err, ErrRefundExceedsTotal):
		fail(c, http.StatusUnprocessableEntity, "REFUND_TOO_LARGE", "Refund exceeds the captured amount")
	case errors.Is(err, ErrProviderUnavailable):
		// Generic to the caller; provider diagnostics stay in logs.
		fail(c, http.StatusBadGateway, "PROVIDER_UNAVAILABLE", "Payment provider unavailable, try again later")
	default:
		fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
