package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hanaa-nabil/Hotel-managment/internal/domain"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/my", h.MyBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PUT("/bookings/:id/cancel", h.CancelBooking)
	rg.GET("/rooms/:id/availability", h.RoomAvailability)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListAll)
	rg.PUT("/bookings/:id/status", h.UpdateStatus)
}

func actor(c *gin.Context) (int64, bool) {
	userID, _ := c.Get("user_id")
	role, _ := c.Get("role")
	id, _ := userID.(int64)
	return id, role == string(domain.RoleAdmin)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.UserID, _ = actor(c)

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"booking": b},
	})
}

func (h *Handler) MyBookings(c *gin.Context) {
	userID, _ := actor(c)
	rows, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"bookings": rows}})
}

func (h *Handler) ListAll(c *gin.Context) {
	rows, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"bookings": rows}})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	userID, isAdmin := actor(c)
	if b.UserID != userID && !isAdmin {
		fail(c, http.StatusForbidden, "FORBIDDEN", "Booking belongs to another user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"booking": b}})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	userID, isAdmin := actor(c)
	b, err := h.service.CancelBooking(c.Request.Context(), id, userID, isAdmin)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"booking": b}})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"booking": b}})
}

func (h *Handler) RoomAvailability(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room id")
		return
	}

	var q AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in and check_out are required")
		return
	}

	ok, err := h.service.IsAvailable(c.Request.Context(), roomID, q.CheckIn, q.CheckOut)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"room_id":   roomID,
			"check_in":  q.CheckIn,
			"check_out": q.CheckOut,
			"available": ok,
		},
	})
}

func writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInterval):
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Check-out date must be after check-in date")
	case errors.Is(err, ErrInvalidRate):
		fail(c, http.StatusUnprocessableEntity, "ROOM_MISCONFIGURED", "Room rate is not configured")
	case errors.Is(err, ErrRoomNotFound):
		fail(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
	case errors.Is(err, ErrNotFound):
		fail(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrConflict):
		fail(c, http.StatusConflict, "BOOKING_CONFLICT", "Room is already booked for the selected dates")
	case errors.Is(err, ErrRoomUnavailable):
		fail(c, http.StatusConflict, "ROOM_UNAVAILABLE", "Room is not available")
	case errors.Is(err, ErrForbidden):
		fail(c, http.StatusForbidden, "FORBIDDEN", "Booking belongs to another user")
	case errors.Is(err, ErrInvalidState):
		fail(c, http.StatusConflict, "INVALID_STATE", "Booking status does not allow this operation")
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
