package handlers

import (
	"errors"
	"net/http"

	"mechradii/middleware"
	"mechradii/models"
	"mechradii/services/booking"
	"mechradii/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes booking lifecycle endpoints.
type BookingHandler struct {
	BookingService booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{BookingService: svc}
}

func bookingError(c *gin.Context, err error) {
	var ve booking.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
	case errors.Is(err, booking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, booking.ErrMechanicNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Mechanic not found"})
	case errors.Is(err, booking.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized for this booking"})
	case errors.Is(err, booking.ErrIllegalTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking status no longer allows this action"})
	case errors.Is(err, booking.ErrBookingClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking is closed"})
	default:
		utils.GetLogger().Error("Booking request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Request failed, please try again"})
	}
}

// CreateBookingHandler handles POST /bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	var req booking.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.BookingService.CreateBooking(userID, req)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetBookingHandler handles GET /bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}
	b, err := h.BookingService.GetBooking(userID, c.Param("id"))
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMyBookingsHandler handles GET /bookings.
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}
	bookings, err := h.BookingService.ListUserBookings(userID)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ListInboxHandler handles GET /bookings/inbox for the signed-in mechanic.
func (h *BookingHandler) ListInboxHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}
	bookings, err := h.BookingService.ListMechanicInbox(userID)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateStatusHandler handles PUT /bookings/:id/status with a target status
// of accepted, rejected, or completed.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		updated *models.Booking
		err     error
	)
	switch req.Status {
	case models.StatusAccepted:
		updated, err = h.BookingService.AcceptBooking(userID, c.Param("id"))
	case models.StatusRejected:
		updated, err = h.BookingService.RejectBooking(userID, c.Param("id"))
	case models.StatusCompleted:
		updated, err = h.BookingService.CompleteBooking(userID, c.Param("id"))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown target status"})
		return
	}
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ReplyHandler handles POST /bookings/:id/reply.
func (h *BookingHandler) ReplyHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.BookingService.ReplyToBooking(userID, c.Param("id"), req.Text)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
