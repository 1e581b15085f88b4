package handlers

import (
	"errors"
	"net/http"

	"patitas/models"
	"patitas/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes availability and the booking-session workflow.
type BookingHandler struct {
	Reservations booking.ReservationService
	Sessions     booking.SessionService
}

// bookingErrorStatus maps a booking error to its HTTP status.
func bookingErrorStatus(err error) int {
	var be *booking.Error
	if !errors.As(err, &be) {
		return http.StatusInternalServerError
	}
	switch {
	case errors.Is(err, booking.ErrInvalidSelection):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrSlotTaken), errors.Is(err, booking.ErrConfirmInFlight):
		return http.StatusConflict
	case errors.Is(err, booking.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, booking.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortBookingError(c *gin.Context, logger *zap.Logger, err error) {
	status := bookingErrorStatus(err)
	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		logger.Error("Booking operation failed", zap.Error(err))
	}
	var be *booking.Error
	if errors.As(err, &be) {
		c.JSON(status, gin.H{"error": be.Message, "code": be.Code})
		return
	}
	c.JSON(status, gin.H{"error": "Booking operation failed"})
}

// Availability handles GET /api/booking/availability.
func (h *BookingHandler) Availability(c *gin.Context) {
	logger := getLogger(c)

	days, err := h.Reservations.Availability(c.Request.Context())
	if err != nil {
		abortBookingError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

// OpenSession handles POST /api/booking/session.
func (h *BookingHandler) OpenSession(c *gin.Context) {
	logger := getLogger(c)

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	session, err := h.Sessions.Open(c.Request.Context(), userID.(string), req.Date)
	if err != nil {
		abortBookingError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// UpdateSession handles PUT /api/booking/session/:id.
func (h *BookingHandler) UpdateSession(c *gin.Context) {
	logger := getLogger(c)

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Time            models.TimeOfDay       `json:"time" binding:"required"`
		AppointmentType models.AppointmentType `json:"appointmentType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	session, err := h.Sessions.UpdateSelection(
		c.Request.Context(), userID.(string), c.Param("id"), req.Time, req.AppointmentType)
	if err != nil {
		abortBookingError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// ConfirmSession handles POST /api/booking/session/:id/confirm.
func (h *BookingHandler) ConfirmSession(c *gin.Context) {
	logger := getLogger(c)

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	slot, session, err := h.Sessions.Confirm(c.Request.Context(), userID.(string), c.Param("id"))
	if err != nil {
		// A lost race returns the refreshed session so the client can offer
		// the remaining times without reopening.
		if errors.Is(err, booking.ErrSlotTaken) && session != nil {
			var be *booking.Error
			errors.As(err, &be)
			c.JSON(http.StatusConflict, gin.H{
				"error":   be.Message,
				"code":    be.Code,
				"session": session,
			})
			return
		}
		abortBookingError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// CancelSession handles DELETE /api/booking/session/:id.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	logger := getLogger(c)

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.Sessions.Cancel(c.Request.Context(), userID.(string), c.Param("id")); err != nil {
		abortBookingError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session cancelled"})
}
