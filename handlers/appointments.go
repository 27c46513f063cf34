package handlers

import (
	"errors"
	"net/http"

	"slotserve/models"
	"slotserve/services/reservation"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler exposes the reservation lifecycle operations.
type AppointmentHandler struct {
	Svc reservation.ReservationService
}

// NewAppointmentHandler builds a handler over the reservation service.
func NewAppointmentHandler(svc reservation.ReservationService) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc}
}

// CreateProvisional persists a temporarily-locked appointment for a held slot.
func (h *AppointmentHandler) CreateProvisional(c *gin.Context) {
	var input struct {
		Token       string             `json:"token" binding:"required"`
		Appointment models.Appointment `json:"appointment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Svc.CreateProvisional(c.Request.Context(), input.Appointment, input.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create provisional appointment", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// ConfirmAppointment promotes a provisional appointment after payment. The two
// rejection causes get distinct statuses: a token mismatch points at stale
// client state, an expired hold just means the user should pick a slot again.
func (h *AppointmentHandler) ConfirmAppointment(c *gin.Context) {
	id := c.Param("id")
	var input struct {
		Token   string                `json:"token" binding:"required"`
		Payment models.PaymentDetails `json:"payment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Svc.Confirm(c.Request.Context(), id, input.Token, input.Payment)
	switch {
	case errors.Is(err, reservation.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
	case errors.Is(err, reservation.ErrOwnershipMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": "reservation token mismatch"})
	case errors.Is(err, reservation.ErrHoldExpired):
		c.JSON(http.StatusGone, gin.H{"error": "reservation hold expired, please select a slot again"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm appointment", "details": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"appointment": appt})
	}
}

// CancelAppointment deletes a provisional appointment. Cancelling a record
// that is already gone is a successful no-op with cancelled=false.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	id := c.Param("id")
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	cancelled, err := h.Svc.Cancel(c.Request.Context(), id, token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel appointment", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": cancelled})
}
