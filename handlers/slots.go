package handlers

import (
	"net/http"
	"time"

	"slotserve/models"
	"slotserve/services/slotlock"

	"github.com/gin-gonic/gin"
)

// SlotHandler exposes the lock table operations to the booking API layer.
type SlotHandler struct {
	Locks slotlock.LockTable
	TTL   time.Duration
}

// NewSlotHandler builds a handler over the given lock table.
func NewSlotHandler(locks slotlock.LockTable, ttl time.Duration) *SlotHandler {
	return &SlotHandler{Locks: locks, TTL: ttl}
}

type slotRequest struct {
	VendorID string `json:"vendorId" binding:"required"`
	StaffID  string `json:"staffId"`
	Date     string `json:"date" binding:"required"`
	TimeSlot string `json:"timeSlot" binding:"required"`
	Token    string `json:"token"`
}

func (r slotRequest) key() models.SlotKey {
	return models.SlotKey{
		VendorID: r.VendorID,
		StaffID:  r.StaffID,
		Date:     r.Date,
		TimeSlot: r.TimeSlot,
	}
}

// AcquireSlot attempts to take a slot lock for the checkout flow. Contention
// is reported as 409: the slot is simply no longer available.
func (h *SlotHandler) AcquireSlot(c *gin.Context) {
	var req slotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ttl := h.TTL
	if ttl <= 0 {
		ttl = slotlock.DefaultTTL
	}

	token, ok, err := h.Locks.Acquire(c.Request.Context(), req.key(), ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to acquire slot lock", "details": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "slot no longer available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": time.Now().Add(ttl),
	})
}

// ReleaseSlot releases a held slot lock. A mismatched or stale token releases
// nothing and reports released=false.
func (h *SlotHandler) ReleaseSlot(c *gin.Context) {
	var req slotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	released, err := h.Locks.Release(c.Request.Context(), req.key(), req.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to release slot lock", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"released": released})
}

// SlotStatus reports whether a live lock exists for the slot.
func (h *SlotHandler) SlotStatus(c *gin.Context) {
	key := models.SlotKey{
		VendorID: c.Query("vendorId"),
		StaffID:  c.Query("staffId"),
		Date:     c.Query("date"),
		TimeSlot: c.Query("timeSlot"),
	}
	if key.VendorID == "" || key.Date == "" || key.TimeSlot == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vendorId, date and timeSlot are required"})
		return
	}

	locked, err := h.Locks.IsValid(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check slot lock", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"locked": locked})
}
