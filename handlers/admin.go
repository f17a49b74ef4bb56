package handlers

import (
	"net/http"
	"strconv"
	"time"

	"localserve/models"
	"localserve/services/booking"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the admin override surface: listing, manual
// assignment and status transitions.
type AdminHandler struct {
	Svc booking.BookingService
}

func NewAdminHandler(svc booking.BookingService) *AdminHandler {
	return &AdminHandler{Svc: svc}
}

// ListBookings handles GET /api/admin/bookings with optional status,
// from/to (RFC 3339) and skip/limit query parameters.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	var q models.ListBookingsQuery

	if status := c.Query("status"); status != "" {
		s := models.BookingStatus(status)
		if !models.ValidBookingStatus(s) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status", "details": status})
			return
		}
		q.Status = s
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date", "details": err.Error()})
			return
		}
		q.CreatedFrom = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date", "details": err.Error()})
			return
		}
		q.CreatedTo = &t
	}
	skip, err := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)
	if err != nil || skip < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid skip", "details": c.Query("skip")})
		return
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit", "details": c.Query("limit")})
		return
	}
	q.Skip, q.Limit = skip, limit

	bookings, total, err := h.Svc.ListBookings(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    total,
		"skip":     q.Skip,
		"limit":    q.Limit,
	})
}

// ManualAssign handles POST /api/admin/bookings/:id/assign.
func (h *AdminHandler) ManualAssign(c *gin.Context) {
	var req models.ManualAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, p, err := h.Svc.ManualAssign(c.Request.Context(), c.Param("id"), req.ProviderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b, "provider": p})
}

// UpdateStatus handles PUT /api/admin/bookings/:id/status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
