package handlers

import (
	"net/http"

	"localserve/models"
	"localserve/services/provider"

	"github.com/gin-gonic/gin"
)

// ProviderHandler exposes the provider-facing endpoints.
type ProviderHandler struct {
	Svc provider.ProviderService
}

func NewProviderHandler(svc provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Svc: svc}
}

// GetProvider handles GET /api/providers/:id.
func (h *ProviderHandler) GetProvider(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// AcceptAssignment handles POST /api/providers/:id/bookings/:bookingId/accept.
func (h *ProviderHandler) AcceptAssignment(c *gin.Context) {
	if err := h.Svc.AcceptAssignment(c.Request.Context(), c.Param("id"), c.Param("bookingId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

// DeclineAssignment handles POST /api/providers/:id/bookings/:bookingId/decline.
func (h *ProviderHandler) DeclineAssignment(c *gin.Context) {
	if err := h.Svc.DeclineAssignment(c.Request.Context(), c.Param("id"), c.Param("bookingId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "declined"})
}

// UpdateAvailability handles PUT /api/providers/:id/availability.
func (h *ProviderHandler) UpdateAvailability(c *gin.Context) {
	var req models.ProviderAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Available == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	p, err := h.Svc.SetAvailability(c.Request.Context(), c.Param("id"), *req.Available)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateLocation handles PUT /api/providers/:id/location.
func (h *ProviderHandler) UpdateLocation(c *gin.Context) {
	var req models.ProviderLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.UpdateLocation(c.Request.Context(), c.Param("id"), req.Latitude, req.Longitude); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
