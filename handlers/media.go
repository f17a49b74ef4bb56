package handlers

import (
	"fmt"
	"net/http"

	bookingRepo "localserve/database/repository/booking"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
)

// MediaHandler uploads before/after photos for a booking to Cloudinary and
// records the URLs on the booking's audit fields.
type MediaHandler struct {
	Cld      *cloudinary.Cloudinary
	Bookings bookingRepo.BookingRepository
}

func NewMediaHandler(cld *cloudinary.Cloudinary, bookings bookingRepo.BookingRepository) *MediaHandler {
	return &MediaHandler{Cld: cld, Bookings: bookings}
}

// UploadPhoto handles POST /api/bookings/:id/media/:phase with a multipart
// "photo" field. phase is "before" or "after".
func (h *MediaHandler) UploadPhoto(c *gin.Context) {
	phase := c.Param("phase")
	if phase != "before" && phase != "after" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phase must be before or after"})
		return
	}

	bookingID := c.Param("id")
	if _, err := h.Bookings.GetByID(bookingID); err != nil {
		respondServiceError(c, err)
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing photo field", "details": err.Error()})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable photo", "details": err.Error()})
		return
	}
	defer file.Close()

	result, err := h.Cld.Upload.Upload(c.Request.Context(), file, uploader.UploadParams{
		Folder: fmt.Sprintf("bookings/%s/%s", bookingID, phase),
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "media upload failed", "details": err.Error()})
		return
	}

	if err := h.Bookings.AppendMediaRef(bookingID, phase, result.SecureURL); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": result.SecureURL})
}
