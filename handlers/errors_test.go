package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	bookingRepo "localserve/database/repository/booking"
	providerRepo "localserve/database/repository/provider"
	"localserve/models"
	"localserve/services/assignment"
	"localserve/services/booking"
	"localserve/services/provider"

	"github.com/gin-gonic/gin"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &booking.ValidationError{Field: "service_id", Message: "required"}, http.StatusBadRequest},
		{"unavailable address", &booking.UnavailableError{Reason: "outside service area"}, http.StatusUnprocessableEntity},
		{"no branches", booking.ErrNoBranches, http.StatusUnprocessableEntity},
		{"signature mismatch", booking.ErrSignatureMismatch, http.StatusBadRequest},
		{"no gateway order", booking.ErrNoGatewayOrder, http.StatusConflict},
		{"payment already failed", booking.ErrPaymentFailed, http.StatusConflict},
		{"illegal transition", &booking.InvalidTransitionError{From: models.BookingCreated, To: models.BookingCompleted}, http.StatusConflict},
		{"concurrent modification", &booking.ConflictError{BookingID: "bk1"}, http.StatusConflict},
		{"no eligible provider", assignment.ErrNoEligibleProvider, http.StatusUnprocessableEntity},
		{"provider unavailable", assignment.ErrProviderUnavailable, http.StatusUnprocessableEntity},
		{"assignment conflict", &assignment.AssignError{Code: "conflict", Message: "moved on"}, http.StatusConflict},
		{"not assigned", provider.ErrNotAssigned, http.StatusConflict},
		{"booking not found", bookingRepo.ErrNotFound, http.StatusNotFound},
		{"provider not found", providerRepo.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", errors.New("lookup: " + bookingRepo.ErrNotFound.Error()), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			respondServiceError(c, tc.err)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}
