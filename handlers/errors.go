package handlers

import (
	"errors"
	"net/http"

	bookingRepo "localserve/database/repository/booking"
	branchRepo "localserve/database/repository/branch"
	catalogRepo "localserve/database/repository/catalog"
	providerRepo "localserve/database/repository/provider"
	"localserve/services/assignment"
	"localserve/services/booking"
	"localserve/services/provider"
	"localserve/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service-layer errors onto HTTP responses so every
// handler reports the error taxonomy consistently.
func respondServiceError(c *gin.Context, err error) {
	var (
		validationErr *booking.ValidationError
		unavailErr    *booking.UnavailableError
		transitionErr *booking.InvalidTransitionError
		conflictErr   *booking.ConflictError
		assignErr     *assignment.AssignError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", validationErr.Error())
	case errors.As(err, &unavailErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Service unavailable at this address", unavailErr.Reason)
	case errors.Is(err, booking.ErrNoBranches):
		utils.JSONError(c, http.StatusUnprocessableEntity, "No service centers available", "")
	case errors.Is(err, booking.ErrSignatureMismatch):
		utils.JSONError(c, http.StatusBadRequest, "Payment verification failed", "signature mismatch")
	case errors.Is(err, booking.ErrNoGatewayOrder):
		utils.JSONError(c, http.StatusConflict, "No payment order", "retry payment order creation first")
	case errors.Is(err, booking.ErrPaymentFailed):
		utils.JSONError(c, http.StatusConflict, "Payment already failed", err.Error())
	case errors.As(err, &transitionErr):
		utils.JSONError(c, http.StatusConflict, "Illegal status transition", transitionErr.Error())
	case errors.As(err, &conflictErr):
		utils.JSONError(c, http.StatusConflict, "Concurrent modification", conflictErr.Error())
	case errors.Is(err, assignment.ErrNoEligibleProvider):
		utils.JSONError(c, http.StatusUnprocessableEntity, "No eligible provider", "manual assignment required")
	case errors.Is(err, assignment.ErrProviderUnavailable):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Provider unavailable", err.Error())
	case errors.As(err, &assignErr):
		utils.JSONError(c, http.StatusConflict, "Assignment failed", assignErr.Message)
	case errors.Is(err, provider.ErrNotAssigned):
		utils.JSONError(c, http.StatusConflict, "Booking not assigned to provider", "")
	case errors.Is(err, bookingRepo.ErrNotFound),
		errors.Is(err, providerRepo.ErrNotFound),
		errors.Is(err, branchRepo.ErrNotFound),
		errors.Is(err, catalogRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
