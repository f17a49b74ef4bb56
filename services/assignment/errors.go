package assignment

import (
	"errors"
	"fmt"
)

// ErrNoEligibleProvider means the eligible set was empty. This is not a
// failure of the booking itself: callers surface it as "manual assignment
// required" and leave the booking in its prior status.
var ErrNoEligibleProvider = errors.New("no eligible provider")

// ErrProviderUnavailable is returned by manual assignment when the chosen
// provider is inactive or busy.
var ErrProviderUnavailable = errors.New("provider is not available")

// AssignError carries a machine-readable code for assignment failures that
// are neither "no candidate" nor repository errors.
type AssignError struct {
	Code    string
	Message string
}

func (e *AssignError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
