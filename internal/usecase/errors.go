package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is a user-correctable failure carrying its response status.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

var (
	// 400
	ErrDishNotFound  = NewHTTPError(http.StatusBadRequest, "Dish does not exist")
	ErrNoOpenOrder   = NewHTTPError(http.StatusBadRequest, "There is no open order")
	ErrDishNotInCart = NewHTTPError(http.StatusBadRequest, "Dish is not in the order")
	ErrInvalidAction = NewHTTPError(http.StatusBadRequest, "Invalid action")

	// 401
	ErrUnauthorized = NewHTTPError(http.StatusUnauthorized, "unauthorized")
	// 403
	ErrForbidden = NewHTTPError(http.StatusForbidden, "forbidden")
	// 404
	ErrNotFound = NewHTTPError(http.StatusNotFound, "not found")
	// 409
	ErrConflict = NewHTTPError(http.StatusConflict, "conflict")
)

// ErrMultipleOpenOrders means the one-open-order-per-owner invariant is
// broken in storage. It is not user-correctable and renders as 500.
var ErrMultipleOpenOrders = errors.New("multiple open orders for owner")
