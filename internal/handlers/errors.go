package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
)

const (
	msgConfirmationFieldsRequired = "order_id and customer_email are required"
	msgOrderIDRequired            = "order_id is required"
)

// isValidationError checks if an error came from struct validation
func isValidationError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(validator.ValidationErrors)
	return ok
}

// statusFor maps a handler error to its HTTP status. Only missing input is a
// client error; everything else is reported as a server failure.
func statusFor(err error) int {
	if isValidationError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
