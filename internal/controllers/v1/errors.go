package v1

import (
	"errors"
	"net/http"

	"github.com/dds-tracker/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"A human readable error message"` // This field contains a human readable error message
}

// status returns the appropriate HTTP status code for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Record errors
var (
	errDateRange = errors.New("the dateFrom parameter must not be after the dateTo parameter")
)
