package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelfuse/internal/domain"
	"travelfuse/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrEmptyDocument):
		return http.StatusBadRequest, "EMPTY_DOCUMENT", "itinerary content is empty"
	case errors.Is(err, domain.ErrDocumentTooLarge):
		return http.StatusRequestEntityTooLarge, "DOCUMENT_TOO_LARGE", "itinerary exceeds maximum allowed size"
	case errors.Is(err, domain.ErrMissingDestination):
		return http.StatusBadRequest, "MISSING_DESTINATION", "metadata.destination is required"
	case errors.Is(err, domain.ErrInvalidStartDate):
		return http.StatusBadRequest, "INVALID_START_DATE", "metadata.start_date must be formatted as YYYY-MM-DD"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported export format; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrUnknownModule):
		return http.StatusBadRequest, "UNKNOWN_MODULE", "unknown plan module; allowed: accommodation, food, transport, tips"
	case errors.Is(err, domain.ErrDestinationNotFound):
		return http.StatusNotFound, "DESTINATION_NOT_FOUND", "destination not found in enrichment dataset"
	case errors.Is(err, domain.ErrEnrichmentUnavailable):
		return http.StatusServiceUnavailable, "ENRICHMENT_UNAVAILABLE", "enrichment data is temporarily unavailable"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		log.Printf("[%s] internal error: %v", middleware.GetRequestID(c), err)
	}
	RespondError(c, status, code, msg)
}
