package domain

import "errors"

var (
	ErrEmptyDocument         = errors.New("itinerary document is empty")
	ErrDocumentTooLarge      = errors.New("itinerary document exceeds maximum allowed size")
	ErrMissingDestination    = errors.New("destination is required")
	ErrInvalidStartDate      = errors.New("start date must be formatted as YYYY-MM-DD")
	ErrUnsupportedFormat     = errors.New("unsupported export format")
	ErrUnknownModule         = errors.New("unknown plan module")
	ErrEnrichmentUnavailable = errors.New("enrichment data unavailable")
	ErrDestinationNotFound   = errors.New("destination not found in enrichment dataset")
)
