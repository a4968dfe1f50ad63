package parser

import (
	"time"

	"travelfuse/internal/domain"
)

// Context is the immutable parsing context shared by every parser of one
// invocation. It is passed by value and never mutated.
type Context struct {
	Destination string
	StartDate   time.Time
	TotalDays   int
}

// NewContext derives a Context from plan metadata. An unparseable start date
// leaves StartDate zero.
func NewContext(meta domain.PlanMetadata) Context {
	pctx := Context{
		Destination: meta.Destination,
		TotalDays:   meta.TotalDays,
	}
	if meta.StartDate != "" {
		if t, err := time.Parse("2006-01-02", meta.StartDate); err == nil {
			pctx.StartDate = t
		}
	}
	return pctx
}
