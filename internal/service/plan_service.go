package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"travelfuse/internal/domain"
	"travelfuse/internal/parser"
	"travelfuse/internal/planexport"
	"travelfuse/internal/planner"
	"travelfuse/internal/timeline"
)

// ParsePlanInput is the DTO for parsing an itinerary document.
type ParsePlanInput struct {
	Content  string
	Metadata domain.PlanMetadata
}

// ExportOutput is a rendered plan ready to be served as a download.
type ExportOutput struct {
	Filename    string
	ContentType string
	Body        []byte
	Result      *planner.Result
}

// PlanService defines the plan parsing and export operations.
type PlanService interface {
	ParsePlan(ctx context.Context, input ParsePlanInput) (*planner.Result, error)
	ParseTimeline(ctx context.Context, input ParsePlanInput) (*parser.Outcome[[]domain.TimelineActivity], error)
	ExportPlan(ctx context.Context, input ParsePlanInput, format planexport.Format) (*ExportOutput, error)
}

type planService struct {
	planner       *planner.Planner
	timeline      *timeline.Parser
	maxInputRunes int
	now           func() time.Time
}

// NewPlanService creates a new PlanService. maxInputRunes <= 0 disables the size check.
func NewPlanService(p *planner.Planner, tl *timeline.Parser, maxInputRunes int) PlanService {
	if tl == nil {
		tl = timeline.Default()
	}
	return &planService{planner: p, timeline: tl, maxInputRunes: maxInputRunes, now: time.Now}
}

func (s *planService) ParsePlan(ctx context.Context, input ParsePlanInput) (*planner.Result, error) {
	if err := s.validate(input, true); err != nil {
		return nil, err
	}
	log.Printf("planService.ParsePlan: destination=%s runes=%d", input.Metadata.Destination, utf8.RuneCountInString(input.Content))

	res := s.planner.Parse(ctx, input.Content, input.Metadata)
	if !res.Succeeded {
		log.Printf("planService.ParsePlan: parse aborted for %s: %s", input.Metadata.Destination, strings.Join(res.Errors, "; "))
	}
	return res, nil
}

func (s *planService) ParseTimeline(_ context.Context, input ParsePlanInput) (*parser.Outcome[[]domain.TimelineActivity], error) {
	if err := s.validate(input, false); err != nil {
		return nil, err
	}
	text := parser.Preprocess(input.Content)
	out := s.timeline.Parse(text, parser.NewContext(input.Metadata))
	return &out, nil
}

func (s *planService) ExportPlan(ctx context.Context, input ParsePlanInput, format planexport.Format) (*ExportOutput, error) {
	res, err := s.ParsePlan(ctx, input)
	if err != nil {
		return nil, err
	}
	if res.Data == nil {
		return nil, fmt.Errorf("exporting plan: %s", strings.Join(res.Errors, "; "))
	}

	var buf bytes.Buffer
	if err := planexport.Write(&buf, res.Data, format); err != nil {
		return nil, fmt.Errorf("exporting plan: %w", err)
	}
	title := res.Data.Title
	if title == "" {
		title = res.Data.Destination
	}
	return &ExportOutput{
		Filename:    planexport.BuildFilename(title, format, s.now()),
		ContentType: format.ContentType(),
		Body:        buf.Bytes(),
		Result:      res,
	}, nil
}

func (s *planService) validate(input ParsePlanInput, needDestination bool) error {
	if strings.TrimSpace(input.Content) == "" {
		return domain.ErrEmptyDocument
	}
	if s.maxInputRunes > 0 && utf8.RuneCountInString(input.Content) > s.maxInputRunes {
		return domain.ErrDocumentTooLarge
	}
	if needDestination && strings.TrimSpace(input.Metadata.Destination) == "" {
		return domain.ErrMissingDestination
	}
	if input.Metadata.StartDate != "" {
		if _, err := time.Parse("2006-01-02", input.Metadata.StartDate); err != nil {
			return domain.ErrInvalidStartDate
		}
	}
	return nil
}
