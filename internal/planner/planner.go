// Package planner turns a raw itinerary into a fused travel plan: it runs the
// module parsers and the enrichment fetch concurrently, merges their output
// and assembles the plan with its diagnostics.
package planner

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"travelfuse/internal/domain"
	"travelfuse/internal/parser"
	"travelfuse/internal/port"
	"travelfuse/internal/timeline"
)

// LowSuccessWarning is added when fewer than half of the enabled modules succeed.
const LowSuccessWarning = "多个模块解析失败，数据可能不完整"

// Config controls retries and which modules run.
type Config struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	StrictMode     bool
	EnabledModules []domain.ModuleName
}

// DefaultConfig returns three attempts, a 100ms base delay and all modules enabled.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		BaseDelay:      100 * time.Millisecond,
		EnabledModules: append([]domain.ModuleName{}, domain.AllModules...),
	}
}

func (c Config) enabled(m domain.ModuleName) bool {
	for _, e := range c.EnabledModules {
		if e == m {
			return true
		}
	}
	return false
}

// Planner orchestrates one parse per call. It holds no per-call state and is
// safe for concurrent use.
type Planner struct {
	cfg      Config
	modules  parser.Modules
	timeline *timeline.Parser
	fetcher  port.EnrichmentFetcher
	now      func() time.Time
}

// New creates a Planner. A nil timeline parser uses the built-in skeleton
// templates; a nil fetcher behaves as an empty default bundle.
func New(cfg Config, modules parser.Modules, tl *timeline.Parser, fetcher port.EnrichmentFetcher) *Planner {
	if tl == nil {
		tl = timeline.Default()
	}
	return &Planner{
		cfg:      cfg,
		modules:  modules,
		timeline: tl,
		fetcher:  fetcher,
		now:      time.Now,
	}
}

// Parse converts rawText into a fused plan. It never returns nil; a failure
// escaping the sequence yields Succeeded=false with nil Data.
func (p *Planner) Parse(ctx context.Context, rawText string, meta domain.PlanMetadata) (res *Result) {
	start := p.now()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("planner.Planner: parse aborted: %v", r)
			res = abortedResult(fmt.Sprintf("解析失败: %v", parser.PanicError(r)))
		}
	}()

	text := parser.Preprocess(rawText)
	pctx := parser.NewContext(meta)

	var mods ModuleResults
	var bundle *port.EnrichmentBundle
	var fetchErr error

	var g errgroup.Group
	g.Go(func() error {
		mods = p.runModules(text, pctx)
		return nil
	})
	g.Go(func() error {
		bundle, fetchErr = p.fetch(ctx, meta.Destination)
		return nil
	})
	_ = g.Wait()
	parseDone := p.now()

	res = &Result{
		Errors:        []string{},
		Warnings:      []string{},
		ModuleResults: mods,
	}
	enabled := p.aggregate(res)

	if fetchErr != nil {
		log.Printf("planner.Planner: enrichment for %q failed: %v", meta.Destination, fetchErr)
		res.Warnings = append(res.Warnings, fmt.Sprintf("增强数据获取失败: %v", fetchErr))
		bundle = port.EmptyBundle(domain.ProvenanceDefault)
	}
	for _, src := range bundle.Sources() {
		if src == domain.ProvenanceCache {
			res.Performance.CacheHit = true
		}
	}

	m := mergeBundle(mods, bundle)
	tl := p.timeline.Parse(text, pctx)
	res.Errors = append(res.Errors, tl.Errors...)
	res.Warnings = append(res.Warnings, tl.Warnings...)
	res.Succeeded = len(res.Errors) == 0
	var activities []domain.TimelineActivity
	if tl.Data != nil {
		activities = *tl.Data
	}

	plan := &domain.TravelPlan{
		PlanMetadata:   meta,
		Overview:       extractOverview(text),
		Accommodation:  m.accommodation,
		FoodExperience: m.food,
		Transportation: m.transport,
		Tips:           m.tips,
		Timeline:       activities,
		CreatedAt:      p.now().UTC(),
	}
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	res.Data = plan
	res.Provenance = m.provenance

	end := p.now()
	res.Performance.ParsePhaseMs = parseDone.Sub(start).Milliseconds()
	res.Performance.MergePhaseMs = end.Sub(parseDone).Milliseconds()
	res.Performance.TotalMs = end.Sub(start).Milliseconds()
	res.Performance.ModuleCount = enabled
	return res
}

// runModules fans the enabled module parsers out and joins them.
func (p *Planner) runModules(text string, pctx parser.Context) ModuleResults {
	var mr ModuleResults
	var g errgroup.Group
	if p.cfg.enabled(domain.ModuleAccommodation) {
		g.Go(func() error {
			mr.Accommodation = runWithRetry(p.cfg, domain.ModuleAccommodation, p.modules.Accommodation, text, pctx, parser.DefaultAccommodation)
			return nil
		})
	} else {
		mr.Accommodation = parser.Failure[domain.AccommodationData](nil, nil)
	}
	if p.cfg.enabled(domain.ModuleFood) {
		g.Go(func() error {
			mr.Food = runWithRetry(p.cfg, domain.ModuleFood, p.modules.Food, text, pctx, parser.DefaultFood)
			return nil
		})
	} else {
		mr.Food = parser.Failure[domain.FoodExperienceData](nil, nil)
	}
	if p.cfg.enabled(domain.ModuleTransport) {
		g.Go(func() error {
			mr.Transport = runWithRetry(p.cfg, domain.ModuleTransport, p.modules.Transport, text, pctx, parser.DefaultTransportation)
			return nil
		})
	} else {
		mr.Transport = parser.Failure[domain.TransportationData](nil, nil)
	}
	if p.cfg.enabled(domain.ModuleTips) {
		g.Go(func() error {
			mr.Tips = runWithRetry(p.cfg, domain.ModuleTips, p.modules.Tips, text, pctx, parser.DefaultTips)
			return nil
		})
	} else {
		mr.Tips = parser.Failure[domain.TravelTipsData](nil, nil)
	}
	_ = g.Wait()
	return mr
}

// fetch calls the enrichment collaborator, converting a panic into an error.
func (p *Planner) fetch(ctx context.Context, destination string) (bundle *port.EnrichmentBundle, err error) {
	if p.fetcher == nil {
		return port.EmptyBundle(domain.ProvenanceDefault), nil
	}
	defer func() {
		if r := recover(); r != nil {
			bundle, err = nil, fmt.Errorf("enrichment fetch panicked: %w", parser.PanicError(r))
		}
	}()
	bundle, err = p.fetcher.Fetch(ctx, destination)
	if err == nil && bundle == nil {
		err = domain.ErrEnrichmentUnavailable
	}
	return bundle, err
}

// aggregate folds module diagnostics into res in fixed module order and
// returns the number of enabled modules.
func (p *Planner) aggregate(res *Result) int {
	mr := res.ModuleResults
	type diag struct {
		module    domain.ModuleName
		succeeded bool
		errors    []string
		warnings  []string
	}
	diags := []diag{
		{domain.ModuleAccommodation, mr.Accommodation.Succeeded, mr.Accommodation.Errors, mr.Accommodation.Warnings},
		{domain.ModuleFood, mr.Food.Succeeded, mr.Food.Errors, mr.Food.Warnings},
		{domain.ModuleTransport, mr.Transport.Succeeded, mr.Transport.Errors, mr.Transport.Warnings},
		{domain.ModuleTips, mr.Tips.Succeeded, mr.Tips.Errors, mr.Tips.Warnings},
	}

	enabled, succeeded := 0, 0
	for _, d := range diags {
		if !p.cfg.enabled(d.module) {
			continue
		}
		enabled++
		if d.succeeded {
			succeeded++
		}
		res.Errors = append(res.Errors, d.errors...)
		res.Warnings = append(res.Warnings, d.warnings...)
	}
	if enabled > 0 {
		res.Performance.SuccessRate = float64(succeeded) / float64(enabled)
		if res.Performance.SuccessRate < 0.5 {
			res.Warnings = append(res.Warnings, LowSuccessWarning)
		}
	}
	return enabled
}

func abortedResult(msg string) *Result {
	return &Result{
		Succeeded: false,
		Errors:    []string{msg},
		Warnings:  []string{},
		ModuleResults: ModuleResults{
			Accommodation: parser.Failure[domain.AccommodationData]([]string{msg}, nil),
			Food:          parser.Failure[domain.FoodExperienceData]([]string{msg}, nil),
			Transport:     parser.Failure[domain.TransportationData]([]string{msg}, nil),
			Tips:          parser.Failure[domain.TravelTipsData]([]string{msg}, nil),
		},
		Provenance: map[string]string{},
	}
}
