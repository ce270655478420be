// Package orchestrator drives full and per-source scrape runs: it fans out
// to the site scrapers, normalizes what they return, and persists the
// results, keeping one failing source from sinking the rest.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"autoverse/internal/llm"
	"autoverse/internal/models"
)

var (
	// ErrUnknownSource is returned when a scrape is requested for a source
	// name no registered scraper carries.
	ErrUnknownSource = errors.New("unknown source")

	// ErrScrapeInProgress is returned when a full run is requested while a
	// previous one is still running.
	ErrScrapeInProgress = errors.New("scrape already in progress")
)

// Source is one scrapable site.
type Source interface {
	Name() string
	Scrape(ctx context.Context) ([]*models.Vehicle, error)
}

// Sink is where normalized vehicles land.
type Sink interface {
	Upsert(v *models.Vehicle) error
	Stats() (*models.ScrapeStats, error)
	All() ([]*models.Vehicle, error)
	LogSession(session *models.ScrapeSession) error
}

// Orchestrator coordinates scrape runs across all registered sources.
type Orchestrator struct {
	sources    []Source
	normalizer *llm.Service
	sink       Sink
	running    atomic.Bool
}

// New creates an orchestrator. A nil sink disables persistence and the
// scrape log; stats then report zeros.
func New(sources []Source, normalizer *llm.Service, sink Sink) *Orchestrator {
	return &Orchestrator{sources: sources, normalizer: normalizer, sink: sink}
}

// Sources returns the registered source names.
func (o *Orchestrator) Sources() []string {
	names := make([]string, 0, len(o.sources))
	for _, src := range o.sources {
		names = append(names, src.Name())
	}
	return names
}

// ScrapeAll runs every source in sequence and reports a per-run summary.
// A source that fails is recorded in the summary errors and skipped; the
// run only fails as a whole when no source produced anything or nothing
// could be persisted.
func (o *Orchestrator) ScrapeAll(ctx context.Context) (*models.ScrapeSummary, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrScrapeInProgress
	}
	defer o.running.Store(false)

	start := time.Now()
	log.Printf("starting full scrape across %d sources", len(o.sources))

	var collected []*models.Vehicle
	var sourceErrors []models.SourceError

	for _, src := range o.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		vehicles, err := src.Scrape(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			log.Printf("source %s failed: %v", src.Name(), err)
			sourceErrors = append(sourceErrors, models.SourceError{Source: src.Name(), Error: err.Error()})
			continue
		}
		log.Printf("source %s produced %d vehicles", src.Name(), len(vehicles))
		collected = append(collected, vehicles...)
	}

	if len(collected) == 0 {
		err := fmt.Errorf("all %d sources failed, nothing to save", len(o.sources))
		o.logSession("failed", 0, start, sourceErrors)
		return nil, err
	}

	normalized := o.normalize(ctx, collected)

	saved, saveErrors := o.save(normalized)
	sourceErrors = append(sourceErrors, saveErrors...)

	if saved == 0 && o.sink != nil {
		err := fmt.Errorf("failed to save any of %d vehicles", len(normalized))
		o.logSession("failed", 0, start, sourceErrors)
		return nil, err
	}

	status := "success"
	if len(sourceErrors) > 0 {
		status = "partial"
	}
	o.logSession(status, saved, start, sourceErrors)

	summary := &models.ScrapeSummary{
		Success:         true,
		VehiclesScraped: saved,
		DurationMinutes: time.Since(start).Minutes(),
		Errors:          sourceErrors,
	}
	log.Printf("full scrape finished: %d vehicles in %.1f minutes (%d source errors)",
		saved, summary.DurationMinutes, len(sourceErrors))
	return summary, nil
}

// ScrapeSource runs a single source by name. Unlike a full run, a source
// failure here is returned to the caller.
func (o *Orchestrator) ScrapeSource(ctx context.Context, name string) (*models.ScrapeSummary, error) {
	var source Source
	for _, src := range o.sources {
		if src.Name() == name {
			source = src
			break
		}
	}
	if source == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}

	start := time.Now()
	vehicles, err := source.Scrape(ctx)
	if err != nil {
		return nil, fmt.Errorf("source %s failed: %w", name, err)
	}

	normalized := o.normalize(ctx, vehicles)
	saved, saveErrors := o.save(normalized)

	return &models.ScrapeSummary{
		Success:         true,
		VehiclesScraped: saved,
		DurationMinutes: time.Since(start).Minutes(),
		Errors:          saveErrors,
	}, nil
}

// RefreshSpecs re-runs normalization over every stored vehicle and writes
// the results back. Useful after enrichment is first configured, or when
// the catalog carries stale sentinel-heavy spec sheets.
func (o *Orchestrator) RefreshSpecs(ctx context.Context) (int, error) {
	if o.sink == nil {
		return 0, errors.New("no catalog configured")
	}
	if !o.running.CompareAndSwap(false, true) {
		return 0, ErrScrapeInProgress
	}
	defer o.running.Store(false)

	vehicles, err := o.sink.All()
	if err != nil {
		return 0, fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Printf("refreshing specs for %d vehicles", len(vehicles))

	refreshed := 0
	for _, v := range o.normalize(ctx, vehicles) {
		if err := o.sink.Upsert(v); err != nil {
			log.Printf("failed to save refreshed %s: %v", v.Slug, err)
			continue
		}
		refreshed++
	}
	return refreshed, nil
}

// GetStats reports catalog counters. It never fails; without a sink or on
// a read error it returns zeros.
func (o *Orchestrator) GetStats() *models.ScrapeStats {
	if o.sink == nil {
		return &models.ScrapeStats{}
	}
	stats, err := o.sink.Stats()
	if err != nil {
		log.Printf("failed to read catalog stats: %v", err)
		return &models.ScrapeStats{}
	}
	return stats
}

// Running reports whether a full run or refresh is currently in flight.
func (o *Orchestrator) Running() bool {
	return o.running.Load()
}

func (o *Orchestrator) normalize(ctx context.Context, vehicles []*models.Vehicle) []*models.Vehicle {
	if o.normalizer == nil {
		return vehicles
	}
	return o.normalizer.ProcessBatch(ctx, vehicles)
}

// save upserts each vehicle individually so one bad record cannot void the
// batch. Returns the number saved plus per-record errors.
func (o *Orchestrator) save(vehicles []*models.Vehicle) (int, []models.SourceError) {
	if o.sink == nil {
		return len(vehicles), nil
	}

	saved := 0
	var errs []models.SourceError
	for _, v := range vehicles {
		if err := o.sink.Upsert(v); err != nil {
			log.Printf("failed to save %s: %v", v.Slug, err)
			errs = append(errs, models.SourceError{Source: v.ScrapedFrom, Error: fmt.Sprintf("save %s: %v", v.Slug, err)})
			continue
		}
		saved++
	}
	return saved, errs
}

func (o *Orchestrator) logSession(status string, saved int, start time.Time, errs []models.SourceError) {
	if o.sink == nil {
		return
	}
	session := &models.ScrapeSession{
		Status:          status,
		VehiclesScraped: saved,
		DurationMinutes: time.Since(start).Minutes(),
		Errors:          errs,
		StartedAt:       start,
		CompletedAt:     time.Now(),
	}
	if err := o.sink.LogSession(session); err != nil {
		log.Printf("failed to write scrape log: %v", err)
	}
}
