// Package llm normalizes scraped vehicle records: it converts raw fields
// into presentable catalog entries, delegating to an external
// text-generation service when one is configured and falling back to
// deterministic rules when it is not. Normalization never fails; at worst
// a record passes through with rule-based copy.
package llm

import (
	"context"
	"log"
	"time"

	"autoverse/internal/models"
)

// batchDelay spaces out enrichment calls to stay under provider rate
// limits.
const batchDelay = 100 * time.Millisecond

// Service is the field normalizer.
type Service struct {
	enricher Enricher
	delay    time.Duration
}

// NewService creates a normalizer. A nil enricher disables enrichment;
// every record then takes the deterministic fallback path.
func NewService(enricher Enricher) *Service {
	return &Service{enricher: enricher, delay: batchDelay}
}

// Enabled reports whether an enrichment service is configured.
func (s *Service) Enabled() bool {
	return s.enricher != nil
}

// Process normalizes a single record. The input is not mutated; the
// returned record carries pros/cons, a description and a merged spec map.
func (s *Service) Process(ctx context.Context, v *models.Vehicle) *models.Vehicle {
	if s.enricher == nil {
		return s.processFallback(v)
	}

	enr, err := s.enricher.Generate(ctx, v)
	if err != nil {
		log.Printf("enrichment failed for %s, using fallback: %v", v.DisplayName(), err)
		return s.processFallback(v)
	}
	return applyEnrichment(v, enr)
}

// ProcessBatch normalizes records one at a time, pausing between records
// while enrichment is active. A record that cannot be normalized is passed
// through unmodified rather than dropped, so the orchestrator can still
// persist it.
func (s *Service) ProcessBatch(ctx context.Context, vehicles []*models.Vehicle) []*models.Vehicle {
	log.Printf("normalizing batch of %d vehicles (enrichment enabled: %v)", len(vehicles), s.Enabled())

	results := make([]*models.Vehicle, 0, len(vehicles))
	for i, v := range vehicles {
		select {
		case <-ctx.Done():
			// Cancelled mid-batch: pass the remainder through raw.
			results = append(results, vehicles[i:]...)
			return results
		default:
		}

		results = append(results, s.Process(ctx, v))

		if s.Enabled() && i < len(vehicles)-1 {
			time.Sleep(s.delay)
		}
	}
	return results
}

// applyEnrichment merges generated output over the scraped record.
// Enrichment wins on spec key collisions, including over non-sentinel
// scraped values; the refresh-specs maintenance flow depends on that to
// rewrite stale spec sheets in place.
func applyEnrichment(v *models.Vehicle, enr *Enrichment) *models.Vehicle {
	out := *v
	out.ProsCons = &models.ProsCons{
		Pros: truncate(enr.ProsCons.Pros, 5),
		Cons: truncate(enr.ProsCons.Cons, 5),
	}
	out.Description = enr.Description
	if out.Description == "" {
		out.Description = fallbackDescription(v)
	}

	specs := cloneSpecs(v.Specs)
	for k, val := range enr.Specs {
		if val != "" {
			specs[k] = val
		}
	}
	fillSpecGaps(specs, v.Type)
	out.Specs = specs
	return &out
}

func (s *Service) processFallback(v *models.Vehicle) *models.Vehicle {
	out := *v
	out.ProsCons = fallbackProsCons(v)
	out.Description = fallbackDescription(v)

	specs := cloneSpecs(v.Specs)
	fillSpecGaps(specs, v.Type)
	out.Specs = specs
	return &out
}

func cloneSpecs(specs map[string]string) map[string]string {
	out := make(map[string]string, len(specs))
	for k, v := range specs {
		out[k] = v
	}
	return out
}
