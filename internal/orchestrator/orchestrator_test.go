package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"autoverse/internal/llm"
	"autoverse/internal/models"
)

type stubSource struct {
	name     string
	vehicles []*models.Vehicle
	err      error
	calls    int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Scrape(ctx context.Context) ([]*models.Vehicle, error) {
	s.calls++
	return s.vehicles, s.err
}

type memorySink struct {
	vehicles  map[string]*models.Vehicle
	sessions  []*models.ScrapeSession
	upsertErr error
}

func newMemorySink() *memorySink {
	return &memorySink{vehicles: make(map[string]*models.Vehicle)}
}

func (m *memorySink) Upsert(v *models.Vehicle) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.vehicles[v.Slug] = v
	return nil
}

func (m *memorySink) Stats() (*models.ScrapeStats, error) {
	stats := &models.ScrapeStats{Total: len(m.vehicles)}
	for _, v := range m.vehicles {
		if v.Type == models.TypeCar {
			stats.Cars++
		} else {
			stats.Bikes++
		}
	}
	return stats, nil
}

func (m *memorySink) All() ([]*models.Vehicle, error) {
	var out []*models.Vehicle
	for _, v := range m.vehicles {
		out = append(out, v)
	}
	return out, nil
}

func (m *memorySink) LogSession(session *models.ScrapeSession) error {
	m.sessions = append(m.sessions, session)
	return nil
}

func vehicle(slug, vehicleType string) *models.Vehicle {
	brand, model, _ := strings.Cut(slug, "-")
	return &models.Vehicle{
		Type:  vehicleType,
		Brand: brand,
		Model: model,
		Slug:  slug,
		Price: 500_000,
		Specs: map[string]string{"fuel_type": "Petrol"},
	}
}

func TestScrapeAllPartialFailure(t *testing.T) {
	healthy := &stubSource{name: "carwale", vehicles: []*models.Vehicle{
		vehicle("tata-nexon", models.TypeCar),
		vehicle("honda-city", models.TypeCar),
	}}
	broken := &stubSource{name: "cardekho", err: errors.New("connection refused")}
	bikes := &stubSource{name: "bikewale", vehicles: []*models.Vehicle{
		vehicle("honda-shine", models.TypeBike),
	}}

	sink := newMemorySink()
	o := New([]Source{healthy, broken, bikes}, llm.NewService(nil), sink)

	summary, err := o.ScrapeAll(context.Background())
	if err != nil {
		t.Fatalf("ScrapeAll failed: %v", err)
	}
	if !summary.Success {
		t.Fatal("run must succeed despite one broken source")
	}
	if summary.VehiclesScraped != 3 {
		t.Fatalf("expected 3 vehicles saved, got %d", summary.VehiclesScraped)
	}
	if len(summary.Errors) != 1 || summary.Errors[0].Source != "cardekho" {
		t.Fatalf("expected one cardekho error, got %+v", summary.Errors)
	}
	if bikes.calls != 1 {
		t.Fatal("sources after the broken one must still run")
	}

	// Saved records went through normalization.
	saved := sink.vehicles["tata-nexon"]
	if saved == nil || saved.ProsCons == nil || saved.Description == "" {
		t.Fatalf("saved vehicle not normalized: %+v", saved)
	}

	if len(sink.sessions) != 1 || sink.sessions[0].Status != "partial" {
		t.Fatalf("expected one partial session logged, got %+v", sink.sessions)
	}
}

func TestScrapeAllAllSourcesFail(t *testing.T) {
	sink := newMemorySink()
	o := New([]Source{
		&stubSource{name: "carwale", err: errors.New("boom")},
		&stubSource{name: "cardekho", err: errors.New("boom")},
	}, llm.NewService(nil), sink)

	if _, err := o.ScrapeAll(context.Background()); err == nil {
		t.Fatal("expected error when every source fails")
	}
	if len(sink.sessions) != 1 || sink.sessions[0].Status != "failed" {
		t.Fatalf("expected failed session logged, got %+v", sink.sessions)
	}
}

func TestScrapeAllAllSavesFail(t *testing.T) {
	sink := newMemorySink()
	sink.upsertErr = errors.New("disk full")
	o := New([]Source{
		&stubSource{name: "carwale", vehicles: []*models.Vehicle{vehicle("tata-nexon", models.TypeCar)}},
	}, llm.NewService(nil), sink)

	if _, err := o.ScrapeAll(context.Background()); err == nil {
		t.Fatal("expected error when nothing can be persisted")
	}
}

func TestScrapeAllRejectsOverlap(t *testing.T) {
	o := New(nil, llm.NewService(nil), newMemorySink())
	o.running.Store(true)

	if _, err := o.ScrapeAll(context.Background()); !errors.Is(err, ErrScrapeInProgress) {
		t.Fatalf("expected ErrScrapeInProgress, got %v", err)
	}
}

func TestScrapeSourceUnknown(t *testing.T) {
	o := New([]Source{&stubSource{name: "carwale"}}, llm.NewService(nil), newMemorySink())

	if _, err := o.ScrapeSource(context.Background(), "craigslist"); !errors.Is(err, ErrUnknownSource) {
		t.Fatalf("expected ErrUnknownSource, got %v", err)
	}
}

func TestScrapeSourcePropagatesFailure(t *testing.T) {
	o := New([]Source{&stubSource{name: "carwale", err: errors.New("blocked")}}, llm.NewService(nil), newMemorySink())

	if _, err := o.ScrapeSource(context.Background(), "carwale"); err == nil {
		t.Fatal("expected single-source failure to propagate")
	}
}

func TestScrapeSourceSaves(t *testing.T) {
	sink := newMemorySink()
	o := New([]Source{&stubSource{name: "bikewale", vehicles: []*models.Vehicle{
		vehicle("honda-shine", models.TypeBike),
	}}}, llm.NewService(nil), sink)

	summary, err := o.ScrapeSource(context.Background(), "bikewale")
	if err != nil {
		t.Fatalf("ScrapeSource failed: %v", err)
	}
	if summary.VehiclesScraped != 1 || len(sink.vehicles) != 1 {
		t.Fatalf("expected 1 saved vehicle, got summary=%+v sink=%d", summary, len(sink.vehicles))
	}
}

func TestRefreshSpecsRewritesCatalog(t *testing.T) {
	sink := newMemorySink()
	stale := vehicle("tata-nexon", models.TypeCar)
	sink.vehicles[stale.Slug] = stale

	o := New(nil, llm.NewService(nil), sink)
	refreshed, err := o.RefreshSpecs(context.Background())
	if err != nil {
		t.Fatalf("RefreshSpecs failed: %v", err)
	}
	if refreshed != 1 {
		t.Fatalf("expected 1 refreshed vehicle, got %d", refreshed)
	}
	if sink.vehicles["tata-nexon"].Specs["fuel_tank_capacity"] != models.SpecUnknown {
		t.Fatalf("refresh did not normalize specs: %v", sink.vehicles["tata-nexon"].Specs)
	}
}

func TestGetStatsNeverFails(t *testing.T) {
	o := New(nil, llm.NewService(nil), nil)
	stats := o.GetStats()
	if stats == nil || stats.Total != 0 {
		t.Fatalf("expected zero stats without a sink, got %+v", stats)
	}
}
