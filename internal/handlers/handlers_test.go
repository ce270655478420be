package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"autoverse/internal/catalog"
	"autoverse/internal/llm"
	"autoverse/internal/models"
	"autoverse/internal/orchestrator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSource struct {
	name     string
	vehicles []*models.Vehicle
}

func (s *stubSource) Name() string { return s.name }
func (s *stubSource) Scrape(ctx context.Context) ([]*models.Vehicle, error) {
	return s.vehicles, nil
}

func newTestRouter(t *testing.T, sources []orchestrator.Source) (*gin.Engine, *catalog.Store) {
	t.Helper()

	store, err := catalog.Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	o := orchestrator.New(sources, llm.NewService(nil), store)
	scraperHandler := NewScraperHandler(o, store)
	vehicleHandler := NewVehicleHandler(store)

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/vehicles", vehicleHandler.List)
		api.GET("/vehicles/:slug", vehicleHandler.GetBySlug)
		api.GET("/brands", vehicleHandler.Brands)
		api.GET("/scraper/stats", scraperHandler.Stats)
		api.GET("/scraper/sessions", scraperHandler.Sessions)
		api.GET("/scraper/scrape-all", scraperHandler.ScrapeAll)
		api.GET("/scraper/scrape/:source", scraperHandler.ScrapeSource)
	}
	return r, store
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func seedVehicle(t *testing.T, store *catalog.Store, slug, brand, model, vehicleType string, price int64) {
	t.Helper()
	err := store.Upsert(&models.Vehicle{
		Type:        vehicleType,
		Brand:       brand,
		Model:       model,
		Slug:        slug,
		Price:       price,
		Year:        2026,
		Specs:       map[string]string{"fuel_type": "Petrol"},
		ScrapedFrom: "carwale",
		LastScraped: time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to seed %s: %v", slug, err)
	}
}

func TestListVehicles(t *testing.T) {
	r, store := newTestRouter(t, nil)
	seedVehicle(t, store, "tata-nexon", "Tata", "Nexon", models.TypeCar, 800_000)
	seedVehicle(t, store, "honda-shine", "Honda", "Shine", models.TypeBike, 80_000)

	rec := get(r, "/api/vehicles?type=car")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var vehicles []models.Vehicle
	if err := json.Unmarshal(rec.Body.Bytes(), &vehicles); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(vehicles) != 1 || vehicles[0].Slug != "tata-nexon" {
		t.Fatalf("unexpected listing: %+v", vehicles)
	}
}

func TestListVehiclesRejectsBadType(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	if rec := get(r, "/api/vehicles?type=truck"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad type, got %d", rec.Code)
	}
	if rec := get(r, "/api/vehicles?limit=0"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
	}
}

func TestListVehiclesEmptyCatalog(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	rec := get(r, "/api/vehicles")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]" {
		t.Fatalf("empty catalog must serialize as [], got %s", body)
	}
}

func TestGetVehicleBySlug(t *testing.T) {
	r, store := newTestRouter(t, nil)
	seedVehicle(t, store, "tata-nexon", "Tata", "Nexon", models.TypeCar, 800_000)

	rec := get(r, "/api/vehicles/tata-nexon")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var v models.Vehicle
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if v.Brand != "Tata" || v.Price != 800_000 {
		t.Fatalf("unexpected vehicle: %+v", v)
	}

	if rec := get(r, "/api/vehicles/no-such-slug"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := get(r, "/api/vehicles/Bad_Slug"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed slug, got %d", rec.Code)
	}
}

func TestBrands(t *testing.T) {
	r, store := newTestRouter(t, nil)
	seedVehicle(t, store, "honda-city", "Honda", "City", models.TypeCar, 1_200_000)
	seedVehicle(t, store, "honda-shine", "Honda", "Shine", models.TypeBike, 80_000)

	rec := get(r, "/api/brands")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var brands []models.BrandSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &brands); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(brands) != 1 || len(brands[0].Types) != 2 {
		t.Fatalf("unexpected brands: %+v", brands)
	}
}

func TestStats(t *testing.T) {
	r, store := newTestRouter(t, nil)
	seedVehicle(t, store, "tata-nexon", "Tata", "Nexon", models.TypeCar, 800_000)

	rec := get(r, "/api/scraper/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stats models.ScrapeStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if stats.Total != 1 || stats.Cars != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestScrapeSourceValidation(t *testing.T) {
	r, _ := newTestRouter(t, []orchestrator.Source{&stubSource{name: "carwale"}})

	if rec := get(r, "/api/scraper/scrape/Bad-Name"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed source, got %d", rec.Code)
	}
	if rec := get(r, "/api/scraper/scrape/craigslist"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown source, got %d", rec.Code)
	}
	if rec := get(r, "/api/scraper/scrape/carwale"); rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 ack, got %d", rec.Code)
	}
}

func TestScrapeAllAcknowledgesImmediately(t *testing.T) {
	r, _ := newTestRouter(t, []orchestrator.Source{&stubSource{name: "carwale"}})

	rec := get(r, "/api/scraper/scrape-all")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 ack, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSessionsEmpty(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	rec := get(r, "/api/scraper/sessions")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]" {
		t.Fatalf("empty log must serialize as [], got %s", body)
	}
}
