package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"autoverse/internal/models"
)

func testCar(fuel string) *models.Vehicle {
	return &models.Vehicle{
		Type:  models.TypeCar,
		Brand: "Tata",
		Model: "Nexon",
		Slug:  "tata-nexon",
		Price: 800_000,
		Specs: map[string]string{"fuel_type": fuel, "transmission": "Manual"},
	}
}

func testBike() *models.Vehicle {
	return &models.Vehicle{
		Type:  models.TypeBike,
		Brand: "Royal Enfield",
		Model: "Classic 350",
		Slug:  "royal-enfield-classic-350",
		Price: 193_000,
		Specs: map[string]string{"fuel_type": "Petrol"},
	}
}

func TestFallbackProsConsRules(t *testing.T) {
	cases := []struct {
		name     string
		vehicle  *models.Vehicle
		wantPro  string
		wantCon  string
	}{
		{"electricCar", testCar("Electric"), "Zero Emissions & Eco-Friendly", "Charging Infrastructure Dependency"},
		{"dieselCar", testCar("Diesel"), "High Torque for Highway Driving", "Competitive Segment"},
		{"petrolCar", testCar("Petrol"), "Wide Service Network", "Depreciation Over Time"},
		{"bike", testBike(), "Easy Maneuverability", "Limited Weather Protection"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pc := fallbackProsCons(tc.vehicle)
			if len(pc.Pros) == 0 || len(pc.Pros) > 5 {
				t.Fatalf("pros count out of range: %v", pc.Pros)
			}
			if len(pc.Cons) == 0 || len(pc.Cons) > 5 {
				t.Fatalf("cons count out of range: %v", pc.Cons)
			}
			if !contains(pc.Pros, tc.wantPro) {
				t.Fatalf("expected pro %q in %v", tc.wantPro, pc.Pros)
			}
			if !contains(pc.Cons, tc.wantCon) {
				t.Fatalf("expected con %q in %v", tc.wantCon, pc.Cons)
			}
		})
	}
}

func TestFallbackDescription(t *testing.T) {
	got := fallbackDescription(testCar("Petrol"))
	want := "The Tata Nexon is a popular car priced at ₹8.00 Lakh. It offers a great combination of Petrol efficiency and modern features."
	if got != want {
		t.Fatalf("description mismatch:\n got %q\nwant %q", got, want)
	}
}

// TestProcessFallbackAlwaysSucceeds covers the guarantee that the fallback
// path works for any syntactically valid record, including one with no
// known specs at all.
func TestProcessFallbackAlwaysSucceeds(t *testing.T) {
	svc := NewService(nil)
	bare := &models.Vehicle{
		Type:  models.TypeBike,
		Brand: "Hero",
		Model: "Splendor",
		Price: 75_000,
		Specs: map[string]string{},
	}

	out := svc.Process(context.Background(), bare)
	if out.ProsCons == nil || len(out.ProsCons.Pros) == 0 || len(out.ProsCons.Cons) == 0 {
		t.Fatalf("fallback produced empty pros/cons: %+v", out.ProsCons)
	}
	if out.Description == "" {
		t.Fatal("fallback produced empty description")
	}
	for _, key := range []string{"fuel_tank_capacity", "kerb_weight", "abs", "seat_height"} {
		if out.Specs[key] != models.SpecUnknown {
			t.Fatalf("expected sentinel for %s, got %q", key, out.Specs[key])
		}
	}
	if bare.ProsCons != nil || len(bare.Specs) != 0 {
		t.Fatal("input record was mutated")
	}
}

func TestProcessFallbackCarHasNoSeatHeight(t *testing.T) {
	svc := NewService(nil)
	out := svc.Process(context.Background(), testCar("Petrol"))
	if _, ok := out.Specs["seat_height"]; ok {
		t.Fatalf("seat_height should only be gap-filled for bikes: %v", out.Specs)
	}
}

type stubEnricher struct {
	enr *Enrichment
	err error
}

func (s *stubEnricher) Generate(context.Context, *models.Vehicle) (*Enrichment, error) {
	return s.enr, s.err
}

func TestProcessEnrichmentMergePolicy(t *testing.T) {
	enr := &Enrichment{
		ProsCons:    models.ProsCons{Pros: []string{"Punchy turbo engine"}, Cons: []string{"Firm ride"}},
		Description: "A compact SUV with confident road manners.",
		Specs: map[string]string{
			"transmission": "AMT", // overwrites a non-sentinel scraped value
			"kerb_weight":  "1250 kg",
			"mileage":      "17 km/l",
		},
	}
	svc := NewService(&stubEnricher{enr: enr})
	svc.delay = 0

	out := svc.Process(context.Background(), testCar("Petrol"))
	if out.Specs["transmission"] != "AMT" {
		t.Fatalf("enrichment must win on key collision, got %q", out.Specs["transmission"])
	}
	if out.Specs["fuel_type"] != "Petrol" {
		t.Fatalf("untouched scraped specs must survive, got %q", out.Specs["fuel_type"])
	}
	if out.Specs["kerb_weight"] != "1250 kg" {
		t.Fatalf("enriched spec missing: %v", out.Specs)
	}
	if out.Specs["fuel_tank_capacity"] != models.SpecUnknown {
		t.Fatalf("remaining gaps must still be sentinel-filled: %v", out.Specs)
	}
	if out.Description != enr.Description {
		t.Fatalf("unexpected description %q", out.Description)
	}
}

func TestProcessEnricherFailureFallsBack(t *testing.T) {
	svc := NewService(&stubEnricher{err: errors.New("model overloaded")})
	svc.delay = 0

	out := svc.Process(context.Background(), testCar("Diesel"))
	if out.ProsCons == nil || !contains(out.ProsCons.Pros, "Excellent Fuel Efficiency") {
		t.Fatalf("expected deterministic fallback output, got %+v", out.ProsCons)
	}
}

func TestProcessBatchKeepsLength(t *testing.T) {
	svc := NewService(&stubEnricher{err: errors.New("unavailable")})
	svc.delay = 0

	batch := []*models.Vehicle{testCar("Petrol"), testBike(), testCar("Electric")}
	out := svc.ProcessBatch(context.Background(), batch)
	if len(out) != len(batch) {
		t.Fatalf("batch is lossy: got %d of %d", len(out), len(batch))
	}
	for _, v := range out {
		if v.ProsCons == nil {
			t.Fatalf("record passed through without fallback: %s", v.DisplayName())
		}
	}
}

func TestOpenAIEnricherGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			t.Error("missing bearer token")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"pros_cons\":{\"pros\":[\"Quick\"],\"cons\":[\"Pricey\"]},\"description\":\"Fast and fun.\",\"specs\":{\"mileage\":\"15 km/l\"}}"}}]}`))
	}))
	defer srv.Close()

	e := NewOpenAIEnricher(srv.URL, "test-key")
	enr, err := e.Generate(context.Background(), testCar("Petrol"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if enr.Description != "Fast and fun." || enr.Specs["mileage"] != "15 km/l" {
		t.Fatalf("unexpected enrichment: %+v", enr)
	}
}

func TestOpenAIEnricherMalformedContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"not json"}}]}`))
	}))
	defer srv.Close()

	e := NewOpenAIEnricher(srv.URL, "test-key")
	if _, err := e.Generate(context.Background(), testCar("Petrol")); err == nil {
		t.Fatal("expected error for malformed content")
	}
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
