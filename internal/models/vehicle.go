package models

import "time"

// Vehicle types stored in the catalog.
const (
	TypeCar  = "car"
	TypeBike = "bike"
)

// Sentinel value for specs the source site did not provide.
const SpecUnknown = "N/A"

// Variant is a single trim level of a vehicle with its own pricing.
// Every scraped vehicle carries at least one synthetic base variant.
type Variant struct {
	Name            string `json:"name"`
	Price           int64  `json:"price"`
	ExShowroomPrice int64  `json:"ex_showroom_price"`
}

// ProsCons holds up to five advantages and five drawbacks of a vehicle.
type ProsCons struct {
	Pros []string `json:"pros"`
	Cons []string `json:"cons"`
}

// Vehicle is a catalog listing extracted from a source site.
// Parsers emit it raw; the normalizer fills ProsCons and Description and
// merges enriched specs before the record is persisted. The slug is the
// natural key: upserting the same slug twice keeps one stored document.
type Vehicle struct {
	Type        string            `json:"type"`
	Brand       string            `json:"brand"`
	Model       string            `json:"model"`
	Slug        string            `json:"slug"`
	Price       int64             `json:"price"`
	Year        int               `json:"year"`
	Variants    []Variant         `json:"variants"`
	Specs       map[string]string `json:"specs"`
	Images      []string          `json:"images"`
	ProsCons    *ProsCons         `json:"pros_cons,omitempty"`
	Description string            `json:"description,omitempty"`
	ScrapedFrom string            `json:"scraped_from"`
	LastScraped time.Time         `json:"last_scraped"`
	CreatedAt   time.Time         `json:"created_at,omitempty"`
	LastUpdated time.Time         `json:"last_updated,omitempty"`
}

// DisplayName returns "Brand Model" for log lines.
func (v *Vehicle) DisplayName() string {
	return v.Brand + " " + v.Model
}

// Brand pairs a display name with its URL slug on a source site.
type Brand struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// BrandSummary is one entry in the catalog brand listing, with the vehicle
// types the brand appears under.
type BrandSummary struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

// SourceError records a per-source failure during a full scrape run.
type SourceError struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// ScrapeSummary is the result of a full scrape across all sources.
// Success stays true when individual sources fail; only a fatal
// aggregation or persistence error fails the whole run.
type ScrapeSummary struct {
	Success         bool          `json:"success"`
	VehiclesScraped int           `json:"vehicles_scraped"`
	DurationMinutes float64       `json:"duration_minutes"`
	Errors          []SourceError `json:"errors"`
}

// ScrapeStats are catalog-level counters reported by the stats endpoint.
type ScrapeStats struct {
	Total int `json:"total"`
	Cars  int `json:"cars"`
	Bikes int `json:"bikes"`
}

// ScrapeSession is one row of the scrape log, written after every run so
// unattended partial failures stay observable.
type ScrapeSession struct {
	ID              int64         `json:"id,omitempty"`
	Status          string        `json:"status"`
	VehiclesScraped int           `json:"vehicles_scraped"`
	DurationMinutes float64       `json:"duration_minutes"`
	Errors          []SourceError `json:"errors,omitempty"`
	StartedAt       time.Time     `json:"started_at"`
	CompletedAt     time.Time     `json:"completed_at"`
}
