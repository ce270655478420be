package scraper

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"autoverse/internal/fetcher"
	"autoverse/internal/models"
)

const (
	// maxBrands caps how many brands are visited per source per run.
	maxBrands = 10
	// maxCardsPerBrand caps how many listing cards are examined per brand.
	maxCardsPerBrand = 5
	// maxImages caps extracted image URLs per vehicle.
	maxImages = 3
)

// Source declares everything site-specific about one scrape source: where
// to fetch, how fast, and which selectors find the fields inside a card.
// The four supported sites differ only in this data; the parsing engine is
// shared, so a markup change on one site is a one-line config fix.
type Source struct {
	Name        string
	BaseURL     string
	VehicleType string
	RateLimit   time.Duration
	MaxRetries  int
	Brands      []models.Brand

	// BrandPath is a fmt pattern producing the listing path for a brand
	// slug, e.g. "/%s-cars/".
	BrandPath string

	CardSelector  string
	ModelSelector string
	PriceSelector string

	// ImageFallbackAttr is consulted when an <img> has no src
	// (lazy-loaded images), e.g. "data-src" or "data-original".
	ImageFallbackAttr string

	// BaseVariant names the synthetic variant attached to every record.
	BaseVariant string

	// DefaultSpecs seed every record's spec map before card-level
	// extraction. Values use "N/A" where the site never provides data.
	DefaultSpecs map[string]string
}

// Scraper extracts vehicle records from one source site. Each instance
// owns its own Fetcher and therefore its own rate-limit clock.
type Scraper struct {
	source  Source
	fetcher *fetcher.Fetcher
}

// New creates a Scraper for the given source configuration.
func New(source Source) *Scraper {
	if source.BaseVariant == "" {
		source.BaseVariant = "Standard"
	}
	if source.ImageFallbackAttr == "" {
		source.ImageFallbackAttr = "data-src"
	}
	return &Scraper{
		source: source,
		fetcher: fetcher.New(fetcher.Config{
			Name:       source.Name,
			RateLimit:  source.RateLimit,
			MaxRetries: source.MaxRetries,
		}),
	}
}

// Name returns the source identifier.
func (s *Scraper) Name() string {
	return s.source.Name
}

// Scrape visits the top brands of the source and extracts up to
// maxCardsPerBrand records from each brand's listing page. A failing brand
// is logged and skipped; it never aborts the remaining brands.
func (s *Scraper) Scrape(ctx context.Context) ([]*models.Vehicle, error) {
	log.Printf("[%s] starting scrape", s.source.Name)

	brands := s.source.Brands
	if len(brands) > maxBrands {
		brands = brands[:maxBrands]
	}

	var vehicles []*models.Vehicle
	for _, brand := range brands {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		got, err := s.scrapeBrand(ctx, brand)
		if err != nil {
			log.Printf("[%s] brand %s failed: %v", s.source.Name, brand.Name, err)
			continue
		}
		log.Printf("[%s] scraped %d vehicles from %s", s.source.Name, len(got), brand.Name)
		vehicles = append(vehicles, got...)
	}

	log.Printf("[%s] scrape complete: %d vehicles", s.source.Name, len(vehicles))
	return vehicles, nil
}

func (s *Scraper) scrapeBrand(ctx context.Context, brand models.Brand) ([]*models.Vehicle, error) {
	url := s.source.BaseURL + fmt.Sprintf(s.source.BrandPath, brand.Slug)
	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.ParseListing(html, brand)
}

// ParseListing extracts vehicle records for one brand from a listing page.
// Cards missing a model or a parseable price are skipped silently; that is
// an expected outcome for malformed markup, not an error.
func (s *Scraper) ParseListing(html string, brand models.Brand) ([]*models.Vehicle, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}

	cards := doc.Find(s.source.CardSelector)
	limit := cards.Length()
	if limit > maxCardsPerBrand {
		limit = maxCardsPerBrand
	}

	var vehicles []*models.Vehicle
	cards.Slice(0, limit).Each(func(_ int, card *goquery.Selection) {
		if v := s.parseCard(card, brand); v != nil {
			vehicles = append(vehicles, v)
		}
	})
	return vehicles, nil
}

// parseCard turns one listing-card fragment into a vehicle record, or nil
// when the required fields cannot be extracted.
func (s *Scraper) parseCard(card *goquery.Selection, brand models.Brand) *models.Vehicle {
	model := strings.TrimSpace(card.Find(s.source.ModelSelector).First().Text())
	if model == "" {
		return nil
	}

	price := ParsePrice(card.Find(s.source.PriceSelector).First().Text())
	if price <= 0 {
		return nil
	}

	specs := make(map[string]string, len(s.source.DefaultSpecs))
	for k, v := range s.source.DefaultSpecs {
		specs[k] = v
	}

	cardText := strings.ToLower(card.Text())
	if s.source.VehicleType == models.TypeCar {
		specs["fuel_type"] = extractFuelType(cardText)
	} else if cc := extractEngineCC(cardText); cc != "" {
		specs["engine_type"] = cc
	}

	now := time.Now()
	return &models.Vehicle{
		Type:  s.source.VehicleType,
		Brand: brand.Name,
		Model: model,
		Slug:  Slug(brand.Name, model),
		Price: price,
		Year:  now.Year(),
		Variants: []models.Variant{{
			Name:            s.source.BaseVariant,
			Price:           price,
			ExShowroomPrice: price,
		}},
		Specs:       specs,
		Images:      extractImages(card, s.source.ImageFallbackAttr),
		ScrapedFrom: s.source.Name,
		LastScraped: now,
	}
}

// extractImages collects up to maxImages URLs from <img> elements inside a
// card, preferring src over the lazy-load fallback attribute and skipping
// placeholder and logo assets.
func extractImages(card *goquery.Selection, fallbackAttr string) []string {
	var images []string
	card.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			src = img.AttrOr(fallbackAttr, "")
		}
		if src == "" || strings.Contains(src, "placeholder") || strings.Contains(src, "logo") {
			return true
		}
		images = append(images, src)
		return len(images) < maxImages
	})
	return images
}

// extractFuelType guesses the fuel type from card text; listing cards spell
// it out as a chip or suffix on most sites. Defaults to Petrol.
func extractFuelType(cardText string) string {
	switch {
	case strings.Contains(cardText, "diesel"):
		return "Diesel"
	case strings.Contains(cardText, "electric"):
		return "Electric"
	case strings.Contains(cardText, "hybrid"):
		return "Hybrid"
	case strings.Contains(cardText, "cng"):
		return "CNG"
	default:
		return "Petrol"
	}
}
