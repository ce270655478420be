package scraper

import (
	"time"

	"autoverse/internal/models"
)

// The four supported sources. Selector strings are coupled to live site
// markup and break when a site ships a redesign; keeping them here as data
// means a fix never touches the parsing engine.

// CarWale lists new cars per brand. The slowest rate limit of the four:
// the site is quick to throttle repeat visitors.
var CarWale = Source{
	Name:        "carwale",
	BaseURL:     "https://www.carwale.com",
	VehicleType: models.TypeCar,
	RateLimit:   5 * time.Second,
	BrandPath:   "/%s-cars/",
	Brands: []models.Brand{
		{Name: "Maruti Suzuki", Slug: "maruti-suzuki"},
		{Name: "Hyundai", Slug: "hyundai"},
		{Name: "Tata", Slug: "tata"},
		{Name: "Mahindra", Slug: "mahindra"},
		{Name: "Kia", Slug: "kia"},
		{Name: "Honda", Slug: "honda"},
		{Name: "Toyota", Slug: "toyota"},
		{Name: "Renault", Slug: "renault"},
		{Name: "Nissan", Slug: "nissan"},
		{Name: "MG", Slug: "mg"},
	},
	CardSelector:      ".o-fqVqCM",
	ModelSelector:     ".o-bXKmQE",
	PriceSelector:     ".o-bqHweY",
	ImageFallbackAttr: "data-src",
	BaseVariant:       "Base",
	DefaultSpecs: map[string]string{
		"fuel_type":          "Petrol",
		"transmission":       "Manual",
		"seating_capacity":   "5",
		"kerb_weight":        models.SpecUnknown,
		"fuel_tank_capacity": models.SpecUnknown,
		"abs":                models.SpecUnknown,
	},
}

// CarDekho uses grid-layout cards; lazy images sit in data-original.
var CarDekho = Source{
	Name:        "cardekho",
	BaseURL:     "https://www.cardekho.com",
	VehicleType: models.TypeCar,
	RateLimit:   3 * time.Second,
	BrandPath:   "/%s-cars",
	Brands: []models.Brand{
		{Name: "Maruti Suzuki", Slug: "maruti-suzuki"},
		{Name: "Hyundai", Slug: "hyundai"},
		{Name: "Tata", Slug: "tata"},
		{Name: "Mahindra", Slug: "mahindra"},
		{Name: "Kia", Slug: "kia"},
		{Name: "Toyota", Slug: "toyota"},
		{Name: "Honda", Slug: "honda"},
		{Name: "MG", Slug: "mg-motor"},
	},
	CardSelector:      ".NewCarList .gsc_col-sm-12, .gsc_col-md-12 li",
	ModelSelector:     "h3 a, .title",
	PriceSelector:     ".price, .gsc_price",
	ImageFallbackAttr: "data-original",
	BaseVariant:       "Standard",
	DefaultSpecs: map[string]string{
		"fuel_type":        "Petrol",
		"transmission":     "Manual",
		"seating_capacity": "5",
	},
}

// BikeWale shares CarWale's markup family plus legacy bikeList classes.
var BikeWale = Source{
	Name:        "bikewale",
	BaseURL:     "https://www.bikewale.com",
	VehicleType: models.TypeBike,
	RateLimit:   3 * time.Second,
	BrandPath:   "/%s-bikes/",
	Brands: []models.Brand{
		{Name: "Royal Enfield", Slug: "royalenfield"},
		{Name: "Hero", Slug: "hero"},
		{Name: "Honda", Slug: "honda"},
		{Name: "Bajaj", Slug: "bajaj"},
		{Name: "TVS", Slug: "tvs"},
		{Name: "Suzuki", Slug: "suzuki"},
		{Name: "Yamaha", Slug: "yamaha"},
		{Name: "KTM", Slug: "ktm"},
		{Name: "Kawasaki", Slug: "kawasaki"},
		{Name: "Harley Davidson", Slug: "harley-davidson"},
	},
	CardSelector:      ".o-fqVqCM, .bikeList",
	ModelSelector:     ".o-bXKmQE, .bikeName",
	PriceSelector:     ".o-bqHweY, .bikePrice",
	ImageFallbackAttr: "data-src",
	BaseVariant:       "Standard",
	DefaultSpecs: map[string]string{
		"fuel_type":          "Petrol",
		"transmission":       "Manual",
		"seating_capacity":   "2",
		"kerb_weight":        models.SpecUnknown,
		"fuel_tank_capacity": models.SpecUnknown,
		"seat_height":        models.SpecUnknown,
		"abs":                models.SpecUnknown,
	},
}

// BikeDekho mirrors CarDekho's grid layout for bikes.
var BikeDekho = Source{
	Name:        "bikedekho",
	BaseURL:     "https://www.bikedekho.com",
	VehicleType: models.TypeBike,
	RateLimit:   3 * time.Second,
	BrandPath:   "/%s-bikes",
	Brands: []models.Brand{
		{Name: "Hero", Slug: "hero"},
		{Name: "Honda", Slug: "honda"},
		{Name: "TVS", Slug: "tvs"},
		{Name: "Bajaj", Slug: "bajaj"},
		{Name: "Royal Enfield", Slug: "royal-enfield"},
		{Name: "Yamaha", Slug: "yamaha"},
		{Name: "Suzuki", Slug: "suzuki"},
		{Name: "KTM", Slug: "ktm"},
	},
	CardSelector:      ".BikeList .gsc_col-sm-12, .gsc_col-md-12 li",
	ModelSelector:     "h3 a, .title",
	PriceSelector:     ".price, .gsc_price",
	ImageFallbackAttr: "data-original",
	BaseVariant:       "Standard",
	DefaultSpecs: map[string]string{
		"fuel_type":        "Petrol",
		"transmission":     "Manual",
		"seating_capacity": "2",
	},
}

// All returns freshly constructed scrapers for every supported source.
func All() []*Scraper {
	return []*Scraper{
		New(CarWale),
		New(CarDekho),
		New(BikeWale),
		New(BikeDekho),
	}
}
