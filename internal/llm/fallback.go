package llm

import (
	"fmt"

	"autoverse/internal/models"
)

// Deterministic generation used whenever the enrichment service is absent
// or fails. Pure computation over already-scraped fields; it cannot fail.

func fallbackProsCons(v *models.Vehicle) *models.ProsCons {
	var pros, cons []string

	if v.Type == models.TypeCar {
		switch v.Specs["fuel_type"] {
		case "Electric":
			pros = append(pros, "Zero Emissions & Eco-Friendly", "Low Running Costs")
			cons = append(cons, "Charging Infrastructure Dependency")
		case "Diesel":
			pros = append(pros, "Excellent Fuel Efficiency", "High Torque for Highway Driving")
		default:
			pros = append(pros, "Wide Service Network", "Good Resale Value")
		}
		pros = append(pros, "Spacious Interior", "Modern Features & Technology", "Proven Reliability")
		cons = append(cons,
			"Competitive Segment",
			"Regular Maintenance Required",
			"Insurance Costs",
			"Depreciation Over Time",
			"Fuel Price Volatility",
		)
	} else {
		pros = append(pros,
			"Excellent Fuel Efficiency",
			"Easy Maneuverability",
			"Low Maintenance Costs",
			"Affordable Insurance",
			"Easy Parking",
		)
		cons = append(cons,
			"Limited Weather Protection",
			"Two-Person Capacity",
			"Minimal Storage Space",
			"Safety Concerns",
			"Not Ideal for Long Distances",
		)
	}

	return &models.ProsCons{Pros: truncate(pros, 5), Cons: truncate(cons, 5)}
}

func fallbackDescription(v *models.Vehicle) string {
	fuel := v.Specs["fuel_type"]
	if fuel == "" {
		fuel = "Petrol"
	}
	return fmt.Sprintf("The %s %s is a popular %s priced at ₹%.2f Lakh. It offers a great combination of %s efficiency and modern features.",
		v.Brand, v.Model, v.Type, float64(v.Price)/100_000, fuel)
}

// fillSpecGaps sets the "N/A" sentinel for spec keys the scrape never
// produced, so the storefront can render a complete spec sheet.
func fillSpecGaps(specs map[string]string, vehicleType string) {
	gaps := []string{"fuel_tank_capacity", "kerb_weight", "abs"}
	if vehicleType == models.TypeBike {
		gaps = append(gaps, "seat_height")
	}
	for _, key := range gaps {
		if specs[key] == "" {
			specs[key] = models.SpecUnknown
		}
	}
}

func truncate(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
