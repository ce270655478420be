package validation

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	sourceNameRe = regexp.MustCompile(`^[a-z]+$`)
	slugRe       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// ValidateSourceName validates a scraper source name (lowercase letters
// only, e.g. "carwale").
func ValidateSourceName(name string) error {
	if len(name) < 3 || len(name) > 30 {
		return fmt.Errorf("source name must be between 3 and 30 characters")
	}

	if !sourceNameRe.MatchString(name) {
		return fmt.Errorf("source name can only contain lowercase letters")
	}

	return nil
}

// ValidateVehicleType validates the type query parameter. Empty means
// "all types" and is allowed.
func ValidateVehicleType(vehicleType string) error {
	switch vehicleType {
	case "", "car", "bike":
		return nil
	}
	return fmt.Errorf("vehicle type must be 'car' or 'bike'")
}

// ValidateSlug validates a vehicle slug path parameter.
func ValidateSlug(slug string) error {
	if len(slug) < 1 || len(slug) > 100 {
		return fmt.Errorf("slug must be between 1 and 100 characters")
	}

	if !slugRe.MatchString(slug) {
		return fmt.Errorf("slug can only contain lowercase letters, numbers and hyphens")
	}

	return nil
}

// ValidateSort validates the sort query parameter.
func ValidateSort(sort string) error {
	switch sort {
	case "", "price_asc", "price_desc", "newest":
		return nil
	}
	return fmt.Errorf("sort must be 'price_asc', 'price_desc' or 'newest'")
}

// ParseLimit parses a limit query parameter, clamping to 1..200.
// Empty returns the provided default.
func ParseLimit(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("limit must be a number")
	}
	if limit < 1 || limit > 200 {
		return 0, fmt.Errorf("limit must be between 1 and 200")
	}

	return limit, nil
}
