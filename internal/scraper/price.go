package scraper

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	numberRe   = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)
	engineCCRe = regexp.MustCompile(`([0-9]+)\s*cc`)
)

// ParsePrice converts a scraped price string into whole rupees.
// "₹5.00 Lakh onwards" → 500000, "₹1.2 Cr" → 12000000, and a bare number
// is accepted as-is only above 10,000 (below that it is a stray figure,
// not a vehicle price). Returns 0 when the text is unparseable; callers
// reject the record.
func ParsePrice(text string) int64 {
	lower := strings.ToLower(text)
	num := numberRe.FindString(lower)
	if num == "" {
		return 0
	}
	val, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}

	switch {
	case strings.Contains(lower, "lakh"):
		return int64(math.Round(val * 100_000))
	case strings.Contains(lower, "cr"):
		return int64(math.Round(val * 10_000_000))
	case val > 10_000:
		return int64(math.Round(val))
	}
	return 0
}

// Slug derives the catalog natural key from brand and model: lowercased,
// with every run of non-alphanumeric characters collapsed to one hyphen.
// Deterministic, so re-scraping the same vehicle hits the same row.
func Slug(brand, model string) string {
	s := strings.ToLower(brand + " " + model)
	return strings.Trim(nonAlnumRe.ReplaceAllString(s, "-"), "-")
}

// extractEngineCC pulls an engine displacement like "349cc" out of card
// text, returning "" when absent.
func extractEngineCC(cardText string) string {
	m := engineCCRe.FindStringSubmatch(cardText)
	if m == nil {
		return ""
	}
	return m[1] + "cc"
}
