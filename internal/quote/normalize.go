package quote

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"porterquote/lib/htmlutil"
)

// RawRow is the untouched text of one result card.
type RawRow struct {
	Name     string
	Price    string
	Capacity string
}

var numberRegex = regexp.MustCompile(`\d+(?:\.\d+)?`)

func parseNumber(text string) (float64, bool) {
	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(n, 0) || n > math.MaxInt32 {
		return 0, false
	}
	return n, true
}

func intPtr(n int) *int {
	return &n
}

// ParsePriceRange reads display text like "₹585 - ₹615" into its bounds.
// A single amount is both bounds, anything else yields nil bounds.
func ParsePriceRange(text string) (minPrice *int, maxPrice *int) {
	text = strings.ReplaceAll(text, ",", "")
	matches := numberRegex.FindAllString(text, -1)

	var values []int
	for _, m := range matches {
		n, ok := parseNumber(m)
		if !ok {
			return nil, nil
		}
		values = append(values, int(math.Round(n)))
	}

	switch len(values) {
	case 1:
		return intPtr(values[0]), intPtr(values[0])
	case 2:
		lo, hi := values[0], values[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		return intPtr(lo), intPtr(hi)
	}
	return nil, nil
}

var capacityRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([a-zA-Z]*)`)

func unitMultiplier(unit string) (float64, bool) {
	switch strings.ToLower(unit) {
	case "kg", "kgs", "kilo", "kilos", "kilogram", "kilograms":
		return 1, true
	case "t", "ton", "tons", "tonne", "tonnes":
		return 1000, true
	}
	return 0, false
}

// ParseCapacityKg reads display text like "500 kg" or "1.5 ton" as kilograms.
// The first number carrying a weight unit wins, a bare number is only used
// when no number has one. Returns nil when nothing can be read.
func ParseCapacityKg(text string) *int {
	text = strings.ReplaceAll(text, ",", "")

	bare := ""
	for _, m := range capacityRegex.FindAllStringSubmatch(text, -1) {
		if m[2] == "" {
			if bare == "" {
				bare = m[1]
			}
			continue
		}
		multiplier, ok := unitMultiplier(m[2])
		if !ok {
			continue
		}
		return kilograms(m[1], multiplier)
	}
	if bare != "" {
		return kilograms(bare, 1)
	}
	return nil
}

func kilograms(number string, multiplier float64) *int {
	n, ok := parseNumber(number)
	if !ok {
		return nil
	}
	return intPtr(int(math.Round(n * multiplier)))
}

// NormalizeRow turns a raw card into a VehicleQuote. It is pure, unparseable
// numbers stay nil while the display strings are always kept.
func NormalizeRow(raw RawRow) VehicleQuote {
	price := htmlutil.CleanText(raw.Price)
	capacity := htmlutil.CleanText(raw.Capacity)
	minPrice, maxPrice := ParsePriceRange(price)

	return VehicleQuote{
		VehicleName: htmlutil.CleanText(raw.Name),
		PriceRange:  price,
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		Capacity:    capacity,
		CapacityKg:  ParseCapacityKg(capacity),
	}
}
