package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// moneyJunkRe strips currency symbols and thousands separators from
	// fare values, e.g. "$1,234.50" -> "1234.50".
	moneyJunkRe = regexp.MustCompile(`[$,]`)

	// countJunkRe strips thousands separators and stray quote characters
	// from passenger counts, e.g. `"1,234,567"` -> "1234567".
	countJunkRe = regexp.MustCompile(`[,"]`)

	// yearRe matches the first run of exactly four digits in a decorated
	// year field, e.g. "Year 2019" or "2019.0" -> "2019".
	yearRe = regexp.MustCompile(`\d{4}`)
)

// ParseMoney coerces a currency-formatted string to a float. Unparseable
// values (including sentinels like "N/A") resolve to nil, not zero.
func ParseMoney(s string) *float64 {
	return parseCleaned(moneyJunkRe, s)
}

// ParseCount coerces a formatted passenger count to a float. Unparseable
// values resolve to nil.
func ParseCount(s string) *float64 {
	return parseCleaned(countJunkRe, s)
}

func parseCleaned(junk *regexp.Regexp, s string) *float64 {
	s = strings.TrimSpace(junk.ReplaceAllString(s, ""))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ExtractYear finds the first 4-digit run in a free-text year field.
// Returns false when no such run exists; callers drop those rows because
// year is a mandatory grouping key.
func ExtractYear(s string) (int, bool) {
	m := yearRe.FindString(s)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return y, true
}
