package domain

import (
	"fmt"
	"strings"
)

// HoverText renders the bubble-map hover label for a ranked row. The markup
// matches what the map front end feeds to its hover template.
func HoverText(r RankedRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>#%d %s", r.Rank, r.City)
	if r.State != "" {
		fmt.Fprintf(&b, ", %s", r.State)
	}
	fmt.Fprintf(&b, "</b><br>Total: %s", groupDigits(fmt.Sprintf("%.0f", r.Total)))
	fmt.Fprintf(&b, "<br>Domestic: %s", groupDigits(fmt.Sprintf("%.0f", r.Domestic)))
	fmt.Fprintf(&b, "<br>International: %s", groupDigits(fmt.Sprintf("%.0f", r.International)))
	fmt.Fprintf(&b, "<br>Average Fare: $%s", groupDigits(fmt.Sprintf("%.2f", r.AvgFare)))
	return b.String()
}

// groupDigits inserts thousands separators into the integer part of a
// formatted number, e.g. "1234567" -> "1,234,567" and "1234.50" -> "1,234.50".
func groupDigits(s string) string {
	whole, frac := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		whole, frac = s[:dot], s[dot:]
	}

	neg := strings.HasPrefix(whole, "-")
	if neg {
		whole = whole[1:]
	}

	var b strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}

	out := b.String() + frac
	if neg {
		return "-" + out
	}
	return out
}
