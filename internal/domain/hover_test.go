package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHoverText(t *testing.T) {
	r := RankedRow{
		Rank:          3,
		City:          "Atlanta",
		State:         "GA",
		Total:         53505795,
		Domestic:      48764293,
		International: 4741502,
		AvgFare:       1234.5,
	}

	assert.Equal(t,
		"<b>#3 Atlanta, GA</b><br>"+
			"Total: 53,505,795<br>"+
			"Domestic: 48,764,293<br>"+
			"International: 4,741,502<br>"+
			"Average Fare: $1,234.50",
		HoverText(r))
}

func TestHoverText_NoState(t *testing.T) {
	r := RankedRow{Rank: 1, City: "Springfield", Total: 600, AvgFare: 100}

	assert.Equal(t,
		"<b>#1 Springfield</b><br>"+
			"Total: 600<br>"+
			"Domestic: 0<br>"+
			"International: 0<br>"+
			"Average Fare: $100.00",
		HoverText(r))
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"under a thousand", "600", "600"},
		{"exactly a thousand", "1000", "1,000"},
		{"millions", "1234567", "1,234,567"},
		{"with decimals", "1234.50", "1,234.50"},
		{"two digits", "42", "42"},
		{"negative", "-1234567", "-1,234,567"},
		{"zero", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, groupDigits(tt.input))
		})
	}
}
