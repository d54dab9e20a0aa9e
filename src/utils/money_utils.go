package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseDisplayAmount converts a display price string such as "$19.99" or
// "€ 5" to integer minor units, rounding to the nearest cent. Leading
// non-numeric symbols (currency signs, whitespace) are stripped; thousands
// separators are not supported by the upstream format and are rejected.
func ParseDisplayAmount(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimLeftFunc(trimmed, func(r rune) bool {
		return !(r >= '0' && r <= '9') && r != '-' && r != '.'
	})
	if trimmed == "" {
		return 0, fmt.Errorf("no numeric content in amount %q", s)
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative amount %q", s)
	}
	return int64(math.Round(value * 100)), nil
}

// FormatMajorUnits renders minor units as a major-unit decimal with exactly
// two fraction digits, e.g. 1999 -> "19.99". This is the only place a
// monetary value is rounded; everything upstream stays in cents.
func FormatMajorUnits(minor int64) string {
	return strconv.FormatFloat(float64(minor)/100, 'f', 2, 64)
}

// MajorUnits converts minor units to a major-unit float for JSON output.
func MajorUnits(minor int64) float64 {
	return float64(minor) / 100
}
