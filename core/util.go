package core

import (
	"math"
	"strconv"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// SameKey reports whether a and b are equal once trimmed and lowered.
func SameKey(a, b string) bool {
	return CleanString(a, true /* lower */) == CleanString(b, true /* lower */)
}

// ParseNumeric parses a NUMERIC column received as text.
// Empty or unparsable values (and NaN/Inf) yield 0 so that one bad row never breaks a dashboard.
func ParseNumeric(s string) float64 {
	s = CleanString(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Percent returns round(part/whole*100) capped to [0, 100]; 0 when whole is not positive.
func Percent(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	return ClampPercent(math.Round(float64(part) / float64(whole) * 100))
}

// ClampPercent rounds p and clamps it to [0, 100].
func ClampPercent(p float64) int {
	if math.IsNaN(p) {
		return 0
	}
	p = math.Round(p)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return int(p)
}
