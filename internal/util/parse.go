// Package util holds the permissive parsers for cache policy settings.
//
// Parsing is deliberately forgiving: malformed input is coerced to the
// nearest valid policy instead of reported. Misconfiguration therefore
// degrades to "unbounded" or "no expiry", never to an error path.
package util

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// AgeResolution is the finest granularity MaxAge honors (0.0001s).
const AgeResolution = 100 * time.Microsecond

// ParseMaxKeys interprets a maximum-entry-count setting.
//
//	"" or "unlimited"  -> 0 (unbounded)
//	"500"              -> 500
//	"4K" / "4k"        -> 4096 (x1024)
//	"2M" / "2m"        -> 2097152 (x1048576)
//
// Fractional counts are rounded to the nearest integer. Negative or
// unparsable input coerces to 0.
func ParseMaxKeys(spec string) int {
	s := strings.TrimSpace(spec)
	if s == "" || strings.EqualFold(s, "unlimited") {
		return 0
	}

	mult := 1.0
	switch s[len(s)-1] {
	case 'k', 'K':
		mult = 1024
		s = s[:len(s)-1]
	case 'm', 'M':
		mult = 1024 * 1024
		s = s[:len(s)-1]
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	n := int(math.Round(f * mult))
	if n < 0 {
		return 0
	}
	return n
}

// ParseMaxAge interprets a time-to-live setting. The second return reports
// whether expiry is enabled at all.
//
//	"" or "never"      -> disabled
//	"now" or "0"       -> 0, enabled (immediate expiry)
//	"90" / "90.5"      -> seconds
//	"90s" "10m" "2h"
//	"1.5d" "1w"        -> suffixed units, fractions allowed
//
// Durations are rounded to AgeResolution. Negative input coerces to 0
// (immediate expiry); unparsable input disables expiry.
func ParseMaxAge(spec string) (time.Duration, bool) {
	s := strings.TrimSpace(spec)
	if s == "" || strings.EqualFold(s, "never") {
		return 0, false
	}
	if strings.EqualFold(s, "now") {
		return 0, true
	}

	unit := float64(time.Second)
	switch s[len(s)-1] {
	case 's', 'S':
		s = s[:len(s)-1]
	case 'm', 'M':
		unit = float64(time.Minute)
		s = s[:len(s)-1]
	case 'h', 'H':
		unit = float64(time.Hour)
		s = s[:len(s)-1]
	case 'd', 'D':
		unit = float64(24 * time.Hour)
		s = s[:len(s)-1]
	case 'w', 'W':
		unit = float64(7 * 24 * time.Hour)
		s = s[:len(s)-1]
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f <= 0 {
		return 0, true
	}
	d := time.Duration(f * unit).Round(AgeResolution)
	return d, true
}

// FormatMaxKeys renders a bound the way ParseMaxKeys reads it.
func FormatMaxKeys(n int) string {
	if n <= 0 {
		return "unlimited"
	}
	return strconv.Itoa(n)
}
