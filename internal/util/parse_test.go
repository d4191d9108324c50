package util

import (
	"testing"
	"time"
)

func TestParseMaxKeys(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"unlimited", 0},
		{"Unlimited", 0},
		{"500", 500},
		{" 500 ", 500},
		{"4K", 4096},
		{"4k", 4096},
		{"2M", 2097152},
		{"1.5K", 1536},
		{"0.4", 0},    // rounds to nearest
		{"0.6", 1},    // rounds to nearest
		{"-10", 0},    // negative coerces to unbounded
		{"-1K", 0},    // negative coerces to unbounded
		{"abc", 0},    // unparsable coerces to unbounded
		{"10X", 0},    // unknown suffix makes the number unparsable
		{"K", 0},      // bare suffix
		{"1e3", 1000}, // scientific notation is still a float
	}
	for _, tc := range cases {
		if got := ParseMaxKeys(tc.in); got != tc.want {
			t.Errorf("ParseMaxKeys(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseMaxAge(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Duration
		enabled bool
	}{
		{"", 0, false},
		{"never", 0, false},
		{"NEVER", 0, false},
		{"now", 0, true},
		{"0", 0, true},
		{"-5", 0, true}, // negative coerces to immediate
		{"90", 90 * time.Second, true},
		{"90s", 90 * time.Second, true},
		{"10m", 10 * time.Minute, true},
		{"1.5h", 90 * time.Minute, true},
		{"2d", 48 * time.Hour, true},
		{"1w", 7 * 24 * time.Hour, true},
		{"0.0001", 100 * time.Microsecond, true},
		{"0.00012", 100 * time.Microsecond, true}, // rounded to resolution
		{"abc", 0, false},                         // unparsable disables expiry
		{"5x", 0, false},
	}
	for _, tc := range cases {
		got, enabled := ParseMaxAge(tc.in)
		if got != tc.want || enabled != tc.enabled {
			t.Errorf("ParseMaxAge(%q) = %v,%v want %v,%v", tc.in, got, enabled, tc.want, tc.enabled)
		}
	}
}

func TestFormatMaxKeys(t *testing.T) {
	if got := FormatMaxKeys(0); got != "unlimited" {
		t.Fatalf("FormatMaxKeys(0) = %q", got)
	}
	if got := FormatMaxKeys(42); got != "42" {
		t.Fatalf("FormatMaxKeys(42) = %q", got)
	}
}
