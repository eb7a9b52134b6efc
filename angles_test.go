package precastro

import (
	"math"
	"testing"
)

func TestParseHours(t *testing.T) {
	tests := []struct {
		in   string
		want float64 // hours
		ok   bool
	}{
		{"12:34:56.78", 12 + 34/60.0 + 56.78/3600.0, true},
		{"12 34 56.78", 12 + 34/60.0 + 56.78/3600.0, true},
		{"0:0:0", 0, true},
		{"23:59:59.999", 23 + 59/60.0 + 59.999/3600.0, true},
		{"6", 6, true},
		{"6:30", 6.5, true},
		{"24:00:00", 0, false},
		{"-1:00:00", 0, false},
		{"1:xx:00", 0, false},
		{"1:2:3:4", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseHours(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseHours(%q) error = %v, ok = %v", tt.in, err, tt.ok)
			continue
		}
		if err == nil {
			near(t, "hours "+tt.in, got, tt.want*H2R, 1e-12)
		}
	}
}

func TestParseDegLat(t *testing.T) {
	tests := []struct {
		in   string
		want float64 // degrees
		ok   bool
	}{
		{"12:30:00", 12.5, true},
		{"-01:23:45.6", -(1 + 23/60.0 + 45.6/3600.0), true},
		{"+45:00:00", 45, true},
		{"-00:00:01", -1.0 / 3600.0, true},
		{"90:00:00", 90, true},
		{"90:00:01", 0, false},
		{"-91", 0, false},
		{"1:-2:3", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseDegLat(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseDegLat(%q) error = %v, ok = %v", tt.in, err, tt.ok)
			continue
		}
		if err == nil {
			near(t, "deg "+tt.in, got, tt.want*D2R, 1e-12)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		hours float64
		prec  int
		want  string
	}{
		{12 + 34/60.0 + 56.789/3600.0, 3, "12:34:56.789"},
		{0, 3, "00:00:00.000"},
		{6.5, 0, "06:30:00"},
		{23.9999999999, 3, "00:00:00.000"}, // wraps at 24h
	}
	for _, tt := range tests {
		if got := FormatHours(tt.hours*H2R, tt.prec); got != tt.want {
			t.Errorf("FormatHours(%vh, %d) = %q, want %q", tt.hours, tt.prec, got, tt.want)
		}
	}
}

func TestFormatDegLat(t *testing.T) {
	tests := []struct {
		deg  float64
		prec int
		want string
	}{
		{12.5, 2, "+12:30:00.00"},
		{-(1 + 23/60.0 + 45.6/3600.0), 2, "-01:23:45.60"},
		{0, 2, "+00:00:00.00"},
		{-1.0 / 3600.0, 2, "-00:00:01.00"},
	}
	for _, tt := range tests {
		if got := FormatDegLat(tt.deg*D2R, tt.prec); got != tt.want {
			t.Errorf("FormatDegLat(%v deg, %d) = %q, want %q", tt.deg, tt.prec, got, tt.want)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	ra := (5 + 14/60.0 + 32.272/3600.0) * H2R
	dec := -(8 + 12/60.0 + 5.9/3600.0) * D2R

	s := FormatRADec(ra, dec)
	if s != "05:14:32.272 -08:12:05.90" {
		t.Fatalf("FormatRADec = %q", s)
	}

	ra2, err := ParseHours("05:14:32.272")
	if err != nil {
		t.Fatal(err)
	}
	dec2, err := ParseDegLat("-08:12:05.90")
	if err != nil {
		t.Fatal(err)
	}
	near(t, "ra round trip", ra2, ra, 1e-9)
	near(t, "dec round trip", dec2, dec, 1e-9)
}

func TestConversionFactors(t *testing.T) {
	near(t, "H2R", 24*H2R, 2*math.Pi, 1e-15)
	near(t, "D2R*R2D", D2R*R2D, 1, 1e-15)
	near(t, "A2R", 3600*180*A2R, math.Pi, 1e-9)
}
