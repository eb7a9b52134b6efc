package precastro

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Conversion factors between the angle units in play: radians on the
// public surface, hours and degrees in catalogs and display strings.
const (
	D2R = math.Pi / 180.0
	R2D = 180.0 / math.Pi
	H2R = math.Pi / 12.0
	R2H = 12.0 / math.Pi
	A2R = math.Pi / (180.0 * 3600.0)
	R2A = 180.0 * 3600.0 / math.Pi
)

// ParseHours parses a sexagesimal hour angle such as "12:34:56.78" or
// "12 34 56.78" and returns radians. The value must lie in [0, 24).
func ParseHours(s string) (float64, error) {
	v, err := parseSexagesimal(s)
	if err != nil {
		return 0, err
	}
	if v < 0 || v >= 24 {
		return 0, fmt.Errorf("hour value %g out of range [0, 24)", v)
	}
	return v * H2R, nil
}

// ParseDegLat parses a sexagesimal latitude-like angle such as
// "-01:23:45.6" and returns radians. The value must lie in [-90, 90]
// degrees.
func ParseDegLat(s string) (float64, error) {
	v, err := parseSexagesimal(s)
	if err != nil {
		return 0, err
	}
	if v < -90 || v > 90 {
		return 0, fmt.Errorf("latitude value %g out of range [-90, 90]", v)
	}
	return v * D2R, nil
}

// FormatHours renders an angle in radians as sexagesimal hours,
// "HH:MM:SS.SSS" with prec fractional digits, wrapped into [0, 24).
func FormatHours(rad float64, prec int) string {
	scale := math.Pow(10, float64(prec))
	wrap := int64(math.Round(24 * 3600 * scale))
	t := int64(math.Round(rad * R2H * 3600 * scale))
	t %= wrap
	if t < 0 {
		t += wrap
	}
	return fmtSplit(t, prec)
}

// FormatDegLat renders an angle in radians as signed sexagesimal
// degrees, "+DD:MM:SS.SS" with prec fractional digits.
func FormatDegLat(rad float64, prec int) string {
	sign := "+"
	if rad < 0 {
		sign = "-"
		rad = -rad
	}
	scale := math.Pow(10, float64(prec))
	t := int64(math.Round(rad * R2D * 3600 * scale))
	return sign + fmtSplit(t, prec)
}

// FormatRADec renders a position in radians as "HH:MM:SS.SSS
// +DD:MM:SS.SS".
func FormatRADec(ra, dec float64) string {
	return FormatHours(ra, 3) + " " + FormatDegLat(dec, 2)
}

// fmtSplit formats t, a nonnegative angle in units of 10^-prec
// arcseconds (or time-seconds), as colon-separated sexagesimal.
func fmtSplit(t int64, prec int) string {
	div := int64(math.Round(math.Pow(10, float64(prec))))
	frac := t % div
	t /= div
	sec := t % 60
	t /= 60
	min := t % 60
	unit := t / 60

	if prec > 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%0*d", unit, min, sec, prec, frac)
	}
	return fmt.Sprintf("%02d:%02d:%02d", unit, min, sec)
}

// parseSexagesimal parses up to three colon- or space-separated
// components into a decimal value in the leading unit. A sign is only
// legal at the very start.
func parseSexagesimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty sexagesimal string")
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ':' || r == ' ' || r == '\t'
	})
	if len(fields) < 1 || len(fields) > 3 {
		return 0, fmt.Errorf("expected 1 to 3 sexagesimal components, got %d", len(fields))
	}

	var v float64
	div := 1.0
	for _, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, fmt.Errorf("bad sexagesimal component %q: %w", f, err)
		}
		if x < 0 {
			return 0, fmt.Errorf("misplaced sign in sexagesimal string %q", s)
		}
		v += x / div
		div *= 60
	}
	if neg {
		v = -v
	}
	return v, nil
}
