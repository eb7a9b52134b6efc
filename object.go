package precastro

import (
	"fmt"
	"strings"

	"github.com/pkgw/precastro/internal/novas"
)

// Object is a celestial source, typically a catalog star. Positions on
// the public surface are radians, ICRS; catalog quantities keep their
// catalog units (proper motion in mas/yr, parallax in mas, radial
// velocity in km/s). A zero proper-motion epoch means J2000.0.
type Object struct {
	star novas.CatEntry
}

// NewObject creates an object with the given name at RA 0, Dec 0, with
// no proper motion, parallax or radial velocity.
func NewObject(name string) *Object {
	o := &Object{}
	o.star.StarName = name
	o.star.PromoEpoch = novas.JD2000
	return o
}

// Name returns the object's name.
func (o *Object) Name() string { return o.star.StarName }

// SetName sets the object's name.
func (o *Object) SetName(name string) { o.star.StarName = name }

// RA returns the right ascension in radians.
func (o *Object) RA() float64 { return o.star.RA * H2R }

// Dec returns the declination in radians.
func (o *Object) Dec() float64 { return o.star.Dec * D2R }

// SetRADec sets the position from angles in radians.
func (o *Object) SetRADec(ra, dec float64) *Object {
	o.star.RA = ra * R2H
	o.star.Dec = dec * R2D
	return o
}

// ParseRADec sets the position from sexagesimal strings, RA in hours
// and Dec in degrees.
func (o *Object) ParseRADec(raStr, decStr string) error {
	ra, err := ParseHours(raStr)
	if err != nil {
		return fmt.Errorf("bad RA %q: %w", raStr, err)
	}
	dec, err := ParseDegLat(decStr)
	if err != nil {
		return fmt.Errorf("bad Dec %q: %w", decStr, err)
	}
	o.SetRADec(ra, dec)
	return nil
}

// FormatRADec renders the position as sexagesimal hours and degrees.
func (o *Object) FormatRADec() string {
	return FormatRADec(o.RA(), o.Dec())
}

// ProperMotion returns the proper motion in mas/yr. The RA component
// includes the cos(dec) factor.
func (o *Object) ProperMotion() (pmRA, pmDec float64) {
	return o.star.ProMoRA, o.star.ProMoDec
}

// SetProperMotion sets the proper motion in mas/yr. The RA component
// includes the cos(dec) factor.
func (o *Object) SetProperMotion(pmRA, pmDec float64) *Object {
	o.star.ProMoRA = pmRA
	o.star.ProMoDec = pmDec
	return o
}

// Parallax returns the parallax in mas.
func (o *Object) Parallax() float64 { return o.star.Parallax }

// SetParallax sets the parallax in mas.
func (o *Object) SetParallax(plx float64) *Object {
	o.star.Parallax = plx
	return o
}

// RadialVelocity returns the radial velocity in km/s.
func (o *Object) RadialVelocity() float64 { return o.star.RadVel }

// SetRadialVelocity sets the radial velocity in km/s.
func (o *Object) SetRadialVelocity(rv float64) *Object {
	o.star.RadVel = rv
	return o
}

// PromoEpoch returns the proper-motion epoch as a TDB Julian date.
func (o *Object) PromoEpoch() float64 { return o.star.PromoEpoch }

// SetPromoEpoch sets the proper-motion epoch as a TDB Julian date.
func (o *Object) SetPromoEpoch(jdTDB float64) *Object {
	o.star.PromoEpoch = jdTDB
	return o
}

// SetEpochCalendar sets the proper-motion epoch from a calendar date
// and clock time in the named timescale.
func (o *Object) SetEpochCalendar(year, month, day, hour, minute int, second float64, scale string, dubiousOK bool) error {
	t, err := TimeFromCalendar(year, month, day, hour, minute, second, scale, dubiousOK)
	if err != nil {
		return err
	}
	tt, err := t.AsTT(dubiousOK)
	if err != nil {
		return err
	}
	o.star.PromoEpoch = tt.AsJD()
	return nil
}

// Describe returns a multi-line human-readable summary of the object.
func (o *Object) Describe() string {
	name := o.star.StarName
	if name == "" {
		name = "(unnamed)"
	}
	epoch := o.star.PromoEpoch
	if epoch == 0 {
		epoch = novas.JD2000
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", name, o.FormatRADec())
	fmt.Fprintf(&b, "proper motion: %.3f %.3f mas/yr at JD %.3f (TDB)\n",
		o.star.ProMoRA, o.star.ProMoDec, epoch)
	fmt.Fprintf(&b, "parallax: %.3f mas, radial velocity: %.3f km/s",
		o.star.Parallax, o.star.RadVel)
	return b.String()
}

// AstroPos computes the astrometric place of the object at time t,
// returning ICRS RA and Dec in radians. An open ephemeris is required
// for full accuracy; with lowAccuracy set, a nil ephemeris falls back
// to a built-in analytic Earth model.
func (o *Object) AstroPos(t Time, lowAccuracy bool, eph *Ephemeris) (ra, dec float64, err error) {
	tt, err := t.AsTT(false)
	if err != nil {
		return 0, 0, err
	}

	acc := novas.FullAccuracy
	if lowAccuracy {
		acc = novas.ReducedAccuracy
	}
	var earth novas.EarthProvider
	if eph != nil {
		earth = eph.handle
	}

	rah, decd, st := novas.AstroStar(tt.AsJD(), &o.star, acc, earth)
	if st != 0 {
		return 0, 0, &NovasError{Func: "astro_star", Code: st}
	}
	return rah * H2R, decd * D2R, nil
}
