package precastro

import (
	"fmt"
	"math"
	"time"

	"github.com/pkgw/precastro/internal/novas"
	"github.com/pkgw/precastro/internal/sofa"
)

// Time is an instant, stored as a two-part Julian date in a named
// timescale. The sum JD1+JD2 is the true Julian date; splitting it over
// two floats preserves sub-microsecond precision. Times are immutable
// values; conversions return new ones.
//
// UTC times use the SOFA quasi-JD convention, where leap-second days
// are stretched so each calendar day spans exactly one JD unit. Convert
// to TT before doing arithmetic on the parts.
type Time struct {
	JD1       float64
	JD2       float64
	Timescale string
}

// Now returns the current time from the system clock, in UTC. The
// system clock cannot represent a leap second in progress.
func Now() Time {
	t := time.Now()
	return TimeFromPOSIX(float64(t.UnixNano()) / 1e9)
}

// TimeFromPOSIX converts seconds since the POSIX epoch to a UTC Time.
func TimeFromPOSIX(t float64) Time {
	return Time{JD1: 2440587.5, JD2: t / 86400.0, Timescale: "UTC"}
}

// TimeFromJD creates a Time from a Julian date in the named timescale.
func TimeFromJD(jd float64, scale string) (Time, error) {
	if err := checkTimescale(scale); err != nil {
		return Time{}, err
	}
	return Time{JD1: jd, Timescale: scale}, nil
}

// TimeFromMJD creates a Time from a modified Julian date in the named
// timescale.
func TimeFromMJD(mjd float64, scale string) (Time, error) {
	if err := checkTimescale(scale); err != nil {
		return Time{}, err
	}
	return Time{JD1: sofa.DJM0, JD2: mjd, Timescale: scale}, nil
}

// TimeFromCalendar creates a Time from a Gregorian calendar date and
// clock time in the named timescale. On UTC leap-second days the
// seconds field may reach into the leap second (23:59:60). Dates far
// outside the leap-second table earn a dubious-year error unless
// dubiousOK is set.
func TimeFromCalendar(year, month, day, hour, minute int, second float64, scale string, dubiousOK bool) (Time, error) {
	if err := checkTimescale(scale); err != nil {
		return Time{}, err
	}
	d1, d2, st := sofa.Dtf2d(scale, year, month, day, hour, minute, second)
	if err := checkSofa("dtf2d", st, dubiousOK); err != nil {
		return Time{}, err
	}
	return Time{JD1: d1, JD2: d2, Timescale: scale}, nil
}

// TimeFromJulianEpoch creates a TT Time from a Julian epoch such as
// 2000.0.
func TimeFromJulianEpoch(epoch float64) Time {
	d1, d2 := sofa.Epj2jd(epoch)
	return Time{JD1: d1, JD2: d2, Timescale: "TT"}
}

// AsJD returns the time as a single Julian date, losing some precision.
func (t Time) AsJD() float64 {
	return t.JD1 + t.JD2
}

// AsMJD returns the time as a single modified Julian date.
func (t Time) AsMJD() float64 {
	return (t.JD1 - sofa.DJM0) + t.JD2
}

// AsTT converts the time to Terrestrial Time. TT, TAI and UTC sources
// are supported; anything else fails with UnsupportedTimescaleError.
func (t Time) AsTT(dubiousOK bool) (Time, error) {
	switch t.Timescale {
	case "TT":
		return t, nil
	case "TAI":
		d1, d2, st := sofa.Taitt(t.JD1, t.JD2)
		if err := checkSofa("taitt", st, dubiousOK); err != nil {
			return Time{}, err
		}
		return Time{JD1: d1, JD2: d2, Timescale: "TT"}, nil
	case "UTC":
		a1, a2, st := sofa.Utctai(t.JD1, t.JD2)
		if err := checkSofa("utctai", st, dubiousOK); err != nil {
			return Time{}, err
		}
		d1, d2, st := sofa.Taitt(a1, a2)
		if err := checkSofa("taitt", st, dubiousOK); err != nil {
			return Time{}, err
		}
		return Time{JD1: d1, JD2: d2, Timescale: "TT"}, nil
	default:
		return Time{}, &UnsupportedTimescaleError{Timescale: t.Timescale}
	}
}

// AsTDB returns the time for use where TDB is expected. TDB and TT
// differ by under 2 milliseconds; when ttOK is set, a TT-convertible
// time is accepted in place of true TDB and the TT value is returned.
func (t Time) AsTDB(ttOK bool) (Time, error) {
	if t.Timescale == "TDB" {
		return t, nil
	}
	if !ttOK {
		return Time{}, &UnsupportedTimescaleError{Timescale: t.Timescale}
	}
	return t.AsTT(false)
}

// AsBJD applies the barycentric light-travel (Roemer) correction toward
// obj, using the ephemeris for the Earth's barycentric position, and
// returns a TDB time. Relativistic terms are not applied.
func (t Time) AsBJD(obj *Object, eph *Ephemeris, ttOK bool) (Time, error) {
	tdb, err := t.AsTDB(ttOK)
	if err != nil {
		return Time{}, err
	}

	earth, st := novas.MakeObject(0, novas.BodyEarth, "Earth", nil)
	if st != 0 {
		return Time{}, &NovasError{Func: "make_object", Code: st}
	}
	pos, _, err := eph.State(tdb.JD1, tdb.JD2, earth.Number, OriginBarycenter)
	if err != nil {
		return Time{}, err
	}

	ra := obj.RA()
	dec := obj.Dec()
	u := [3]float64{
		math.Cos(dec) * math.Cos(ra),
		math.Cos(dec) * math.Sin(ra),
		math.Sin(dec),
	}
	jdelta := (pos[0]*u[0] + pos[1]*u[1] + pos[2]*u[2]) / novas.CAuday

	return Time{JD1: tdb.JD1, JD2: tdb.JD2 + jdelta, Timescale: "TDB"}, nil
}

// Calendar splits the time into Gregorian year, month, day and fraction
// of day.
func (t Time) Calendar() (year, month, day int, frac float64, err error) {
	y, m, d, fd, st := sofa.Jd2cal(t.JD1, t.JD2)
	if err := checkSofa("jd2cal", st, false); err != nil {
		return 0, 0, 0, 0, err
	}
	return y, m, d, fd, nil
}

// FormatCalendar renders the time as "YYYY/MM/DD HH:MM:SS.SSSS" with
// precision fractional digits on the seconds field. UTC leap seconds
// render as second 60.
func (t Time) FormatCalendar(precision int, dubiousOK bool) (string, error) {
	y, m, d, hmsf, st := sofa.D2dtf(t.Timescale, precision, t.JD1, t.JD2)
	if err := checkSofa("d2dtf", st, dubiousOK); err != nil {
		return "", err
	}
	if precision > 0 {
		return fmt.Sprintf("%d/%02d/%02d %02d:%02d:%02d.%0*d",
			y, m, d, hmsf[0], hmsf[1], hmsf[2], precision, hmsf[3]), nil
	}
	return fmt.Sprintf("%d/%02d/%02d %02d:%02d:%02d",
		y, m, d, hmsf[0], hmsf[1], hmsf[2]), nil
}

// String renders the time as a calendar date when possible, falling
// back to the raw Julian date.
func (t Time) String() string {
	s, err := t.FormatCalendar(3, true)
	if err != nil {
		return fmt.Sprintf("JD %.8f (%s)", t.AsJD(), t.Timescale)
	}
	return s + " (" + t.Timescale + ")"
}
