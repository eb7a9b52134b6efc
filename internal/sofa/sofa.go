// Package sofa implements the small set of IAU SOFA time-scale and
// calendar routines that the binding layer exposes.
//
// The routines keep the SOFA calling convention: two-part Julian dates
// (jd1+jd2 sums to the true JD, split to preserve precision) and an
// in-band integer status code. Status 0 is success; +1 flags a dubious
// year with usable outputs; negative values identify the bad field
// (-1 year, -2 month, -3 day, -4 hour, -5 minute, -6 second). Callers
// decide how to surface nonzero codes; nothing here logs or retries.
package sofa

import "math"

const (
	// DJM0 is the MJD zero point as a Julian date.
	DJM0 = 2400000.5

	// DJ00 is the Julian date of the J2000.0 epoch.
	DJ00 = 2451545.0

	// DAYSEC is the number of seconds in a day.
	DAYSEC = 86400.0

	// TTMinusTAI is the fixed TT-TAI offset in seconds.
	TTMinusTAI = 32.184
)

// Status codes shared by the calendar routines.
const (
	StatusOK          = 0
	StatusDubiousYear = 1
	StatusBadYear     = -1
	StatusBadMonth    = -2
	StatusBadDay      = -3
	StatusBadHour     = -4
	StatusBadMinute   = -5
	StatusBadSecond   = -6
)

// monthDays holds the day count per month in a non-leap year.
var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeap(iy int) bool {
	return iy%4 == 0 && (iy%100 != 0 || iy%400 == 0)
}

// Cal2jd converts a Gregorian calendar date to a two-part Julian date.
// The first part is always DJM0; the second is the MJD for 0 hours.
// Valid for years -4799 and later.
func Cal2jd(iy, im, id int) (djm0, djm float64, status int) {
	if iy < -4799 {
		return 0, 0, StatusBadYear
	}
	if im < 1 || im > 12 {
		return 0, 0, StatusBadMonth
	}
	ndays := monthDays[im-1]
	if im == 2 && isLeap(iy) {
		ndays = 29
	}
	if id < 1 || id > ndays {
		return 0, 0, StatusBadDay
	}

	my := (im - 14) / 12
	iypmy := iy + my
	djm = float64((1461*(iypmy+4800))/4 +
		(367*(im-2-12*my))/12 -
		(3*((iypmy+4900)/100))/4 +
		id - 2432076)

	return DJM0, djm, StatusOK
}

// Jd2cal converts a two-part Julian date to Gregorian year, month, day
// and fraction of day. The JD may be apportioned between dj1 and dj2 in
// any convenient way. Status -1 means the date is outside the supported
// range (roughly -68569.5 to 1e9).
func Jd2cal(dj1, dj2 float64) (iy, im, id int, fd float64, status int) {
	const djMin = -68569.5
	const djMax = 1e9

	dj := dj1 + dj2
	if dj < djMin || dj > djMax {
		return 0, 0, 0, 0, StatusBadYear
	}

	// Order the parts, big first, and align to midnight.
	d1, d2 := dj1, dj2
	if math.Abs(dj2) > math.Abs(dj1) {
		d1, d2 = dj2, dj1
	}
	d2 -= 0.5

	// Separate the day and fraction.
	f1 := math.Mod(d1, 1.0)
	f2 := math.Mod(d2, 1.0)
	fd = math.Mod(f1+f2, 1.0)
	if fd < 0 {
		fd += 1.0
	}
	d := math.Round(d1-f1) + math.Round(d2-f2) + math.Round(f1+f2-fd)
	jd := int64(math.Round(d)) + 1

	// Gregorian calendar conversion (Fliegel & Van Flandern).
	l := jd + 68569
	n := (4 * l) / 146097
	l -= (146097*n + 3) / 4
	i := (4000 * (l + 1)) / 1461001
	l -= (1461*i)/4 - 31
	k := (80 * l) / 2447
	id = int(l - (2447*k)/80)
	l = k / 11
	im = int(k + 2 - 12*l)
	iy = int(100*(n-49) + i + l)

	return iy, im, id, fd, StatusOK
}

// Dtf2d converts a calendar date and clock time in the named timescale
// to a two-part Julian date. On UTC leap-second days the day is
// stretched so that second 60 of 23:59 is representable and midnight
// boundaries stay aligned.
func Dtf2d(scale string, iy, im, id, ihr, imn int, sec float64) (d1, d2 float64, status int) {
	djm0, djm, js := Cal2jd(iy, im, id)
	if js < 0 {
		return 0, 0, js
	}
	big := js // carries a possible dubious-year flag

	// Day length and final-minute length, defaults first.
	dlen := DAYSEC
	seclim := 60.0

	if scale == "UTC" {
		dleap, js2 := leapStretch(djm0, djm, iy, im, id)
		if js2 < 0 {
			return 0, 0, js2
		}
		if js2 > big {
			big = js2
		}
		dlen += dleap
		if ihr == 23 && imn == 59 {
			seclim += dleap
		}
	}

	if ihr < 0 || ihr > 23 {
		return 0, 0, StatusBadHour
	}
	if imn < 0 || imn > 59 {
		return 0, 0, StatusBadMinute
	}
	if sec < 0 || sec >= seclim {
		return 0, 0, StatusBadSecond
	}

	t := (60.0*float64(60*ihr+imn) + sec) / dlen
	return djm0, djm + t, big
}

// D2dtf converts a two-part Julian date to calendar date and clock time,
// rounded to ndp decimal places of the seconds field. The returned ihmsf
// holds hours, minutes, seconds and the fraction as an integer in units
// of 10^-ndp seconds (zero when ndp < 1). UTC leap seconds are reported
// as second 60 of 23:59.
func D2dtf(scale string, ndp int, d1, d2 float64) (iy, im, id int, ihmsf [4]int, status int) {
	iy, im, id, fd, js := Jd2cal(d1, d2)
	if js != 0 {
		return 0, 0, 0, ihmsf, js
	}

	dlen := DAYSEC
	var dleap float64
	leap := false
	if scale == "UTC" {
		djm0, djm, js2 := Cal2jd(iy, im, id)
		if js2 < 0 {
			return 0, 0, 0, ihmsf, js2
		}
		if js2 > status {
			status = js2
		}
		dleap, js2 = leapStretch(djm0, djm, iy, im, id)
		if js2 < 0 {
			return 0, 0, 0, ihmsf, js2
		}
		if js2 > status {
			status = js2
		}
		leap = math.Abs(dleap) > 0.5
		dlen += dleap
	}

	// Seconds into the (possibly stretched) day, rounded at ndp.
	w := fd * dlen
	var scaled float64
	if ndp > 0 {
		p := math.Pow(10, float64(ndp))
		scaled = math.Round(w * p)
		w = scaled / p
	} else {
		// Non-positive precision rounds to 10^-ndp whole seconds.
		p := math.Pow(10, float64(ndp))
		w = math.Round(w*p) / p
		scaled = 0
	}

	secOfDay := int(math.Floor(w))
	limit := int(DAYSEC)
	if leap && dleap > 0 {
		limit += int(math.Round(dleap))
	}

	// Rounding may carry past the end of the day.
	if secOfDay >= limit {
		iy2, im2, id2, _, js3 := Jd2cal(d1+0.5, d2-fd+1.0)
		if js3 != 0 {
			return 0, 0, 0, ihmsf, js3
		}
		iy, im, id = iy2, im2, id2
		secOfDay = 0
		scaled = 0
	}

	if leap && secOfDay >= int(DAYSEC) {
		ihmsf[0] = 23
		ihmsf[1] = 59
		ihmsf[2] = 60 + secOfDay - int(DAYSEC)
	} else {
		ihmsf[0] = secOfDay / 3600
		ihmsf[1] = (secOfDay % 3600) / 60
		ihmsf[2] = secOfDay % 60
	}
	if ndp > 0 {
		p := math.Pow(10, float64(ndp))
		ihmsf[3] = int(math.Mod(scaled, p))
	}

	return iy, im, id, ihmsf, status
}

// leapStretch returns the extra day length, in seconds, for a possible
// leap second at the end of the given UTC day (zero on ordinary days),
// along with the worst Dat status encountered.
func leapStretch(djm0, djm float64, iy, im, id int) (dleap float64, status int) {
	dat0, j0 := Dat(iy, im, id, 0.0)
	if j0 < 0 {
		return 0, j0
	}
	dat12, j12 := Dat(iy, im, id, 0.5)
	if j12 < 0 {
		return 0, j12
	}
	iyt, imt, idt, _, jc := Jd2cal(djm0+djm, 1.0)
	if jc != 0 {
		return 0, jc
	}
	dat24, j24 := Dat(iyt, imt, idt, 0.0)
	if j24 < 0 {
		return 0, j24
	}

	status = j0
	if j12 > status {
		status = j12
	}
	if j24 > status {
		status = j24
	}

	// Any drift within the day plus the step at its end.
	dlod := 2.0 * (dat12 - dat0)
	return dat24 - (dat0 + dlod), status
}
