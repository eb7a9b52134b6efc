package sofa

// latestKnownYear is the last year for which the leap second table is
// known to be complete. Dates more than five years past it get a
// dubious-year status.
const latestKnownYear = 2017

// datEntry is one step of the TAI-UTC table. Entries before 1972
// include a drift term relative to a reference MJD.
type datEntry struct {
	iy, im int
	delat  float64
	mjdRef float64 // drift reference MJD (pre-1972 only)
	rate   float64 // drift in seconds per day (pre-1972 only)
}

// changes is the TAI-UTC history, from the USNO/IERS announcements.
var changes = []datEntry{
	{1960, 1, 1.4178180, 37300.0, 0.0012960},
	{1961, 1, 1.4228180, 37300.0, 0.0012960},
	{1961, 8, 1.3728180, 37300.0, 0.0012960},
	{1962, 1, 1.8458580, 37665.0, 0.0011232},
	{1963, 11, 1.9458580, 37665.0, 0.0011232},
	{1964, 1, 3.2401300, 38761.0, 0.0012960},
	{1964, 4, 3.3401300, 38761.0, 0.0012960},
	{1964, 9, 3.4401300, 38761.0, 0.0012960},
	{1965, 1, 3.5401300, 38761.0, 0.0012960},
	{1965, 3, 3.6401300, 38761.0, 0.0012960},
	{1965, 7, 3.7401300, 38761.0, 0.0012960},
	{1965, 9, 3.8401300, 38761.0, 0.0012960},
	{1966, 1, 4.3131700, 39126.0, 0.0025920},
	{1968, 2, 4.2131700, 39126.0, 0.0025920},
	{1972, 1, 10.0, 0, 0},
	{1972, 7, 11.0, 0, 0},
	{1973, 1, 12.0, 0, 0},
	{1974, 1, 13.0, 0, 0},
	{1975, 1, 14.0, 0, 0},
	{1976, 1, 15.0, 0, 0},
	{1977, 1, 16.0, 0, 0},
	{1978, 1, 17.0, 0, 0},
	{1979, 1, 18.0, 0, 0},
	{1980, 1, 19.0, 0, 0},
	{1981, 7, 20.0, 0, 0},
	{1982, 7, 21.0, 0, 0},
	{1983, 7, 22.0, 0, 0},
	{1985, 7, 23.0, 0, 0},
	{1988, 1, 24.0, 0, 0},
	{1990, 1, 25.0, 0, 0},
	{1991, 1, 26.0, 0, 0},
	{1992, 7, 27.0, 0, 0},
	{1993, 7, 28.0, 0, 0},
	{1994, 7, 29.0, 0, 0},
	{1996, 1, 30.0, 0, 0},
	{1997, 7, 31.0, 0, 0},
	{1999, 1, 32.0, 0, 0},
	{2006, 1, 33.0, 0, 0},
	{2009, 1, 34.0, 0, 0},
	{2012, 7, 35.0, 0, 0},
	{2015, 7, 36.0, 0, 0},
	{2017, 1, 37.0, 0, 0},
}

// Dat returns ΔAT = TAI-UTC, in seconds, for the given UTC date and
// fraction of day. Status +1 flags a year outside the confident range
// (before 1960 or well past the table's end); the returned value is the
// nearest table entry in that case.
func Dat(iy, im, id int, fd float64) (d float64, status int) {
	if fd < 0 || fd > 1 {
		return 0, StatusBadHour
	}

	_, djm, js := Cal2jd(iy, im, id)
	if js < 0 {
		return 0, js
	}

	if iy < changes[0].iy {
		return changes[0].delat, StatusDubiousYear
	}
	if iy > latestKnownYear+5 {
		status = StatusDubiousYear
	}

	m := 12*iy + im
	i := len(changes) - 1
	for ; i > 0; i-- {
		if m >= 12*changes[i].iy+changes[i].im {
			break
		}
	}
	e := changes[i]

	d = e.delat
	if e.rate != 0 {
		d += (djm + fd - e.mjdRef) * e.rate
	}
	return d, status
}
