package sofa

import "math"

// Taitt converts a TAI two-part Julian date to TT.
func Taitt(tai1, tai2 float64) (tt1, tt2 float64, status int) {
	dtat := TTMinusTAI / DAYSEC
	if math.Abs(tai1) > math.Abs(tai2) {
		return tai1, tai2 + dtat, StatusOK
	}
	return tai1 + dtat, tai2, StatusOK
}

// Tttai converts a TT two-part Julian date to TAI.
func Tttai(tt1, tt2 float64) (tai1, tai2 float64, status int) {
	dtat := TTMinusTAI / DAYSEC
	if math.Abs(tt1) > math.Abs(tt2) {
		return tt1, tt2 - dtat, StatusOK
	}
	return tt1 - dtat, tt2, StatusOK
}

// Utctai converts a UTC two-part quasi-JD to TAI. The quasi-JD follows
// the SOFA convention where leap-second days are stretched so that each
// calendar day spans exactly one JD unit.
func Utctai(utc1, utc2 float64) (tai1, tai2 float64, status int) {
	big1 := math.Abs(utc1) >= math.Abs(utc2)
	u1, u2 := utc1, utc2
	if !big1 {
		u1, u2 = utc2, utc1
	}

	iy, im, id, fd, js := Jd2cal(u1, u2)
	if js != 0 {
		return 0, 0, js
	}

	dat0, j0 := Dat(iy, im, id, 0.0)
	if j0 < 0 {
		return 0, 0, j0
	}
	status = j0

	dat12, j12 := Dat(iy, im, id, 0.5)
	if j12 < 0 {
		return 0, 0, j12
	}
	if j12 > status {
		status = j12
	}

	iyt, imt, idt, _, jc := Jd2cal(u1+1.5, u2-fd)
	if jc != 0 {
		return 0, 0, jc
	}
	dat24, j24 := Dat(iyt, imt, idt, 0.0)
	if j24 < 0 {
		return 0, 0, j24
	}
	if j24 > status {
		status = j24
	}

	// Separate the drift within the day from the leap step at its end.
	dlod := 2.0 * (dat12 - dat0)
	dleap := dat24 - (dat0 + dlod)

	// Undo the leap-day stretch, then scale pre-1972 UTC seconds to SI.
	fd *= (DAYSEC + dleap) / DAYSEC
	fd *= (DAYSEC + dlod) / DAYSEC

	z1, z2, jz := Cal2jd(iy, im, id)
	if jz < 0 {
		return 0, 0, jz
	}

	a2 := z1 - u1 + z2 + fd + dat0/DAYSEC
	if big1 {
		return u1, a2, status
	}
	return a2, u1, status
}

// Taiutc converts a TAI two-part Julian date to the UTC quasi-JD form.
// It inverts Utctai by iteration.
func Taiutc(tai1, tai2 float64) (utc1, utc2 float64, status int) {
	big1 := math.Abs(tai1) >= math.Abs(tai2)
	a1, a2 := tai1, tai2
	if !big1 {
		a1, a2 = tai2, tai1
	}

	u1, u2 := a1, a2
	for i := 0; i < 3; i++ {
		g1, g2, js := Utctai(u1, u2)
		if js < 0 {
			return 0, 0, js
		}
		status = js
		u2 += a1 - g1
		u2 += a2 - g2
	}

	if big1 {
		return u1, u2, status
	}
	return u2, u1, status
}

// Epj2jd converts a Julian epoch (e.g. 2005.37) to a two-part Julian
// date in the convention used throughout this package.
func Epj2jd(epj float64) (djm0, djm float64) {
	return DJM0, 51544.5 + (epj-2000.0)*365.25
}

// Epj converts a two-part Julian date to a Julian epoch.
func Epj(dj1, dj2 float64) float64 {
	return 2000.0 + ((dj1-DJ00)+dj2)/365.25
}
