package novas

import "math"

// analyticEarth returns an approximate barycentric position (AU) and
// velocity (AU/day) of the Earth at a TT Julian date, from a truncated
// solar ephemeris (Astronomical Almanac low-precision series). Good to
// a few parts in 1e5 of an AU, which keeps parallax errors for real
// stars below a microarcsecond. The Sun is treated as the barycenter.
func analyticEarth(jd float64) (pos, vel [3]float64) {
	pos = earthHeliocentric(jd)

	// Central-difference velocity; the series is smooth enough.
	p0 := earthHeliocentric(jd - 0.5)
	p1 := earthHeliocentric(jd + 0.5)
	for i := 0; i < 3; i++ {
		vel[i] = p1[i] - p0[i]
	}
	return pos, vel
}

// earthHeliocentric evaluates the Earth's heliocentric equatorial
// position in AU: the negated geocentric solar position.
func earthHeliocentric(jd float64) [3]float64 {
	t := (jd - JD2000) / 36525.0

	// Mean longitude and mean anomaly of the Sun, degrees.
	l0 := norm360(280.46646 + 36000.76983*t + 0.0003032*t*t)
	m := norm360(357.52911 + 35999.05029*t - 0.0001537*t*t)
	mrad := m * degToRad

	// Equation of center, degrees.
	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(mrad) +
		(0.019993-0.000101*t)*math.Sin(2*mrad) +
		0.000289*math.Sin(3*mrad)

	sunLon := (l0 + c) * degToRad
	v := (m + c) * degToRad

	// Eccentricity and radius vector, AU.
	e := 0.016708634 - 0.000042037*t - 0.0000001267*t*t
	r := 1.000001018 * (1 - e*e) / (1 + e*math.Cos(v))

	// Mean obliquity of the ecliptic.
	eps := (23.439291 - 0.0130042*t) * degToRad

	// Geocentric equatorial Sun, then negate for the Earth.
	xs := r * math.Cos(sunLon)
	ys := r * math.Sin(sunLon) * math.Cos(eps)
	zs := r * math.Sin(sunLon) * math.Sin(eps)

	return [3]float64{-xs, -ys, -zs}
}

func norm360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
