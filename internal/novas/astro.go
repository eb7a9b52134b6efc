package novas

import "math"

// StarVectors converts a catalog entry to a barycentric position vector
// in AU and a velocity vector in AU/day, both at the entry's
// proper-motion epoch. Stars with no measured parallax are placed at a
// token distance (1e-6 mas) so the direction is preserved.
func StarVectors(star *CatEntry) (pos, vel [3]float64) {
	paralx := star.Parallax
	if paralx <= 0 {
		paralx = 1e-6
	}

	dist := 1.0 / math.Sin(paralx*1e-3*asecToRad)
	r := star.RA * 15.0 * degToRad
	d := star.Dec * degToRad

	cra := math.Cos(r)
	sra := math.Sin(r)
	cdc := math.Cos(d)
	sdc := math.Sin(d)

	pos[0] = dist * cdc * cra
	pos[1] = dist * cdc * sra
	pos[2] = dist * sdc

	// Doppler factor accounting for the changing light travel time.
	k := 1.0 / (1.0 - star.RadVel/CKms)

	pmr := star.ProMoRA / (paralx * 365.25) * k
	pmd := star.ProMoDec / (paralx * 365.25) * k
	rvl := star.RadVel * 86400.0 / AUKm * k

	vel[0] = -pmr*sra - pmd*sdc*cra + rvl*cdc*cra
	vel[1] = pmr*cra - pmd*sdc*sra + rvl*cdc*sra
	vel[2] = pmd*cdc + rvl*sdc

	return pos, vel
}

// ProperMotion advances a position vector from one TDB Julian date to
// another by applying constant space motion.
func ProperMotion(jdTDB1 float64, pos, vel [3]float64, jdTDB2 float64) [3]float64 {
	dt := jdTDB2 - jdTDB1
	return [3]float64{
		pos[0] + vel[0]*dt,
		pos[1] + vel[1]*dt,
		pos[2] + vel[2]*dt,
	}
}

// Bary2Obs translates a barycentric position vector to one centered on
// an observer at barycentric position posObs. The second return is the
// light travel time from the object in days.
func Bary2Obs(pos, posObs [3]float64) ([3]float64, float64) {
	out := [3]float64{
		pos[0] - posObs[0],
		pos[1] - posObs[1],
		pos[2] - posObs[2],
	}
	lt := math.Sqrt(out[0]*out[0]+out[1]*out[1]+out[2]*out[2]) / CAuday
	return out, lt
}

// Vector2RADec converts a position vector to right ascension in hours
// and declination in degrees. Status 1 means a zero vector, 2 a vector
// pointing exactly at a celestial pole (RA reported as zero).
func Vector2RADec(pos [3]float64) (ra, dec float64, status int) {
	xyproj := math.Sqrt(pos[0]*pos[0] + pos[1]*pos[1])
	if xyproj == 0 {
		if pos[2] == 0 {
			return 0, 0, StatusZeroVector
		}
		dec = 90.0
		if pos[2] < 0 {
			dec = -90.0
		}
		return 0, dec, StatusPolarRA
	}

	ra = math.Atan2(pos[1], pos[0]) / degToRad / 15.0
	if ra < 0 {
		ra += 24.0
	}
	dec = math.Atan2(pos[2], xyproj) / degToRad
	return ra, dec, StatusOK
}

// AstroStar computes the astrometric place of a star: its geocentric
// direction at the given TT Julian date, accounting for proper motion
// and parallax but not light bending, aberration or refraction.
// Outputs are RA in hours and Dec in degrees, ICRS.
//
// Full accuracy requires an EarthProvider (status 11 without one); a
// provider failure surfaces as 10 plus its status code. Reduced
// accuracy uses the provider when given and the built-in analytic
// Earth model otherwise. The TT/TDB distinction (<2 ms) is ignored, as
// the wrapped library does for star positions.
func AstroStar(jdTT float64, star *CatEntry, accuracy Accuracy, earth EarthProvider) (ra, dec float64, status int) {
	pos, vel := StarVectors(star)

	epoch := star.PromoEpoch
	if epoch == 0 {
		epoch = JD2000
	}
	pos = ProperMotion(epoch, pos, vel, jdTT)

	var pobs [3]float64
	switch {
	case earth != nil:
		p, _, st := earth.BarycentricEarth(jdTT, 0)
		if st != 0 {
			return 0, 0, 10 + st
		}
		pobs = p
	case accuracy == FullAccuracy:
		return 0, 0, StatusNoEphemeris
	default:
		pobs, _ = analyticEarth(jdTT)
	}

	pos, _ = Bary2Obs(pos, pobs)
	return Vector2RADec(pos)
}
