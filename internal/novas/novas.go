// Package novas implements the star-place reduction routines the
// binding layer exposes, keeping the NOVAS calling conventions: fixed
// catalog-entry records, right ascension in hours, declination in
// degrees, and in-band integer status codes (0 = success).
package novas

import "math"

const (
	// AUKm is the astronomical unit in kilometers (DE405 value).
	AUKm = 1.4959787069098932e8

	// CAuday is the speed of light in AU per day.
	CAuday = 173.1446326846693

	// CKms is the speed of light in km/s.
	CKms = 299792.458

	// JD2000 is the Julian date of the J2000.0 epoch.
	JD2000 = 2451545.0

	degToRad  = math.Pi / 180.0
	asecToRad = degToRad / 3600.0
)

// Accuracy selects the computation path: full accuracy requires an
// ephemeris for the Earth's position, reduced accuracy falls back to a
// built-in analytic model.
type Accuracy int

const (
	FullAccuracy    Accuracy = 0
	ReducedAccuracy Accuracy = 1
)

// Per-routine status codes.
const (
	StatusOK            = 0
	StatusZeroVector    = 1  // Vector2RADec: all position components zero
	StatusPolarRA       = 2  // Vector2RADec: RA indeterminate at the pole
	StatusBadObjectType = 1  // MakeObject
	StatusBadObjectNum  = 2  // MakeObject
	StatusNoEphemeris   = 11 // AstroStar: full accuracy requested without an ephemeris
)

// CatEntry is a catalog star record: the mean-place astrometric
// parameters of one star. Units follow the wrapped-library contract:
// RA in hours, Dec in degrees, proper motion in mas/yr, parallax in
// mas, radial velocity in km/s. PromoEpoch is the TDB Julian date at
// which the proper-motion offset is zero; zero means J2000.0.
type CatEntry struct {
	StarName   string
	Catalog    string
	StarNumber int64
	RA         float64
	Dec        float64
	ProMoRA    float64
	ProMoDec   float64
	Parallax   float64
	RadVel     float64
	PromoEpoch float64
}

// Object identifies a body: a major planet, Sun or Moon (Type 0), a
// minor planet (Type 1), or a catalog star (Type 2, via Star).
type Object struct {
	Type   int
	Number int
	Name   string
	Star   CatEntry
}

// Major-planet numbering for Type 0 objects.
const (
	BodyMercury = 1
	BodyVenus   = 2
	BodyEarth   = 3
	BodyMars    = 4
	BodyJupiter = 5
	BodySaturn  = 6
	BodyUranus  = 7
	BodyNeptune = 8
	BodyPluto   = 9
	BodySun     = 10
	BodyMoon    = 11
)

// MakeObject validates the pieces of an object descriptor and
// assembles one. Status 1 means a bad type code, 2 a number out of
// range for the type.
func MakeObject(objType, number int, name string, star *CatEntry) (Object, int) {
	if objType < 0 || objType > 2 {
		return Object{}, StatusBadObjectType
	}
	if objType == 0 && (number < BodyMercury || number > BodyMoon) {
		return Object{}, StatusBadObjectNum
	}

	obj := Object{
		Type:   objType,
		Number: number,
		Name:   name,
	}
	if star != nil {
		obj.Star = *star
	}
	return obj, StatusOK
}

// EarthProvider supplies the barycentric position and velocity of the
// Earth, in AU and AU/day, at a two-part TDB Julian date. A JPL
// ephemeris handle satisfies this; status follows the ephemeris
// contract (0 = success).
type EarthProvider interface {
	BarycentricEarth(jd1, jd2 float64) (pos, vel [3]float64, status int)
}
