package precastro

import "github.com/pkgw/precastro/internal/jpl"

// Body numbers for ephemeris state queries. Earth is derived from the
// Earth-Moon barycenter; the Moon is barycentric.
const (
	BodyMercury = jpl.BodyMercury
	BodyVenus   = jpl.BodyVenus
	BodyEarth   = jpl.BodyEarth
	BodyMars    = jpl.BodyMars
	BodyJupiter = jpl.BodyJupiter
	BodySaturn  = jpl.BodySaturn
	BodyUranus  = jpl.BodyUranus
	BodyNeptune = jpl.BodyNeptune
	BodyPluto   = jpl.BodyPluto
	BodySun     = jpl.BodySun
	BodyMoon    = jpl.BodyMoon
)

// Coordinate origins for ephemeris state queries.
const (
	OriginBarycenter = jpl.OriginBarycenter
	OriginSun        = jpl.OriginSun
)

// Ephemeris is an open JPL binary ephemeris. Open one with
// OpenEphemeris and release it with Close. Not safe for concurrent use.
type Ephemeris struct {
	handle *jpl.Ephemeris
	info   EphemerisInfo
}

// EphemerisInfo summarizes an ephemeris file: the Julian date span it
// covers and its DE series number.
type EphemerisInfo struct {
	JDBegin  float64
	JDEnd    float64
	DENumber int
}

// OpenEphemeris opens a binary JPL ephemeris file.
func OpenEphemeris(path string) (*Ephemeris, EphemerisInfo, error) {
	h, st := jpl.Open(path)
	if st != 0 {
		return nil, EphemerisInfo{}, &NovasError{Func: "ephem_open", Code: st}
	}
	info := EphemerisInfo{JDBegin: h.JDBegin, JDEnd: h.JDEnd, DENumber: h.DENumber}
	return &Ephemeris{handle: h, info: info}, info, nil
}

// Info returns the span and DE number recorded at open time.
func (e *Ephemeris) Info() EphemerisInfo { return e.info }

// Close releases the ephemeris. Closing an already-closed handle is an
// error.
func (e *Ephemeris) Close() error {
	if st := e.handle.Close(); st != 0 {
		return &NovasError{Func: "ephem_close", Code: st}
	}
	return nil
}

// State returns the position (AU) and velocity (AU/day) of a body at a
// two-part TDB Julian date, relative to the solar system barycenter
// (OriginBarycenter) or the Sun (OriginSun).
func (e *Ephemeris) State(jd1, jd2 float64, body, origin int) (pos, vel [3]float64, err error) {
	p, v, st := e.handle.State(jd1, jd2, body, origin)
	if st != 0 {
		return pos, vel, &NovasError{Func: "ephemeris", Code: st}
	}
	return p, v, nil
}

// StateAt is State at a Time, converting to TDB first. TT-convertible
// times are accepted; the TT/TDB difference is negligible here.
func (e *Ephemeris) StateAt(t Time, body, origin int) (pos, vel [3]float64, err error) {
	tdb, err := t.AsTDB(true)
	if err != nil {
		return pos, vel, err
	}
	return e.State(tdb.JD1, tdb.JD2, body, origin)
}
