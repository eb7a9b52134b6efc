// Package jpl reads binary JPL development ephemerides (the record
// format used by the DE series and the Fortran export tools) and
// interpolates body positions from their Chebyshev coefficients.
//
// The query routines keep the wrapped-library convention of in-band
// integer status codes (0 = success); Open and Close do the same so
// the binding layer can surface the codes verbatim. The byte order is
// little-endian, matching the companion compiler in this package.
package jpl

import (
	"encoding/binary"
	"math"
	"os"
)

// Fixed header geometry, from the DE export format.
const (
	numTitles    = 3
	titleLen     = 84
	maxConstants = 400
	constNameLen = 6
	numChunks    = 13
)

// Open status codes.
const (
	OpenOK           = 0
	OpenCannotRead   = 1 // file missing or unreadable
	OpenShortHeader  = 2 // header record truncated
	OpenBadSpan      = 3 // nonsense start/end/step
	OpenBadPointers  = 4 // interpolation pointers inconsistent
	OpenBadSize      = 5 // file is not a whole number of records
	OpenNoData       = 6 // no coefficient records
)

// State and Close status codes.
const (
	StateOK         = 0
	StateOutOfRange = 1 // date outside the ephemeris span
	StateBadBody    = 2 // body unknown or absent from this ephemeris
	StateNotOpen    = 3 // handle has been closed
	CloseOK         = 0
	CloseNotOpen    = 1 // closing an already-closed handle
)

// Coordinate origins for State.
const (
	OriginBarycenter = 0
	OriginSun        = 1
)

// Body numbers for State, matching the star-kernel convention:
// 1-9 are the major planets (Earth = 3), 10 the Sun, 11 the Moon.
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

// DE coefficient chunk numbers (1-based) for the bodies we address.
// Chunk 3 is the Earth-Moon barycenter and chunk 10 the geocentric
// Moon; the Earth and barycentric Moon are derived from those two.
const (
	chunkEMB  = 3
	chunkMoon = 10
	chunkSun  = 11
)

// iptEntry describes one coefficient chunk: the 1-based offset of its
// first coefficient within a data record, the number of Chebyshev
// coefficients per component, and the number of sub-intervals per
// record.
type iptEntry struct {
	offset int
	ncf    int
	na     int
}

// Ephemeris is an open binary ephemeris. It is not safe for concurrent
// use. Close releases the coefficient storage; using a closed handle
// fails with StateNotOpen.
type Ephemeris struct {
	JDBegin  float64
	JDEnd    float64
	Step     float64
	DENumber int
	AU       float64
	EMRAT    float64

	ipt     [numChunks]iptEntry
	ncoeff  int
	records [][]float64
	open    bool
}

// Open reads and indexes a binary ephemeris file. The returned status
// follows the Open* codes; the handle is non-nil only on status 0.
func Open(path string) (*Ephemeris, int) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, OpenCannotRead
	}

	// Fixed-position header fields after the title and name blocks.
	headFixed := numTitles*titleLen + maxConstants*constNameLen
	need := headFixed + 3*8 + 4 + 2*8 + 12*3*4 + 4 + 3*4
	if len(raw) < need {
		return nil, OpenShortHeader
	}

	e := &Ephemeris{}
	p := headFixed

	e.JDBegin = readF64(raw, &p)
	e.JDEnd = readF64(raw, &p)
	e.Step = readF64(raw, &p)
	_ = readI32(raw, &p) // constant count, unused here
	e.AU = readF64(raw, &p)
	e.EMRAT = readF64(raw, &p)

	for i := 0; i < 12; i++ {
		e.ipt[i].offset = int(readI32(raw, &p))
		e.ipt[i].ncf = int(readI32(raw, &p))
		e.ipt[i].na = int(readI32(raw, &p))
	}
	e.DENumber = int(readI32(raw, &p))
	e.ipt[12].offset = int(readI32(raw, &p))
	e.ipt[12].ncf = int(readI32(raw, &p))
	e.ipt[12].na = int(readI32(raw, &p))

	if e.Step <= 0 || e.JDEnd <= e.JDBegin {
		return nil, OpenBadSpan
	}

	// Record length is implied by the interpolation pointers.
	e.ncoeff = 2
	for i, ent := range e.ipt {
		if ent.ncf == 0 {
			continue
		}
		ncomp := 3
		if i == 11 { // nutation has two components
			ncomp = 2
		}
		end := ent.offset - 1 + ncomp*ent.ncf*ent.na
		if ent.offset < 3 || ent.ncf < 2 || ent.na < 1 {
			return nil, OpenBadPointers
		}
		if end > e.ncoeff {
			e.ncoeff = end
		}
	}
	if e.ncoeff <= 2 {
		return nil, OpenBadPointers
	}

	recSize := e.ncoeff * 8
	if len(raw)%recSize != 0 {
		return nil, OpenBadSize
	}
	nrec := len(raw)/recSize - 2
	if nrec < 1 {
		return nil, OpenNoData
	}

	e.records = make([][]float64, nrec)
	for r := 0; r < nrec; r++ {
		base := (r + 2) * recSize
		rec := make([]float64, e.ncoeff)
		for i := range rec {
			rec[i] = math.Float64frombits(
				binary.LittleEndian.Uint64(raw[base+i*8 : base+i*8+8]))
		}
		e.records[r] = rec
	}

	e.open = true
	return e, OpenOK
}

// Close releases the handle. Closing an already-closed handle is an
// error (CloseNotOpen): the caller pairing is broken and we want that
// surfaced rather than masked.
func (e *Ephemeris) Close() int {
	if !e.open {
		return CloseNotOpen
	}
	e.open = false
	e.records = nil
	return CloseOK
}

// State interpolates the position (AU) and velocity (AU/day) of a body
// at a two-part TDB Julian date, relative to the solar system
// barycenter (origin 0) or the Sun (origin 1).
func (e *Ephemeris) State(jd1, jd2 float64, body, origin int) (pos, vel [3]float64, status int) {
	if !e.open {
		return pos, vel, StateNotOpen
	}
	jd := jd1 + jd2
	if jd < e.JDBegin || jd > e.JDEnd {
		return pos, vel, StateOutOfRange
	}

	var st int
	switch body {
	case BodyEarth:
		pos, vel, st = e.earthState(jd)
	case BodyMoon:
		pos, vel, st = e.moonState(jd)
	case BodySun:
		pos, vel, st = e.chunkState(chunkSun, jd)
	default:
		if body < BodyMercury || body > BodyPluto {
			return pos, vel, StateBadBody
		}
		pos, vel, st = e.chunkState(body, jd)
	}
	if st != 0 {
		return [3]float64{}, [3]float64{}, st
	}

	// The Sun relative to itself comes out exactly zero.
	if origin == OriginSun {
		spos, svel, st := e.chunkState(chunkSun, jd)
		if st != 0 {
			return [3]float64{}, [3]float64{}, st
		}
		for i := 0; i < 3; i++ {
			pos[i] -= spos[i]
			vel[i] -= svel[i]
		}
	}

	return pos, vel, StateOK
}

// BarycentricEarth implements the star kernel's EarthProvider.
func (e *Ephemeris) BarycentricEarth(jd1, jd2 float64) (pos, vel [3]float64, status int) {
	return e.State(jd1, jd2, BodyEarth, OriginBarycenter)
}

// earthState derives the Earth from the Earth-Moon barycenter and the
// geocentric Moon.
func (e *Ephemeris) earthState(jd float64) (pos, vel [3]float64, status int) {
	emb, embv, st := e.chunkState(chunkEMB, jd)
	if st != 0 {
		return pos, vel, st
	}
	gm, gmv, st := e.chunkState(chunkMoon, jd)
	if st != 0 {
		return pos, vel, st
	}
	f := 1.0 / (1.0 + e.EMRAT)
	for i := 0; i < 3; i++ {
		pos[i] = emb[i] - gm[i]*f
		vel[i] = embv[i] - gmv[i]*f
	}
	return pos, vel, StateOK
}

// moonState derives the barycentric Moon from the same pair.
func (e *Ephemeris) moonState(jd float64) (pos, vel [3]float64, status int) {
	emb, embv, st := e.chunkState(chunkEMB, jd)
	if st != 0 {
		return pos, vel, st
	}
	gm, gmv, st := e.chunkState(chunkMoon, jd)
	if st != 0 {
		return pos, vel, st
	}
	f := e.EMRAT / (1.0 + e.EMRAT)
	for i := 0; i < 3; i++ {
		pos[i] = emb[i] + gm[i]*f
		vel[i] = embv[i] + gmv[i]*f
	}
	return pos, vel, StateOK
}

// chunkState evaluates one coefficient chunk at jd, converting from the
// file's km and km/day to AU and AU/day.
func (e *Ephemeris) chunkState(chunk int, jd float64) (pos, vel [3]float64, status int) {
	ent := e.ipt[chunk-1]
	if ent.ncf == 0 {
		return pos, vel, StateBadBody
	}

	ir := int((jd - e.JDBegin) / e.Step)
	if ir >= len(e.records) {
		ir = len(e.records) - 1
	}
	rec := e.records[ir]

	recStart := rec[0]
	if rec[1] < jd || recStart > jd {
		return pos, vel, StateOutOfRange
	}

	// Locate the sub-interval and the normalized time within it.
	dt := e.Step / float64(ent.na)
	isub := int((jd - recStart) / dt)
	if isub >= ent.na {
		isub = ent.na - 1
	}
	tc := 2.0*(jd-recStart-float64(isub)*dt)/dt - 1.0

	base := ent.offset - 1 + isub*3*ent.ncf
	vfac := 2.0 * float64(ent.na) / e.Step

	for comp := 0; comp < 3; comp++ {
		c := rec[base+comp*ent.ncf : base+(comp+1)*ent.ncf]
		p, v := chebyshev(c, tc)
		pos[comp] = p / e.AU
		vel[comp] = v * vfac / e.AU
	}
	return pos, vel, StateOK
}

// chebyshev evaluates a Chebyshev series and its derivative (with
// respect to the normalized argument) at tc in [-1, 1].
func chebyshev(c []float64, tc float64) (p, v float64) {
	pc0, pc1 := 1.0, tc
	vc0, vc1 := 0.0, 1.0

	p = c[0] + c[1]*tc
	v = c[1]

	for i := 2; i < len(c); i++ {
		pc := 2.0*tc*pc1 - pc0
		vc := 2.0*tc*vc1 + 2.0*pc1 - vc0

		p += c[i] * pc
		v += c[i] * vc

		pc0, pc1 = pc1, pc
		vc0, vc1 = vc1, vc
	}
	return p, v
}

func readF64(raw []byte, p *int) float64 {
	v := math.Float64frombits(binary.LittleEndian.Uint64(raw[*p : *p+8]))
	*p += 8
	return v
}

func readI32(raw []byte, p *int) int32 {
	v := int32(binary.LittleEndian.Uint32(raw[*p : *p+4]))
	*p += 4
	return v
}
