// Package jpltest builds a small synthetic ASCII ephemeris and compiles
// it to the binary format, for tests of the ephemeris reader and its
// callers. The ephemeris carries the Earth-Moon barycenter, the
// geocentric Moon and the Sun, with constant positions except for a
// linear term on the Sun's x component.
package jpltest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkgw/precastro/internal/jpl"
)

// Planted header values.
const (
	JDBegin = 2451536.5
	JDEnd   = 2451600.5
	Step    = 32.0
	DENum   = 900
	AUKm    = 149597870.691
	EMRAT   = 81.30056

	// MidJD is the midpoint of the first sub-interval of the first
	// record, where the Chebyshev argument is exactly zero.
	MidJD = 2451540.5

	// SunXRateKm is the first-order Chebyshev coefficient planted on
	// the Sun's x component, in km per unit argument.
	SunXRateKm = 1000.0

	// VFac converts a per-unit-argument rate to per day: two
	// sub-interval halves per the 8-day sub-interval.
	VFac = 0.25
)

// Planted chunk positions, in km.
var (
	EMBKm  = [3]float64{AUKm, 0, 0}
	MoonKm = [3]float64{0, 384000, 0}
	SunKm  = [3]float64{1000, 2000, 3000}
)

const (
	ncf    = 10
	na     = 4
	ncoeff = 362
)

// WriteSample compiles the synthetic ephemeris into a temporary
// directory and returns the binary's path.
func WriteSample(t testing.TB) string {
	t.Helper()
	var bin bytes.Buffer
	if err := jpl.Compile(strings.NewReader(Header()), strings.NewReader(Data()), &bin); err != nil {
		t.Fatalf("compile sample ephemeris: %v", err)
	}
	path := filepath.Join(t.TempDir(), "sample.eph")
	if err := os.WriteFile(path, bin.Bytes(), 0o644); err != nil {
		t.Fatalf("write sample ephemeris: %v", err)
	}
	return path
}

// Header returns the ASCII header text.
func Header() string {
	return `KSIZE=   724    NCOEFF=   362

GROUP   1010

Synthetic test ephemeris DE900
Start Epoch: JED 2451536.5
Final Epoch: JED 2451600.5

GROUP   1030

  2451536.5  2451600.5  32.

GROUP   1040

     3
  DENUM   AU      EMRAT

GROUP   1041

     3
  0.900000000000000D+03  0.149597870691000D+09  0.813005600000000D+02

GROUP   1050

     0     0     3     0     0     0     0     0     0   123   243     0     0
     0     0    10     0     0     0     0     0     0    10    10     0     0
     0     0     4     0     0     0     0     0     0     4     4     0     0

GROUP   1070

`
}

// Data returns the ASCII coefficient text: two records tiling the span.
func Data() string {
	var b strings.Builder
	for rec := 0; rec < 2; rec++ {
		start := JDBegin + float64(rec)*Step
		coeffs := make([]float64, ncoeff)
		coeffs[0] = start
		coeffs[1] = start + Step

		fill := func(offset int, comps [3]float64, xRate float64) {
			for isub := 0; isub < na; isub++ {
				for comp := 0; comp < 3; comp++ {
					base := offset - 1 + isub*3*ncf + comp*ncf
					coeffs[base] = comps[comp]
					if comp == 0 {
						coeffs[base+1] = xRate
					}
				}
			}
		}
		fill(3, EMBKm, 0)
		fill(123, MoonKm, 0)
		fill(243, SunKm, SunXRateKm)

		fmt.Fprintf(&b, "%6d%6d\n", rec+1, ncoeff)
		for i := 0; i < ncoeff; i += 3 {
			for j := i; j < i+3 && j < ncoeff; j++ {
				fmt.Fprintf(&b, "  %.15E", coeffs[j])
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
