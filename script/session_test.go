package script

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgw/precastro/internal/jpl/jpltest"
)

// evalNumbers runs a script expected to yield an array of numbers.
func evalNumbers(t *testing.T, s *Session, src string) []float64 {
	t.Helper()
	v, err := s.Eval(src)
	require.NoError(t, err, "script %q", src)
	raw, ok := v.Export().([]interface{})
	require.True(t, ok, "script %q yielded %v, not an array", src, v)
	out := make([]float64, len(raw))
	for i, x := range raw {
		switch n := x.(type) {
		case float64:
			out[i] = n
		case int64:
			out[i] = float64(n)
		default:
			t.Fatalf("script %q element %d is %T", src, i, x)
		}
	}
	return out
}

func TestDtf2d(t *testing.T) {
	s := NewSession(nil)
	got := evalNumbers(t, s, `precastro.dtf2d("TT", 2000, 1, 1, 12, 0, 0.0)`)
	require.Len(t, got, 2)
	assert.InDelta(t, 2451545.0, got[0]+got[1], 1e-9)
}

func TestJd2cal(t *testing.T) {
	s := NewSession(nil)
	got := evalNumbers(t, s, `precastro.jd2cal(2400000.5, 50123.25)`)
	require.Len(t, got, 4)
	assert.Equal(t, []float64{1996, 2, 10}, got[:3])
	assert.InDelta(t, 0.25, got[3], 1e-9)
}

func TestD2dtf(t *testing.T) {
	s := NewSession(nil)
	got := evalNumbers(t, s, `precastro.d2dtf("TT", 3, 2451545.0, 0.0)`)
	assert.Equal(t, []float64{2000, 1, 1, 12, 0, 0, 0}, got)
}

func TestScaleConversions(t *testing.T) {
	s := NewSession(nil)

	tt := evalNumbers(t, s, `precastro.taitt(2453750.5, 0.892482639)`)
	require.Len(t, tt, 2)
	assert.InDelta(t, 2453750.5+0.892855139, tt[0]+tt[1], 1e-9)

	back := evalNumbers(t, s,
		fmt.Sprintf(`precastro.tttai(%.17g, %.17g)`, tt[0], tt[1]))
	assert.InDelta(t, 2453750.5+0.892482639, back[0]+back[1], 1e-9)

	tai := evalNumbers(t, s, `precastro.utctai(2453750.5, 0.892100694)`)
	utc := evalNumbers(t, s,
		fmt.Sprintf(`precastro.taiutc(%.17g, %.17g)`, tai[0], tai[1]))
	assert.InDelta(t, 2453750.5+0.892100694, utc[0]+utc[1], 1e-9)
}

func TestEpj2jd(t *testing.T) {
	s := NewSession(nil)
	got := evalNumbers(t, s, `precastro.epj2jd(2000.0)`)
	require.Len(t, got, 2)
	assert.Equal(t, 2400000.5, got[0])
	assert.InDelta(t, 51544.5, got[1], 1e-9)
}

func TestNow(t *testing.T) {
	s := NewSession(nil)
	got := evalNumbers(t, s, `precastro.now()`)
	require.Len(t, got, 2)
	assert.Equal(t, 2440587.5, got[0])
	assert.Greater(t, got[1], 18000.0)
}

func TestAstroStarIdentity(t *testing.T) {
	s := NewSession(nil)
	got := evalNumbers(t, s, `precastro.astroStar(2451545.0, 5.5, -12.25, 0, 0, 0, 0, true)`)
	require.Len(t, got, 2)
	assert.InDelta(t, 5.5, got[0], 1e-8)
	assert.InDelta(t, -12.25, got[1], 1e-7)
}

func TestAstroStarNeedsEphemeris(t *testing.T) {
	s := NewSession(nil)
	_, err := s.Eval(`precastro.astroStar(2451545.0, 5.5, -12.25, 0, 0, 0, 0)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#11")
	assert.Contains(t, err.Error(), "astro_star")
}

func TestArgumentErrors(t *testing.T) {
	s := NewSession(nil)
	tests := []struct {
		src     string
		wantMsg string
	}{
		{`precastro.dtf2d("TT", 2000)`, "expected 7 arguments, got 2"},
		{`precastro.astroStar(1, 2, 3, 4, 5, 6, 7, 8, 9)`, "expected 7 to 8 arguments"},
		{`precastro.taitt("oops", 0.5)`, "not a number"},
		{`precastro.jd2cal(2400000.5)`, "expected 2 arguments, got 1"},
		{`precastro.d2dtf("TT", 3.5, 2451545.0, 0.0)`, "must be an integer"},
		{`precastro.dtf2d(42, 2000, 1, 1, 0, 0, 0.0)`, "must be a string"},
		{`precastro.dtf2d("GPS", 2000, 1, 1, 0, 0, 0.0)`, "illegal timescale"},
	}
	for _, tt := range tests {
		_, err := s.Eval(tt.src)
		require.Error(t, err, "script %q", tt.src)
		assert.Contains(t, err.Error(), "TypeError", "script %q", tt.src)
		assert.Contains(t, err.Error(), tt.wantMsg, "script %q", tt.src)
	}
}

func TestEphemerisScenario(t *testing.T) {
	path := jpltest.WriteSample(t)
	s := NewSession(nil)
	defer s.Close()

	got := evalNumbers(t, s, fmt.Sprintf(`precastro.ephemOpen(%q)`, path))
	require.Len(t, got, 3)
	assert.Equal(t, jpltest.JDBegin, got[0])
	assert.Equal(t, jpltest.JDEnd, got[1])
	assert.Equal(t, float64(jpltest.DENum), got[2])

	// The session holds at most one ephemeris.
	_, err := s.Eval(fmt.Sprintf(`precastro.ephemOpen(%q)`, path))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already open")

	state := evalNumbers(t, s,
		fmt.Sprintf(`precastro.ephemState(%v, 0.0, 10, 0)`, jpltest.MidJD))
	require.Len(t, state, 6)
	assert.InDelta(t, jpltest.SunKm[0]/jpltest.AUKm, state[0], 1e-15)
	assert.InDelta(t, jpltest.SunXRateKm*jpltest.VFac/jpltest.AUKm, state[3], 1e-18)

	_, err = s.Eval(fmt.Sprintf(`precastro.ephemState(%v, 0.0, 10, 0)`, jpltest.JDEnd+100))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#1")
	assert.Contains(t, err.Error(), "ephemeris")

	closed := evalNumbers(t, s, `precastro.ephemClose()`)
	assert.Empty(t, closed)

	_, err = s.Eval(fmt.Sprintf(`precastro.ephemState(%v, 0.0, 10, 0)`, jpltest.MidJD))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#3")

	_, err = s.Eval(`precastro.ephemClose()`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#1")
	assert.Contains(t, err.Error(), "ephem_close")

	// A new handle can be opened after closing.
	got = evalNumbers(t, s, fmt.Sprintf(`precastro.ephemOpen(%q)`, path))
	require.Len(t, got, 3)
}

func TestEphemOpenMissing(t *testing.T) {
	s := NewSession(nil)
	_, err := s.Eval(`precastro.ephemOpen("/no/such/ephemeris.bin")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#1")
	assert.Contains(t, err.Error(), "ephem_open")
}

func TestAstroStarUsesSessionEphemeris(t *testing.T) {
	s := NewSession(nil)
	defer s.Close()
	require.NoError(t, s.OpenEphemeris(jpltest.WriteSample(t)))

	// Full accuracy works once an ephemeris is open. The sample Earth
	// sits one AU along +x, so a 1000 mas parallax star at RA 6h is
	// displaced by one arcsecond of RA, i.e. 1/54000 hours.
	got := evalNumbers(t, s,
		fmt.Sprintf(`precastro.astroStar(%v, 6.0, 0.0, 0, 0, 1000.0, 0)`, jpltest.MidJD))
	require.Len(t, got, 2)
	assert.InDelta(t, 6.0+1.0/54000.0, got[0], 1e-8)
	assert.InDelta(t, 0.0, got[1], 1e-9)
}

func TestSessionClose(t *testing.T) {
	s := NewSession(nil)
	require.NoError(t, s.Close()) // nothing open

	require.NoError(t, s.OpenEphemeris(jpltest.WriteSample(t)))
	assert.Error(t, s.OpenEphemeris(jpltest.WriteSample(t)))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close()) // idempotent once released
}
