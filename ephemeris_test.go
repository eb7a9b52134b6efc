package precastro

import (
	"errors"
	"testing"

	"github.com/pkgw/precastro/internal/jpl/jpltest"
)

func TestOpenEphemeris(t *testing.T) {
	eph, info, err := OpenEphemeris(jpltest.WriteSample(t))
	if err != nil {
		t.Fatal(err)
	}
	defer eph.Close()

	if info.JDBegin != jpltest.JDBegin || info.JDEnd != jpltest.JDEnd {
		t.Errorf("span = %v to %v", info.JDBegin, info.JDEnd)
	}
	if info.DENumber != jpltest.DENum {
		t.Errorf("DE number = %d, want %d", info.DENumber, jpltest.DENum)
	}
	if eph.Info() != info {
		t.Errorf("Info() = %v, want %v", eph.Info(), info)
	}
}

func TestOpenEphemerisMissing(t *testing.T) {
	_, _, err := OpenEphemeris("/no/such/ephemeris.bin")
	var ne *NovasError
	if !errors.As(err, &ne) || ne.Code != 1 || ne.Func != "ephem_open" {
		t.Errorf("error = %v, want NovasError code 1 in ephem_open", err)
	}
}

func TestEphemerisState(t *testing.T) {
	eph, _, err := OpenEphemeris(jpltest.WriteSample(t))
	if err != nil {
		t.Fatal(err)
	}
	defer eph.Close()

	pos, vel, err := eph.State(jpltest.MidJD, 0, BodySun, OriginBarycenter)
	if err != nil {
		t.Fatal(err)
	}
	near(t, "x", pos[0], jpltest.SunKm[0]/jpltest.AUKm, 1e-15)
	near(t, "vx", vel[0], jpltest.SunXRateKm*jpltest.VFac/jpltest.AUKm, 1e-18)

	// Out of range surfaces the kernel code.
	_, _, err = eph.State(jpltest.JDEnd+100, 0, BodySun, OriginBarycenter)
	var ne *NovasError
	if !errors.As(err, &ne) || ne.Code != 1 {
		t.Errorf("error = %v, want NovasError code 1", err)
	}
}

func TestEphemerisStateAt(t *testing.T) {
	eph, _, err := OpenEphemeris(jpltest.WriteSample(t))
	if err != nil {
		t.Fatal(err)
	}
	defer eph.Close()

	tm, _ := TimeFromJD(jpltest.MidJD, "TT")
	pos, _, err := eph.StateAt(tm, BodyEarth, OriginBarycenter)
	if err != nil {
		t.Fatal(err)
	}
	near(t, "earth x", pos[0], 1.0, 1e-12)

	// UT1 cannot be coerced to TDB.
	ut1, _ := TimeFromJD(jpltest.MidJD, "UT1")
	if _, _, err := eph.StateAt(ut1, BodyEarth, OriginBarycenter); err == nil {
		t.Error("StateAt accepted UT1")
	}
}

func TestEphemerisDoubleClose(t *testing.T) {
	eph, _, err := OpenEphemeris(jpltest.WriteSample(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := eph.Close(); err != nil {
		t.Fatal(err)
	}
	err = eph.Close()
	var ne *NovasError
	if !errors.As(err, &ne) || ne.Code != 1 || ne.Func != "ephem_close" {
		t.Errorf("double close error = %v, want NovasError code 1 in ephem_close", err)
	}
}

func TestAsBJD(t *testing.T) {
	eph, _, err := OpenEphemeris(jpltest.WriteSample(t))
	if err != nil {
		t.Fatal(err)
	}
	defer eph.Close()

	// Sample Earth is one AU along +x. Toward an object at RA 0, Dec 0
	// the light-travel correction is one AU of light time, positive.
	o := NewObject("")
	o.SetRADec(0, 0)

	tm, _ := TimeFromJD(jpltest.MidJD, "TDB")
	bjd, err := tm.AsBJD(o, eph, false)
	if err != nil {
		t.Fatal(err)
	}
	if bjd.Timescale != "TDB" {
		t.Errorf("timescale = %q, want TDB", bjd.Timescale)
	}
	near(t, "bjd delta", bjd.AsJD()-jpltest.MidJD, 1.0/173.1446326846693, 1e-12)

	// Toward the anti-solar point the correction flips sign.
	o.SetRADec(12*H2R, 0)
	bjd, err = tm.AsBJD(o, eph, false)
	if err != nil {
		t.Fatal(err)
	}
	near(t, "bjd delta", bjd.AsJD()-jpltest.MidJD, -1.0/173.1446326846693, 1e-12)

	// TT input needs ttOK.
	tt, _ := TimeFromJD(jpltest.MidJD, "TT")
	if _, err := tt.AsBJD(o, eph, false); err == nil {
		t.Error("AsBJD accepted TT without ttOK")
	}
	if _, err := tt.AsBJD(o, eph, true); err != nil {
		t.Errorf("AsBJD with ttOK failed: %v", err)
	}
}

func TestErrorMessages(t *testing.T) {
	ne := &NovasError{Func: "ephemeris", Code: 3}
	if ne.Error() != "NOVAS error code #3 in function ephemeris" {
		t.Errorf("NovasError = %q", ne.Error())
	}
	se := &SofaError{Func: "dtf2d", Code: -6}
	if se.Error() != "SOFA error code #-6 in function dtf2d" {
		t.Errorf("SofaError = %q", se.Error())
	}
	ue := &UnsupportedTimescaleError{Timescale: "UT1"}
	if ue.Error() != "operation not supported with timescale UT1" {
		t.Errorf("UnsupportedTimescaleError = %q", ue.Error())
	}
}
