// Package script exposes the precastro routines to an embedded
// ECMAScript environment as a single global "precastro" object of
// flat, scalar-argument functions.
//
// Every bound function takes scalars and returns a JS array of
// scalars. Failure is reported by throwing: a TypeError when the
// argument list is wrong, or an error carrying the wrapped routine's
// integer status code when the library call fails. There are no
// retries, partial results, or interpretation of specific codes.
package script

import (
	"math"

	"github.com/dop251/goja"

	"github.com/pkgw/precastro"
	"github.com/pkgw/precastro/internal/jpl"
	"github.com/pkgw/precastro/internal/logging"
	"github.com/pkgw/precastro/internal/novas"
	"github.com/pkgw/precastro/internal/sofa"
)

// Session owns an ECMAScript runtime with the precastro global bound,
// plus the session's at-most-one open ephemeris handle. Not safe for
// concurrent use.
type Session struct {
	rt  *goja.Runtime
	log *logging.Logger
	eph *jpl.Ephemeris
}

// NewSession creates a session. A nil logger discards all output.
func NewSession(log *logging.Logger) *Session {
	if log == nil {
		log = logging.Discard()
	}
	s := &Session{
		rt:  goja.New(),
		log: log,
	}
	s.install()
	return s
}

// Eval runs a script and returns its completion value.
func (s *Session) Eval(src string) (goja.Value, error) {
	return s.rt.RunString(src)
}

// Runtime returns the underlying ECMAScript runtime.
func (s *Session) Runtime() *goja.Runtime {
	return s.rt
}

// OpenEphemeris opens the session's ephemeris from Go, with the same
// at-most-one-handle rule the bound ephemOpen function enforces.
func (s *Session) OpenEphemeris(path string) error {
	if s.eph != nil {
		return errEphemAlreadyOpen
	}
	h, st := jpl.Open(path)
	if st != jpl.OpenOK {
		return &precastro.NovasError{Func: "ephem_open", Code: st}
	}
	s.eph = h
	s.log.Info("opened ephemeris %s: DE%d, JD %.1f to %.1f",
		path, h.DENumber, h.JDBegin, h.JDEnd)
	return nil
}

// Close releases the session's ephemeris handle, if one is open.
func (s *Session) Close() error {
	if s.eph == nil {
		return nil
	}
	st := s.eph.Close()
	s.eph = nil
	if st != jpl.CloseOK {
		return &precastro.NovasError{Func: "ephem_close", Code: st}
	}
	return nil
}

// bind registers one function on the precastro object with an argument
// count check in front of it.
func (s *Session) bind(obj *goja.Object, name string, minArgs, maxArgs int, impl func(goja.FunctionCall) goja.Value) {
	_ = obj.Set(name, func(call goja.FunctionCall) goja.Value {
		n := len(call.Arguments)
		if n < minArgs || n > maxArgs {
			if minArgs == maxArgs {
				panic(s.rt.NewTypeError("%s: expected %d arguments, got %d", name, minArgs, n))
			}
			panic(s.rt.NewTypeError("%s: expected %d to %d arguments, got %d", name, minArgs, maxArgs, n))
		}
		return impl(call)
	})
}

// argFloat coerces argument i to a number, throwing a TypeError when it
// is absent or not numeric.
func (s *Session) argFloat(call goja.FunctionCall, i int, name string) float64 {
	v := call.Argument(i)
	if goja.IsUndefined(v) || goja.IsNull(v) {
		panic(s.rt.NewTypeError("%s: missing argument %d", name, i+1))
	}
	f := v.ToFloat()
	if math.IsNaN(f) {
		panic(s.rt.NewTypeError("%s: argument %d is not a number", name, i+1))
	}
	return f
}

// argInt is argFloat restricted to integral values.
func (s *Session) argInt(call goja.FunctionCall, i int, name string) int {
	f := s.argFloat(call, i, name)
	n := int(f)
	if float64(n) != f {
		panic(s.rt.NewTypeError("%s: argument %d must be an integer", name, i+1))
	}
	return n
}

// argString requires argument i to be a genuine string.
func (s *Session) argString(call goja.FunctionCall, i int, name string) string {
	v := call.Argument(i)
	str, ok := v.Export().(string)
	if !ok {
		panic(s.rt.NewTypeError("%s: argument %d must be a string", name, i+1))
	}
	return str
}

// argScale is argString plus timescale-name validation.
func (s *Session) argScale(call goja.FunctionCall, i int, name string) string {
	scale := s.argString(call, i, name)
	if !precastro.ValidTimescale(scale) {
		panic(s.rt.NewTypeError("%s: illegal timescale name %q", name, scale))
	}
	return scale
}

// checkSofa throws on a failing SOFA status code. The dubious-year
// warning (+1) passes with a log line; its outputs are valid.
func (s *Session) checkSofa(fn string, code int) {
	if code == sofa.StatusDubiousYear {
		s.log.Warn("%s: dubious year", fn)
		return
	}
	if code != sofa.StatusOK {
		panic(s.rt.NewGoError(&precastro.SofaError{Func: fn, Code: code}))
	}
}

// checkNovas throws on any nonzero NOVAS-convention status code.
func (s *Session) checkNovas(fn string, code int) {
	if code != 0 {
		panic(s.rt.NewGoError(&precastro.NovasError{Func: fn, Code: code}))
	}
}

// install binds the precastro global.
func (s *Session) install() {
	obj := s.rt.NewObject()

	s.bind(obj, "astroStar", 7, 8, s.jsAstroStar)
	s.bind(obj, "ephemOpen", 1, 1, s.jsEphemOpen)
	s.bind(obj, "ephemClose", 0, 0, s.jsEphemClose)
	s.bind(obj, "ephemState", 4, 4, s.jsEphemState)
	s.bind(obj, "dtf2d", 7, 7, s.jsDtf2d)
	s.bind(obj, "jd2cal", 2, 2, s.jsJd2cal)
	s.bind(obj, "d2dtf", 4, 4, s.jsD2dtf)
	s.bind(obj, "taitt", 2, 2, s.scaleFn("taitt", sofa.Taitt))
	s.bind(obj, "tttai", 2, 2, s.scaleFn("tttai", sofa.Tttai))
	s.bind(obj, "utctai", 2, 2, s.scaleFn("utctai", sofa.Utctai))
	s.bind(obj, "taiutc", 2, 2, s.scaleFn("taiutc", sofa.Taiutc))
	s.bind(obj, "epj2jd", 1, 1, s.jsEpj2jd)
	s.bind(obj, "now", 0, 0, s.jsNow)

	_ = s.rt.Set("precastro", obj)
}

// scaleFn adapts one of the two-part JD timescale conversions.
func (s *Session) scaleFn(name string, fn func(float64, float64) (float64, float64, int)) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		a := s.argFloat(call, 0, name)
		b := s.argFloat(call, 1, name)
		r1, r2, st := fn(a, b)
		s.checkSofa(name, st)
		return s.rt.NewArray(r1, r2)
	}
}

func (s *Session) jsAstroStar(call goja.FunctionCall) goja.Value {
	const name = "astroStar"
	jdtt := s.argFloat(call, 0, name)
	star := novas.CatEntry{
		RA:       s.argFloat(call, 1, name),
		Dec:      s.argFloat(call, 2, name),
		ProMoRA:  s.argFloat(call, 3, name),
		ProMoDec: s.argFloat(call, 4, name),
		Parallax: s.argFloat(call, 5, name),
		RadVel:   s.argFloat(call, 6, name),
	}

	acc := novas.FullAccuracy
	if len(call.Arguments) > 7 && call.Argument(7).ToBoolean() {
		acc = novas.ReducedAccuracy
	}
	var earth novas.EarthProvider
	if s.eph != nil {
		earth = s.eph
	}

	ra, dec, st := novas.AstroStar(jdtt, &star, acc, earth)
	s.checkNovas("astro_star", st)
	return s.rt.NewArray(ra, dec)
}

func (s *Session) jsEphemOpen(call goja.FunctionCall) goja.Value {
	path := s.argString(call, 0, "ephemOpen")
	if err := s.OpenEphemeris(path); err != nil {
		panic(s.rt.NewGoError(err))
	}
	return s.rt.NewArray(s.eph.JDBegin, s.eph.JDEnd, s.eph.DENumber)
}

func (s *Session) jsEphemClose(call goja.FunctionCall) goja.Value {
	if s.eph == nil {
		panic(s.rt.NewGoError(&precastro.NovasError{Func: "ephem_close", Code: jpl.CloseNotOpen}))
	}
	st := s.eph.Close()
	s.eph = nil
	s.checkNovas("ephem_close", st)
	s.log.Info("closed ephemeris")
	return s.rt.NewArray()
}

func (s *Session) jsEphemState(call goja.FunctionCall) goja.Value {
	const name = "ephemState"
	jd1 := s.argFloat(call, 0, name)
	jd2 := s.argFloat(call, 1, name)
	body := s.argInt(call, 2, name)
	origin := s.argInt(call, 3, name)

	if s.eph == nil {
		panic(s.rt.NewGoError(&precastro.NovasError{Func: "ephemeris", Code: jpl.StateNotOpen}))
	}
	pos, vel, st := s.eph.State(jd1, jd2, body, origin)
	s.checkNovas("ephemeris", st)
	return s.rt.NewArray(pos[0], pos[1], pos[2], vel[0], vel[1], vel[2])
}

func (s *Session) jsDtf2d(call goja.FunctionCall) goja.Value {
	const name = "dtf2d"
	scale := s.argScale(call, 0, name)
	iy := s.argInt(call, 1, name)
	im := s.argInt(call, 2, name)
	id := s.argInt(call, 3, name)
	ihr := s.argInt(call, 4, name)
	imn := s.argInt(call, 5, name)
	sec := s.argFloat(call, 6, name)

	d1, d2, st := sofa.Dtf2d(scale, iy, im, id, ihr, imn, sec)
	s.checkSofa(name, st)
	return s.rt.NewArray(d1, d2)
}

func (s *Session) jsJd2cal(call goja.FunctionCall) goja.Value {
	const name = "jd2cal"
	dj1 := s.argFloat(call, 0, name)
	dj2 := s.argFloat(call, 1, name)

	iy, im, id, fd, st := sofa.Jd2cal(dj1, dj2)
	s.checkSofa(name, st)
	return s.rt.NewArray(iy, im, id, fd)
}

func (s *Session) jsD2dtf(call goja.FunctionCall) goja.Value {
	const name = "d2dtf"
	scale := s.argScale(call, 0, name)
	ndp := s.argInt(call, 1, name)
	d1 := s.argFloat(call, 2, name)
	d2 := s.argFloat(call, 3, name)

	iy, im, id, hmsf, st := sofa.D2dtf(scale, ndp, d1, d2)
	s.checkSofa(name, st)
	return s.rt.NewArray(iy, im, id, hmsf[0], hmsf[1], hmsf[2], hmsf[3])
}

func (s *Session) jsEpj2jd(call goja.FunctionCall) goja.Value {
	epoch := s.argFloat(call, 0, "epj2jd")
	d1, d2 := sofa.Epj2jd(epoch)
	return s.rt.NewArray(d1, d2)
}

func (s *Session) jsNow(call goja.FunctionCall) goja.Value {
	t := precastro.Now()
	return s.rt.NewArray(t.JD1, t.JD2)
}
