package precastro

import "fmt"

// NovasError reports a nonzero status code returned by a
// NOVAS-convention routine. The code is preserved verbatim.
type NovasError struct {
	Func string
	Code int
}

func (e *NovasError) Error() string {
	return fmt.Sprintf("NOVAS error code #%d in function %s", e.Code, e.Func)
}

// SofaError reports a nonzero status code returned by a SOFA-convention
// routine. Code +1 is the "dubious year" warning, which callers may
// accept by passing dubiousOK to the operation that produced it.
type SofaError struct {
	Func string
	Code int
}

func (e *SofaError) Error() string {
	return fmt.Sprintf("SOFA error code #%d in function %s", e.Code, e.Func)
}

// UnsupportedTimescaleError indicates a conversion that is not
// implemented for the time's timescale.
type UnsupportedTimescaleError struct {
	Timescale string
}

func (e *UnsupportedTimescaleError) Error() string {
	return "operation not supported with timescale " + e.Timescale
}

// okTimescales are the timescale names accepted on Time values.
var okTimescales = map[string]bool{
	"TAI": true,
	"UTC": true,
	"UT1": true,
	"TT":  true,
	"TCG": true,
	"TCB": true,
	"TDB": true,
}

// ValidTimescale reports whether name is a recognized timescale name.
func ValidTimescale(name string) bool {
	return okTimescales[name]
}

func checkTimescale(scale string) error {
	if !okTimescales[scale] {
		return fmt.Errorf("illegal timescale name %q", scale)
	}
	return nil
}

// checkSofa converts a SOFA status code into an error. Code +1 (dubious
// year) is accepted when dubiousOK is set; outputs are still valid in
// that case.
func checkSofa(fn string, code int, dubiousOK bool) error {
	if code == 0 || (code == 1 && dubiousOK) {
		return nil
	}
	return &SofaError{Func: fn, Code: code}
}
