// Package precastro provides precision astronomy time and coordinate
// routines: star place reduction, JPL development-ephemeris queries,
// and IAU time-scale conversions.
//
// Times are held in the IAU SOFA format, as two float64 Julian date
// components whose sum is the true Julian date, each tagged with a
// named timescale. UTC and TT are well supported; UTC quasi-JDs follow
// the SOFA leap-second convention, so any precise arithmetic should
// convert to TT first.
//
// The numerical kernels live in internal packages and keep the wrapped
// libraries' conventions, including integer status codes. This package
// converts every nonzero code into a typed error (NovasError,
// SofaError) carrying the code verbatim. The companion script package
// exposes the same routines to an embedded JavaScript environment.
package precastro
