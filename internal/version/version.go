// Package version provides build and version information.
package version

// Version is the current library version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Interactive script console, ASCII ephemeris compiler
// 0.2.0 - JPL ephemeris reader, barycentric time correction, Sesame lookup
// 0.1.0 - Initial release: Time/Object API, SOFA time scales, astrometric places
