package script

import "errors"

// errEphemAlreadyOpen reports a second open while the session's single
// ephemeris slot is occupied.
var errEphemAlreadyOpen = errors.New("an ephemeris is already open in this session")
