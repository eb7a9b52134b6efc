package precastro

import (
	"bufio"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultSesameURL is the CDS Sesame name-resolver endpoint.
const DefaultSesameURL = "http://cdsweb.u-strasbg.fr/cgi-bin/nph-sesame"

var sesameClient = &http.Client{Timeout: 30 * time.Second}

// FromSesame fills in the object's position, proper motion, parallax
// and radial velocity by resolving the identifier with the CDS Sesame
// service. Fields the service does not report are left unchanged.
func (o *Object) FromSesame(ident string) error {
	return o.FromSesameService(sesameClient, DefaultSesameURL, ident)
}

// FromSesameService is FromSesame against an explicit HTTP client and
// service base URL, for mirrors and tests.
func (o *Object) FromSesameService(client *http.Client, baseURL, ident string) error {
	resp, err := client.Get(baseURL + "/-oI/SNV?" + url.QueryEscape(ident))
	if err != nil {
		return fmt.Errorf("sesame lookup for %q: %w", ident, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sesame lookup for %q: HTTP status %s", ident, resp.Status)
	}

	sawPos := false
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#!") {
			return fmt.Errorf("sesame lookup for %q failed: %s",
				ident, strings.TrimSpace(line[2:]))
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "%J":
			// Position in decimal degrees.
			if len(fields) < 3 {
				return malformedSesame(fields[0], line)
			}
			raDeg, err1 := strconv.ParseFloat(fields[1], 64)
			decDeg, err2 := strconv.ParseFloat(fields[2], 64)
			if err1 != nil || err2 != nil {
				return malformedSesame(fields[0], line)
			}
			o.star.RA = raDeg / 15.0
			o.star.Dec = decDeg
			sawPos = true
		case "%P":
			if len(fields) < 3 {
				return malformedSesame(fields[0], line)
			}
			pmRA, err1 := strconv.ParseFloat(fields[1], 64)
			pmDec, err2 := strconv.ParseFloat(fields[2], 64)
			if err1 != nil || err2 != nil {
				return malformedSesame(fields[0], line)
			}
			o.star.ProMoRA = pmRA
			o.star.ProMoDec = pmDec
		case "%X":
			if len(fields) < 2 {
				return malformedSesame(fields[0], line)
			}
			plx, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return malformedSesame(fields[0], line)
			}
			o.star.Parallax = plx
		case "%V":
			// Format is "%V <type> <value> ...".
			if len(fields) < 3 {
				return malformedSesame(fields[0], line)
			}
			rv, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return malformedSesame(fields[0], line)
			}
			o.star.RadVel = rv
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("sesame lookup for %q: read response: %w", ident, err)
	}
	if !sawPos {
		return fmt.Errorf("sesame returned no position for %q", ident)
	}

	if o.star.StarName == "" {
		o.star.StarName = ident
	}
	return nil
}

func malformedSesame(tag, line string) error {
	return fmt.Errorf("sesame: malformed %s line %q", tag, line)
}
