package jpl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Compile converts an ASCII JPL ephemeris (a header file with GROUP
// sections plus a coefficient data file, as distributed by JPL) into
// the binary record format read by Open. The layout matches the
// Fortran asc2eph output, little-endian.
func Compile(header, data io.Reader, w io.Writer) error {
	h, err := parseASCIIHeader(header)
	if err != nil {
		return err
	}

	recSize := h.ksize * 4
	ncoeff := h.ksize / 2

	// Record 0: titles, constant names, span, counts, pointers.
	var rec0 []byte
	for _, t := range h.titles {
		rec0 = append(rec0, pad(t, titleLen)...)
	}
	for _, n := range h.constNames {
		rec0 = append(rec0, pad(n, constNameLen)...)
	}
	rec0 = append(rec0, pad("", constNameLen*(maxConstants-len(h.constNames)))...)

	for _, v := range h.span {
		rec0 = appendF64(rec0, v)
	}
	rec0 = appendI32(rec0, int32(len(h.constNames)))
	rec0 = appendF64(rec0, h.au)
	rec0 = appendF64(rec0, h.emrat)
	for i := 0; i < 12; i++ {
		rec0 = appendI32(rec0, int32(h.ipt[0][i]))
		rec0 = appendI32(rec0, int32(h.ipt[1][i]))
		rec0 = appendI32(rec0, int32(h.ipt[2][i]))
	}
	rec0 = appendI32(rec0, int32(h.denum))
	rec0 = appendI32(rec0, int32(h.ipt[0][12]))
	rec0 = appendI32(rec0, int32(h.ipt[1][12]))
	rec0 = appendI32(rec0, int32(h.ipt[2][12]))

	if len(rec0) > recSize {
		return fmt.Errorf("jpl: header does not fit one record (%d > %d bytes)", len(rec0), recSize)
	}
	rec0 = append(rec0, make([]byte, recSize-len(rec0))...)
	if _, err := w.Write(rec0); err != nil {
		return fmt.Errorf("jpl: write header record: %w", err)
	}

	// Record 1: constant values.
	var rec1 []byte
	for _, v := range h.constValues {
		rec1 = appendF64(rec1, v)
	}
	rec1 = append(rec1, make([]byte, recSize-len(rec1))...)
	if _, err := w.Write(rec1); err != nil {
		return fmt.Errorf("jpl: write constants record: %w", err)
	}

	// Data records: "recnum ncoeff" then that many coefficients.
	sc := bufio.NewScanner(data)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var block []float64
	inRecord := false
	wantCoeff := 0

	flush := func() error {
		buf := make([]byte, 0, len(block)*8)
		for _, v := range block {
			buf = appendF64(buf, v)
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("jpl: write data record: %w", err)
		}
		block = block[:0]
		return nil
	}

	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		if !inRecord {
			if len(fields) < 2 {
				return fmt.Errorf("jpl: malformed record header line %q", sc.Text())
			}
			nc, err := strconv.Atoi(fields[1])
			if err != nil {
				return fmt.Errorf("jpl: malformed coefficient count: %w", err)
			}
			if 2*nc != h.ksize {
				return fmt.Errorf("jpl: record has %d coefficients but header says %d: mismatched files?", nc, ncoeff)
			}
			wantCoeff = nc
			inRecord = true
			continue
		}

		for _, f := range fields {
			v, err := parseFortranFloat(f)
			if err != nil {
				return fmt.Errorf("jpl: bad coefficient %q: %w", f, err)
			}
			block = append(block, v)
		}
		if len(block) >= wantCoeff {
			block = block[:wantCoeff]
			if err := flush(); err != nil {
				return err
			}
			inRecord = false
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("jpl: read data: %w", err)
	}
	if inRecord {
		return fmt.Errorf("jpl: truncated final data record")
	}
	return nil
}

// asciiHeader holds the parsed GROUP sections of an ASCII header file.
type asciiHeader struct {
	ksize       int
	titles      []string
	span        []float64
	constNames  []string
	constValues []float64
	ipt         [3][13]int
	au          float64
	emrat       float64
	denum       int
}

func parseASCIIHeader(r io.Reader) (*asciiHeader, error) {
	sc := bufio.NewScanner(r)

	if !sc.Scan() {
		return nil, fmt.Errorf("jpl: empty header file")
	}
	first := sc.Text()
	ksize, err := parseKsize(first)
	if err != nil {
		return nil, err
	}

	h := &asciiHeader{ksize: ksize}
	curGroup := 0
	nConstNames := -1
	nConstValues := -1
	iptRows := 0

	for sc.Scan() {
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if strings.HasPrefix(line, "GROUP") {
			g, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("jpl: malformed GROUP line %q", line)
			}
			curGroup = g
			continue
		}

		switch curGroup {
		case 1010:
			h.titles = append(h.titles, strings.TrimRight(line, " \t"))
		case 1030:
			if h.span != nil {
				return nil, fmt.Errorf("jpl: expected exactly one data line in group 1030")
			}
			if len(fields) != 3 {
				return nil, fmt.Errorf("jpl: expected three items in group 1030, got %d", len(fields))
			}
			for _, f := range fields {
				v, err := parseFortranFloat(f)
				if err != nil {
					return nil, fmt.Errorf("jpl: bad span value %q: %w", f, err)
				}
				h.span = append(h.span, v)
			}
		case 1040:
			if nConstNames < 0 {
				if len(fields) != 1 {
					return nil, fmt.Errorf("jpl: expected one count on first line of group 1040")
				}
				nConstNames, err = strconv.Atoi(fields[0])
				if err != nil {
					return nil, fmt.Errorf("jpl: bad constant-name count: %w", err)
				}
			} else {
				h.constNames = append(h.constNames, fields...)
			}
		case 1041:
			if nConstValues < 0 {
				if len(fields) != 1 {
					return nil, fmt.Errorf("jpl: expected one count on first line of group 1041")
				}
				nConstValues, err = strconv.Atoi(fields[0])
				if err != nil {
					return nil, fmt.Errorf("jpl: bad constant-value count: %w", err)
				}
			} else {
				for _, f := range fields {
					v, err := parseFortranFloat(f)
					if err != nil {
						return nil, fmt.Errorf("jpl: bad constant value %q: %w", f, err)
					}
					h.constValues = append(h.constValues, v)
				}
			}
		case 1050:
			if len(fields) != 13 {
				return nil, fmt.Errorf("jpl: expected 13 entries per line of group 1050, got %d", len(fields))
			}
			if iptRows >= 3 {
				return nil, fmt.Errorf("jpl: too many lines in group 1050")
			}
			for i, f := range fields {
				n, err := strconv.Atoi(f)
				if err != nil {
					return nil, fmt.Errorf("jpl: bad pointer value %q: %w", f, err)
				}
				h.ipt[iptRows][i] = n
			}
			iptRows++
		case 1070:
			// Coefficient data lives in the separate data file.
		default:
			return nil, fmt.Errorf("jpl: unexpected data in group %d", curGroup)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("jpl: read header: %w", err)
	}

	if curGroup != 1070 {
		return nil, fmt.Errorf("jpl: header did not finish in group 1070")
	}
	if len(h.titles) != numTitles {
		return nil, fmt.Errorf("jpl: expected %d titles, found %d", numTitles, len(h.titles))
	}
	for _, t := range h.titles {
		if len(t) > titleLen {
			return nil, fmt.Errorf("jpl: title longer than %d characters", titleLen)
		}
	}
	if h.span == nil {
		return nil, fmt.Errorf("jpl: missing span info (group 1030)")
	}
	if nConstNames < 0 || len(h.constNames) != nConstNames {
		return nil, fmt.Errorf("jpl: claimed and actual constant-name counts disagree")
	}
	if nConstNames > maxConstants {
		return nil, fmt.Errorf("jpl: too many constants (%d > %d)", nConstNames, maxConstants)
	}
	for _, n := range h.constNames {
		if len(n) > constNameLen {
			return nil, fmt.Errorf("jpl: constant name %q longer than %d characters", n, constNameLen)
		}
	}
	if nConstValues < 0 || len(h.constValues) != nConstValues {
		return nil, fmt.Errorf("jpl: claimed and actual constant-value counts disagree")
	}
	if nConstValues != nConstNames {
		return nil, fmt.Errorf("jpl: constant name and value counts disagree")
	}
	if iptRows != 3 {
		return nil, fmt.Errorf("jpl: expected three lines of pointers in group 1050")
	}

	lookup := func(name string) (float64, bool) {
		for i, n := range h.constNames {
			if n == name {
				return h.constValues[i], true
			}
		}
		return 0, false
	}
	var ok bool
	if h.au, ok = lookup("AU"); !ok {
		return nil, fmt.Errorf("jpl: missing constant AU")
	}
	if h.emrat, ok = lookup("EMRAT"); !ok {
		return nil, fmt.Errorf("jpl: missing constant EMRAT")
	}
	denum, ok := lookup("DENUM")
	if !ok {
		return nil, fmt.Errorf("jpl: missing constant DENUM")
	}
	h.denum = int(denum)

	return h, nil
}

// parseKsize extracts the KSIZE value from the header's first line,
// e.g. "KSIZE=  2036    NCOEFF=  1018".
func parseKsize(line string) (int, error) {
	i := strings.Index(line, "KSIZE=")
	if i < 0 {
		return 0, fmt.Errorf("jpl: first header line lacks KSIZE: %q", line)
	}
	rest := strings.Fields(strings.TrimPrefix(line[i:], "KSIZE="))
	if len(rest) == 0 {
		return 0, fmt.Errorf("jpl: malformed KSIZE line %q", line)
	}
	ksize, err := strconv.Atoi(rest[0])
	if err != nil {
		return 0, fmt.Errorf("jpl: malformed KSIZE value: %w", err)
	}
	if ksize <= 0 || ksize%2 != 0 {
		return 0, fmt.Errorf("jpl: implausible KSIZE %d", ksize)
	}
	return ksize, nil
}

// parseFortranFloat accepts Fortran-style exponents ("0.1D+01").
func parseFortranFloat(s string) (float64, error) {
	s = strings.ReplaceAll(s, "D", "e")
	s = strings.ReplaceAll(s, "d", "e")
	return strconv.ParseFloat(s, 64)
}

func pad(s string, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	copy(b, s)
	return b
}

func appendF64(b []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
}

func appendI32(b []byte, v int32) []byte {
	return binary.LittleEndian.AppendUint32(b, uint32(v))
}
