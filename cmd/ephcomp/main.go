// Command ephcomp compiles an ASCII JPL ephemeris (a header file plus a
// coefficient data file, as distributed by JPL) into the binary format
// read by the precastro ephemeris routines.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkgw/precastro/internal/jpl"
	"github.com/pkgw/precastro/internal/logging"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if flag.NArg() != 3 {
		fmt.Fprintf(os.Stderr, "usage: ephcomp [-log-level LEVEL] header.txt data.txt out.bin\n")
		os.Exit(2)
	}
	headerPath := flag.Arg(0)
	dataPath := flag.Arg(1)
	outPath := flag.Arg(2)

	logger := logging.New(logging.ParseLevel(*logLevel))

	if err := compile(headerPath, dataPath, outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Reopen the output as a sanity check and to report what we made.
	eph, st := jpl.Open(outPath)
	if st != jpl.OpenOK {
		fmt.Fprintf(os.Stderr, "Error: output %s fails verification (status %d)\n", outPath, st)
		os.Exit(1)
	}
	logger.Info("wrote %s: DE%d, JD %.1f to %.1f, step %.1f days",
		outPath, eph.DENumber, eph.JDBegin, eph.JDEnd, eph.Step)
	eph.Close()
}

func compile(headerPath, dataPath, outPath string) error {
	header, err := os.Open(headerPath)
	if err != nil {
		return fmt.Errorf("open header: %w", err)
	}
	defer header.Close()

	data, err := os.Open(dataPath)
	if err != nil {
		return fmt.Errorf("open data: %w", err)
	}
	defer data.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if err := jpl.Compile(header, data, out); err != nil {
		out.Close()
		os.Remove(outPath)
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
