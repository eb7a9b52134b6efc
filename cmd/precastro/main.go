// Command precastro is a console for the precastro astronomy routines,
// exposed through an embedded script environment. With -e or a script
// file argument it evaluates headlessly; otherwise it runs an
// interactive terminal UI.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dop251/goja"

	"github.com/pkgw/precastro/internal/logging"
	"github.com/pkgw/precastro/internal/ui"
	"github.com/pkgw/precastro/script"
)

func main() {
	ephemPath := flag.String("ephem", "", "Binary JPL ephemeris to open at startup")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	expr := flag.String("e", "", "Evaluate an expression and exit")
	flag.Parse()

	logger := logging.New(logging.ParseLevel(*logLevel))
	session := script.NewSession(logger)
	defer session.Close()

	if *ephemPath != "" {
		if err := session.OpenEphemeris(*ephemPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Headless mode: evaluate and exit.
	if *expr != "" || flag.NArg() > 0 {
		runHeadless(session, *expr, flag.Args())
		return
	}

	p := tea.NewProgram(ui.New(session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless evaluates the -e expression, then any script files, and
// prints the value of each evaluation that produces one.
func runHeadless(session *script.Session, expr string, files []string) {
	if expr != "" {
		evalAndPrint(session, expr)
	}
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		evalAndPrint(session, string(src))
	}
}

func evalAndPrint(session *script.Session, src string) {
	v, err := session.Eval(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if v != nil && !goja.IsUndefined(v) {
		fmt.Println(v.String())
	}
}
