// Package ui provides the interactive script console using Bubble Tea.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dop251/goja"

	"github.com/pkgw/precastro/internal/version"
	"github.com/pkgw/precastro/script"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
)

const prompt = "pca> "

// entry is one evaluated input line in the scrollback, with its result
// or error text.
type entry struct {
	input  string
	output string
	isErr  bool
}

// Model is the console's Bubble Tea model. It evaluates input lines
// synchronously against a script session.
type Model struct {
	session *script.Session

	width  int
	height int
	ready  bool

	input   string
	entries []entry

	history []string
	histPos int // len(history) when not navigating
}

// New creates a console model around a session.
func New(session *script.Session) Model {
	return Model{session: session}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			return m, tea.Quit

		case "enter":
			m = m.evalInput()

		case "backspace":
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}

		case "up":
			if m.histPos > 0 {
				m.histPos--
				m.input = m.history[m.histPos]
			}

		case "down":
			if m.histPos < len(m.history) {
				m.histPos++
				if m.histPos == len(m.history) {
					m.input = ""
				} else {
					m.input = m.history[m.histPos]
				}
			}

		default:
			if msg.Type == tea.KeyRunes {
				m.input += string(msg.Runes)
			} else if msg.Type == tea.KeySpace {
				m.input += " "
			}
		}
	}

	return m, nil
}

// evalInput runs the pending input line and appends it to the
// scrollback.
func (m Model) evalInput() Model {
	line := strings.TrimSpace(m.input)
	m.input = ""
	if line == "" {
		return m
	}

	m.history = append(m.history, line)
	m.histPos = len(m.history)

	v, err := m.session.Eval(line)
	e := entry{input: line}
	switch {
	case err != nil:
		e.output = err.Error()
		e.isErr = true
	case v == nil || goja.IsUndefined(v):
		e.output = ""
	default:
		e.output = v.String()
	}
	m.entries = append(m.entries, e)
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())

	// Scrollback, newest at the bottom, clipped to the space between
	// header and footer.
	avail := m.height - 7
	if avail < 1 {
		avail = 1
	}
	lines := m.scrollbackLines()
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(promptStyle.Render(prompt))
	b.WriteString(m.input)
	b.WriteString(dimStyle.Render("█"))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) scrollbackLines() []string {
	var lines []string
	for _, e := range m.entries {
		lines = append(lines, promptStyle.Render(prompt)+e.input)
		if e.output == "" {
			continue
		}
		style := resultStyle
		if e.isErr {
			style = errorStyle
		}
		for _, out := range strings.Split(e.output, "\n") {
			lines = append(lines, style.Render(out))
		}
	}
	return lines
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("precastro") +
		dimStyle.Render(fmt.Sprintf(" v%s · script console", version.Version))
	hint := dimStyle.Render("functions live on the precastro object, e.g. precastro.now()")
	return title + "\n" + hint + "\n\n"
}

func (m Model) renderFooter() string {
	return dimStyle.Render("enter: evaluate | up/down: history | ctrl+c: quit")
}
