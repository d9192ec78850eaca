package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#00cc6a")
	colorInfo    = lipgloss.Color("#00a0cc")
	colorError   = lipgloss.Color("#ff5f5f")
)

// Messenger implements ports.Messenger with lipgloss-styled lines.
// Success and info lines go to out, errors to errOut.
type Messenger struct {
	out     io.Writer
	errOut  io.Writer
	success lipgloss.Style
	info    lipgloss.Style
	failure lipgloss.Style
}

// NewMessenger creates a Messenger. Styles are resolved against the
// writers' own terminal capabilities; noColor forces plain text.
func NewMessenger(out, errOut io.Writer, noColor bool) *Messenger {
	m := &Messenger{out: out, errOut: errOut}
	if noColor {
		m.success = lipgloss.NewStyle()
		m.info = lipgloss.NewStyle()
		m.failure = lipgloss.NewStyle()
		return m
	}
	outR := lipgloss.NewRenderer(out)
	errR := lipgloss.NewRenderer(errOut)
	m.success = outR.NewStyle().Foreground(colorSuccess)
	m.info = outR.NewStyle().Foreground(colorInfo)
	m.failure = errR.NewStyle().Foreground(colorError).Bold(true)
	return m
}

// Success prints a confirmation line.
func (m *Messenger) Success(msg string) {
	fmt.Fprintln(m.out, m.success.Render(msg))
}

// Info prints a neutral line.
func (m *Messenger) Info(msg string) {
	fmt.Fprintln(m.out, m.info.Render(msg))
}

// Error prints an error line.
func (m *Messenger) Error(msg string) {
	fmt.Fprintln(m.errOut, m.failure.Render(msg))
}
