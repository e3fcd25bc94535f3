package report

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Styles holds the lipgloss styles of the terminal report
type Styles struct {
	enabled bool

	Header    lipgloss.Style
	Subheader lipgloss.Style
	Muted     lipgloss.Style

	// Score bands and feedback levels
	Success lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Bar lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconSuccess string
	IconInfo    string
	IconWarning string
	IconError   string
	BarFull     string
	BarEmpty    string
}

// NewStyles creates a Styles instance.
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if enabled {
		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
		s.Subheader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
		s.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

		s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green
		s.Info = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))    // Cyan
		s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Yellow
		s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))    // Red
		s.Bar = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

		s.IconSuccess = "✓"
		s.IconInfo = "ℹ"
		s.IconWarning = "⚠"
		s.IconError = "✗"
		s.BarFull = "█"
		s.BarEmpty = "░"
	} else {
		s.Header = lipgloss.NewStyle()
		s.Subheader = lipgloss.NewStyle()
		s.Muted = lipgloss.NewStyle()
		s.Success = lipgloss.NewStyle()
		s.Info = lipgloss.NewStyle()
		s.Warning = lipgloss.NewStyle()
		s.Error = lipgloss.NewStyle()
		s.Bar = lipgloss.NewStyle()

		s.IconSuccess = "OK:"
		s.IconInfo = "INFO:"
		s.IconWarning = "WARN:"
		s.IconError = "ERROR:"
		s.BarFull = "#"
		s.BarEmpty = "."
	}

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
