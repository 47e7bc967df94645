// Package style provides shared terminal styling: brand colors, icons and the lipgloss
// styles used by the log handler and the diagnostic overlay.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Arrow   = "→"
)

// OverlayStyles render diagnostics in the client overlay.
type OverlayStyles struct {
	// ErrorHeading renders an exception title.
	ErrorHeading lipgloss.Style
	// WarningHeading renders a warning title.
	WarningHeading lipgloss.Style
	// Success renders the reload indicator.
	Success lipgloss.Style
	// Muted renders locations and line numbers.
	Muted lipgloss.Style
	// Highlight renders the excerpt line a diagnostic points at.
	Highlight lipgloss.Style
}

// NewOverlayStyles binds the overlay styles to r.
func NewOverlayStyles(r *lipgloss.Renderer) OverlayStyles {
	heading := r.NewStyle().Bold(true)
	return OverlayStyles{
		ErrorHeading:   heading.Foreground(Red),
		WarningHeading: heading.Foreground(Yellow),
		Success:        r.NewStyle().Foreground(Green),
		Muted:          r.NewStyle().Foreground(Slate),
		Highlight:      r.NewStyle().Foreground(Iris).Bold(true),
	}
}
