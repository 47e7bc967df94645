// Package overlay renders client diagnostics to a terminal.
package overlay

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
	"go.trai.ch/hotload/internal/ui/output"
	"go.trai.ch/hotload/internal/ui/style"
)

var _ ports.Display = (*Terminal)(nil)

// Terminal implements ports.Display by writing styled blocks to a writer.
// Every operation completes before it returns, so done is called synchronously.
type Terminal struct {
	mu     sync.Mutex
	w      io.Writer
	styles style.OverlayStyles
}

// NewTerminal creates a Terminal writing to w. nil means stderr.
func NewTerminal(w io.Writer) *Terminal {
	if w == nil {
		w = os.Stderr
	}
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ColorProfile())
	return &Terminal{w: w, styles: style.NewOverlayStyles(r)}
}

// ShowWarning renders one warning in full.
func (t *Terminal) ShowWarning(w domain.Warning, done func()) {
	defer done()

	var b strings.Builder
	b.WriteString(t.styles.WarningHeading.Render(style.Warning+" Compile warning"))
	t.writeLocation(&b, w.Location)
	b.WriteString("\n  " + w.Text + "\n")
	t.writeExcerpt(&b, w.Excerpt, w.Location.Line)
	t.write(b.String())
}

// AppendWarnings adds one summary line per warning.
func (t *Terminal) AppendWarnings(ws []domain.Warning, done func()) {
	defer done()

	var b strings.Builder
	b.WriteString(t.styles.Muted.Render(fmt.Sprintf("  + %d more warning(s)", len(ws))) + "\n")
	for _, w := range ws {
		b.WriteString("  " + t.styles.WarningHeading.Render(style.Warning) + " ")
		if loc := formatLocation(w.Location); loc != "" {
			b.WriteString(t.styles.Muted.Render(loc) + " ")
		}
		b.WriteString(w.Text + "\n")
	}
	t.write(b.String())
}

// ShowException renders an exception in full.
func (t *Terminal) ShowException(e domain.Exception, done func()) {
	defer done()

	var b strings.Builder
	b.WriteString(t.styles.ErrorHeading.Render(style.Cross + " Compile exception"))
	t.writeLocation(&b, e.Location)
	b.WriteString("\n  " + e.Text + "\n")
	t.writeExcerpt(&b, e.Excerpt, e.Location.Line)
	t.write(b.String())
}

// ShowSuccess prints the reload indicator.
func (t *Terminal) ShowSuccess(done func()) {
	defer done()
	t.write(t.styles.Success.Render(style.Check+" Reloaded") + "\n")
}

func (t *Terminal) writeLocation(b *strings.Builder, loc domain.Location) {
	if s := formatLocation(loc); s != "" {
		b.WriteString(" " + t.styles.Muted.Render(s))
	}
}

func (t *Terminal) writeExcerpt(b *strings.Builder, ex *domain.FileExcerpt, line int) {
	if ex == nil || ex.Excerpt == "" {
		return
	}
	lines := strings.Split(ex.Excerpt, "\n")
	width := len(fmt.Sprint(ex.StartLine + len(lines) - 1))
	for i, text := range lines {
		n := ex.StartLine + i
		gutter := fmt.Sprintf("%*d |", width, n)
		if n == line {
			b.WriteString(t.styles.Highlight.Render(style.Arrow+" "+gutter+" "+text) + "\n")
			continue
		}
		b.WriteString("  " + t.styles.Muted.Render(gutter) + " " + text + "\n")
	}
}

func (t *Terminal) write(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = io.WriteString(t.w, s)
}

func formatLocation(loc domain.Location) string {
	switch {
	case loc.File == "":
		return ""
	case loc.Line <= 0:
		return loc.File
	case loc.Column <= 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Column)
	}
}
