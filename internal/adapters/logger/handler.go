package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/hotload/internal/ui/output"
	"go.trai.ch/hotload/internal/ui/style"
)

// subjectKeys name what a record is about. They render as a bracketed prefix, in this order.
var subjectKeys = []string{"module", "entry", "origin"}

type levelStyle struct {
	glyph string
	color lipgloss.Color
}

func styleFor(level slog.Level) levelStyle {
	switch {
	case level >= slog.LevelError:
		return levelStyle{glyph: style.Cross, color: style.Red}
	case level >= slog.LevelWarn:
		return levelStyle{glyph: style.Warning, color: style.Yellow}
	case level >= slog.LevelInfo:
		return levelStyle{color: style.Slate}
	default:
		return levelStyle{glyph: style.Dot, color: style.Iris}
	}
}

// PrettyHandler is a slog.Handler that produces human-readable, colored output.
// Module, entry and origin attributes name the subject of the line and lead it;
// the rest trail the first line as key=value pairs.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	subjects := make(map[string]string, len(subjectKeys))
	var trailing []string
	add := func(attr slog.Attr) {
		if h.group == "" && slices.Contains(subjectKeys, attr.Key) {
			if _, seen := subjects[attr.Key]; !seen {
				subjects[attr.Key] = attr.Value.String()
			}
			return
		}
		trailing = append(trailing, formatAttr(h.group, attr))
	}
	for _, attr := range h.attrs {
		add(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		add(attr)
		return true
	})

	ls := styleFor(r.Level)
	var b strings.Builder
	if ls.glyph != "" {
		b.WriteString(ls.glyph + " ")
	}
	for _, key := range subjectKeys {
		if v, ok := subjects[key]; ok {
			b.WriteString("[" + v + "] ")
		}
	}

	first, rest, multiline := strings.Cut(r.Message, "\n")
	b.WriteString(first)
	if len(trailing) > 0 {
		b.WriteString(" " + strings.Join(trailing, " "))
	}
	if multiline {
		b.WriteString("\n" + rest)
	}

	styled := h.out.String(b.String()).Foreground(termenv.RGBColor(string(ls.color)))
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: append(slices.Clip(h.attrs), attrs...),
		group: h.group,
	}
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: name,
	}
}

func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}
