package compiler

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
)

var diagnosticLine = regexp.MustCompile(`^(WARNING|ERROR):\s*(?:(.+?):(\d+):(\d+):\s*)?(.*)$`)

// ParseDiagnostic parses one compiler output line. It reports false for lines
// that are not diagnostics.
func ParseDiagnostic(line string) (domain.CompilerDiagnostic, bool) {
	m := diagnosticLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return domain.CompilerDiagnostic{}, false
	}

	d := domain.CompilerDiagnostic{Kind: domain.KindWarning, Detail: m[5]}
	if m[1] == "ERROR" {
		d.Kind = domain.KindError
	}
	if m[2] != "" {
		d.Location.File = m[2]
		d.Location.Line, _ = strconv.Atoi(m[3])
		d.Location.Column, _ = strconv.Atoi(m[4])
	}
	return d, true
}

// lineWriter splits writes into lines.
type lineWriter struct {
	mu   sync.Mutex
	buf  []byte
	emit func(string)
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		line := string(w.buf[:i])
		w.buf = w.buf[i+1:]
		w.emit(line)
	}
	return len(p), nil
}

// Flush emits a trailing partial line.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		line := string(w.buf)
		w.buf = nil
		w.emit(line)
	}
}

// diagnosticWriter reports diagnostic lines and logs the rest.
type diagnosticWriter struct {
	lines  lineWriter
	logger ports.Logger
	report ports.DiagnosticReporter
	first  *domain.CompilerDiagnostic
}

func newDiagnosticWriter(logger ports.Logger, report ports.DiagnosticReporter) *diagnosticWriter {
	w := &diagnosticWriter{logger: logger, report: report}
	w.lines.emit = w.handle
	return w
}

func (w *diagnosticWriter) Write(p []byte) (int, error) {
	return w.lines.Write(p)
}

// Flush handles a trailing partial line.
func (w *diagnosticWriter) Flush() {
	w.lines.Flush()
}

// FirstError returns the first error diagnostic seen.
func (w *diagnosticWriter) FirstError() (domain.CompilerDiagnostic, bool) {
	if w.first == nil {
		return domain.CompilerDiagnostic{}, false
	}
	return *w.first, true
}

func (w *diagnosticWriter) handle(line string) {
	d, ok := ParseDiagnostic(line)
	if !ok {
		if strings.TrimSpace(line) != "" {
			w.logger.Debug(line)
		}
		return
	}
	if d.Kind == domain.KindError && w.first == nil {
		w.first = &d
	}
	if w.report != nil {
		w.report(d)
	}
}
