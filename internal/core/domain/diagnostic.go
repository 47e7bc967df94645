package domain

import (
	"errors"
	"fmt"
)

// DiagnosticKind is the severity the compiler reported a diagnostic with.
type DiagnosticKind uint8

const (
	// KindWarning is a non-fatal diagnostic.
	KindWarning DiagnosticKind = iota
	// KindError is a fatal diagnostic.
	KindError
)

// String returns the lowercase kind name.
func (k DiagnosticKind) String() string {
	if k == KindError {
		return "error"
	}
	return "warning"
}

// Location points at a position in a source file. Line and Column are 1-based; zero means unknown.
type Location struct {
	File   string
	Line   int
	Column int
}

// CompilerDiagnostic is what the compiler hands the diagnostics callback during a build.
type CompilerDiagnostic struct {
	Kind     DiagnosticKind
	Location Location
	Detail   string
}

// FileExcerpt is a slice of a source file around a diagnostic.
type FileExcerpt struct {
	StartLine int    `json:"start-line"`
	Path      string `json:"path"`
	Excerpt   string `json:"excerpt"`
}

// Diagnostic is either a Warning or an Exception.
type Diagnostic interface {
	diagnostic()
	Where() Location
	Message() string
}

// Warning is a non-fatal compile diagnostic.
type Warning struct {
	Location Location
	Text     string
	Excerpt  *FileExcerpt
}

func (Warning) diagnostic() {}

// Where returns the warning's location.
func (w Warning) Where() Location { return w.Location }

// Message returns the warning text.
func (w Warning) Message() string { return w.Text }

// Exception is a fatal compile diagnostic.
type Exception struct {
	Location Location
	Text     string
	Type     string
	Tag      string
	Excerpt  *FileExcerpt
}

func (Exception) diagnostic() {}

// Where returns the exception's location.
func (e Exception) Where() Location { return e.Location }

// Message returns the exception text.
func (e Exception) Message() string { return e.Text }

const (
	// ExceptionTypeCompile marks exceptions raised by the compiler for bad source.
	ExceptionTypeCompile = "compile-error"
	// ExceptionTypeBuild marks exceptions from the build process itself.
	ExceptionTypeBuild = "build-failure"
	// ExceptionTag tags every exception record this coordinator emits.
	ExceptionTag = "hotload/compile-exception"
)

// CompileError is returned by a compiler adapter when a build fails on bad source.
type CompileError struct {
	Exception Exception
}

// Error implements error.
func (e *CompileError) Error() string {
	loc := e.Exception.Location
	if loc.File == "" {
		return e.Exception.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", loc.File, loc.Line, loc.Column, e.Exception.Text)
}

// ExceptionFromError turns a failed build into an exception diagnostic.
func ExceptionFromError(err error) Exception {
	var ce *CompileError
	if errors.As(err, &ce) {
		exc := ce.Exception
		if exc.Type == "" {
			exc.Type = ExceptionTypeCompile
		}
		if exc.Tag == "" {
			exc.Tag = ExceptionTag
		}
		return exc
	}
	return Exception{
		Text: err.Error(),
		Type: ExceptionTypeBuild,
		Tag:  ExceptionTag,
	}
}

// WarningRecord is the wire form of a Warning.
type WarningRecord struct {
	Message     string       `json:"message"`
	Line        int          `json:"line"`
	Column      int          `json:"column"`
	File        string       `json:"file,omitempty"`
	FileExcerpt *FileExcerpt `json:"file-excerpt,omitempty"`
}

// ExceptionRecord is the wire form of an Exception.
type ExceptionRecord struct {
	Message     string       `json:"message"`
	Line        int          `json:"line"`
	Column      int          `json:"column"`
	File        string       `json:"file,omitempty"`
	FileExcerpt *FileExcerpt `json:"file-excerpt,omitempty"`
	Type        string       `json:"type"`
	Tag         string       `json:"tag"`
}

// Record converts w to its wire form.
func (w Warning) Record() WarningRecord {
	return WarningRecord{
		Message:     w.Text,
		Line:        w.Location.Line,
		Column:      w.Location.Column,
		File:        w.Location.File,
		FileExcerpt: w.Excerpt,
	}
}

// Warning converts a wire record back into a Warning.
func (r WarningRecord) Warning() Warning {
	return Warning{
		Location: Location{File: r.File, Line: r.Line, Column: r.Column},
		Text:     r.Message,
		Excerpt:  r.FileExcerpt,
	}
}

// Record converts e to its wire form.
func (e Exception) Record() ExceptionRecord {
	return ExceptionRecord{
		Message:     e.Text,
		Line:        e.Location.Line,
		Column:      e.Location.Column,
		File:        e.Location.File,
		FileExcerpt: e.Excerpt,
		Type:        e.Type,
		Tag:         e.Tag,
	}
}

// Exception converts a wire record back into an Exception.
func (r ExceptionRecord) Exception() Exception {
	return Exception{
		Location: Location{File: r.File, Line: r.Line, Column: r.Column},
		Text:     r.Message,
		Type:     r.Type,
		Tag:      r.Tag,
		Excerpt:  r.FileExcerpt,
	}
}
