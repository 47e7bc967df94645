package fs

import (
	"bufio"
	"os"
	"strings"

	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
)

var _ ports.ExcerptSource = (*Excerpter)(nil)

// Excerpter cuts source excerpts around diagnostic locations.
type Excerpter struct {
	context int
}

// NewExcerpter creates an Excerpter that keeps lines of context on each side.
func NewExcerpter(lines int) *Excerpter {
	return &Excerpter{context: max(lines, 0)}
}

// Excerpt returns the lines around loc, or nil when the file or line cannot be read.
func (e *Excerpter) Excerpt(loc domain.Location) *domain.FileExcerpt {
	if loc.File == "" || loc.Line <= 0 {
		return nil
	}
	path, ok := localPath(loc.File)
	if !ok {
		return nil
	}

	//nolint:gosec // Path comes from compiler diagnostics
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	start := max(loc.Line-e.context, 1)
	end := loc.Line + e.context

	var lines []string
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan() && n <= end; n++ {
		if n >= start {
			lines = append(lines, scanner.Text())
		}
	}
	if scanner.Err() != nil || start+len(lines) <= loc.Line {
		return nil
	}

	return &domain.FileExcerpt{
		StartLine: start,
		Path:      loc.File,
		Excerpt:   strings.Join(lines, "\n"),
	}
}
