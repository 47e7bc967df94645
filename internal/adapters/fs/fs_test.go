package fs_test

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hotload/internal/adapters/fs"
	"go.trai.ch/hotload/internal/core/domain"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "core.src")
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestModTimes_Path(t *testing.T) {
	path := writeSource(t, "x")
	mtime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	got, err := fs.NewModTimes().ModTime(path)
	require.NoError(t, err)
	assert.Equal(t, mtime.UnixNano(), got)
}

func TestModTimes_FileURL(t *testing.T) {
	path := writeSource(t, "x")
	mtime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	origin := (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
	got, err := fs.NewModTimes().ModTime(origin)
	require.NoError(t, err)
	assert.Equal(t, mtime.UnixNano(), got)
}

func TestModTimes_RemoteURL(t *testing.T) {
	got, err := fs.NewModTimes().ModTime("https://cdn.example.com/lib.js")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestModTimes_Missing(t *testing.T) {
	_, err := fs.NewModTimes().ModTime(filepath.Join(t.TempDir(), "gone.src"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExcerpter(t *testing.T) {
	path := writeSource(t, "l1\nl2\nl3\nl4\nl5\nl6\nl7\n")

	tests := []struct {
		name  string
		lines int
		loc   domain.Location
		want  *domain.FileExcerpt
	}{
		{
			name:  "middle",
			lines: 1,
			loc:   domain.Location{File: path, Line: 4},
			want:  &domain.FileExcerpt{StartLine: 3, Path: path, Excerpt: "l3\nl4\nl5"},
		},
		{
			name:  "clamped at start",
			lines: 3,
			loc:   domain.Location{File: path, Line: 2},
			want:  &domain.FileExcerpt{StartLine: 1, Path: path, Excerpt: "l1\nl2\nl3\nl4\nl5"},
		},
		{
			name:  "clamped at end",
			lines: 2,
			loc:   domain.Location{File: path, Line: 7},
			want:  &domain.FileExcerpt{StartLine: 5, Path: path, Excerpt: "l5\nl6\nl7"},
		},
		{
			name:  "no context",
			lines: 0,
			loc:   domain.Location{File: path, Line: 1},
			want:  &domain.FileExcerpt{StartLine: 1, Path: path, Excerpt: "l1"},
		},
		{
			name:  "line past end",
			lines: 1,
			loc:   domain.Location{File: path, Line: 40},
		},
		{
			name:  "unknown line",
			lines: 1,
			loc:   domain.Location{File: path},
		},
		{
			name:  "missing file",
			lines: 1,
			loc:   domain.Location{File: path + ".missing", Line: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fs.NewExcerpter(tt.lines).Excerpt(tt.loc)
			assert.Equal(t, tt.want, got)
		})
	}
}
