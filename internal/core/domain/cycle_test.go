package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/hotload/internal/core/domain"
)

func TestCycleMetadata_Outcome(t *testing.T) {
	start := time.Unix(100, 0)
	end := time.Unix(101, 0)
	exc := &domain.Exception{Text: "boom"}
	warn := []domain.Warning{{Text: "unused var"}}

	tests := []struct {
		name string
		meta domain.CycleMetadata
		want domain.CycleOutcome
	}{
		{"empty", domain.CycleMetadata{}, domain.OutcomeNone},
		{"running", domain.CycleMetadata{Started: start}, domain.OutcomeRunning},
		{"clean", domain.CycleMetadata{Started: start, Finished: end}, domain.OutcomeClean},
		{"warnings", domain.CycleMetadata{Started: start, Finished: end, Warnings: warn}, domain.OutcomeWarnings},
		{"exception", domain.CycleMetadata{Started: start, Finished: end, Exception: exc}, domain.OutcomeException},
		{"exception beats warnings", domain.CycleMetadata{Started: start, Finished: end, Warnings: warn, Exception: exc}, domain.OutcomeException},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.meta.Outcome())
		})
	}
}

func TestCycleMetadata_Equal(t *testing.T) {
	a := domain.CycleMetadata{Started: time.Unix(1, 0), Finished: time.Unix(2, 0), Warnings: []domain.Warning{{Text: "w"}}}
	b := a
	b.Warnings = []domain.Warning{{Text: "w"}}

	assert.True(t, a.Equal(b))
	b.Warnings = nil
	assert.False(t, a.Equal(b))
	assert.True(t, domain.CycleMetadata{}.Equal(domain.CycleMetadata{}))
}

func TestExceptionFromError(t *testing.T) {
	ce := &domain.CompileError{Exception: domain.Exception{
		Location: domain.Location{File: "src/app.src", Line: 3, Column: 7},
		Text:     "unexpected token",
	}}

	exc := domain.ExceptionFromError(ce)
	assert.Equal(t, domain.ExceptionTypeCompile, exc.Type)
	assert.Equal(t, domain.ExceptionTag, exc.Tag)
	assert.Equal(t, 3, exc.Location.Line)
	assert.Equal(t, "src/app.src:3:7: unexpected token", ce.Error())

	plain := domain.ExceptionFromError(errors.New("compiler crashed"))
	assert.Equal(t, domain.ExceptionTypeBuild, plain.Type)
	assert.Equal(t, "compiler crashed", plain.Text)
}

func TestDiagnostic_RecordsRoundTrip(t *testing.T) {
	w := domain.Warning{
		Location: domain.Location{File: "a.src", Line: 2, Column: 4},
		Text:     "shadowed",
		Excerpt:  &domain.FileExcerpt{StartLine: 1, Path: "a.src", Excerpt: "x\ny"},
	}
	assert.Equal(t, w, w.Record().Warning())

	e := domain.Exception{Text: "bad", Type: "t", Tag: "g", Location: domain.Location{Line: 1}}
	assert.Equal(t, e, e.Record().Exception())

	var diags []domain.Diagnostic = []domain.Diagnostic{w, e}
	for _, d := range diags {
		switch v := d.(type) {
		case domain.Warning:
			assert.Equal(t, "shadowed", v.Message())
		case domain.Exception:
			assert.Equal(t, "bad", v.Message())
		default:
			t.Fatalf("unexpected diagnostic %T", d)
		}
	}
}
