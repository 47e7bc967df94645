package domain

import (
	"slices"
	"time"
)

// CycleOutcome classifies a compile cycle's metadata.
type CycleOutcome uint8

const (
	// OutcomeNone means no cycle is recorded.
	OutcomeNone CycleOutcome = iota
	// OutcomeRunning means the cycle has started but not finished.
	OutcomeRunning
	// OutcomeClean means the cycle finished without diagnostics.
	OutcomeClean
	// OutcomeWarnings means the cycle finished with at least one warning.
	OutcomeWarnings
	// OutcomeException means the cycle failed.
	OutcomeException
)

// String returns a short name for the outcome.
func (o CycleOutcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeClean:
		return "clean"
	case OutcomeWarnings:
		return "warnings"
	case OutcomeException:
		return "exception"
	default:
		return "none"
	}
}

// CycleMetadata records one compile cycle. A zero value means no cycle.
type CycleMetadata struct {
	Started   time.Time
	Finished  time.Time
	Warnings  []Warning
	Exception *Exception
}

// IsEmpty reports whether m holds nothing.
func (m CycleMetadata) IsEmpty() bool {
	return m.Started.IsZero() && m.Finished.IsZero() && len(m.Warnings) == 0 && m.Exception == nil
}

// IsFinished reports whether the cycle reached a terminal state.
func (m CycleMetadata) IsFinished() bool {
	return !m.Finished.IsZero()
}

// Outcome classifies the cycle. An exception wins over warnings.
func (m CycleMetadata) Outcome() CycleOutcome {
	switch {
	case m.IsEmpty():
		return OutcomeNone
	case !m.IsFinished():
		return OutcomeRunning
	case m.Exception != nil:
		return OutcomeException
	case len(m.Warnings) > 0:
		return OutcomeWarnings
	default:
		return OutcomeClean
	}
}

// Equal reports whether m and o describe the same cycle.
func (m CycleMetadata) Equal(o CycleMetadata) bool {
	if !m.Started.Equal(o.Started) || !m.Finished.Equal(o.Finished) {
		return false
	}
	if (m.Exception == nil) != (o.Exception == nil) {
		return false
	}
	if m.Exception != nil && m.Exception.Text != o.Exception.Text {
		return false
	}
	return slices.EqualFunc(m.Warnings, o.Warnings, func(a, b Warning) bool {
		return a.Text == b.Text && a.Location == b.Location
	})
}
