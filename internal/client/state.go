package client

import (
	"slices"
	"time"

	"go.trai.ch/hotload/internal/core/domain"
)

// ReloadState is the outcome of the current reload episode.
type ReloadState struct {
	ReloadStarted time.Time
	Warnings      []domain.Warning
	Exception     *domain.Exception
}

// IsEmpty reports whether no episode is pending.
func (s ReloadState) IsEmpty() bool {
	return s.ReloadStarted.IsZero() && len(s.Warnings) == 0 && s.Exception == nil
}

// StateCell holds the ReloadState and notifies subscribers synchronously on every change.
// It has a single writer: the client loop.
type StateCell struct {
	state  ReloadState
	subs   map[int]func(prev, next ReloadState)
	nextID int
}

// NewStateCell creates an empty cell.
func NewStateCell() *StateCell {
	return &StateCell{subs: make(map[int]func(prev, next ReloadState))}
}

// Get returns the current state.
func (c *StateCell) Get() ReloadState {
	return c.state
}

// Set replaces the state and notifies subscribers in subscription order.
func (c *StateCell) Set(next ReloadState) {
	prev := c.state
	c.state = next
	if prev.IsEmpty() && next.IsEmpty() {
		return
	}

	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := c.subs[id]; ok {
			fn(prev, next)
		}
	}
}

// Clear empties the state.
func (c *StateCell) Clear() {
	c.Set(ReloadState{})
}

// ClearIf empties the state only if it still belongs to the episode started at started.
func (c *StateCell) ClearIf(started time.Time) {
	if c.state.ReloadStarted.Equal(started) {
		c.Clear()
	}
}

// Subscribe registers fn and returns a function that removes it.
func (c *StateCell) Subscribe(fn func(prev, next ReloadState)) func() {
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() { delete(c.subs, id) }
}
