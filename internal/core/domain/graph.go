// Package domain contains the core domain models for the hot-reload coordinator:
// module identifiers, source units, the dependency graph and its closure resolver,
// reload plans, and compile diagnostics.
package domain

import (
	"fmt"
	"iter"
	"strings"

	"go.trai.ch/zerr"
)

// Graph is the dependency graph of one compile cycle.
// It is built from scratch every cycle and never patched.
type Graph struct {
	units   map[ModuleID]SourceUnit
	order   []ModuleID
	forward map[ModuleID][]ModuleID
	inverse map[ModuleID][]ModuleID
}

// NewGraph builds the forward and inverse mappings for units.
// A requirement naming a symbol another unit provides is attributed to that unit.
// It returns an error if two units share an id.
func NewGraph(units []SourceUnit) (*Graph, error) {
	g := &Graph{
		units:   make(map[ModuleID]SourceUnit, len(units)),
		order:   make([]ModuleID, 0, len(units)),
		forward: make(map[ModuleID][]ModuleID, len(units)),
		inverse: make(map[ModuleID][]ModuleID),
	}
	for i := range units {
		if _, exists := g.units[units[i].ID]; exists {
			return nil, zerr.With(ErrDuplicateUnit, "module", units[i].ID.String())
		}
		g.units[units[i].ID] = units[i]
		g.order = append(g.order, units[i].ID)
	}

	providers := make(map[ModuleID]ModuleID)
	for _, id := range g.order {
		for _, p := range g.units[id].Provides {
			if _, taken := providers[p]; !taken {
				providers[p] = id
			}
		}
	}

	for _, id := range g.order {
		seen := make(map[ModuleID]struct{})
		for _, req := range g.units[id].Requires {
			if _, isUnit := g.units[req]; !isUnit {
				if owner, ok := providers[req]; ok {
					req = owner
				}
			}
			if _, dup := seen[req]; dup {
				continue
			}
			seen[req] = struct{}{}
			g.forward[id] = append(g.forward[id], req)
			g.inverse[req] = append(g.inverse[req], id)
		}
	}
	return g, nil
}

// Len returns the number of units in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// Unit returns the unit registered under id.
func (g *Graph) Unit(id ModuleID) (SourceUnit, bool) {
	u, ok := g.units[id]
	return u, ok
}

// Units yields the units in compiler order.
func (g *Graph) Units() iter.Seq[SourceUnit] {
	return func(yield func(SourceUnit) bool) {
		for _, id := range g.order {
			if !yield(g.units[id]) {
				return
			}
		}
	}
}

// Requires returns the direct requirements of id.
func (g *Graph) Requires(id ModuleID) []ModuleID {
	return g.forward[id]
}

// Dependents returns the units that directly require id.
func (g *Graph) Dependents(id ModuleID) []ModuleID {
	return g.inverse[id]
}

// RequirementMap returns a copy of the forward mapping keyed by module id string.
// Units without requirements map to an empty slice.
func (g *Graph) RequirementMap() map[string][]string {
	out := make(map[string][]string, len(g.order))
	for _, id := range g.order {
		reqs := g.forward[id]
		names := make([]string, len(reqs))
		for i, r := range reqs {
			names[i] = r.String()
		}
		out[id.String()] = names
	}
	return out
}

// DOT renders the graph in Graphviz format. Edges point from a unit to what it requires.
func (g *Graph) DOT() string {
	var b strings.Builder
	b.WriteString("digraph hotload {\n")
	b.WriteString("  rankdir=LR;\n")
	for _, id := range g.order {
		shape := "box"
		if g.units[id].Foreign {
			shape = "ellipse"
		}
		fmt.Fprintf(&b, "  %q [shape=%s];\n", id.String(), shape)
	}
	for _, id := range g.order {
		for _, req := range g.forward[id] {
			fmt.Fprintf(&b, "  %q -> %q;\n", id.String(), req.String())
		}
	}
	b.WriteString("}\n")
	return b.String()
}
