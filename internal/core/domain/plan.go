package domain

// ReloadPlan is the ordered, deduplicated list of modules to re-initialize in the client,
// together with each module's eligibility flags.
type ReloadPlan struct {
	Modules     []ModuleID
	Eligibility map[ModuleID]Eligibility
}

// Empty reports whether the plan has nothing to reload.
func (p ReloadPlan) Empty() bool {
	return len(p.Modules) == 0
}

// NewReloadPlan expands units into the module ids the client knows them by.
// A unit that provides symbols contributes each provided id; a unit without provides
// contributes its own id. Flags come from the providing unit; unknown ids get none.
func NewReloadPlan(g *Graph, units []ModuleID) ReloadPlan {
	plan := ReloadPlan{
		Modules:     make([]ModuleID, 0, len(units)),
		Eligibility: make(map[ModuleID]Eligibility, len(units)),
	}
	add := func(id ModuleID, e Eligibility) {
		if _, dup := plan.Eligibility[id]; dup {
			return
		}
		plan.Eligibility[id] = e
		plan.Modules = append(plan.Modules, id)
	}

	for _, id := range units {
		unit, ok := g.Unit(id)
		if !ok {
			add(id, Eligibility{})
			continue
		}
		if len(unit.Provides) == 0 {
			add(id, unit.Eligibility)
			continue
		}
		for _, p := range unit.Provides {
			add(p, unit.Eligibility)
		}
	}
	return plan
}

// MangledModules returns the plan's module ids in wire form.
func (p ReloadPlan) MangledModules() []string {
	out := make([]string, len(p.Modules))
	for i, id := range p.Modules {
		out[i] = id.Mangled()
	}
	return out
}

// MangledEligibility returns the eligibility map keyed by wire-form ids.
func (p ReloadPlan) MangledEligibility() map[string]Eligibility {
	out := make(map[string]Eligibility, len(p.Eligibility))
	for id, e := range p.Eligibility {
		out[id.Mangled()] = e
	}
	return out
}
