package domain

import "slices"

// Closure returns every unit affected by a change to the given units: the changed units
// themselves plus everything that transitively requires them.
//
// Units are visited breadth-first along the required-by relation and recorded per depth.
// A unit rediscovered at a shallower or equal depth is recorded again but never expanded
// a second time, and a recording deeper than the rediscovery always wins. The depth buckets
// are then flattened deepest first, so consumers precede what they consume and the changed
// units come last. Each id appears once.
func (g *Graph) Closure(changed []ModuleID) []ModuleID {
	if len(changed) == 0 {
		return nil
	}

	memo := make(map[ModuleID][]ModuleID)
	dependents := func(id ModuleID) []ModuleID {
		if deps, ok := memo[id]; ok {
			return deps
		}
		deps := slices.Clone(g.inverse[id])
		SortModuleIDs(deps)
		memo[id] = deps
		return deps
	}

	var buckets []depthBucket
	deepest := make(map[ModuleID]int)
	record := func(id ModuleID, depth int) {
		for len(buckets) <= depth {
			buckets = append(buckets, newDepthBucket())
		}
		buckets[depth].add(id)
		if d, ok := deepest[id]; !ok || depth > d {
			deepest[id] = depth
		}
	}

	var frontier []ModuleID
	for _, id := range changed {
		if _, seen := deepest[id]; seen {
			continue
		}
		record(id, 0)
		frontier = append(frontier, id)
	}

	for depth := 0; len(frontier) > 0; depth++ {
		var next []ModuleID
		for _, id := range frontier {
			for _, dep := range dependents(id) {
				if d, seen := deepest[dep]; seen {
					if d > depth+1 {
						continue
					}
					record(dep, depth+1)
					continue
				}
				record(dep, depth+1)
				next = append(next, dep)
			}
		}
		frontier = next
	}

	emitted := make(map[ModuleID]struct{}, len(deepest))
	out := make([]ModuleID, 0, len(deepest))
	for depth := len(buckets) - 1; depth >= 0; depth-- {
		for _, id := range buckets[depth].ids {
			if _, done := emitted[id]; done {
				continue
			}
			emitted[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

type depthBucket struct {
	ids []ModuleID
	set map[ModuleID]struct{}
}

func newDepthBucket() depthBucket {
	return depthBucket{set: make(map[ModuleID]struct{})}
}

func (b *depthBucket) add(id ModuleID) {
	if _, ok := b.set[id]; ok {
		return
	}
	b.set[id] = struct{}{}
	b.ids = append(b.ids, id)
}
