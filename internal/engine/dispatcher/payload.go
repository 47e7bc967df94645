package dispatcher

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/hotload/internal/core/domain"
)

// ReloadPayload renders the reload call for plan.
func ReloadPayload(plan domain.ReloadPlan) (string, error) {
	ids, err := json.Marshal(plan.MangledModules())
	if err != nil {
		return "", err
	}
	meta, err := json.Marshal(plan.MangledEligibility())
	if err != nil {
		return "", err
	}
	return call(domain.EntryReload, string(ids), string(meta)), nil
}

// DeliveryScript renders one dependency registration per unit, in graph order.
// A unit without provides registers under its own id.
func DeliveryScript(g *domain.Graph) (string, error) {
	var b strings.Builder
	for unit := range g.Units() {
		provides := unit.Provides
		if len(provides) == 0 {
			provides = []domain.ModuleID{unit.ID}
		}
		origin, err := json.Marshal(unit.Origin)
		if err != nil {
			return "", err
		}
		p, err := json.Marshal(mangleAll(provides))
		if err != nil {
			return "", err
		}
		r, err := json.Marshal(mangleAll(g.Requires(unit.ID)))
		if err != nil {
			return "", err
		}
		b.WriteString(call(domain.EntryAddDependency, string(origin), string(p), string(r)))
	}
	return b.String(), nil
}

// WarningsPayload renders the warnings call.
func WarningsPayload(warnings []domain.Warning) (string, error) {
	records := make([]domain.WarningRecord, len(warnings))
	for i, w := range warnings {
		records[i] = w.Record()
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return call(domain.EntryWarnings, string(data)), nil
}

// ExceptionPayload renders the exception call.
func ExceptionPayload(exc domain.Exception) (string, error) {
	data, err := json.Marshal(exc.Record())
	if err != nil {
		return "", err
	}
	return call(domain.EntryException, string(data)), nil
}

// Fingerprint hashes the requirement mapping of g. Keys are sorted; each requirement
// list keeps the compiler's order.
func Fingerprint(g *domain.Graph) uint64 {
	mapping := g.RequirementMap()
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	h := xxhash.New()
	for _, k := range keys {
		_, _ = h.WriteString(k)
		_, _ = h.WriteString("\x00")
		for _, r := range mapping[k] {
			_, _ = h.WriteString(r)
			_, _ = h.WriteString("\x01")
		}
		_, _ = h.WriteString("\n")
	}
	return h.Sum64()
}

func call(entry string, args ...string) string {
	return entry + "(" + strings.Join(args, ", ") + ");\n"
}

func mangleAll(ids []domain.ModuleID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Mangled()
	}
	return out
}
