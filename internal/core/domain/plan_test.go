package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/hotload/internal/core/domain"
)

func TestNewReloadPlan(t *testing.T) {
	core := domain.SourceUnit{
		ID:          domain.NewModuleID("app.core"),
		Provides:    domain.ModuleIDs("app.core", "app.core-api"),
		Eligibility: domain.Eligibility{AlwaysReload: true},
	}
	ui := unit("app.ui", "app.core")
	ui.Eligibility = domain.Eligibility{NeverReload: true}
	g := mustGraph(t, core, ui)

	plan := domain.NewReloadPlan(g, domain.ModuleIDs("app.ui", "app.core", "app.ui", "extern"))

	assert.Equal(t, []string{"app.ui", "app.core", "app.core-api", "extern"}, names(plan.Modules))
	assert.Equal(t, []string{"app.ui", "app.core", "app.core_api", "extern"}, plan.MangledModules())
	assert.Equal(t, map[string]domain.Eligibility{
		"app.ui":       {NeverReload: true},
		"app.core":     {AlwaysReload: true},
		"app.core_api": {AlwaysReload: true},
		"extern":       {},
	}, plan.MangledEligibility())
	assert.False(t, plan.Empty())
}

func TestNewReloadPlan_Empty(t *testing.T) {
	g := mustGraph(t, unit("a"))
	assert.True(t, domain.NewReloadPlan(g, nil).Empty())
}

func TestMangle(t *testing.T) {
	tests := map[string]string{
		"app.core":         "app.core",
		"app.user-profile": "app.user_profile",
		"app.valid?":       "app.valid_QMARK_",
		"app.reset!":       "app.reset_BANG_",
		"a.b/c":            "a.b_SLASH_c",
		"x.<=>":            "x._LT__EQ__GT_",
	}
	for in, want := range tests {
		assert.Equal(t, want, domain.Mangle(in), in)
	}
}

func TestModuleID_Interning(t *testing.T) {
	a := domain.NewModuleID("app.core")
	b := domain.NewModuleID("app.core")

	assert.Equal(t, a, b)
	assert.Equal(t, "app.core", a.String())
	assert.True(t, domain.ModuleID{}.IsZero())
	assert.Empty(t, domain.ModuleID{}.String())
}
