package domain

// Eligibility holds the per-module reload flags carried by a reload plan.
type Eligibility struct {
	AlwaysReload bool `json:"always-reload"`
	NeverReload  bool `json:"never-reload"`
}

// SourceUnit is one compilable module as reported by the compiler for a single cycle.
type SourceUnit struct {
	ID       ModuleID
	Provides []ModuleID
	Requires []ModuleID
	// Origin is the path or URL the unit was compiled from or is delivered by.
	Origin string
	// LastModified is the origin's modification time in UnixNano, as reported by the compiler.
	LastModified int64
	// Foreign marks an externally declared dependency bundle rather than compiled source.
	Foreign     bool
	Eligibility Eligibility
}
