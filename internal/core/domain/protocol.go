package domain

// Entry points the coordinator calls in the client runtime.
const (
	EntryReload        = "hotload.client.reload_namespaces"
	EntryWarnings      = "hotload.client.handle_warnings"
	EntryException     = "hotload.client.handle_exception"
	EntryAddDependency = "hotload.client.add_dependency"
)

// EventName names a lifecycle event delivered through the client's listener registry.
type EventName string

// Lifecycle events.
const (
	EventBeforeReload     EventName = "before-reload"
	EventAfterReload      EventName = "after-reload"
	EventCompileWarnings  EventName = "compile-warnings"
	EventCompileException EventName = "compile-exception"
)

// DefaultImmutablePrefixes are module id prefixes the client never reloads.
var DefaultImmutablePrefixes = []string{"hotload.client", "runtime"}
