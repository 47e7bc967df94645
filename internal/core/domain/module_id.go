package domain

import (
	"slices"
	"strings"
	"unique"
)

// ModuleID is an interned module identifier.
// Module ids repeat heavily across requires/provides sets, so they share one handle per value.
type ModuleID struct {
	h unique.Handle[string]
}

// NewModuleID interns s as a module identifier.
func NewModuleID(s string) ModuleID {
	return ModuleID{h: unique.Make(s)}
}

// ModuleIDs interns every string in ids, preserving order.
func ModuleIDs(ids ...string) []ModuleID {
	res := make([]ModuleID, len(ids))
	for i, s := range ids {
		res[i] = NewModuleID(s)
	}
	return res
}

// String returns the identifier as written by the compiler.
func (m ModuleID) String() string {
	var zero unique.Handle[string]
	if m.h == zero {
		return ""
	}
	return m.h.Value()
}

// IsZero reports whether m was never assigned.
func (m ModuleID) IsZero() bool {
	var zero unique.Handle[string]
	return m.h == zero
}

// Mangled returns the identifier in the form the client runtime uses.
func (m ModuleID) Mangled() string {
	return Mangle(m.String())
}

// MarshalText implements encoding.TextMarshaler.
func (m ModuleID) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ModuleID) UnmarshalText(text []byte) error {
	m.h = unique.Make(string(text))
	return nil
}

var mangleReplacer = strings.NewReplacer(
	"-", "_",
	"?", "_QMARK_",
	"!", "_BANG_",
	"*", "_STAR_",
	"+", "_PLUS_",
	">", "_GT_",
	"<", "_LT_",
	"=", "_EQ_",
	"'", "_SINGLEQUOTE_",
	"/", "_SLASH_",
)

// Mangle converts a module identifier into a runtime-safe name. Dots are kept.
func Mangle(id string) string {
	return mangleReplacer.Replace(id)
}

// SortModuleIDs sorts ids lexically in place.
func SortModuleIDs(ids []ModuleID) {
	slices.SortFunc(ids, func(a, b ModuleID) int {
		return strings.Compare(a.String(), b.String())
	})
}
