/*
resolver.go - Free-form name or numeric id to canonical identifier

PURPOSE:
  Callers pass whatever the user typed: a numeric id, a name, a full name,
  or a subsidiary's decorated "(Consolidated)" display name. Resolution
  normalizes all of those to the canonical id.

RULES:
  1. Empty input is absent, not an error.
  2. An integer literal passes through unchanged: ids are opaque numeric
     strings and no existence check happens at this layer.
  3. For subsidiaries, a trailing " (Consolidated)" (case-insensitive) is
     stripped before lookup: the consolidated view shares identity with its
     base entity, so resolution must ignore the decoration.
  4. Name/FullName comparison is case-insensitive; the first match in fetch
     order wins (fetch order is ascending FullName per the backing query).

SEE ALSO:
  - netsuite/service.go: Builds Entry lists from the cached snapshots
*/
package dimension

import (
	"strconv"
	"strings"
)

// =============================================================================
// ENTRY - Minimal resolvable shape
// =============================================================================

// Entry is the name/id projection of any dimension item.
type Entry struct {
	ID       string
	Name     string
	FullName string
}

// =============================================================================
// RESOLUTION
// =============================================================================

// IsNumericID reports whether input is an integer literal.
func IsNumericID(input string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(input))
	return err == nil
}

// ResolveEntry resolves a free-form name or numeric id against entries in
// fetch order. The boolean is false when nothing matches; that is an absent
// result, not an error.
func ResolveEntry(entries []Entry, typ Type, input string) (string, bool) {
	lookup := strings.TrimSpace(input)
	if lookup == "" {
		return "", false
	}

	if IsNumericID(lookup) {
		return lookup, true
	}

	if typ == TypeSubsidiary {
		lookup = StripConsolidatedSuffix(lookup)
	}

	for _, e := range entries {
		if strings.EqualFold(e.Name, lookup) || (e.FullName != "" && strings.EqualFold(e.FullName, lookup)) {
			return e.ID, true
		}
	}
	return "", false
}

// StripConsolidatedSuffix removes a trailing " (Consolidated)" decoration,
// case-insensitively, and re-trims. Non-decorated input passes through.
func StripConsolidatedSuffix(s string) string {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < len(ConsolidatedSuffix) {
		return trimmed
	}
	tail := trimmed[len(trimmed)-len(ConsolidatedSuffix):]
	if strings.EqualFold(tail, ConsolidatedSuffix) {
		return strings.TrimSpace(trimmed[:len(trimmed)-len(ConsolidatedSuffix)])
	}
	return trimmed
}
