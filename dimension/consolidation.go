/*
consolidation.go - Currency-to-consolidation-root policy

PURPOSE:
  Given a reporting currency and a filtered subsidiary, pick the unique
  subsidiary that is simultaneously:
    (a) denominated in that currency (case-insensitive),
    (b) an ancestor of the filtered subsidiary,
    (c) not an elimination entity,
  and, among qualifying candidates, closest to the filtered subsidiary
  (minimum Depth delta, i.e. the nearest valid ancestor). The nearest root
  yields the smallest consolidation scope consistent with the requested
  currency.

ELIMINATION CAVEAT:
  IsElimination defaults to false for every subsidiary because the upstream
  field is unreliable, which degrades check (c) to a no-op in practice. The
  field and the check are kept so a reliable elimination signal can be wired
  in through the mapper without touching this policy. This is a known
  configuration gap, not an intentional relaxation.

SEE ALSO:
  - walker.go: Ancestor chains this policy filters
  - netsuite/service.go: Cache-backed caller
*/
package dimension

import "strings"

// =============================================================================
// ROOT RESOLUTION
// =============================================================================

// ConsolidationRoot selects the consolidation root for currency above
// filteredID. The boolean is false when no ancestor qualifies; callers log
// that case for diagnosis since it is an expected misconfiguration, not an
// error.
func ConsolidationRoot(subs []SubsidiaryItem, currency string, filteredID string) (string, bool) {
	byID := indexByID(subs)

	var (
		best      SubsidiaryItem
		bestFound bool
	)
	for _, ancestorID := range Ancestors(subs, filteredID) {
		candidate, ok := byID[ancestorID]
		if !ok {
			continue
		}
		if candidate.IsElimination {
			continue
		}
		if !strings.EqualFold(candidate.Currency, currency) {
			continue
		}
		// Nearest valid ancestor wins: the ancestor chain walks upward, so
		// depth strictly decreases and the largest depth is the closest.
		if !bestFound || candidate.Depth > best.Depth {
			best = candidate
			bestFound = true
		}
	}
	if !bestFound {
		return "", false
	}
	return best.ID, true
}

// =============================================================================
// VALID CURRENCIES
// =============================================================================

// ValidCurrencies returns the distinct, non-elimination currency codes among
// the ancestors of subsidiaryID, in walk order.
func ValidCurrencies(subs []SubsidiaryItem, subsidiaryID string) []string {
	byID := indexByID(subs)

	codes := []string{}
	seen := map[string]bool{}
	for _, ancestorID := range Ancestors(subs, subsidiaryID) {
		a, ok := byID[ancestorID]
		if !ok || a.IsElimination || a.Currency == "" {
			continue
		}
		key := strings.ToUpper(a.Currency)
		if seen[key] {
			continue
		}
		seen[key] = true
		codes = append(codes, a.Currency)
	}
	return codes
}

// AllValidCurrencies returns every currency that is a valid consolidation
// root currency for at least one subsidiary in the snapshot: for each
// candidate, some member of {candidate} ∪ ancestors(candidate) shares its
// currency and is non-elimination. Runs on an already-fetched snapshot, so
// the quadratic membership test stays off the request path.
func AllValidCurrencies(subs []SubsidiaryItem) []string {
	byID := indexByID(subs)

	codes := []string{}
	seen := map[string]bool{}
	mark := func(code string) {
		if code == "" {
			return
		}
		key := strings.ToUpper(code)
		if !seen[key] {
			seen[key] = true
			codes = append(codes, code)
		}
	}

	for _, s := range subs {
		if s.IsConsolidated() {
			continue
		}
		if !s.IsElimination {
			mark(s.Currency)
		}
		for _, ancestorID := range Ancestors(subs, s.ID) {
			a, ok := byID[ancestorID]
			if !ok || a.IsElimination {
				continue
			}
			if strings.EqualFold(a.Currency, s.Currency) {
				mark(a.Currency)
			}
		}
	}
	return codes
}
