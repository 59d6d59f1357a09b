/*
Package dimension contains the organizational reference-data model and the
hierarchy algorithms computed over it.

PURPOSE:
  Everything in this package is pure: functions take an immutable snapshot
  (a flat slice fetched elsewhere) and derive lookup maps, depths, ancestor
  chains, descendant sets, and consolidation roots from it on each call.
  Nothing here talks to the network or the cache; that keeps derived
  structures impossible to hold stale.

KEY CONCEPTS IN THIS FILE (types.go):
  - Type: Which classification axis an item belongs to
  - DimensionItem: Base shape shared by departments, classes, locations
  - SubsidiaryItem: Dimension item with currency, depth, and a NodeKind tag
  - NodeKind: primary record vs synthesized consolidated view

CONSOLIDATED VIEWS:
  A subsidiary that is referenced as a parent gets one synthesized twin
  named "{Name} (Consolidated)". The twin shares the source's Id because
  consolidation is a computation over the same legal entity, not a distinct
  entity. Twins carry KindConsolidatedView so traversal code can collapse
  them away explicitly instead of relying on the name suffix.

SEE ALSO:
  - hierarchy.go: Depth computation and consolidated-view expansion
  - walker.go: Ancestor chains and descendant sets
  - consolidation.go: Currency-to-root policy
*/
package dimension

import "strings"

// =============================================================================
// DIMENSION TYPES
// =============================================================================

// Type identifies a classification axis.
type Type string

const (
	TypeSubsidiary Type = "subsidiary"
	TypeDepartment Type = "department"
	TypeClass      Type = "class"
	TypeLocation   Type = "location"
)

// ParseType normalizes a user-supplied dimension type name.
func ParseType(s string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "subsidiary", "subsidiaries":
		return TypeSubsidiary, true
	case "department", "departments":
		return TypeDepartment, true
	case "class", "classes", "classification":
		return TypeClass, true
	case "location", "locations":
		return TypeLocation, true
	default:
		return "", false
	}
}

// =============================================================================
// NODE KIND - Primary record vs synthesized consolidated view
// =============================================================================

type NodeKind string

const (
	KindPrimary          NodeKind = "primary"
	KindConsolidatedView NodeKind = "consolidated_view"
)

// ConsolidatedSuffix decorates the display name of a consolidated view.
const ConsolidatedSuffix = " (Consolidated)"

// =============================================================================
// ENTITIES - Read-only snapshots of the last successful fetch
// =============================================================================

// DimensionItem is the base shape shared by flat dimensions.
// FullName and ParentID are "" when the backend reports no value.
type DimensionItem struct {
	ID       string
	Name     string
	FullName string
	ParentID string // "" means root
}

// SubsidiaryItem is a dimension item in the subsidiary tree.
// Depth is set by BuildHierarchy and is meaningless until computed.
type SubsidiaryItem struct {
	DimensionItem
	CurrencySymbol string
	Currency       string // currency code, "" if unmapped
	Depth          int
	Kind           NodeKind
	// IsElimination defaults to false: the source system does not reliably
	// expose this flag. See consolidation.go for the policy consequence.
	IsElimination bool
}

// IsConsolidated reports whether this node is a synthesized roll-up view.
func (s SubsidiaryItem) IsConsolidated() bool {
	return s.Kind == KindConsolidatedView
}

// CurrencyItem is one currency record. Name is the currency code.
type CurrencyItem struct {
	ID     string
	Name   string
	Symbol string
}

// AccountingBookItem is one accounting book. Exactly one book is expected
// to be primary per organization; this layer does not enforce that.
type AccountingBookItem struct {
	ID        string
	Name      string
	IsPrimary bool
}

// BudgetCategoryItem is one budget category.
type BudgetCategoryItem struct {
	ID   string
	Name string
}

// AccountItem is one ledger account. ParentNumber references the parent's
// account number, not its id.
type AccountItem struct {
	ID           string
	Number       string
	Name         string
	FullName     string
	Type         string
	SpecialType  string
	ParentNumber string
}
