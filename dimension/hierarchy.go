/*
hierarchy.go - Subsidiary tree construction from flat parent-pointer rows

PURPOSE:
  The backend models the subsidiary tree via unvalidated back-references:
  each row carries a parent id that may dangle or self-reference. This file
  turns that arena into usable structure:
    1. an id -> node lookup (primary records only, first occurrence wins)
    2. a per-node Depth (distance to root)
    3. a consolidated-view expansion (one synthesized twin per parent)

DEPTH:
  Depth(root) = 0; Depth(n) = Depth(parent(n)) + 1. A dangling parent
  reference terminates the walk, so its child counts as a root. Depths are
  computed before synthesis so consolidated twins can never interfere.

SEE ALSO:
  - types.go: NodeKind tag
  - walker.go: Ancestor/descendant traversal over the built snapshot
*/
package dimension

// =============================================================================
// LOOKUP MAPS - Derived from the arena on each call
// =============================================================================

// indexByID maps id -> primary node. Consolidated twins share their source's
// id and must not shadow it; first occurrence wins.
func indexByID(subs []SubsidiaryItem) map[string]SubsidiaryItem {
	byID := make(map[string]SubsidiaryItem, len(subs))
	for _, s := range subs {
		if s.IsConsolidated() {
			continue
		}
		if _, ok := byID[s.ID]; !ok {
			byID[s.ID] = s
		}
	}
	return byID
}

// indexChildren maps parent id -> child ids over true edges only:
// consolidated twins never participate in hierarchy edges.
func indexChildren(subs []SubsidiaryItem) map[string][]string {
	children := make(map[string][]string)
	seen := make(map[string]bool, len(subs))
	for _, s := range subs {
		if s.IsConsolidated() || seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		if s.ParentID != "" && s.ParentID != s.ID {
			children[s.ParentID] = append(children[s.ParentID], s.ID)
		}
	}
	return children
}

// =============================================================================
// HIERARCHY BUILD
// =============================================================================

// BuildHierarchy computes Depth for every row and appends one consolidated
// view per subsidiary that is referenced as a parent. The input order is
// preserved; synthesized twins follow the original rows. The input slice is
// not mutated.
func BuildHierarchy(subs []SubsidiaryItem) []SubsidiaryItem {
	byID := indexByID(subs)

	out := make([]SubsidiaryItem, 0, len(subs))
	for _, s := range subs {
		s.Kind = KindPrimary
		s.Depth = depthOf(byID, s)
		out = append(out, s)
	}

	// Every id referenced as someone's parent gets a roll-up view.
	hasChildren := make(map[string]bool)
	for _, s := range out {
		if s.ParentID != "" && s.ParentID != s.ID {
			if _, ok := byID[s.ParentID]; ok {
				hasChildren[s.ParentID] = true
			}
		}
	}

	synthesized := make(map[string]bool)
	for _, s := range out {
		if !hasChildren[s.ID] || synthesized[s.ID] {
			continue
		}
		synthesized[s.ID] = true

		view := s
		view.Name = s.Name + ConsolidatedSuffix
		view.Kind = KindConsolidatedView
		out = append(out, view)
	}

	return out
}

// depthOf walks the parent chain counting edges. A dangling parent or a
// repeated id (self-reference, cycle) terminates the walk.
func depthOf(byID map[string]SubsidiaryItem, s SubsidiaryItem) int {
	depth := 0
	seen := map[string]bool{s.ID: true}

	cur := s
	for cur.ParentID != "" {
		parent, ok := byID[cur.ParentID]
		if !ok || seen[parent.ID] {
			break
		}
		seen[parent.ID] = true
		depth++
		cur = parent
	}
	return depth
}
