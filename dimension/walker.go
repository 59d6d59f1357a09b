/*
walker.go - Ancestor chains and descendant sets over a snapshot

PURPOSE:
  Ancestors(id): the parent chain, nearest-first, never including id itself.
  Descendants(id): breadth-first enumeration including id itself.

MALFORMED HIERARCHIES:
  Dangling parent references terminate the ancestor walk; a repeated id
  (self-reference or cycle in upstream data) does too. The descendant walk
  guards with a visited set. Both operations are total: they always
  terminate and never error on malformed upstream data.

SEE ALSO:
  - hierarchy.go: Lookup-map construction these walks run on
  - consolidation.go: Consumer of ancestor chains
*/
package dimension

// =============================================================================
// ANCESTORS
// =============================================================================

// Ancestors returns the ancestor ids of id, immediate parent first, root
// last. Consolidated twins collapse into their primary record before the
// walk. An unknown id yields an empty chain.
func Ancestors(subs []SubsidiaryItem, id string) []string {
	byID := indexByID(subs)

	ancestors := []string{}
	seen := map[string]bool{id: true}

	cur, ok := byID[id]
	if !ok {
		return ancestors
	}
	for cur.ParentID != "" {
		parent, found := byID[cur.ParentID]
		if !found || seen[parent.ID] {
			break
		}
		seen[parent.ID] = true
		ancestors = append(ancestors, parent.ID)
		cur = parent
	}
	return ancestors
}

// =============================================================================
// DESCENDANTS
// =============================================================================

// Descendants returns id plus every subsidiary below it, in breadth-first
// order. Each node appears exactly once; traversal follows true edges only.
func Descendants(subs []SubsidiaryItem, id string) []string {
	children := indexChildren(subs)

	visited := map[string]bool{id: true}
	order := []string{id}

	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, child := range children[cur] {
			if visited[child] {
				continue
			}
			visited[child] = true
			order = append(order, child)
			queue = append(queue, child)
		}
	}
	return order
}
