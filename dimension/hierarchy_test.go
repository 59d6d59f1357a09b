package dimension_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsheet/dimension-engine/dimension"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

func sub(id, name, parent, currency string) dimension.SubsidiaryItem {
	return dimension.SubsidiaryItem{
		DimensionItem: dimension.DimensionItem{
			ID:       id,
			Name:     name,
			FullName: name,
			ParentID: parent,
		},
		Currency: currency,
		Kind:     dimension.KindPrimary,
	}
}

// threeLevelTree: root(1, USD) <- childA(2, EUR) <- childB(3, EUR)
func threeLevelTree() []dimension.SubsidiaryItem {
	return []dimension.SubsidiaryItem{
		sub("1", "Acme Inc", "", "USD"),
		sub("2", "Acme Europe", "1", "EUR"),
		sub("3", "Acme France", "2", "EUR"),
	}
}

func byID(subs []dimension.SubsidiaryItem) map[string][]dimension.SubsidiaryItem {
	m := make(map[string][]dimension.SubsidiaryItem)
	for _, s := range subs {
		m[s.ID] = append(m[s.ID], s)
	}
	return m
}

// =============================================================================
// DEPTH PROPERTIES
// =============================================================================

func TestBuildHierarchy_DepthRecurrence(t *testing.T) {
	// GIVEN: a three-level chain
	// WHEN: building the hierarchy
	// THEN: Depth(root) = 0 and Depth(child) = Depth(parent) + 1 on every edge

	built := dimension.BuildHierarchy(threeLevelTree())

	depths := map[string]int{}
	for _, s := range built {
		if !s.IsConsolidated() {
			depths[s.ID] = s.Depth
		}
	}
	assert.Equal(t, 0, depths["1"])
	assert.Equal(t, 1, depths["2"])
	assert.Equal(t, 2, depths["3"])

	for _, s := range built {
		if s.IsConsolidated() || s.ParentID == "" {
			continue
		}
		assert.Equal(t, depths[s.ParentID]+1, s.Depth,
			"depth recurrence broken at %s", s.ID)
	}
}

func TestBuildHierarchy_DanglingParentIsRoot(t *testing.T) {
	// GIVEN: a subsidiary whose parent id does not exist in the snapshot
	built := dimension.BuildHierarchy([]dimension.SubsidiaryItem{
		sub("5", "Orphan Ltd", "999", "USD"),
	})

	// THEN: the chain terminates rather than erroring and the node is a root
	require.Len(t, built, 1)
	assert.Equal(t, 0, built[0].Depth)
}

func TestBuildHierarchy_SelfReferenceTerminates(t *testing.T) {
	built := dimension.BuildHierarchy([]dimension.SubsidiaryItem{
		sub("7", "Loop Co", "7", "USD"),
	})

	require.NotEmpty(t, built)
	assert.Equal(t, 0, built[0].Depth)
}

// =============================================================================
// CONSOLIDATED-VIEW SYNTHESIS
// =============================================================================

func TestBuildHierarchy_SynthesizesOneViewPerParent(t *testing.T) {
	// GIVEN: root has children, childA has a child, childB is a leaf
	built := dimension.BuildHierarchy(threeLevelTree())
	nodes := byID(built)

	// THEN: every referenced parent has exactly one consolidated twin with
	// the same id, the suffixed name, and the source's depth
	require.Len(t, nodes["1"], 2)
	require.Len(t, nodes["2"], 2)
	require.Len(t, nodes["3"], 1, "leaves get no consolidated view")

	var view dimension.SubsidiaryItem
	found := 0
	for _, n := range nodes["1"] {
		if n.IsConsolidated() {
			view = n
			found++
		}
	}
	require.Equal(t, 1, found)
	assert.Equal(t, "Acme Inc (Consolidated)", view.Name)
	assert.Equal(t, "1", view.ID, "consolidated view shares the source id")
	assert.Equal(t, 0, view.Depth)
}

func TestBuildHierarchy_EmptySnapshot(t *testing.T) {
	built := dimension.BuildHierarchy(nil)
	assert.Empty(t, built)
}

func TestBuildHierarchy_DoesNotMutateInput(t *testing.T) {
	in := threeLevelTree()
	_ = dimension.BuildHierarchy(in)

	assert.Len(t, in, 3)
	assert.Equal(t, "Acme Inc", in[0].Name)
	assert.Equal(t, 0, in[2].Depth, "input rows stay untouched")
}
