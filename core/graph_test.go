package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsicore/sta/core"
)

// TestGraph_InternVertex_Idempotent verifies that re-interning the same
// name returns the same id and does not duplicate the vertex.
func TestGraph_InternVertex_Idempotent(t *testing.T) {
	g := core.NewGraph()

	id1, err := g.InternVertex("a", core.RoleInternal, core.TagUNKNOWN, 0)
	require.NoError(t, err)

	id2, err := g.InternVertex("a", core.RoleInternal, core.TagUNKNOWN, 0)
	require.NoError(t, err)

	require.Equal(t, id1, id2)
	require.Equal(t, 1, g.NumVertices())
}

// TestGraph_InternVertex_EmptyName verifies the empty-name sentinel.
func TestGraph_InternVertex_EmptyName(t *testing.T) {
	g := core.NewGraph()

	_, err := g.InternVertex("", core.RoleInternal, core.TagUNKNOWN, 0)
	require.ErrorIs(t, err, core.ErrEmptyName)
}

// TestGraph_InternVertex_RolePromotion verifies that a vertex first seen
// as a plain operand (RoleInternal) is promoted when later declared a
// primary input, and is then listed in Startpoints.
func TestGraph_InternVertex_RolePromotion(t *testing.T) {
	g := core.NewGraph()

	id, err := g.InternVertex("a", core.RoleInternal, core.TagUNKNOWN, 0)
	require.NoError(t, err)
	require.Equal(t, core.RoleInternal, g.Vertex(id).Role)

	err = g.SetRole(id, core.RolePrimaryInput)
	require.NoError(t, err)
	require.Equal(t, core.RolePrimaryInput, g.Vertex(id).Role)
	require.Equal(t, []int{id}, g.Startpoints)
}

// TestGraph_AddEdge_CollapsesMultiEdges verifies that repeated AddEdge
// calls for the same (from,to) pair return the same edge id rather than
// creating a parallel edge.
func TestGraph_AddEdge_CollapsesMultiEdges(t *testing.T) {
	g := core.NewGraph()
	a, _ := g.InternVertex("a", core.RoleInternal, core.TagUNKNOWN, 0)
	b, _ := g.InternVertex("b", core.RoleInternal, core.TagUNKNOWN, 0)

	e1, err := g.AddEdge(a, b)
	require.NoError(t, err)
	e2, err := g.AddEdge(a, b)
	require.NoError(t, err)

	require.Equal(t, e1, e2)
	require.Equal(t, 1, g.NumEdges())
	require.Equal(t, []int{e1}, g.OutEdges(a))
	require.Equal(t, []int{e1}, g.InEdges(b))
}

// TestGraph_AddEdge_UnknownVertex verifies the vertex-not-found sentinel.
func TestGraph_AddEdge_UnknownVertex(t *testing.T) {
	g := core.NewGraph()
	a, _ := g.InternVertex("a", core.RoleInternal, core.TagUNKNOWN, 0)

	_, err := g.AddEdge(a, 99)
	require.ErrorIs(t, err, core.ErrVertexNotFound)
}

// TestDelayTable_Override verifies that Override replaces only known tags
// and leaves the rest of the table untouched: callers may override
// individual entries but not add new tags.
func TestDelayTable_Override(t *testing.T) {
	table := core.DefaultDelayTable()

	overridden := table.Override(core.DelayTable{
		core.TagAND:     0.5,
		core.GateTag(99): 1.0, // unknown tag: ignored
	})

	got, ok := overridden.Lookup(core.TagAND)
	require.True(t, ok)
	require.Equal(t, 0.5, got)

	_, knownUnknown := overridden.Lookup(core.GateTag(99))
	require.False(t, knownUnknown)

	// The original table is untouched.
	orig, _ := table.Lookup(core.TagAND)
	require.Equal(t, 0.02, orig)
}

// TestDelayTable_Scale verifies the constant-factor scaling used by the
// AT/RT/slack round-trip property.
func TestDelayTable_Scale(t *testing.T) {
	table := core.DefaultDelayTable()
	scaled := table.Scale(2.0)

	base, _ := table.Lookup(core.TagAND)
	got, _ := scaled.Lookup(core.TagAND)
	require.Equal(t, base*2.0, got)
}
