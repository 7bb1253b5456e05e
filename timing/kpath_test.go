package timing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsicore/sta/core"
	"github.com/vlsicore/sta/timing"
	"github.com/vlsicore/sta/topo"
)

// buildDiamond constructs a -> {p,q} -> y, a fan-out diamond.
func buildDiamond(t *testing.T) (*core.Graph, map[string]int) {
	t.Helper()
	g := core.NewGraph()
	delays := core.DefaultDelayTable()
	ids := map[string]int{}

	newV := func(name string, role core.Role, tag core.GateTag) int {
		d, _ := delays.Lookup(tag)
		id, err := g.InternVertex(name, role, tag, d)
		require.NoError(t, err)
		ids[name] = id
		return id
	}

	a := newV("a", core.RolePrimaryInput, core.TagPRIMARY)
	p := newV("p", core.RoleInternal, core.TagNOT)
	q := newV("q", core.RoleInternal, core.TagNOT)
	y := newV("y", core.RolePrimaryOutput, core.TagAND)

	_, err := g.AddEdge(a, p)
	require.NoError(t, err)
	_, err = g.AddEdge(a, q)
	require.NoError(t, err)
	_, err = g.AddEdge(p, y)
	require.NoError(t, err)
	_, err = g.AddEdge(q, y)
	require.NoError(t, err)

	return g, ids
}

func TestFindKCriticalPaths_DiamondTwoEdgeDisjointPaths(t *testing.T) {
	g, _ := buildDiamond(t)
	cfg := timing.DefaultConfig(2.0, 0.05, 0.08, timing.WithK(2))

	order, err := topo.Order(g)
	require.NoError(t, err)
	result, err := timing.Run(g, order, cfg)
	require.NoError(t, err)

	reports, diags, err := timing.FindKCriticalPaths(g, result, cfg)
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, reports, 2)

	seen := map[[2]string]bool{}
	for _, r := range reports {
		for _, e := range r.Edges {
			require.False(t, seen[e])
			seen[e] = true
		}
	}
}

func TestFindKCriticalPaths_KExceedsAvailablePaths(t *testing.T) {
	g, _ := buildDiamond(t)
	cfg := timing.DefaultConfig(2.0, 0.05, 0.08, timing.WithK(10))

	order, err := topo.Order(g)
	require.NoError(t, err)
	result, err := timing.Run(g, order, cfg)
	require.NoError(t, err)

	reports, diags, err := timing.FindKCriticalPaths(g, result, cfg)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	require.NotEmpty(t, diags)
}

func TestFindKCriticalPaths_NoEndpoints(t *testing.T) {
	g := core.NewGraph()
	_, err := g.InternVertex("a", core.RolePrimaryInput, core.TagPRIMARY, 0)
	require.NoError(t, err)

	cfg := timing.DefaultConfig(2.0, 0.05, 0.08)
	_, _, err = timing.FindKCriticalPaths(g, timing.Result{}, cfg)
	require.ErrorIs(t, err, timing.ErrNoEndpoints)
}

func TestFindKCriticalPaths_PathsOrderedByWorstSlackFirst(t *testing.T) {
	g := core.NewGraph()
	delays := core.DefaultDelayTable()
	notDelay, _ := delays.Lookup(core.TagNOT)

	a, _ := g.InternVertex("a", core.RolePrimaryInput, core.TagPRIMARY, 0)
	e1, _ := g.InternVertex("e1", core.RolePrimaryOutput, core.TagNOT, notDelay)
	e2, _ := g.InternVertex("e2", core.RolePrimaryOutput, core.TagNOT, notDelay*3)
	_, err := g.AddEdge(a, e1)
	require.NoError(t, err)
	_, err = g.AddEdge(a, e2)
	require.NoError(t, err)

	cfg := timing.DefaultConfig(2.0, 0.05, 0.08, timing.WithK(2))
	order, err := topo.Order(g)
	require.NoError(t, err)
	result, err := timing.Run(g, order, cfg)
	require.NoError(t, err)

	reports, _, err := timing.FindKCriticalPaths(g, result, cfg)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	require.LessOrEqual(t, reports[0].EndpointSlack, reports[1].EndpointSlack)
}
