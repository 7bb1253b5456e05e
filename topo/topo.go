package topo

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vlsicore/sta/core"
)

// ErrCycleInCombinational is the sole cycle-detection error in this
// repository; the topological orderer is the only place a feedback loop
// is surfaced. It is returned wrapped with the witness vertex name that
// could not be emitted.
var ErrCycleInCombinational = errors.New("topo: cycle in combinational logic")

// Order computes a topological ordering of g's vertices consistent with
// edge directions, using Kahn's algorithm. Ties among vertices that become
// available simultaneously are broken by ascending vertex id (insertion
// order), so repeated calls on the same graph return byte-identical
// orders.
//
// Complexity: O(V + E).
func Order(g *core.Graph) ([]int, error) {
	order, _, err := run(g)
	return order, err
}

// Waves computes the same topological order as Order, but grouped into
// "waves": each wave is the full set of vertices whose in-degree was zero
// simultaneously, i.e. one Kahn queue refill. Concatenating the waves in
// order yields exactly Order's result; wave granularity has no bearing
// on timing correctness.
//
// Complexity: O(V + E).
func Waves(g *core.Graph) ([][]int, error) {
	_, waves, err := run(g)
	return waves, err
}

// run performs one shared Kahn pass and reports both the flat order and
// the wave grouping, so the two views can never diverge.
func run(g *core.Graph) ([]int, [][]int, error) {
	n := g.NumVertices()
	indeg := make([]int, n)
	for v := 0; v < n; v++ {
		indeg[v] = g.InDegree(v)
	}

	// Seed the initial frontier with every zero-in-degree vertex, in
	// ascending id order (ascending id == insertion order).
	var frontier []int
	for v := 0; v < n; v++ {
		if indeg[v] == 0 {
			frontier = append(frontier, v)
		}
	}

	order := make([]int, 0, n)
	var waves [][]int

	for len(frontier) > 0 {
		wave := append([]int(nil), frontier...)
		waves = append(waves, wave)
		order = append(order, frontier...)

		var next []int
		for _, u := range frontier {
			for _, eid := range g.OutEdges(u) {
				e := g.Edge(eid)
				indeg[e.To]--
				if indeg[e.To] == 0 {
					next = append(next, e.To)
				}
			}
		}
		sort.Ints(next)
		frontier = next
	}

	if len(order) != n {
		witness := firstUnresolved(g, indeg)
		return nil, nil, fmt.Errorf("%w: witness vertex %q", ErrCycleInCombinational, witness)
	}

	return order, waves, nil
}

// firstUnresolved returns the name of the lowest-id vertex that never
// reached zero in-degree, used as the cycle witness in the error message.
func firstUnresolved(g *core.Graph, indeg []int) string {
	for v, d := range indeg {
		if d > 0 {
			return g.Vertex(v).Name
		}
	}

	return "<unknown>"
}

// Reverse returns a new slice containing order's elements back to front,
// the sequence the backward pass walks.
func Reverse(order []int) []int {
	rev := make([]int, len(order))
	for i, v := range order {
		rev[len(order)-1-i] = v
	}

	return rev
}
