// File: backward.go
// Role: the backward required-time pass.
package timing

import "github.com/vlsicore/sta/core"

// BackwardPass propagates required times in reverse order (reverseOrder
// must be topo.Reverse of the same order ForwardPass consumed). It
// mutates g's RT field in place and
// returns the RT array indexed by vertex id.
//
// Boundary condition: RT(e) = Tclk - setup for every endpoint e (primary
// output or flip-flop D-side). When cfg.NoClock is set, the design omits
// a clock entirely and RT(e) defaults to AT(e) instead, giving every
// endpoint zero slack. A non-endpoint vertex with no successors receives
// RT(v) = +infinity (excluded from slack reporting).
//
// Complexity: O(V + E).
func BackwardPass(g *core.Graph, reverseOrder []int, cfg Config) []float64 {
	rt := make([]float64, g.NumVertices())

	for _, v := range reverseOrder {
		vx := g.VertexPtr(v)

		if vx.Role.IsEndpoint() {
			if cfg.NoClock {
				rt[v] = vx.AT
			} else {
				rt[v] = cfg.Tclk - cfg.Setup
			}
			vx.RT = rt[v]
			continue
		}

		succs := g.OutEdges(v)
		if len(succs) == 0 {
			rt[v] = infinity
			vx.RT = rt[v]
			continue
		}

		best := rt[g.Edge(succs[0]).To] - g.VertexPtr(g.Edge(succs[0]).To).Delay
		for _, eid := range succs[1:] {
			to := g.Edge(eid).To
			cand := rt[to] - g.VertexPtr(to).Delay
			if cand < best {
				best = cand
			}
		}

		rt[v] = best
		vx.RT = rt[v]
	}

	return rt
}
