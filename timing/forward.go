// File: forward.go
// Role: the forward arrival-time pass.
package timing

import "github.com/vlsicore/sta/core"

// ForwardPass propagates arrival times along order (a topological order
// from topo.Order) and records, per vertex, the edge id of its argmax
// predecessor in Vertex.CriticalPred for later path reconstruction. It mutates
// g's AT and CriticalPred
// fields in place and also returns the AT array indexed by vertex id.
//
// Boundary condition: AT(s) = clock_to_q for a flip-flop Q-side
// startpoint, AT(s) = 0 for a primary-input startpoint. A non-startpoint
// vertex with no predecessors is treated as an implicit constant driver:
// AT(v) = delay(v).
//
// Complexity: O(V + E).
func ForwardPass(g *core.Graph, order []int, cfg Config) []float64 {
	at := make([]float64, g.NumVertices())

	for _, v := range order {
		vx := g.VertexPtr(v)

		if vx.Role.IsStartpoint() {
			if vx.Role == core.RoleFlipFlopQ {
				at[v] = cfg.ClockToQ
			} else {
				at[v] = 0
			}
			vx.AT = at[v]
			vx.CriticalPred = -1
			continue
		}

		preds := g.InEdges(v)
		if len(preds) == 0 {
			at[v] = vx.Delay
			vx.AT = at[v]
			vx.CriticalPred = -1
			continue
		}

		best := preds[0]
		bestAT := at[g.Edge(best).From]
		for _, eid := range preds[1:] {
			cand := at[g.Edge(eid).From]
			if cand > bestAT {
				bestAT = cand
				best = eid
			}
		}

		at[v] = vx.Delay + bestAT
		vx.AT = at[v]
		vx.CriticalPred = best
	}

	return at
}
