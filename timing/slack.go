// File: slack.go
// Role: per-vertex slack and the derived WNS/TNS metrics.
package timing

import (
	"github.com/vlsicore/sta/core"
	"github.com/vlsicore/sta/topo"
)

// Slack computes slack(v) = RT(v) - AT(v) for every vertex, and derives
// WNS (minimum endpoint slack) and TNS (sum of negative endpoint slacks).
// It mutates g's Slack field in place.
//
// Complexity: O(V).
func Slack(g *core.Graph, at, rt []float64) (slack []float64, wns, tns float64) {
	slack = make([]float64, g.NumVertices())
	for v := 0; v < g.NumVertices(); v++ {
		slack[v] = rt[v] - at[v]
		g.VertexPtr(v).Slack = slack[v]
	}

	wns = infinity
	for _, e := range g.Endpoints {
		if slack[e] < wns {
			wns = slack[e]
		}
		if slack[e] < 0 {
			tns += slack[e]
		}
	}
	if len(g.Endpoints) == 0 {
		wns = 0
	}

	return slack, wns, tns
}

// Run executes the full three-pass pipeline (forward, backward, slack)
// over g using order (a topological order from topo.Order) and returns
// the aggregated Result. Run does not itself compute order.
// FindKCriticalPaths takes no order of its own: it reads the per-vertex
// fields that Run writes into g.
//
// Complexity: O(V + E).
func Run(g *core.Graph, order []int, cfg Config) (Result, error) {
	if g == nil {
		return Result{}, ErrNilGraph
	}

	at := ForwardPass(g, order, cfg)
	rt := BackwardPass(g, topo.Reverse(order), cfg)
	slack, wns, tns := Slack(g, at, rt)

	return Result{AT: at, RT: rt, Slack: slack, WNS: wns, TNS: tns}, nil
}
