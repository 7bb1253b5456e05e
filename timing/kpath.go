// File: kpath.go
// Role: the K-worst edge-disjoint critical-path extractor.
//
// Extraction repeats an extract-path/mark-edges-unavailable cycle: each
// round walks the current best endpoint back to its source along
// critical-predecessor edges, then removes those edges from
// availability (an edge-availability bitset standing in for residual
// capacity) so the next round is forced onto a disjoint path. Endpoint
// selection uses a container/heap lazy-decrease-key priority queue over
// (endpoint, slack), re-pushing an endpoint after each successful
// extraction since it may still have another disjoint path available.
package timing

import (
	"container/heap"
	"fmt"

	"github.com/vlsicore/sta/core"
)

// epItem is one entry in the endpoint-selection min-heap: an endpoint
// vertex id, its (static, precomputed) slack, and its discovery order for
// deterministic tie-breaking.
type epItem struct {
	vid   int
	slack float64
	order int
}

// epHeap is a min-heap over epItem ordered by ascending slack, ties
// broken by ascending discovery order, for deterministic output.
type epHeap []epItem

func (h epHeap) Len() int { return len(h) }
func (h epHeap) Less(i, j int) bool {
	if h[i].slack != h[j].slack {
		return h[i].slack < h[j].slack
	}
	return h[i].order < h[j].order
}
func (h epHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *epHeap) Push(x interface{}) { *h = append(*h, x.(epItem)) }
func (h *epHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// edgeMask is a mutable bitset over edge ids, tracking which edges remain
// available for future path extraction. Each FindKCriticalPaths call owns
// its own mask; the graph itself is never mutated.
type edgeMask []bool

func newEdgeMask(numEdges int) edgeMask {
	m := make(edgeMask, numEdges)
	for i := range m {
		m[i] = true
	}
	return m
}

// FindKCriticalPaths extracts up to cfg.K edge-disjoint source-to-sink
// paths, ordered by ascending (most negative first) sink slack, from a
// graph already analyzed by Run with the same order/cfg (the AT/RT/Slack
// and CriticalPred fields this function reads must reflect that Run call).
//
// Returns the extracted reports, any non-fatal diagnostics (one
// NoPathToEndpoint per endpoint that became unreachable mid-extraction),
// and ErrNoEndpoints if the graph has no endpoints at all.
//
// Complexity: O(K * V) in the common case.
func FindKCriticalPaths(g *core.Graph, result Result, cfg Config) ([]PathReport, Diagnostics, error) {
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if len(g.Endpoints) == 0 {
		return nil, nil, ErrNoEndpoints
	}

	mask := newEdgeMask(g.NumEdges())

	h := make(epHeap, 0, len(g.Endpoints))
	for i, e := range g.Endpoints {
		h = append(h, epItem{vid: e, slack: result.Slack[e], order: i})
	}
	heap.Init(&h)

	dead := make(map[int]bool, len(g.Endpoints))

	var reports []PathReport
	var diags Diagnostics

	for len(reports) < cfg.K && h.Len() > 0 {
		item := heap.Pop(&h).(epItem)
		if dead[item.vid] {
			continue
		}

		if cfg.NegativeOnly && len(reports) > 0 && item.slack >= 0 {
			break
		}

		report, ok := reconstructPath(g, item.vid, mask)
		if !ok {
			dead[item.vid] = true
			diags = append(diags, Diagnostic{
				Kind:    DiagNoPathToEndpoint,
				Message: fmt.Sprintf("timing: no available path to endpoint %q", g.Vertex(item.vid).Name),
			})
			continue
		}

		reports = append(reports, report)
		markUnavailable(mask, report, g)

		// The endpoint may still be reachable via a different edge-disjoint
		// path in a later round; keep it live by pushing it back.
		heap.Push(&h, item)
	}

	return reports, diags, nil
}

// reconstructPath walks backward from sink via critical-predecessor edges,
// substituting an available max-AT predecessor whenever the recorded
// critical edge has been consumed by an earlier path.
func reconstructPath(g *core.Graph, sink int, mask edgeMask) (PathReport, bool) {
	var vertexChain []int
	var edgeChain []int

	cur := sink
	for {
		vertexChain = append(vertexChain, cur)

		in := g.InEdges(cur)
		if len(in) == 0 {
			// Declared startpoint, or an implicit constant driver with no
			// fan-in: this is the source of the path.
			break
		}

		chosen, ok := choosePredecessor(g, cur, in, mask)
		if !ok {
			return PathReport{}, false
		}

		edgeChain = append(edgeChain, chosen)
		cur = g.Edge(chosen).From
	}

	// vertexChain/edgeChain were built sink-to-source; reverse to source-to-sink.
	reverseInts(vertexChain)
	reverseInts(edgeChain)

	report := PathReport{
		Vertices:       make([]string, len(vertexChain)),
		Edges:          make([][2]string, len(edgeChain)),
		PerVertexDelay: make([]float64, len(vertexChain)),
	}
	for i, v := range vertexChain {
		vx := g.Vertex(v)
		report.Vertices[i] = vx.Name
		report.PerVertexDelay[i] = vx.Delay
		report.TotalDelay += vx.Delay
	}
	for i, eid := range edgeChain {
		e := g.Edge(eid)
		report.Edges[i] = [2]string{g.Vertex(e.From).Name, g.Vertex(e.To).Name}
	}
	report.EndpointSlack = g.Vertex(sink).Slack

	return report, true
}

// choosePredecessor picks the incoming edge to follow at v: the recorded
// critical predecessor if its edge is still available, else the available
// predecessor that maximizes AT.
func choosePredecessor(g *core.Graph, v int, in []int, mask edgeMask) (int, bool) {
	critEdge := g.Vertex(v).CriticalPred
	if critEdge >= 0 && mask[critEdge] {
		return critEdge, true
	}

	best := -1
	var bestAT float64
	for _, eid := range in {
		if !mask[eid] {
			continue
		}
		from := g.Edge(eid).From
		at := g.Vertex(from).AT
		if best == -1 || at > bestAT {
			best = eid
			bestAT = at
		}
	}
	if best == -1 {
		return -1, false
	}

	return best, true
}

// markUnavailable marks every edge used by report as consumed. It
// re-walks the vertex chain's consecutive pairs to find each edge id,
// since PathReport stores names, not ids.
func markUnavailable(mask edgeMask, report PathReport, g *core.Graph) {
	for _, pair := range report.Edges {
		fromID, _ := g.VertexByName(pair[0])
		toID, _ := g.VertexByName(pair[1])
		for _, eid := range g.OutEdges(fromID) {
			e := g.Edge(eid)
			if e.To == toID {
				mask[eid] = false
				break
			}
		}
	}
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
