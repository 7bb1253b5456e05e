// File: facade.go
// Role: the public STA invocation surface exposed to the non-core CLI and
//       visualization collaborators: build_graph, run_sta, and
//       find_k_critical_paths, plus the startpoint/endpoint name helpers
//       those collaborators need to render a report.
package sta

import (
	"github.com/vlsicore/sta/core"
	"github.com/vlsicore/sta/loader"
	"github.com/vlsicore/sta/timing"
	"github.com/vlsicore/sta/topo"
)

// BuildGraph reads the netlist file at path and returns the timing graph,
// its startpoint and endpoint vertex ids, and any non-fatal loader
// warnings.
func BuildGraph(path string, cfg Config) (*core.Graph, []int, []int, loader.Diagnostics, error) {
	g, diags, err := loader.BuildGraph(path, loader.WithDelayTable(cfg.Delays))
	if err != nil {
		return nil, nil, nil, diags, err
	}

	return g, g.Startpoints, g.Endpoints, diags, nil
}

// RunSTA computes arrival times, required times, and slack over g, plus
// the derived WNS/TNS metrics, and also returns the topological order it
// used. FindKCriticalPaths takes no order: it reads the AT/RT/Slack and
// CriticalPred fields that RunSTA writes into g.
func RunSTA(g *core.Graph, cfg Config) (timing.Result, []int, error) {
	order, err := topo.Order(g)
	if err != nil {
		return timing.Result{}, nil, err
	}

	result, err := timing.Run(g, order, cfg.timingConfig())
	return result, order, err
}

// FindKCriticalPaths extracts up to cfg.K worst edge-disjoint critical
// paths from a graph already analyzed by RunSTA with the same cfg.
func FindKCriticalPaths(g *core.Graph, result timing.Result, cfg Config) ([]timing.PathReport, timing.Diagnostics, error) {
	return timing.FindKCriticalPaths(g, result, cfg.timingConfig())
}

// EndpointNames returns g.Endpoints' canonical signal names, in the same
// order, for use with timing.Result.String.
func EndpointNames(g *core.Graph) []string {
	names := make([]string, len(g.Endpoints))
	for i, id := range g.Endpoints {
		names[i] = g.Vertex(id).Name
	}

	return names
}
