// Package sta performs Static Timing Analysis on a combinational-plus-
// flip-flop gate-level netlist.
//
// Given a netlist file, it builds a directed timing graph, propagates
// arrival times forward and required times backward in topological order,
// computes per-vertex slack and the derived Worst/Total Negative Slack
// metrics, and enumerates the K worst edge-disjoint critical paths between
// sequential endpoints.
//
// The package is organized as a thin facade over four single-purpose
// packages:
//
//	core/    — the arena-based timing graph: Vertex, Edge, Graph, GateTag, DelayTable
//	loader/  — the netlist-to-graph translator (continuous assignments and
//	           primitive instantiations)
//	topo/    — Kahn's algorithm, with a step-wise "wave" mode
//	timing/  — the forward/backward passes, slack/WNS/TNS, and the
//	           K-worst-path extractor
//
// A minimal invocation:
//
//	cfg := sta.DefaultConfig(2.0, 0.05, 0.08)
//	g, _, _, _, err := sta.BuildGraph("design.v", cfg)
//	result, order, err := sta.RunSTA(g, cfg)
//	paths, _, err := sta.FindKCriticalPaths(g, result, cfg)
//
// The graph is built once and is read-only for the lifetime of every
// analysis call; AT/RT/slack are recomputed on each RunSTA invocation.
package sta
