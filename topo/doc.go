// Package topo implements Kahn's algorithm over a core.Graph: a
// deterministic topological order for the forward pass, its reverse for
// the backward pass, and a step-wise "wave" decomposition for the
// visualization collaborator.
//
// Determinism is by construction: ties among simultaneously-zero-in-degree
// vertices are broken by vertex id, which is assigned in the order the
// loader interned each vertex. This ordering is the single source of
// truth shared by all three timing passes and the path extractor.
//
// The in-degree-zero queue and predecessor-decrement loop follow the
// classic Kahn's-algorithm shape; the step-wise wave grouping applies a
// BFS-style frontier-by-frontier expansion to Kahn's queue instead of a
// traversal frontier.
package topo
