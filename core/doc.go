// Package core defines the timing graph: the arena-backed Vertex/Edge
// storage that the loader builds once and the three timing passes read
// for the lifetime of a single STA invocation.
//
// The Graph G = (V,E) is a directed, logically immutable arena:
//
//   - Vertices and edges are append-only slices, referenced by integer id.
//   - A vertex carries its signal Role, its GateTag, and the GateTag's
//     propagation Delay in nanoseconds; AT/RT/Slack are populated in place
//     by the timing package on each STA invocation and are the only
//     mutable fields.
//   - Insertion order is the single source of truth for every tie-break
//     across the loader, the topological orderer, and the timing passes.
//
// There is no locking here: a Graph is built once by the loader and then
// read by a single-threaded, deterministic analysis pipeline, so plain
// slices and a name→id index are enough — no concurrent writers ever
// exist for a mutex to guard against.
package core
