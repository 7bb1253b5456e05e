// Package timing implements the forward arrival-time pass, the backward
// required-time pass, slack/WNS/TNS derivation, and the K-worst
// edge-disjoint critical-path extractor.
//
// All three passes are deterministic functions of a core.Graph's structure
// plus a small scalar Config (Tclk, setup, clock_to_q, K), executed
// single-threaded. They write only the AT/RT/Slack/CriticalPred fields of
// the graph's vertices; vertices and edges are never added or removed.
//
// Config follows the functional-options shape: a DefaultConfig
// constructor plus With* setters.
package timing
