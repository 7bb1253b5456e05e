package timing

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Sentinel errors for the timing package. Only the K-path extractor
// produces ErrNoEndpoints or a NoPathToEndpoint diagnostic.
var (
	// ErrNilGraph indicates a nil *core.Graph was passed to a timing pass.
	ErrNilGraph = errors.New("timing: graph is nil")

	// ErrNoEndpoints indicates the graph has no endpoints to report slack
	// for or extract critical paths to.
	ErrNoEndpoints = errors.New("timing: graph has no endpoints")
)

// DiagnosticKind classifies a non-fatal condition collected during
// analysis. Warnings are enumerated after the metrics block in any
// rendered report.
type DiagnosticKind int

const (
	// DiagNoPathToEndpoint marks an endpoint that became unreachable
	// mid-extraction.
	DiagNoPathToEndpoint DiagnosticKind = iota
)

// Diagnostic is one non-fatal warning surfaced alongside a successful
// result.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
}

func (d Diagnostic) String() string {
	return d.Message
}

// Diagnostics is an ordered collection of warnings, rendered one per line.
type Diagnostics []Diagnostic

// Strings renders every diagnostic message, in emission order.
func (ds Diagnostics) Strings() []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}

	return out
}

// Config is the scalar configuration shared by all three passes.
type Config struct {
	// Tclk is the clock period in nanoseconds.
	Tclk float64

	// Setup is the setup time in nanoseconds.
	Setup float64

	// ClockToQ is the clock-to-Q delay penalty applied to flip-flop
	// Q-side startpoints in nanoseconds.
	ClockToQ float64

	// K is the number of worst edge-disjoint critical paths to extract.
	K int

	// NegativeOnly, when true, stops K-path extraction after the first
	// path once no remaining endpoint has negative slack; the default,
	// false, returns all K paths regardless of sign.
	NegativeOnly bool

	// NoClock marks a design that omits a clock entirely: every endpoint's
	// required time defaults to its own arrival time (zero slack at
	// outputs) instead of Tclk - Setup. The default, false, applies the
	// normal clocked boundary condition.
	NoClock bool
}

// Option configures a Config, following the functional-options pattern.
type Option func(*Config)

// DefaultConfig returns a Config with the given clock parameters and K=1,
// NegativeOnly=false, NoClock=false, applying any With* options on top.
func DefaultConfig(tclk, setup, clockToQ float64, opts ...Option) Config {
	cfg := Config{
		Tclk:     tclk,
		Setup:    setup,
		ClockToQ: clockToQ,
		K:        1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithK sets the number of worst critical paths to extract. K <= 0 panics:
// a caller asking for zero or negative paths has made a programming error,
// not a runtime condition.
func WithK(k int) Option {
	if k <= 0 {
		panic("timing: WithK requires k > 0")
	}
	return func(c *Config) { c.K = k }
}

// WithNegativeOnly toggles NegativeOnly.
func WithNegativeOnly(negativeOnly bool) Option {
	return func(c *Config) { c.NegativeOnly = negativeOnly }
}

// WithNoClock toggles NoClock, the omitted-clock boundary condition.
func WithNoClock(noClock bool) Option {
	return func(c *Config) { c.NoClock = noClock }
}

// Scale returns a copy of c with Tclk, Setup, and ClockToQ each multiplied
// by factor. Scaling every delay by a positive constant c scales every AT,
// RT, and (Tclk-adjusted) slack by c; pair with core.DelayTable.Scale.
func (c Config) Scale(factor float64) Config {
	c.Tclk *= factor
	c.Setup *= factor
	c.ClockToQ *= factor

	return c
}

// Result holds the per-vertex AT/RT/Slack arrays (indexed by vertex id)
// and the derived WNS/TNS metrics produced by Run.
type Result struct {
	AT    []float64
	RT    []float64
	Slack []float64
	WNS   float64
	TNS   float64
}

// String renders a human-readable metrics block: WNS, TNS, and the
// per-endpoint slack, naming endpoints by their canonical signal name.
func (r Result) String(endpointNames []string, endpointIDs []int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "WNS: %.6f ns\n", r.WNS)
	fmt.Fprintf(&b, "TNS: %.6f ns\n", r.TNS)
	for i, id := range endpointIDs {
		fmt.Fprintf(&b, "  %s: slack=%.6f AT=%.6f RT=%.6f\n",
			endpointNames[i], r.Slack[id], r.AT[id], r.RT[id])
	}

	return b.String()
}

// PathReport describes one extracted critical path, source to sink, with
// enough detail for a caller to render it.
type PathReport struct {
	// Vertices lists the path's vertex names, startpoint first.
	Vertices []string

	// Edges lists the path's (from,to) name pairs, in traversal order.
	Edges [][2]string

	// PerVertexDelay lists each vertex's contribution to TotalDelay, in
	// the same order as Vertices.
	PerVertexDelay []float64

	// TotalDelay is the sum of PerVertexDelay along this path. It does not
	// include a flip-flop startpoint's clock-to-Q arrival offset.
	TotalDelay float64

	// EndpointSlack is the sink endpoint's slack at extraction time.
	EndpointSlack float64
}

// infinity is the RT boundary value for a vertex with no successors that
// is not a declared endpoint.
const infinity = math.MaxFloat64
