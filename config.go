// File: config.go
// Role: the root-level scalar configuration surface, using the
//       functional-options pattern: a DefaultConfig constructor, With*
//       setters, and constructor-time panic only for option misuse.
package sta

import (
	"github.com/vlsicore/sta/core"
	"github.com/vlsicore/sta/timing"
)

// Config is the scalar configuration shared by build_graph/run_sta/
// find_k_critical_paths.
type Config struct {
	// Tclk is the clock period in nanoseconds.
	Tclk float64

	// Setup is the setup time in nanoseconds.
	Setup float64

	// ClockToQ is the clock-to-Q delay penalty applied to flip-flop Q-side
	// startpoints in nanoseconds.
	ClockToQ float64

	// K is the number of worst edge-disjoint critical paths to extract.
	K int

	// NegativeOnly, when true, stops K-path extraction after the first path
	// once no remaining endpoint has negative slack.
	NegativeOnly bool

	// NoClock marks a design that omits a clock entirely: every endpoint's
	// required time defaults to its own arrival time (zero slack at
	// outputs) instead of Tclk - Setup.
	NoClock bool

	// Delays overrides the default gate-delay table; callers may override
	// individual entries but not add new tags.
	Delays core.DelayTable
}

// Option configures a Config.
type Option func(*Config)

// DefaultConfig returns a Config with the given clock parameters, K=1,
// NegativeOnly=false, and the default delay table, applying any With*
// options on top.
func DefaultConfig(tclk, setup, clockToQ float64, opts ...Option) Config {
	cfg := Config{
		Tclk:     tclk,
		Setup:    setup,
		ClockToQ: clockToQ,
		K:        1,
		Delays:   core.DefaultDelayTable(),
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
		panic("sta: WithK requires k > 0")
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

// WithDelayTable overrides the gate-delay table that BuildGraph uses when
// lowering assignments/instances. The timing passes read each vertex's
// Delay as recorded at load time, so the table passed to RunSTA has no
// effect on a graph that is already built.
func WithDelayTable(d core.DelayTable) Option {
	if d == nil {
		panic("sta: WithDelayTable requires a non-nil table")
	}
	return func(c *Config) { c.Delays = d }
}

// Scale returns a copy of cfg with Tclk, Setup, ClockToQ, and every entry
// of Delays multiplied by factor. Scaling every delay by a positive
// constant c scales every AT, RT, and slack by c.
func (cfg Config) Scale(factor float64) Config {
	cfg.Tclk *= factor
	cfg.Setup *= factor
	cfg.ClockToQ *= factor
	cfg.Delays = cfg.Delays.Scale(factor)

	return cfg
}

// timingConfig projects cfg onto the timing package's Config shape.
func (cfg Config) timingConfig() timing.Config {
	return timing.Config{
		Tclk:         cfg.Tclk,
		Setup:        cfg.Setup,
		ClockToQ:     cfg.ClockToQ,
		K:            cfg.K,
		NegativeOnly: cfg.NegativeOnly,
		NoClock:      cfg.NoClock,
	}
}
