// File: loader.go
// Role: BuildGraph(path) — the loader's public entry point. Reads a
//       netlist file, classifies each statement, and lowers it into a
//       core.Graph, collecting non-fatal Diagnostics alongside it.
package loader

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/vlsicore/sta/core"
)

// Option configures a BuildGraph call.
type Option func(*config)

type config struct {
	delays core.DelayTable
}

// WithDelayTable overrides the gate-delay table used while lowering
// assignments and instantiations.
func WithDelayTable(d core.DelayTable) Option {
	return func(c *config) { c.delays = d }
}

func defaultConfig() config {
	return config{delays: core.DefaultDelayTable()}
}

// loaderState carries the mutable bookkeeping threaded through a single
// BuildGraph call: the graph under construction, the delay table, the set
// of vertices authoritatively defined so far, collected warnings, and the
// synthetic-name counter scoped to whichever assignment is currently being
// lowered.
type loaderState struct {
	g           *core.Graph
	delays      core.DelayTable
	declared    map[int]bool
	diagnostics Diagnostics
	tmpCounter  int
	currentBase string
	moduleName  string
}

// BuildGraph reads the netlist file at path and returns the timing graph it
// describes, along with any non-fatal warnings collected while loading.
//
// Fatal errors (wrapping ErrMalformedNetlist or ErrUndefinedSignal) abort
// the load; combinational-cycle detection is not performed here — it is
// the topological orderer's responsibility.
func BuildGraph(path string, opts ...Option) (*core.Graph, Diagnostics, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loader: reading %q: %w", path, err)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ld := &loaderState{
		g:        core.NewGraph(),
		delays:   cfg.delays,
		declared: make(map[int]bool),
	}

	for _, stmt := range splitStatements(string(src)) {
		if err := ld.handleStatement(stmt); err != nil {
			return nil, ld.diagnostics, err
		}
	}

	if err := ld.checkUndefined(); err != nil {
		return nil, ld.diagnostics, err
	}

	return ld.g, ld.diagnostics, nil
}

func (ld *loaderState) handleStatement(stmt statement) error {
	switch stmt.keyword {
	case "module":
		ld.moduleName = firstField(stmt.body)
		return nil
	case "input":
		return ld.handlePortDecl(stmt.body, core.RolePrimaryInput)
	case "output":
		return ld.handlePortDecl(stmt.body, core.RolePrimaryOutput)
	case "wire":
		// Wire declarations are a no-op: vertices intern lazily on first
		// real reference, so a wire never referenced by any expression or
			// instance is simply never created.
		return nil
	case "assign":
		return ld.handleAssign(stmt.body)
	default:
		return ld.handleInstance(stmt.raw)
	}
}

// handlePortDecl interns every identifier in a comma-separated input/output
// declaration under role, tagged PRIMARY until an assign or instance (for
// an output) overrides it.
func (ld *loaderState) handlePortDecl(body string, role core.Role) error {
	for _, name := range splitIdentList(body) {
		name = normalizeIdent(name)
		if name == "" {
			continue
		}
		delay, _ := ld.delays.Lookup(core.TagPRIMARY)
		id, err := ld.g.InternVertex(name, role, core.TagPRIMARY, delay)
		if err != nil {
			return fmt.Errorf("%w: port %q: %v", ErrMalformedNetlist, name, err)
		}
		if err := ld.g.SetRole(id, role); err != nil {
			return err
		}
		ld.declared[id] = true
	}

	return nil
}

// handleAssign parses "lhs = rhs" out of an assign statement's body and
// lowers rhs into the vertex lhs.
func (ld *loaderState) handleAssign(body string) error {
	eq := strings.Index(body, "=")
	if eq < 0 {
		return fmt.Errorf("%w: assign statement missing '=': %q", ErrMalformedNetlist, body)
	}

	lhs := normalizeIdent(strings.TrimSpace(body[:eq]))
	rhs := strings.TrimSpace(body[eq+1:])
	if lhs == "" {
		return fmt.Errorf("%w: assign statement missing left-hand side: %q", ErrMalformedNetlist, body)
	}

	root, err := parseExpression(rhs)
	if err != nil {
		return err
	}
	root = normalize(root)

	ld.currentBase = lhs
	ld.tmpCounter = 0
	_, err = ld.lowerExpr(lhs, root)

	return err
}

// checkUndefined raises UndefinedSignal for the first (by ascending vertex
// id) vertex referenced by some expression or instance but never
// authoritatively defined by a port declaration, assignment, or
// instantiation output.
func (ld *loaderState) checkUndefined() error {
	names := ld.g.Names()
	ids := make([]int, 0, len(names))
	for id := range names {
		if !ld.declared[id] {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	if len(ids) > 0 {
		return fmt.Errorf("%w: %q", ErrUndefinedSignal, names[ids[0]])
	}

	return nil
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
