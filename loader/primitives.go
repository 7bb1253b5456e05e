// File: primitives.go
// Role: Style B gate instantiation recognition — `type #(...) inst_name
//       ( .Port(net), ... );` — against a primitive port schema table.
//       DFF instances are split into Q-side/D-side vertices with no
//       edge between them, converting the sequential netlist into a DAG.
package loader

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/vlsicore/sta/core"
)

// instanceStmt is a parsed `type inst_name ( .Port(net), ... )` statement.
type instanceStmt struct {
	typeName string
	instName string
	ports    map[string]string // port name -> connected net identifier
}

var instanceHeaderRe = regexp.MustCompile(`(?s)^(\w+)\s+(?:#\([^)]*\)\s*)?(\w+)\s*\((.*)\)$`)

var namedPortRe = regexp.MustCompile(`^\.(\w+)\s*\(\s*([^)]*?)\s*\)$`)

// parseInstance recognizes the `type inst_name ( .A(n1), .Y(n2) )` shape.
// Positional (unnamed) port connections are not part of the recognized
// grammar subset; every port must be named.
func parseInstance(raw string) (instanceStmt, bool) {
	m := instanceHeaderRe.FindStringSubmatch(raw)
	if m == nil {
		return instanceStmt{}, false
	}

	inst := instanceStmt{typeName: m[1], instName: m[2], ports: map[string]string{}}
	for _, part := range splitTopLevelCommas(m[3]) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pm := namedPortRe.FindStringSubmatch(part)
		if pm == nil {
			return instanceStmt{}, false
		}
		inst.ports[pm[1]] = normalizeIdent(pm[2])
	}

	return inst, true
}

// splitTopLevelCommas splits a port-connection list on commas that are not
// nested inside a connection's own parentheses (there are none in the
// recognized grammar, but this keeps the split robust against whitespace).
func splitTopLevelCommas(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

// primitiveSchema describes a known primitive's input ports, in operand
// order, and its gate tag.
type primitiveSchema struct {
	tag    core.GateTag
	inputs []string // port names, in AND/OR/XOR operand order; empty for DFF
	output string
}

var primitiveSchemas = map[string]primitiveSchema{
	"not":  {tag: core.TagNOT, inputs: []string{"A"}, output: "Y"},
	"buf":  {tag: core.TagBUF, inputs: []string{"A"}, output: "Y"},
	"and":  {tag: core.TagAND, inputs: []string{"A", "B"}, output: "Y"},
	"or":   {tag: core.TagOR, inputs: []string{"A", "B"}, output: "Y"},
	"nand": {tag: core.TagNAND, inputs: []string{"A", "B"}, output: "Y"},
	"nor":  {tag: core.TagNOR, inputs: []string{"A", "B"}, output: "Y"},
	"xor":  {tag: core.TagXOR, inputs: []string{"A", "B"}, output: "Y"},
	"xnor": {tag: core.TagXNOR, inputs: []string{"A", "B"}, output: "Y"},
}

// handleInstance dispatches a recognized instantiation statement by its
// type name, lowering it into graph vertices/edges. An unrecognized type
// name produces a non-fatal UnknownPrimitive diagnostic rather than
// failing the whole load.
func (ld *loaderState) handleInstance(raw string) error {
	inst, ok := parseInstance(raw)
	if !ok {
		return fmt.Errorf("%w: cannot parse instantiation %q", ErrMalformedNetlist, raw)
	}

	lower := strings.ToLower(inst.typeName)

	switch lower {
	case "dff":
		return ld.lowerDFF(inst)
	case "mux2":
		return ld.lowerMux2(inst)
	case "full_adder":
		return ld.lowerFullAdder(inst)
	}

	if schema, ok := primitiveSchemas[lower]; ok {
		return ld.lowerPrimitiveGate(inst, schema)
	}

	outName, hasOut := inst.ports["Y"]
	if !hasOut {
		portNames := make([]string, 0, len(inst.ports))
		for p := range inst.ports {
			portNames = append(portNames, p)
		}
		sort.Strings(portNames)
		if len(portNames) > 0 {
			outName = inst.ports[portNames[0]]
		}
	}
	if outName != "" {
		if _, err := ld.define(outName, core.TagUNKNOWN); err != nil {
			return err
		}
	}
	ld.diagnostics = append(ld.diagnostics, Diagnostic{
		Kind:    DiagUnknownPrimitive,
		Message: fmt.Sprintf("loader: unrecognized primitive %q (instance %q) tagged UNKNOWN", inst.typeName, inst.instName),
	})

	return nil
}

// lowerPrimitiveGate handles NOT/BUF/AND/OR/NAND/NOR/XOR/XNOR's canonical
// single-output port schema.
func (ld *loaderState) lowerPrimitiveGate(inst instanceStmt, schema primitiveSchema) error {
	outName, ok := inst.ports[schema.output]
	if !ok {
		return fmt.Errorf("%w: instance %q missing output port %s", ErrMalformedNetlist, inst.instName, schema.output)
	}

	inIDs := make([]int, len(schema.inputs))
	for i, p := range schema.inputs {
		net, ok := inst.ports[p]
		if !ok {
			return fmt.Errorf("%w: instance %q missing input port %s", ErrMalformedNetlist, inst.instName, p)
		}
		inIDs[i] = ld.internReference(net)
	}

	outID, err := ld.define(outName, schema.tag)
	if err != nil {
		return err
	}
	for _, inID := range inIDs {
		if err := ld.link(inID, outID); err != nil {
			return err
		}
	}

	return nil
}

// lowerDFF splits a D flip-flop instance into two vertices: a Q-side
// startpoint (AT boundary = clock_to_q) and a D-side endpoint (RT boundary
// = Tclk - setup), with no edge between them — the cut that turns the
// sequential netlist into a DAG.
//
// The Q-side startpoint is the literal net named by the .Q port: it has no
// predecessors to preserve, so no separate vertex is needed. The D-side
// endpoint is a synthetic vertex distinct from the net feeding .D, wired
// in by one edge — retagging the driving net in place would discard its
// own gate delay (e.g. a NOT feeding D directly) instead of composing
// with it, and AT(D-side) must equal AT(driving net) + 0.
func (ld *loaderState) lowerDFF(inst instanceStmt) error {
	qName, ok := inst.ports["Q"]
	if !ok {
		return fmt.Errorf("%w: DFF instance %q missing port Q", ErrMalformedNetlist, inst.instName)
	}
	dNet, ok := inst.ports["D"]
	if !ok {
		return fmt.Errorf("%w: DFF instance %q missing port D", ErrMalformedNetlist, inst.instName)
	}
	// CLK is required by the schema but carries no timing edge in this model.
	if _, ok := inst.ports["CLK"]; !ok {
		return fmt.Errorf("%w: DFF instance %q missing port CLK", ErrMalformedNetlist, inst.instName)
	}

	qID, err := ld.define(qName, core.TagDFF)
	if err != nil {
		return err
	}
	if err := ld.g.SetRole(qID, core.RoleFlipFlopQ); err != nil {
		return err
	}

	dNetID := ld.internReference(dNet)
	dID, err := ld.define(inst.instName+".D", core.TagDFF)
	if err != nil {
		return err
	}
	if err := ld.g.SetRole(dID, core.RoleFlipFlopD); err != nil {
		return err
	}

	return ld.link(dNetID, dID)
}

// lowerMux2 handles an explicit mux2 instance (`Y = S ? B : A`) via the
// same MUX2_NOT/MUX2_AND/MUX2_OR decomposition as a ternary expression.
func (ld *loaderState) lowerMux2(inst instanceStmt) error {
	for _, p := range []string{"A", "B", "S", "Y"} {
		if _, ok := inst.ports[p]; !ok {
			return fmt.Errorf("%w: mux2 instance %q missing port %s", ErrMalformedNetlist, inst.instName, p)
		}
	}

	outName := inst.ports["Y"]
	node := &exprNode{
		kind: exTernary,
		cond: &exprNode{kind: exIdent, ident: inst.ports["S"]},
		then: &exprNode{kind: exIdent, ident: inst.ports["B"]},
		els:  &exprNode{kind: exIdent, ident: inst.ports["A"]},
	}
	prevBase := ld.currentBase
	ld.currentBase = outName
	_, err := ld.lowerExpr(outName, node)
	ld.currentBase = prevBase

	return err
}

// lowerFullAdder expands `full_adder` into its constituent gates:
// S = A ^ B ^ CIN, COUT = (A & B) | (CIN & (A ^ B)).
func (ld *loaderState) lowerFullAdder(inst instanceStmt) error {
	for _, p := range []string{"A", "B", "CIN", "S", "COUT"} {
		if _, ok := inst.ports[p]; !ok {
			return fmt.Errorf("%w: full_adder instance %q missing port %s", ErrMalformedNetlist, inst.instName, p)
		}
	}

	sName, cName := inst.ports["S"], inst.ports["COUT"]
	prevBase := ld.currentBase

	ld.currentBase = sName
	sExpr := &exprNode{
		kind: exXor,
		left: &exprNode{kind: exXor,
			left:  &exprNode{kind: exIdent, ident: inst.ports["A"]},
			right: &exprNode{kind: exIdent, ident: inst.ports["B"]}},
		right: &exprNode{kind: exIdent, ident: inst.ports["CIN"]},
	}
	if _, err := ld.lowerExpr(sName, sExpr); err != nil {
		ld.currentBase = prevBase
		return err
	}

	ld.currentBase = cName
	cExpr := &exprNode{
		kind: exOr,
		left: &exprNode{kind: exAnd,
			left:  &exprNode{kind: exIdent, ident: inst.ports["A"]},
			right: &exprNode{kind: exIdent, ident: inst.ports["B"]}},
		right: &exprNode{kind: exAnd,
			left: &exprNode{kind: exIdent, ident: inst.ports["CIN"]},
			right: &exprNode{kind: exXor,
				left:  &exprNode{kind: exIdent, ident: inst.ports["A"]},
				right: &exprNode{kind: exIdent, ident: inst.ports["B"]}}},
	}
	_, err := ld.lowerExpr(cName, cExpr)
	ld.currentBase = prevBase

	return err
}
