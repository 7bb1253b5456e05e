// File: lower.go
// Role: lowers a parsed, normalized expression tree into timing-graph
//       vertices and edges, classifying each node against the
//       continuous-assignment (Style A) pattern table.
package loader

import (
	"strconv"

	"github.com/vlsicore/sta/core"
)

// peelNot reports whether n is a Not node and, if so, its operand;
// otherwise it returns n itself unchanged (negated=false).
func peelNot(n *exprNode) (inner *exprNode, negated bool) {
	if n.kind == exNot {
		return n.operand, true
	}
	return n, false
}

// define interns name as a freshly-driven vertex (assign LHS, synthetic
// intermediate, or gate output) and marks it declared, so the end-of-load
// UndefinedSignal scan does not flag it.
func (ld *loaderState) define(name string, tag core.GateTag) (int, error) {
	delay, _ := ld.delays.Lookup(tag)
	id, err := ld.g.InternVertex(name, core.RoleInternal, tag, delay)
	if err != nil {
		return -1, err
	}
	// An assign statement re-driving a previously-declared port (e.g. a
	// primary output first seen via "output y;") authoritatively sets its
	// gate tag and delay, overwriting the TagPRIMARY placeholder.
	if err := ld.g.RetagVertex(id, tag, delay); err != nil {
		return -1, err
	}
	ld.declared[id] = true

	return id, nil
}

// link adds an edge from -> to, recording nothing else; delay is always
// attributed to the destination vertex (gate delay model).
func (ld *loaderState) link(from, to int) error {
	_, err := ld.g.AddEdge(from, to)
	return err
}

// resolveOperand returns the vertex id representing e's value: an
// existing (possibly forward-referenced) identifier, a constant source,
// or — for any compound sub-expression — a freshly lowered synthetic
// vertex.
func (ld *loaderState) resolveOperand(e *exprNode) (int, error) {
	switch e.kind {
	case exIdent:
		return ld.internReference(e.ident), nil
	case exConst:
		return ld.internConstant(e.bit), nil
	default:
		name := ld.gensym()
		return ld.lowerExpr(name, e)
	}
}

// internReference looks up or lazily creates a placeholder vertex for a
// referenced identifier, without marking it declared — the end-of-load
// scan treats any vertex never marked declared as an UndefinedSignal.
func (ld *loaderState) internReference(name string) int {
	if id, ok := ld.g.VertexByName(name); ok {
		return id
	}
	id, _ := ld.g.InternVertex(name, core.RoleInternal, core.TagUNKNOWN, 0)
	return id
}

// internConstant returns the shared constant-source vertex for bit,
// creating it (delay 0, no incoming edges) on first reference.
func (ld *loaderState) internConstant(bit int) int {
	name := constantVertexName(bit)
	if id, ok := ld.g.VertexByName(name); ok {
		ld.declared[id] = true
		return id
	}
	id, _ := ld.g.InternVertex(name, core.RoleInternal, core.TagPRIMARY, 0)
	ld.declared[id] = true

	return id
}

// gensym returns a fresh synthetic vertex name scoped to the assignment
// currently being lowered, e.g. "y$t1", "y$t2", for associative-chain
// intermediates.
func (ld *loaderState) gensym() string {
	ld.tmpCounter++
	return ld.currentBase + "$t" + strconv.Itoa(ld.tmpCounter)
}

// lowerExpr interns outName as the vertex representing e's value and
// wires its fan-in edges, classifying e against the gate pattern table,
// then returns outName's vertex id.
func (ld *loaderState) lowerExpr(outName string, e *exprNode) (int, error) {
	switch e.kind {
	case exIdent:
		srcID, err := ld.resolveOperand(e)
		if err != nil {
			return -1, err
		}
		outID, err := ld.define(outName, core.TagASSIGN)
		if err != nil {
			return -1, err
		}
		return outID, ld.link(srcID, outID)

	case exConst:
		srcID := ld.internConstant(e.bit)
		outID, err := ld.define(outName, core.TagASSIGN)
		if err != nil {
			return -1, err
		}
		return outID, ld.link(srcID, outID)

	case exNot:
		return ld.lowerNot(outName, e)

	case exAnd:
		return ld.lowerAndOr(outName, e, core.TagAND, core.TagNOR)

	case exOr:
		return ld.lowerAndOr(outName, e, core.TagOR, core.TagNAND)

	case exXor:
		return ld.lowerXor(outName, e)

	case exTernary:
		return ld.lowerTernary(outName, e)

	default:
		return -1, ErrMalformedNetlist
	}
}

// lowerNot handles a top-level NOT node: the literal `~x` pattern, plus
// the De Morgan recognitions `~(a^b)` -> XNOR, `~(a&b)` -> NAND, and
// `~(a|b)` -> NOR.
func (ld *loaderState) lowerNot(outName string, e *exprNode) (int, error) {
	inner := e.operand
	switch inner.kind {
	case exXor:
		return ld.wireBinary(outName, inner.left, inner.right, core.TagXNOR)
	case exAnd:
		return ld.wireBinary(outName, inner.left, inner.right, core.TagNAND)
	case exOr:
		return ld.wireBinary(outName, inner.left, inner.right, core.TagNOR)
	default:
		srcID, err := ld.resolveOperand(inner)
		if err != nil {
			return -1, err
		}
		outID, err := ld.define(outName, core.TagNOT)
		if err != nil {
			return -1, err
		}
		return outID, ld.link(srcID, outID)
	}
}

// lowerAndOr handles `a & b` / `a | b`, recognizing the De Morgan form
// (both operands negated) as the opposite gate's NAND/NOR tag, and
// otherwise synthesizing a standalone NOT vertex for any negated operand
// — resolveOperand does this automatically for a bare Not operand via
// the exNot branch above.
func (ld *loaderState) lowerAndOr(outName string, e *exprNode, plainTag, bothNegatedTag core.GateTag) (int, error) {
	li, lneg := peelNot(e.left)
	ri, rneg := peelNot(e.right)

	if lneg && rneg {
		return ld.wireBinary(outName, li, ri, bothNegatedTag)
	}

	return ld.wireBinary(outName, e.left, e.right, plainTag)
}

// lowerXor handles `a ^ b`, recognizing XNOR when exactly one operand is
// top-level negated (`a^~b`, `~a^b`; `~a^~b` cancels back to plain XOR).
// The wrapped form `~(a^b)` is recognized by lowerNot instead.
func (ld *loaderState) lowerXor(outName string, e *exprNode) (int, error) {
	li, lneg := peelNot(e.left)
	ri, rneg := peelNot(e.right)

	numNeg := 0
	if lneg {
		numNeg++
	}
	if rneg {
		numNeg++
	}

	tag := core.TagXOR
	if numNeg == 1 {
		tag = core.TagXNOR
	}

	return ld.wireBinary(outName, li, ri, tag)
}

// wireBinary resolves l and r, interns outName under tag, and wires both
// operands in as fan-in.
func (ld *loaderState) wireBinary(outName string, l, r *exprNode, tag core.GateTag) (int, error) {
	lID, err := ld.resolveOperand(l)
	if err != nil {
		return -1, err
	}
	rID, err := ld.resolveOperand(r)
	if err != nil {
		return -1, err
	}
	outID, err := ld.define(outName, tag)
	if err != nil {
		return -1, err
	}
	if err := ld.link(lID, outID); err != nil {
		return -1, err
	}

	return outID, ld.link(rID, outID)
}

// lowerTernary decomposes `s ? b : a` into MUX2_NOT + MUX2_AND(x2) +
// MUX2_OR, exposing the internal delay structure rather than folding it
// into one composite-delay vertex.
func (ld *loaderState) lowerTernary(outName string, e *exprNode) (int, error) {
	condID, err := ld.resolveOperand(e.cond)
	if err != nil {
		return -1, err
	}
	thenID, err := ld.resolveOperand(e.then)
	if err != nil {
		return -1, err
	}
	elseID, err := ld.resolveOperand(e.els)
	if err != nil {
		return -1, err
	}

	notID, err := ld.define(outName+"$not", core.TagMUX2NOT)
	if err != nil {
		return -1, err
	}
	if err := ld.link(condID, notID); err != nil {
		return -1, err
	}

	andTrueID, err := ld.define(outName+"$and_true", core.TagMUX2AND)
	if err != nil {
		return -1, err
	}
	if err := ld.link(condID, andTrueID); err != nil {
		return -1, err
	}
	if err := ld.link(thenID, andTrueID); err != nil {
		return -1, err
	}

	andFalseID, err := ld.define(outName+"$and_false", core.TagMUX2AND)
	if err != nil {
		return -1, err
	}
	if err := ld.link(notID, andFalseID); err != nil {
		return -1, err
	}
	if err := ld.link(elseID, andFalseID); err != nil {
		return -1, err
	}

	outID, err := ld.define(outName, core.TagMUX2OR)
	if err != nil {
		return -1, err
	}
	if err := ld.link(andTrueID, outID); err != nil {
		return -1, err
	}

	return outID, ld.link(andFalseID, outID)
}
