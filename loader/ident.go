// File: ident.go
// Role: identifier normalization.
package loader

import "strings"

// normalizeIdent canonicalizes an escaped or bit-indexed identifier by
// stripping a leading backslash and surrounding whitespace, so "\name[3] "
// and "name[3]" intern to the same vertex.
func normalizeIdent(tok string) string {
	tok = strings.TrimSpace(tok)
	tok = strings.TrimPrefix(tok, `\`)
	return strings.TrimSpace(tok)
}

// isConstantLiteral reports whether tok is a one-bit Verilog constant
// (1'b0 / 1'b1) and, if so, the bit value it denotes.
func isConstantLiteral(tok string) (bit int, ok bool) {
	switch tok {
	case "1'b0", "1'B0":
		return 0, true
	case "1'b1", "1'B1":
		return 1, true
	default:
		return 0, false
	}
}

// constantVertexName returns the canonical synthetic name for the
// constant-source vertex of the given bit value, shared across every
// reference to that constant in the netlist.
func constantVertexName(bit int) string {
	if bit == 0 {
		return "$const0"
	}
	return "$const1"
}
