// File: lexer.go
// Role: statement-level splitting of the netlist source: comment
//       stripping and ';'-terminated statement extraction. This is the
//       minimal frontend BuildGraph(path) needs to do its own file I/O;
//       it is not a general Verilog grammar.
package loader

import "strings"

// stripComments removes every "//" line comment, preserving newlines so
// statement boundaries are unaffected.
func stripComments(src string) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			lines[i] = line[:idx]
		}
	}

	return strings.Join(lines, "\n")
}

// statement is one ';'-terminated netlist statement, keyword-classified.
type statement struct {
	// keyword is the statement's leading token, lowercased: "module",
	// "input", "output", "wire", "assign", or "" for a primitive
	// instantiation (which leads with a type name, not a keyword).
	keyword string

	// body is the statement text after the keyword (for "module"/"input"/
	// "output"/"wire"/"assign") or the entire statement text (for
	// instantiations).
	body string

	// raw is the full original statement text, used in error messages.
	raw string
}

var statementKeywords = map[string]bool{
	"module": true,
	"input":  true,
	"output": true,
	"wire":   true,
	"assign": true,
}

// splitStatements strips comments and splits src into ';'-terminated
// statements, dropping a trailing bare "endmodule" (which carries no
// semicolon in the recognized grammar subset).
func splitStatements(src string) []statement {
	src = stripComments(src)

	var out []statement
	for _, raw := range strings.Split(src, ";") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || trimmed == "endmodule" {
			continue
		}

		fields := strings.Fields(trimmed)
		lead := strings.ToLower(fields[0])
		if statementKeywords[lead] {
			body := strings.TrimSpace(strings.TrimPrefix(trimmed, fields[0]))
			out = append(out, statement{keyword: lead, body: body, raw: trimmed})
			continue
		}

		out = append(out, statement{keyword: "", body: trimmed, raw: trimmed})
	}

	return out
}

// splitIdentList splits a comma-separated identifier list (as found in
// port/wire declarations), trimming whitespace around each entry.
func splitIdentList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
