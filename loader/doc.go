// Package loader translates a gate-level netlist into a core.Graph.
//
// The frontend implemented here is deliberately minimal: a general
// Verilog tokenizer/parser is out of scope, but BuildGraph(path) still
// needs to read a file and recognize a concrete subset of statements and
// expressions. lexer.go splits the file into ';'-terminated statements;
// expr.go parses and normalizes boolean-expression right-hand sides;
// lower.go classifies them and lowers them into vertices and edges;
// primitives.go recognizes gate instantiations (Style B) including the
// DFF D/Q split and the MUX2/full_adder composite expansions; loader.go
// orchestrates all of it and owns identifier normalization and the fatal
// error sentinels.
package loader
