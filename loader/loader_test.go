package loader_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlsicore/sta/core"
	"github.com/vlsicore/sta/loader"
)

func writeNetlist(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "design.v")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestBuildGraph_SingleGateAssign(t *testing.T) {
	path := writeNetlist(t, `
		module top(a, b, y);
		input a, b;
		output y;
		assign y = a & b;
		endmodule
	`)

	g, diags, err := loader.BuildGraph(path)
	require.NoError(t, err)
	require.Empty(t, diags)

	yID, ok := g.VertexByName("y")
	require.True(t, ok)
	require.Equal(t, core.TagAND, g.Vertex(yID).Tag)
	require.Equal(t, core.RolePrimaryOutput, g.Vertex(yID).Role)
	require.Equal(t, 2, g.InDegree(yID))
}

func TestBuildGraph_DeMorganForms(t *testing.T) {
	path := writeNetlist(t, `
		module top(a, b, y_nand, y_nor, y_xnor, y_mixed);
		input a, b;
		output y_nand, y_nor, y_xnor, y_mixed;
		assign y_nand = ~a | ~b;
		assign y_nor = ~a & ~b;
		assign y_xnor = ~(a ^ b);
		assign y_mixed = ~a & b;
		endmodule
	`)

	g, _, err := loader.BuildGraph(path)
	require.NoError(t, err)

	cases := map[string]core.GateTag{
		"y_nand":  core.TagNAND,
		"y_nor":   core.TagNOR,
		"y_xnor":  core.TagXNOR,
		"y_mixed": core.TagAND,
	}
	for name, want := range cases {
		id, ok := g.VertexByName(name)
		require.True(t, ok, name)
		require.Equal(t, want, g.Vertex(id).Tag, name)
	}

	// The De Morgan forms fold into a single gate: no standalone NOT
	// vertices are synthesized for y_nand/y_nor/y_xnor's operands.
	for _, name := range []string{"y_nand", "y_nor", "y_xnor"} {
		id, _ := g.VertexByName(name)
		require.Equal(t, 2, g.InDegree(id), name)
	}

	// The mixed-polarity case synthesizes a standalone NOT vertex for its
	// negated operand.
	mixedID, _ := g.VertexByName("y_mixed")
	require.Equal(t, 2, g.InDegree(mixedID))
	var sawNot bool
	for _, eid := range g.InEdges(mixedID) {
		from := g.Vertex(g.Edge(eid).From)
		if from.Tag == core.TagNOT {
			sawNot = true
		}
	}
	require.True(t, sawNot)
}

func TestBuildGraph_TernaryDecomposesToMux2(t *testing.T) {
	path := writeNetlist(t, `
		module top(a, b, s, y);
		input a, b, s;
		output y;
		assign y = s ? b : a;
		endmodule
	`)

	g, _, err := loader.BuildGraph(path)
	require.NoError(t, err)

	yID, ok := g.VertexByName("y")
	require.True(t, ok)
	require.Equal(t, core.TagMUX2OR, g.Vertex(yID).Tag)

	notID, ok := g.VertexByName("y$not")
	require.True(t, ok)
	require.Equal(t, core.TagMUX2NOT, g.Vertex(notID).Tag)

	andTrueID, ok := g.VertexByName("y$and_true")
	require.True(t, ok)
	require.Equal(t, core.TagMUX2AND, g.Vertex(andTrueID).Tag)
}

func TestBuildGraph_FullAdderExpansion(t *testing.T) {
	path := writeNetlist(t, `
		module top(a, b, cin, sum, cout);
		input a, b, cin;
		output sum, cout;
		full_adder fa1 (.A(a), .B(b), .CIN(cin), .S(sum), .COUT(cout));
		endmodule
	`)

	g, _, err := loader.BuildGraph(path)
	require.NoError(t, err)

	sumID, ok := g.VertexByName("sum")
	require.True(t, ok)
	require.Equal(t, core.TagXOR, g.Vertex(sumID).Tag)

	coutID, ok := g.VertexByName("cout")
	require.True(t, ok)
	require.Equal(t, core.TagOR, g.Vertex(coutID).Tag)
}

func TestBuildGraph_DFFSplit(t *testing.T) {
	path := writeNetlist(t, `
		module top(d, clk, q);
		input d, clk;
		output q;
		dff dff1 (.D(d), .CLK(clk), .Q(q));
		endmodule
	`)

	g, _, err := loader.BuildGraph(path)
	require.NoError(t, err)

	qID, ok := g.VertexByName("q")
	require.True(t, ok)
	require.Equal(t, core.RoleFlipFlopQ, g.Vertex(qID).Role)
	require.Equal(t, 0, g.InDegree(qID))

	dID, ok := g.VertexByName("dff1.D")
	require.True(t, ok)
	require.Equal(t, core.RoleFlipFlopD, g.Vertex(dID).Role)
	require.Equal(t, 1, g.InDegree(dID))
}

func TestBuildGraph_UnknownPrimitiveWarns(t *testing.T) {
	path := writeNetlist(t, `
		module top(a, y);
		input a;
		output y;
		weird_gate u1 (.A(a), .Y(y));
		endmodule
	`)

	g, diags, err := loader.BuildGraph(path)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	require.Equal(t, loader.DiagUnknownPrimitive, diags[0].Kind)

	yID, ok := g.VertexByName("y")
	require.True(t, ok)
	require.Equal(t, core.TagUNKNOWN, g.Vertex(yID).Tag)
}

func TestBuildGraph_UndefinedSignal(t *testing.T) {
	path := writeNetlist(t, `
		module top(a, y);
		input a;
		output y;
		assign y = a & ghost;
		endmodule
	`)

	_, _, err := loader.BuildGraph(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, loader.ErrUndefinedSignal))
}

func TestBuildGraph_MalformedExpression(t *testing.T) {
	path := writeNetlist(t, `
		module top(a, y);
		input a;
		output y;
		assign y = a & ;
		endmodule
	`)

	_, _, err := loader.BuildGraph(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, loader.ErrMalformedNetlist))
}

func TestBuildGraph_ConstantsShareOneVertex(t *testing.T) {
	path := writeNetlist(t, `
		module top(y1, y2);
		output y1, y2;
		assign y1 = 1'b0;
		assign y2 = 1'b0;
		endmodule
	`)

	g, _, err := loader.BuildGraph(path)
	require.NoError(t, err)

	_, ok := g.VertexByName("$const0")
	require.True(t, ok)
	// y1, y2, and the one shared $const0 source.
	require.Equal(t, 3, g.NumVertices())
}

func TestBuildGraph_DelayTableOverride(t *testing.T) {
	path := writeNetlist(t, `
		module top(a, b, y);
		input a, b;
		output y;
		assign y = a & b;
		endmodule
	`)

	overridden := core.DefaultDelayTable().Override(core.DelayTable{core.TagAND: 0.5})
	g, _, err := loader.BuildGraph(path, loader.WithDelayTable(overridden))
	require.NoError(t, err)

	yID, _ := g.VertexByName("y")
	require.InDelta(t, 0.5, g.Vertex(yID).Delay, 1e-9)
}
