package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/bornc/internal/onnx"
	"github.com/born-ml/bornc/internal/tensor"
)

func TestTensorTable(t *testing.T) {
	g := New()

	x, err := tensor.New("x", tensor.Shape{2, 3}, tensor.Float32)
	require.NoError(t, err)
	require.NoError(t, g.AddTensor(x))

	got, ok := g.Tensor("x")
	require.True(t, ok)
	assert.Same(t, x, got)

	_, ok = g.Tensor("missing")
	assert.False(t, ok)

	// Names are unique across the graph.
	dup, err := tensor.New("x", tensor.Shape{1, 1}, tensor.Float32)
	require.NoError(t, err)
	assert.Error(t, g.AddTensor(dup))
}

func TestDeclaredReaders(t *testing.T) {
	g := New()

	w, err := tensor.FromFloat32s("w", tensor.Shape{3}, []float32{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, g.AddTensor(w))

	n1 := &onnx.Node{Name: "n1", OpType: "Op", Inputs: []string{"w"}}
	n2 := &onnx.Node{Name: "n2", OpType: "Op", Inputs: []string{"w"}}

	g.AddNode(n1)
	assert.True(t, g.SoleConsumer(w), "one declared reader")

	g.AddNode(n2)
	assert.False(t, g.SoleConsumer(w), "two declared readers")

	assert.Equal(t, []*onnx.Node{n1, n2}, g.Nodes())
}

func TestRegisterAndRebindInput(t *testing.T) {
	g := New()

	v, err := tensor.FromFloat32s("var", tensor.Shape{3}, []float32{1, 4, 9})
	require.NoError(t, err)
	require.NoError(t, g.AddTensor(v))

	n := &onnx.Node{Name: "bn", OpType: "BatchNormalization", Inputs: []string{"var"}}
	g.AddNode(n)
	g.RegisterInput(n, "var", v)

	uses := g.UsesOf(v)
	require.Len(t, uses, 1)
	assert.Equal(t, "var", uses[0].Local)

	private := v.Clone().WithName("var.folded")
	require.NoError(t, g.RebindInput(n, "var", private))

	assert.Empty(t, g.UsesOf(v), "original no longer bound")
	require.Len(t, g.UsesOf(private), 1)

	// The replacement joins the tensor table for the constant pool.
	got, ok := g.Tensor("var.folded")
	require.True(t, ok)
	assert.Same(t, private, got)

	// Rebinding an unregistered local name fails.
	assert.Error(t, g.RebindInput(n, "scale", private.Clone().WithName("other")))
}

func TestRegisterOutput(t *testing.T) {
	g := New()

	n := &onnx.Node{Name: "bn", OpType: "BatchNormalization", Outputs: []string{"y"}}
	g.AddNode(n)

	out, err := tensor.New("y", tensor.Shape{2, 3}, tensor.Float32)
	require.NoError(t, err)
	require.NoError(t, g.RegisterOutput(n, "output", out))

	uses := g.NodeOutputs(n)
	require.Len(t, uses, 1)
	assert.Equal(t, "output", uses[0].Local)
	assert.Same(t, out, uses[0].Tensor)

	got, ok := g.Tensor("y")
	require.True(t, ok)
	assert.Same(t, out, got)
}

func TestNodeStateString(t *testing.T) {
	states := map[NodeState]string{
		Unresolved: "unresolved",
		Binding:    "binding",
		Folding:    "folding",
		Emitted:    "emitted",
		Rejected:   "rejected",
	}
	for s, want := range states {
		assert.Equal(t, want, s.String())
	}
}
