// Package graph holds the compile-time graph context shared by node
// lowerings: the tensor table, consumer tracking, and the lowering
// contract itself.
package graph

import (
	"github.com/pkg/errors"

	"github.com/born-ml/bornc/internal/onnx"
	"github.com/born-ml/bornc/internal/tensor"
)

// Use records that a node consumes or produces a tensor under the local
// name the emitted source refers to it by.
type Use struct {
	Node   *onnx.Node
	Local  string
	Tensor *tensor.Tensor
}

// Graph is the compile-time context for one computation graph: the tensor
// table, the node list, and the reference tracking used for liveness and
// ownership decisions.
type Graph struct {
	tensors map[string]*tensor.Tensor
	nodes   []*onnx.Node
	readers map[string]int // declared consumers per tensor name, from node input lists
	inputs  []Use
	outputs map[*onnx.Node][]Use
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		tensors: make(map[string]*tensor.Tensor),
		readers: make(map[string]int),
		outputs: make(map[*onnx.Node][]Use),
	}
}

// AddTensor adds a tensor to the graph's tensor table.
func (g *Graph) AddTensor(t *tensor.Tensor) error {
	if _, ok := g.tensors[t.Name()]; ok {
		return errors.Errorf("duplicate tensor name: %q", t.Name())
	}
	g.tensors[t.Name()] = t
	return nil
}

// Tensor looks up a tensor by name.
func (g *Graph) Tensor(name string) (*tensor.Tensor, bool) {
	t, ok := g.tensors[name]
	return t, ok
}

// AddNode appends a node and counts it as a declared reader of each of its
// input tensors. Reader counts must cover the whole graph before any node
// resolves, since folding decisions depend on them.
func (g *Graph) AddNode(n *onnx.Node) {
	g.nodes = append(g.nodes, n)
	for _, name := range n.Inputs {
		g.readers[name]++
	}
}

// Nodes returns the graph's nodes in the order they were added.
func (g *Graph) Nodes() []*onnx.Node {
	return g.nodes
}

// RegisterInput records that n consumes t under the given local name.
func (g *Graph) RegisterInput(n *onnx.Node, local string, t *tensor.Tensor) {
	g.inputs = append(g.inputs, Use{Node: n, Local: local, Tensor: t})
}

// RebindInput replaces the tensor n consumes under the given local name
// and registers the replacement in the tensor table, so the constant pool
// emitted elsewhere carries the new buffer. Used when a lowering folds a
// shared constant into a private copy.
func (g *Graph) RebindInput(n *onnx.Node, local string, t *tensor.Tensor) error {
	for i := range g.inputs {
		if g.inputs[i].Node == n && g.inputs[i].Local == local {
			if err := g.AddTensor(t); err != nil {
				return err
			}
			g.inputs[i].Tensor = t
			return nil
		}
	}
	return errors.Errorf("no input %q registered for node %q", local, n.Name)
}

// RegisterOutput records t as n's output under the given local name and
// adds it to the tensor table for downstream consumers.
func (g *Graph) RegisterOutput(n *onnx.Node, local string, t *tensor.Tensor) error {
	if err := g.AddTensor(t); err != nil {
		return err
	}
	g.outputs[n] = append(g.outputs[n], Use{Node: n, Local: local, Tensor: t})
	return nil
}

// NodeOutputs returns the outputs registered by n during resolution.
func (g *Graph) NodeOutputs(n *onnx.Node) []Use {
	return g.outputs[n]
}

// UsesOf returns the registered consumptions of t, in registration order.
func (g *Graph) UsesOf(t *tensor.Tensor) []Use {
	var uses []Use
	for _, u := range g.inputs {
		if u.Tensor == t {
			uses = append(uses, u)
		}
	}
	return uses
}

// SoleConsumer reports whether at most one node in the whole graph
// declares t as an input. A lowering may mutate a constant tensor's
// buffer in place only when this holds; otherwise it must fold into a
// private copy.
func (g *Graph) SoleConsumer(t *tensor.Tensor) bool {
	return g.readers[t.Name()] <= 1
}
