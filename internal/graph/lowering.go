package graph

import (
	"github.com/born-ml/bornc/internal/cgen"
	"github.com/born-ml/bornc/internal/onnx"
	"github.com/born-ml/bornc/internal/tensor"
)

// Lowering is the capability set every operator lowering implements.
//
// The phases form a strict ordering contract: ParseAttributes and Resolve
// run once, in that order, before Emit. Resolve binds and validates the
// node's operands, performs constant folding, and registers the node's
// output tensor. Emit writes the shape-specialized source for the node
// and is idempotent given a fixed resolved plan.
type Lowering interface {
	ParseAttributes(node *onnx.Node) error
	Resolve(g *Graph, inputs []*tensor.Tensor) error
	Emit(w *cgen.Writer) error
}
