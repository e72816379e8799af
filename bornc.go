// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package bornc compiles ONNX computation-graph nodes into
// shape-specialized C source.
//
// bornc is an ahead-of-time source generator: loop bounds in the emitted
// code are baked from the static shapes resolved at compile time, and
// constant folding elides work that is statically known to be a no-op.
//
// Example:
//
//	g := bornc.NewGraph()
//	x, _ := bornc.NewTensor("x", bornc.Shape{2, 3, 4, 4}, bornc.Float32)
//	_ = g.AddTensor(x)
//	// ... add the remaining operands and the node ...
//	src, err := bornc.Compile(g)
package bornc

import (
	"github.com/born-ml/bornc/internal/graph"
	"github.com/born-ml/bornc/internal/nodes"
	"github.com/born-ml/bornc/internal/onnx"
	"github.com/born-ml/bornc/internal/tensor"
)

// Re-exported core types.
type (
	Graph     = graph.Graph
	Node      = onnx.Node
	Attribute = onnx.Attribute
	Tensor    = tensor.Tensor
	Shape     = tensor.Shape
	DataType  = tensor.DataType
)

// Element types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
	Float16 = tensor.Float16
	Int8    = tensor.Int8
	Int16   = tensor.Int16
	Int32   = tensor.Int32
	Int64   = tensor.Int64
	Uint8   = tensor.Uint8
	Bool    = tensor.Bool
	String  = tensor.String
)

// Attribute types.
const (
	AttrFloat = onnx.AttrFloat
	AttrInt   = onnx.AttrInt
)

// NewGraph creates an empty compile-time graph.
func NewGraph() *Graph {
	return graph.New()
}

// NewTensor creates a variable tensor.
func NewTensor(name string, shape Shape, dtype DataType) (*Tensor, error) {
	return tensor.New(name, shape, dtype)
}

// Float32Const creates a constant float32 tensor from the given values.
func Float32Const(name string, shape Shape, values []float32) (*Tensor, error) {
	return tensor.FromFloat32s(name, shape, values)
}

// Compile lowers every node of g with the default operator registry and
// returns the emitted C source.
func Compile(g *Graph) (string, error) {
	return nodes.Compile(g, nodes.NewRegistry())
}
