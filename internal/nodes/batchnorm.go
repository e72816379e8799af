package nodes

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/bornc/internal/cgen"
	"github.com/born-ml/bornc/internal/diag"
	"github.com/born-ml/bornc/internal/graph"
	"github.com/born-ml/bornc/internal/onnx"
	"github.com/born-ml/bornc/internal/tensor"
)

// BatchNormalization lowers the batch normalization operator
// (https://arxiv.org/abs/1502.03167):
//
//	y = scale * X + bias
//
// where
//
//	X = (x - mean) / sqrt(variance + epsilon)
//
// Dimension 0 of the input is the batch axis, dimension 1 the channel
// axis; scale, bias, mean and variance broadcast along the channel axis
// only. The training-time running-statistics outputs are not implemented.
type BatchNormalization struct {
	epsilon  float32
	momentum float32 // accepted for compatibility, unused by inference lowering

	node  *onnx.Node
	state graph.NodeState

	// resolved plan
	input    *tensor.Tensor
	scale    *tensor.Tensor // nil once folded away
	bias     *tensor.Tensor // nil once folded away
	mean     *tensor.Tensor
	variance *tensor.Tensor
	output   *tensor.Tensor

	// varStdDevFolded records that the variance buffer already holds
	// sqrt(variance + epsilon), so emitted code divides by it directly.
	varStdDevFolded bool
}

// NewBatchNormalization creates an unresolved lowering with the
// operator's default configuration.
func NewBatchNormalization() *BatchNormalization {
	return &BatchNormalization{
		epsilon:  1e-5,
		momentum: 0.9,
		state:    graph.Unresolved,
	}
}

// batchNormAttrs is the closed set of recognized attributes, each with
// its declared type and binding action. Unknown names take the single
// rejection path in ParseAttributes.
var batchNormAttrs = map[string]struct {
	typ   int32
	apply func(b *BatchNormalization, a *onnx.Attribute) error
}{
	"epsilon": {typ: onnx.AttrFloat, apply: func(b *BatchNormalization, a *onnx.Attribute) error {
		b.epsilon = a.F
		return nil
	}},
	"momentum": {typ: onnx.AttrFloat, apply: func(b *BatchNormalization, a *onnx.Attribute) error {
		b.momentum = a.F
		return nil
	}},
	// spatial was removed in ONNX opset 9; only its default is supported.
	"spatial": {typ: onnx.AttrInt, apply: func(b *BatchNormalization, a *onnx.Attribute) error {
		if a.I != 1 {
			return errors.Wrapf(diag.ErrUnimplemented, "non-default value %d for 'spatial' attribute", a.I)
		}
		return nil
	}},
}

// ParseAttributes decodes the node's configuration.
func (b *BatchNormalization) ParseAttributes(node *onnx.Node) error {
	b.node = node
	for i := range node.Attributes {
		a := &node.Attributes[i]
		spec, ok := batchNormAttrs[a.Name]
		if !ok {
			return errors.Wrapf(diag.ErrAttribute, "unknown attribute %q", a.Name)
		}
		if a.Type != spec.typ {
			return errors.Wrapf(diag.ErrAttribute, "bad attribute %q", a.Name)
		}
		if err := spec.apply(b, a); err != nil {
			return err
		}
	}
	return nil
}

// Resolve binds the five operands (input, scale, bias, mean, variance) in
// order, validates their element types, folds what is statically known,
// and registers the output tensor. It must run exactly once.
func (b *BatchNormalization) Resolve(g *graph.Graph, inputs []*tensor.Tensor) error {
	if b.state != graph.Unresolved {
		return errors.Errorf("resolve on %s BatchNormalization node", b.state)
	}
	b.state = graph.Binding

	if len(inputs) != 5 {
		b.state = graph.Rejected
		return errors.Wrapf(diag.ErrArity, "BatchNormalization wants 5 inputs, got %d", len(inputs))
	}

	b.input = inputs[0] // "X" in the operator spec
	g.RegisterInput(b.node, "X", b.input)
	b.scale = inputs[1]
	g.RegisterInput(b.node, "scale", b.scale)
	b.bias = inputs[2] // "B" in the operator spec
	g.RegisterInput(b.node, "bias", b.bias)
	b.mean = inputs[3]
	g.RegisterInput(b.node, "mean", b.mean)
	b.variance = inputs[4]
	g.RegisterInput(b.node, "var", b.variance)

	for _, t := range inputs {
		if !t.DType().IsPlainFloat() {
			b.state = graph.Rejected
			return errors.Wrapf(diag.ErrType, "incorrect input %q for node: %s elements", t.Name(), t.DType())
		}
	}
	if len(b.input.Shape()) < 2 {
		b.state = graph.Rejected
		return errors.Wrapf(diag.ErrType, "incorrect input %q for node: rank %d, want batch and channel axes",
			b.input.Name(), len(b.input.Shape()))
	}

	b.state = graph.Folding
	if err := b.fold(g); err != nil {
		b.state = graph.Rejected
		return err
	}

	out, err := tensor.New(b.outputName(), b.input.Shape(), b.input.DType())
	if err != nil {
		b.state = graph.Rejected
		return err
	}
	if err := g.RegisterOutput(b.node, "output", out); err != nil {
		b.state = graph.Rejected
		return err
	}
	b.output = out
	return nil
}

func (b *BatchNormalization) outputName() string {
	if b.node != nil && len(b.node.Outputs) > 0 {
		return b.node.Outputs[0]
	}
	return "output"
}

// fold rewrites the plan for operands whose values are known at compile
// time.
func (b *BatchNormalization) fold(g *graph.Graph) error {
	// Exporters always supply scale and bias, since they are required
	// inputs; in practice they are often all ones and all zeros.
	splat, err := tensor.IsSplatted(b.scale, 1.0)
	if err != nil {
		return err
	}
	if splat {
		b.scale = nil
	}
	splat, err = tensor.IsSplatted(b.bias, 0.0)
	if err != nil {
		return err
	}
	if splat {
		b.bias = nil
	}

	if b.variance.Const() && b.variance.DType() == tensor.Float32 {
		if !g.SoleConsumer(b.variance) {
			// Another node reads the same buffer: fold into a private
			// copy so the shared constant keeps its original values.
			// The copy is per consumer, keyed by the node's output name;
			// consumers cannot share one copy since each folds with its
			// own epsilon.
			private := b.variance.Clone().WithName(b.variance.Name() + ".folded." + b.outputName())
			if err := g.RebindInput(b.node, "var", private); err != nil {
				return err
			}
			b.variance = private
		}
		if err := b.foldVarianceToStdDev(); err != nil {
			return err
		}
		b.varStdDevFolded = true
	}
	return nil
}

// foldVarianceToStdDev rewrites the variance buffer so every element v
// becomes sqrt(v + epsilon), the entire denominator of the formula.
// Emitted code then needs no epsilon addition and no sqrt call.
func (b *BatchNormalization) foldVarianceToStdDev() error {
	vals, err := b.variance.Float32s()
	if err != nil {
		return err
	}
	for i, v := range vals {
		vals[i] = float32(math.Sqrt(float64(v + b.epsilon)))
	}
	return nil
}

// Emit writes the loop nest computing the node's output. Bounds are the
// input's static extents, so the generated code needs no bounds checks.
func (b *BatchNormalization) Emit(w *cgen.Writer) error {
	if b.state != graph.Folding && b.state != graph.Emitted {
		return errors.Errorf("emit on %s BatchNormalization node", b.state)
	}

	shape := b.input.Shape()
	ctype := b.input.DType().CType()

	w.Linef("/* BatchNormalization")
	w.Linef(" * epsilon = %s", cgen.Float(b.epsilon))
	w.Linef(" * momentum = %s", cgen.Float(b.momentum))
	w.Linef(" */")
	if !b.varStdDevFolded {
		w.Linef("float epsilon = %s;", cgen.Float(b.epsilon))
	}

	// Indexing string addressing the current element of X and output.
	idx := "[b][c]"
	for i := 2; i < len(shape); i++ {
		idx += fmt.Sprintf("[i%d]", i)
	}

	w.OpenBlockf("for (int32_t b = 0; b < %d; b++)", shape[0])
	w.OpenBlockf("for (int32_t c = 0; c < %d; c++)", shape[1])
	for i := 2; i < len(shape); i++ {
		w.OpenBlockf("for (int32_t i%d = 0; i%d < %d; i%d++)", i, i, shape[i], i)
	}

	denom := "var[c]"
	if !b.varStdDevFolded {
		denom = "sqrt(var[c] + epsilon)"
	}
	w.Linef("%s tmp = (X%s - mean[c]) / %s;", ctype, idx, denom)

	rhs := "tmp"
	if b.scale != nil {
		rhs += " * scale[c]"
	}
	if b.bias != nil {
		rhs += " + bias[c]"
	}
	w.Linef("output%s = %s;", idx, rhs)

	for i := 2; i < len(shape); i++ {
		w.CloseBlock()
	}
	w.CloseBlock()
	w.CloseBlock()

	b.state = graph.Emitted
	return nil
}
