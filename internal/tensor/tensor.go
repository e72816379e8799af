package tensor

import (
	"fmt"
	"unsafe"
)

// Tensor is one operand or result in the graph being compiled.
//
// A tensor is either a variable (value known only at run time) or a
// constant carrying an owned buffer of element values. Tensors are shared
// by reference between the graph nodes that consume or produce them, so a
// constant's buffer may have multiple readers across the graph.
type Tensor struct {
	name    string
	shape   Shape
	dtype   DataType
	isConst bool
	data    []byte // element values, only when isConst
}

// New creates a variable tensor with the given shape and element type.
// Variable tensors carry no buffer; their values exist only at run time.
func New(name string, shape Shape, dtype DataType) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Tensor{
		name:  name,
		shape: shape.Clone(),
		dtype: dtype,
	}, nil
}

// FromFloat32s creates a constant float32 tensor from the given values.
// The values are copied into the tensor's own buffer.
func FromFloat32s(name string, shape Shape, values []float32) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != len(values) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(values))
	}

	t := &Tensor{
		name:    name,
		shape:   shape.Clone(),
		dtype:   Float32,
		isConst: true,
		data:    make([]byte, len(values)*Float32.Size()),
	}
	dst, err := t.Float32s()
	if err != nil {
		return nil, err
	}
	copy(dst, values)
	return t, nil
}

// FromRaw creates a constant tensor from raw element bytes, as delivered
// by the graph's initializer records. The bytes are copied.
func FromRaw(name string, shape Shape, dtype DataType, raw []byte) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if want := shape.NumElements() * dtype.Size(); len(raw) != want {
		return nil, fmt.Errorf("shape %v of %s requires %d bytes, but got %d", shape, dtype, want, len(raw))
	}

	t := &Tensor{
		name:    name,
		shape:   shape.Clone(),
		dtype:   dtype,
		isConst: true,
		data:    make([]byte, len(raw)),
	}
	copy(t.data, raw)
	return t, nil
}

// Name returns the tensor's graph name.
func (t *Tensor) Name() string {
	return t.name
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// DType returns the tensor's element type.
func (t *Tensor) DType() DataType {
	return t.dtype
}

// Const reports whether the tensor's value is known at compile time.
func (t *Tensor) Const() bool {
	return t.isConst
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.shape.NumElements()
}

// Float32s returns a typed view of the tensor's constant buffer.
// The view aliases the buffer: modifications are visible to every reader
// of the tensor. It fails for variable tensors and for any element type
// other than float32, so emission code cannot misinterpret raw bytes.
func (t *Tensor) Float32s() ([]float32, error) {
	if !t.isConst {
		return nil, fmt.Errorf("tensor %q is not constant", t.name)
	}
	if t.dtype != Float32 {
		return nil, fmt.Errorf("tensor %q holds %s elements, not float32", t.name, t.dtype)
	}
	if len(t.data) == 0 {
		return nil, nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&t.data[0])), t.NumElements()), nil
}

// Clone returns a deep copy of the tensor, including its constant buffer.
// The copy shares nothing with the original.
func (t *Tensor) Clone() *Tensor {
	clone := &Tensor{
		name:    t.name,
		shape:   t.shape.Clone(),
		dtype:   t.dtype,
		isConst: t.isConst,
	}
	if t.data != nil {
		clone.data = make([]byte, len(t.data))
		copy(clone.data, t.data)
	}
	return clone
}

// WithName returns the tensor itself after renaming it. Used when a
// lowering derives a private constant from a graph tensor and needs a
// fresh name to register it under.
func (t *Tensor) WithName(name string) *Tensor {
	t.name = name
	return t
}
