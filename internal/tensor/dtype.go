// Package tensor provides the compile-time tensor model for the bornc compiler.
package tensor

// DataType represents runtime type information for tensors.
//
// The set covers the ONNX element types that can reach a node lowering;
// most lowerings accept only the plain floating-point subset.
type DataType int

// Supported element types.
const (
	Float32 DataType = iota
	Float64
	Float16
	Int8
	Int16
	Int32
	Int64
	Uint8
	Bool
	String
)

// Size returns the byte size of one element, or 0 for variable-size types.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Float16, Int16:
		return 2
	case Int8, Uint8, Bool:
		return 1
	case String:
		return 0
	default:
		panic("unknown data type")
	}
}

// IsPlainFloat reports whether the type is a plain (non-quantized)
// floating-point type. Node operands outside this subset are rejected.
func (dt DataType) IsPlainFloat() bool {
	switch dt {
	case Float32, Float64, Float16:
		return true
	default:
		return false
	}
}

// CType returns the C type name used for this element type in emitted source.
func (dt DataType) CType() string {
	switch dt {
	case Float32:
		return "float"
	case Float64:
		return "double"
	case Float16:
		return "_Float16"
	case Int8:
		return "int8_t"
	case Int16:
		return "int16_t"
	case Int32:
		return "int32_t"
	case Int64:
		return "int64_t"
	case Uint8:
		return "uint8_t"
	case Bool:
		return "bool"
	default:
		panic("no C type for data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Float16:
		return "float16"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	case String:
		return "string"
	default:
		return "unknown"
	}
}
