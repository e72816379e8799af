// Package onnx provides the node and attribute data model consumed by
// node lowerings.
//
// Parsing the serialized graph description is out of scope here: the
// surrounding compiler decodes protobuf and hands lowerings these plain
// records.
package onnx

// Attribute types (ONNX AttributeProto.AttributeType).
const (
	AttrUndefined = 0
	AttrFloat     = 1 // single float
	AttrInt       = 2 // single int
	AttrString    = 3 // single string
	AttrTensor    = 4 // tensor value
	AttrGraph     = 5 // subgraph
	AttrFloats    = 6 // float array
	AttrInts      = 7 // int array
	AttrStrings   = 8 // string array
)

// Node represents one operation node of the computation graph.
type Node struct {
	Name       string      // Node name (optional)
	OpType     string      // Operation type (e.g., "BatchNormalization")
	Inputs     []string    // Input tensor names
	Outputs    []string    // Output tensor names
	Attributes []Attribute // Operation attributes
}

// Attribute represents a node attribute.
type Attribute struct {
	Name   string    // Attribute name
	Type   int32     // Attribute type (Attr* constant)
	F      float32   // FLOAT value
	I      int64     // INT value
	S      []byte    // STRING value
	Floats []float32 // FLOATS array
	Ints   []int64   // INTS array
}
