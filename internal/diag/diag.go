// Package diag defines the error taxonomy shared by all node lowerings.
//
// Every error is fatal to the node being compiled: there is no local
// recovery. Callers wrap these sentinels with context and discriminate
// with errors.Is.
package diag

import "errors"

// Sentinel error kinds surfaced by node resolution and emission.
var (
	// ErrAttribute reports a missing or mistyped attribute value, or an
	// unrecognized attribute name.
	ErrAttribute = errors.New("attribute error")

	// ErrUnimplemented reports a configuration the compiler does not support.
	ErrUnimplemented = errors.New("unimplemented")

	// ErrArity reports a wrong operand count.
	ErrArity = errors.New("wrong number of inputs")

	// ErrType reports an operand with an unsupported element type.
	ErrType = errors.New("incorrect input")
)
