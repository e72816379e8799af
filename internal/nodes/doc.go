// Package nodes implements the per-operator lowerings of the bornc
// compiler.
//
// A lowering turns one graph node into shape-specialized C source. Each
// operator kind is a closed variant behind the graph.Lowering capability
// set {ParseAttributes, Resolve, Emit}, selected through a string-keyed
// registry; unknown kinds fall through to a single rejection path.
//
// Lowerings follow a strict two-phase protocol: resolution (attribute
// parsing, operand binding and validation, constant folding, output
// allocation) runs exactly once per node, then emission produces the
// source text. Emission is idempotent; resolution is not, because
// constant folding may rewrite buffers.
package nodes
