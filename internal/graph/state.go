package graph

// NodeState tracks a node's progress through the two-phase protocol.
//
// Unresolved -> Binding -> Folding -> Emitted, with Rejected terminal on
// any binding or folding failure. Emission on an unresolved node is an
// error, as is resolving the same node twice: variance folding mutates
// buffers and is not idempotent.
type NodeState int

// Node lifecycle states.
const (
	Unresolved NodeState = iota
	Binding
	Folding
	Emitted
	Rejected
)

// String returns a human-readable state name.
func (s NodeState) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Binding:
		return "binding"
	case Folding:
		return "folding"
	case Emitted:
		return "emitted"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}
