package nodes

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/born-ml/bornc/internal/graph"
)

// Constructor creates a fresh lowering for one node. Lowerings carry
// per-node state, so every node gets its own instance.
type Constructor func() graph.Lowering

// Registry maps operator types to lowering constructors.
type Registry struct {
	builders map[string]Constructor
}

// NewRegistry creates a registry with all supported operators.
func NewRegistry() *Registry {
	r := &Registry{
		builders: make(map[string]Constructor),
	}

	r.Register("BatchNormalization", func() graph.Lowering { return NewBatchNormalization() })

	return r
}

// Register adds a custom lowering constructor.
func (r *Registry) Register(opType string, c Constructor) {
	r.builders[opType] = c
}

// Get returns the constructor for an operator type.
func (r *Registry) Get(opType string) (Constructor, bool) {
	c, ok := r.builders[opType]
	return c, ok
}

// SupportedOps returns the sorted list of supported operator types.
func (r *Registry) SupportedOps() []string {
	ops := maps.Keys(r.builders)
	sort.Strings(ops)
	return ops
}
