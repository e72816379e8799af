package nodes

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/born-ml/bornc/internal/cgen"
	"github.com/born-ml/bornc/internal/diag"
	"github.com/born-ml/bornc/internal/graph"
	"github.com/born-ml/bornc/internal/onnx"
	"github.com/born-ml/bornc/internal/tensor"
)

// Compile lowers every node of g in the order the nodes were added and
// returns the emitted source for the nodes that resolved. Failures are
// aggregated per node, so one compile reports every broken node; the
// caller decides whether partial output is usable.
func Compile(g *graph.Graph, r *Registry) (string, error) {
	var sb strings.Builder
	var errs error
	for _, n := range g.Nodes() {
		body, err := compileNode(g, r, n)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "node %q (%s)", n.Name, n.OpType))
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(body)
	}
	return sb.String(), errs
}

func compileNode(g *graph.Graph, r *Registry, n *onnx.Node) (string, error) {
	ctor, ok := r.Get(n.OpType)
	if !ok {
		return "", errors.Wrapf(diag.ErrUnimplemented, "unsupported operator %q", n.OpType)
	}
	l := ctor()

	if err := l.ParseAttributes(n); err != nil {
		return "", err
	}

	inputs := make([]*tensor.Tensor, 0, len(n.Inputs))
	for _, name := range n.Inputs {
		t, ok := g.Tensor(name)
		if !ok {
			return "", errors.Errorf("unknown input tensor %q", name)
		}
		inputs = append(inputs, t)
	}
	if err := l.Resolve(g, inputs); err != nil {
		return "", err
	}

	// A node may declare more outputs than its lowering produces, e.g.
	// BatchNormalization's optional running statistics. Reject here, on
	// the graph side, rather than in each lowering.
	if len(n.Outputs) > len(g.NodeOutputs(n)) {
		return "", errors.Wrapf(diag.ErrUnimplemented, "node declares %d outputs, lowering produces %d",
			len(n.Outputs), len(g.NodeOutputs(n)))
	}

	w := cgen.NewWriter()
	if err := l.Emit(w); err != nil {
		return "", err
	}
	return w.String(), nil
}
