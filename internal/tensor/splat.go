package tensor

import (
	"github.com/pkg/errors"

	"github.com/born-ml/bornc/internal/diag"
)

// IsSplatted reports whether t is a constant tensor every element of which
// equals value exactly. Non-constant tensors are never splatted. The check
// is only implemented for float32 tensors; attempting it on a constant of
// any other element type fails with diag.ErrUnimplemented.
func IsSplatted(t *Tensor, value float32) (bool, error) {
	if !t.Const() {
		return false, nil
	}
	if t.DType() != Float32 {
		return false, errors.Wrapf(diag.ErrUnimplemented, "splat check for %s tensor %q", t.DType(), t.Name())
	}

	vals, err := t.Float32s()
	if err != nil {
		return false, err
	}
	for _, v := range vals {
		if v != value {
			return false, nil
		}
	}
	return true, nil
}
