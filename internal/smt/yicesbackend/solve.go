//go:build cgo

package yicesbackend

import (
	"github.com/pkg/errors"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"

	"smtcore/internal/smt"
)

func (b *Backend) AssertFormula(t smt.BackendTerm) error {
	if code := yices2.AssertFormula(b.ctx, t.(yices2.TermT)); code < 0 {
		return errors.Errorf("assert_formula: %s", yices2.ErrorString())
	}
	return nil
}

func (b *Backend) CheckSat() (smt.Result, error) {
	status := yices2.CheckContext(b.ctx, yices2.ParamT{})
	return b.finishCheck(status)
}

func (b *Backend) CheckSatAssuming(assumptions []smt.BackendTerm) (smt.Result, error) {
	ts := make([]yices2.TermT, len(assumptions))
	for i, a := range assumptions {
		ts[i] = a.(yices2.TermT)
	}
	status := yices2.CheckContextWithAssumptions(b.ctx, yices2.ParamT{}, ts)
	return b.finishCheck(status)
}

func (b *Backend) finishCheck(status yices2.SmtStatusT) (smt.Result, error) {
	switch status {
	case yices2.StatusSat:
		b.model = yices2.GetModel(b.ctx, 1)
		return smt.Sat, nil
	case yices2.StatusUnsat:
		b.model = nil
		return smt.Unsat, nil
	default:
		b.model = nil
		return smt.Unknown, nil
	}
}

func (b *Backend) Push(n uint64) error {
	for i := uint64(0); i < n; i++ {
		if code := yices2.Push(b.ctx); code < 0 {
			return errors.Errorf("push: %s", yices2.ErrorString())
		}
	}
	return nil
}

func (b *Backend) Pop(n uint64) error {
	for i := uint64(0); i < n; i++ {
		if code := yices2.Pop(b.ctx); code < 0 {
			return errors.Errorf("pop: %s", yices2.ErrorString())
		}
	}
	return nil
}

func (b *Backend) GetValue(t smt.BackendTerm) (smt.BackendTerm, error) {
	if b.model == nil {
		return nil, errors.New("get_value called without a satisfiable model")
	}
	term := t.(yices2.TermT)
	value := yices2.GetValue(*b.model, term)
	if value == yices2.NullTerm {
		return nil, errors.Errorf("get_value: %s", yices2.ErrorString())
	}
	return value, nil
}

// GetArrayValues has no general implementation here: yices encodes
// arrays as uninterpreted functions, and reading back a function's full
// finite graph from a model needs yices_model_collect_defined_terms
// applied to the *domain*, a query this adapter's retrieved bindings
// don't expose in a form this package can drive safely. Surfaced rather
// than guessed.
func (b *Backend) GetArrayValues(arr smt.BackendTerm) (map[smt.BackendTerm]smt.BackendTerm, smt.BackendTerm, error) {
	return nil, nil, smt.NewNotImplementedError("get_array_values is not implemented by the yices backend adapter")
}
