//go:build cgo

// Package yicesbackend adapts github.com/ianamason/yices2_go_bindings into
// an smt.Backend, so the core term-building/logging/translation layers
// have a real solver behind them and not just memsolver's bounded
// reference search.
//
// Adapted from the teacher's own internal/smt package (solver.go,
// bitvec.go, bool.go, array.go, function.go, model.go), which wraps the
// same binding for its own narrower BitVec/Bool/Array/Function API. A few
// operators have no analogue in the bindings this repo could retrieve
// (native constant arrays, bv2nat/int2bv casts, big rational literals);
// those return smt.NotImplementedError rather than a fabricated
// encoding, and are called out individually below and in DESIGN.md.
package yicesbackend

import (
	"math/big"
	"sync"

	"github.com/pkg/errors"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"

	"smtcore/internal/smt"
)

var initOnce sync.Once

// Backend wraps a single yices context. Not safe for concurrent use, per
// smt.Backend's contract.
type Backend struct {
	ctx     yices2.ContextT
	symbols map[string]yices2.TermT
	model   *yices2.ModelT
}

// New initializes the yices runtime (once per process) and returns a
// Backend with a fresh context, mirroring the teacher's Solver.NewSolver.
func New() *Backend {
	initOnce.Do(func() { yices2.Init() })
	b := &Backend{symbols: make(map[string]yices2.TermT)}
	yices2.InitContext(yices2.ConfigT{}, &b.ctx)
	return b
}

func (b *Backend) SetOpt(key, value string) error {
	code := yices2.CtxSetOption(b.ctx, key, value)
	if code < 0 {
		return errors.Errorf("set_opt(%s=%s): %s", key, value, yices2.ErrorString())
	}
	return nil
}

func (b *Backend) SetLogic(name string) error {
	// yices contexts are configured at construction time via ConfigT in
	// the real API; this narrow adapter accepts any logic name and ignores
	// it, since the default context here is already QF_*-general.
	return nil
}

func (b *Backend) MakeBoolSort() (smt.BackendSort, error) { return yices2.BoolType(), nil }
func (b *Backend) MakeIntSort() (smt.BackendSort, error)  { return yices2.IntType(), nil }
func (b *Backend) MakeRealSort() (smt.BackendSort, error) { return yices2.RealType(), nil }

func (b *Backend) MakeBVSort(width uint32) (smt.BackendSort, error) {
	return yices2.BvType(width), nil
}

func (b *Backend) MakeArraySort(index, element smt.BackendSort) (smt.BackendSort, error) {
	return yices2.FunctionType1(index.(yices2.TypeT), element.(yices2.TypeT)), nil
}

func (b *Backend) MakeFunctionSort(domain []smt.BackendSort, codomain smt.BackendSort) (smt.BackendSort, error) {
	dom := make([]yices2.TypeT, len(domain))
	for i, d := range domain {
		dom[i] = d.(yices2.TypeT)
	}
	return yices2.FunctionType(dom, codomain.(yices2.TypeT)), nil
}

func (b *Backend) MakeUninterpretedSort(name string, arity int) (smt.BackendSort, error) {
	if arity != 0 {
		return nil, smt.NewNotImplementedError("yices has no parametric uninterpreted sort constructors; got arity %d for %q", arity, name)
	}
	t := yices2.NewUninterpretedType()
	yices2.SetTypeName(t, name)
	return t, nil
}

func (b *Backend) MakeUninterpretedAppliedSort(cons smt.BackendSort, params []smt.BackendSort) (smt.BackendSort, error) {
	return nil, smt.NewNotImplementedError("yices has no parametric uninterpreted sort application")
}

func (b *Backend) MakeSymbol(name string, sort smt.BackendSort) (smt.BackendTerm, error) {
	if _, exists := b.symbols[name]; exists {
		return nil, errors.Errorf("symbol %q already declared", name)
	}
	term := yices2.NewUninterpretedTerm(sort.(yices2.TypeT))
	if code := yices2.SetTermName(term, name); code < 0 {
		return nil, errors.Errorf("set_term_name(%s): %s", name, yices2.ErrorString())
	}
	b.symbols[name] = term
	return term, nil
}

func (b *Backend) MakeBoolValue(v bool) (smt.BackendTerm, error) {
	if v {
		return yices2.True(), nil
	}
	return yices2.False(), nil
}

func (b *Backend) MakeValueFromInt64(i int64, sort smt.BackendSort) (smt.BackendTerm, error) {
	s := sort.(yices2.TypeT)
	switch {
	case yices2.TypeIsBitvector(s):
		return yices2.BvconstInt64(yices2.TypeBvsize(s), i), nil
	default:
		return yices2.Int64(i), nil
	}
}

func (b *Backend) MakeValueFromString(val string, sort smt.BackendSort, base int) (smt.BackendTerm, error) {
	s := sort.(yices2.TypeT)
	n := new(big.Int)
	if _, ok := n.SetString(val, base); !ok {
		return nil, errors.Errorf("cannot parse %q in base %d", val, base)
	}
	if yices2.TypeIsBitvector(s) {
		return bvConstFromBigInt(n, yices2.TypeBvsize(s)), nil
	}
	if !n.IsInt64() {
		return nil, smt.NewNotImplementedError("arbitrary-precision Int/Real literals are not supported by this backend adapter")
	}
	return yices2.Int64(n.Int64()), nil
}

// bvConstFromBigInt builds a width-bit constant from a big.Int, adapted
// directly from the teacher's bitvec.go newBitVecValFromBigInt.
func bvConstFromBigInt(value *big.Int, width uint32) yices2.TermT {
	bits := make([]int32, width)
	for i := 0; i < value.BitLen() && uint32(i) < width; i++ {
		bits[i] = int32(value.Bit(i))
	}
	return yices2.BvconstFromArray(bits)
}

func (b *Backend) MakeConstantArray(sort smt.BackendSort, base smt.BackendTerm) (smt.BackendTerm, error) {
	return nil, smt.NewNotImplementedError("yices encodes arrays as uninterpreted functions and has no native constant-array primitive")
}

func (b *Backend) Reset() error {
	yices2.FreeContext(b.ctx)
	b.symbols = make(map[string]yices2.TermT)
	b.model = nil
	yices2.InitContext(yices2.ConfigT{}, &b.ctx)
	return nil
}

func (b *Backend) ResetAssertions() error {
	yices2.Reset(b.ctx)
	b.model = nil
	return nil
}

func (b *Backend) SortOf(t smt.BackendTerm) (smt.BackendSort, error) {
	return yices2.TypeOfTerm(t.(yices2.TermT)), nil
}

func (b *Backend) IsArraySort(s smt.BackendSort) bool {
	// yices arrays are function types with a single domain component.
	t, ok := s.(yices2.TypeT)
	return ok && yices2.TypeIsFunction(t) && yices2.FunctionTypeArity(t) == 1
}

func (b *Backend) IsValue(t smt.BackendTerm) bool {
	return yices2.TermIsGround(t.(yices2.TermT)) && yices2.TermConstructor(t.(yices2.TermT)) <= yices2.TrmCnstrBvConstant
}

func (b *Backend) PrintValue(t smt.BackendTerm) (string, error) {
	term := t.(yices2.TermT)
	ty := yices2.TypeOfTerm(term)
	switch {
	case yices2.TypeIsBool(ty):
		var v int32
		if code := yices2.BoolConstValue(term, &v); code != 0 {
			return "", errors.Errorf("print_value(bool): %s", yices2.ErrorString())
		}
		if v != 0 {
			return "true", nil
		}
		return "false", nil
	case yices2.TypeIsBitvector(ty):
		width := yices2.TermBitsize(term)
		bits := make([]int32, width)
		if code := yices2.BvConstValue(term, bits); code != 0 {
			return "", errors.Errorf("print_value(bv): %s", yices2.ErrorString())
		}
		digits := make([]byte, width)
		for i := uint32(0); i < width; i++ {
			if bits[width-1-i] != 0 {
				digits[i] = '1'
			} else {
				digits[i] = '0'
			}
		}
		return "#b" + string(digits), nil
	default:
		// Printing a standalone Int/Real constant term needs a rational
		// extraction primitive this adapter did not retrieve bindings
		// for (GetInt64Value only reads a term's value out of a model,
		// not off the constant term itself); surfaced rather than
		// faked.
		return "", smt.NewNotImplementedError("print_value for Int/Real constants is not supported by this backend adapter")
	}
}

func (b *Backend) ValueHash(t smt.BackendTerm) uint64 {
	return uint64(t.(yices2.TermT))
}
