// Package translate moves terms built against one logging.Solver into
// the world of another, coercing across the small set of sorts SMT-LIB
// backends disagree about (spec §4.5/§4.6), grounded on
// original_source/include/term_translator.h's TermTranslator.
package translate

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"smtcore/internal/smt"
	"smtcore/internal/smt/logging"
)

// Translator carries terms from a source backend's world into a
// destination logging.Solver, one term/sort at a time, memoizing every
// transfer so a term referenced many times in the source graph is only
// ever rebuilt once in the destination.
type Translator struct {
	src  smt.Backend
	dest *logging.Solver

	termCache map[*logging.Term]*logging.Term
	sortCache map[uint64]*logging.Sort
}

// New returns a Translator that reads literal values through src (the
// backend that produced them) and rebuilds everything against dest.
func New(src smt.Backend, dest *logging.Solver) *Translator {
	return &Translator{
		src:       src,
		dest:      dest,
		termCache: make(map[*logging.Term]*logging.Term),
		sortCache: make(map[uint64]*logging.Sort),
	}
}

// Cache exposes the term memo table so a caller can pre-populate it with
// known correspondences (e.g. shared symbols already declared in both
// worlds) before translating, per spec §4.5.
func (tr *Translator) Cache() map[*logging.Term]*logging.Term { return tr.termCache }

// TransferSort rebuilds s's structure against the destination solver.
func (tr *Translator) TransferSort(s *logging.Sort) (*logging.Sort, error) {
	return tr.transferSortInfo(s.Info)
}

func (tr *Translator) transferSortInfo(info smt.Sort) (*logging.Sort, error) {
	if cached, ok := tr.sortCache[info.Hash()]; ok && cached.Info.Equal(info) {
		return cached, nil
	}
	built, err := tr.buildSort(info)
	if err != nil {
		return nil, err
	}
	tr.sortCache[info.Hash()] = built
	return built, nil
}

func (tr *Translator) buildSort(info smt.Sort) (*logging.Sort, error) {
	switch info.Kind() {
	case smt.Bool:
		return tr.dest.MakeSort(smt.Bool)
	case smt.Int:
		return tr.dest.MakeSort(smt.Int)
	case smt.Real:
		return tr.dest.MakeSort(smt.Real)
	case smt.BV:
		return tr.dest.MakeBVSort(info.Width())
	case smt.Array:
		idx, err := tr.transferSortInfo(info.IndexSort())
		if err != nil {
			return nil, err
		}
		elem, err := tr.transferSortInfo(info.ElementSort())
		if err != nil {
			return nil, err
		}
		return tr.dest.MakeSort(smt.Array, idx, elem)
	case smt.Function:
		domain := info.Domain()
		params := make([]*logging.Sort, len(domain)+1)
		for i, d := range domain {
			transferred, err := tr.transferSortInfo(d)
			if err != nil {
				return nil, err
			}
			params[i] = transferred
		}
		codomain, err := tr.transferSortInfo(info.Codomain())
		if err != nil {
			return nil, err
		}
		params[len(domain)] = codomain
		return tr.dest.MakeSort(smt.Function, params...)
	case smt.Uninterpreted:
		return tr.dest.MakeUninterpretedSortCons(info.Name(), 0)
	case smt.UninterpretedCons:
		return tr.dest.MakeUninterpretedSortCons(info.Name(), info.Arity())
	case smt.UninterpretedApplied:
		cons, err := tr.transferSortInfo(info.Constructor())
		if err != nil {
			return nil, err
		}
		srcParams := info.Params()
		params := make([]*logging.Sort, len(srcParams))
		for i, p := range srcParams {
			transferred, err := tr.transferSortInfo(p)
			if err != nil {
				return nil, err
			}
			params[i] = transferred
		}
		return tr.dest.MakeUninterpretedAppliedSort(cons, params)
	}
	return nil, smt.NewNotImplementedError("cannot transfer sort of kind %s", info.Kind())
}

// TransferTerm moves t into the destination world without coercing its
// sort, walking t's structure post-order (spec §4.5).
func (tr *Translator) TransferTerm(t *logging.Term) (*logging.Term, error) {
	return tr.transfer(t)
}

// TransferTermAsKind is TransferTerm followed by a coercion to
// expectedKind when the transferred term's sort doesn't already match it
// (spec §4.6: Bool<->BV(1), Int<->Real).
func (tr *Translator) TransferTermAsKind(t *logging.Term, expectedKind smt.SortKind) (*logging.Term, error) {
	transferred, err := tr.transfer(t)
	if err != nil {
		return nil, err
	}
	return tr.castTerm(transferred, expectedKind)
}

func (tr *Translator) transfer(t *logging.Term) (*logging.Term, error) {
	if cached, ok := tr.termCache[t]; ok {
		return cached, nil
	}

	destSort, err := tr.TransferSort(t.SortVal)
	if err != nil {
		return nil, err
	}

	var result *logging.Term
	switch {
	case t.HasSymbol:
		result, err = tr.dest.MakeSymbol(t.SymbolName, destSort)

	case t.IsValue && len(t.Children) == 0:
		result, err = tr.valueFromSMT2(t, destSort)

	case t.IsConstArray():
		var base *logging.Term
		base, err = tr.transfer(t.Children[0])
		if err == nil {
			result, err = tr.dest.MakeConstantArray(destSort, base)
		}

	default:
		children := make([]*logging.Term, len(t.Children))
		for i, c := range t.Children {
			children[i], err = tr.transfer(c)
			if err != nil {
				break
			}
		}
		if err == nil {
			children, err = tr.coerceForOp(t.Op, children)
		}
		if err == nil {
			result, err = tr.dest.MakeTerm(t.Op, children...)
		}
	}
	if err != nil {
		return nil, err
	}

	log.Debugf("translated %s : %s", t.Op, destSort)
	tr.termCache[t] = result
	return result, nil
}

// valueFromSMT2 reads t's literal value out of the source backend as an
// SMT-LIB2 numeral string and rebuilds it against the destination sort,
// grounded on term_translator.h's value_from_smt2.
func (tr *Translator) valueFromSMT2(t *logging.Term, destSort *logging.Sort) (*logging.Term, error) {
	str, err := tr.src.PrintValue(t.Backend)
	if err != nil {
		return nil, smt.WrapBackendError(err, "print_value during translation")
	}
	switch destSort.Info.Kind() {
	case smt.Bool:
		return tr.dest.MakeBoolValue(str == "true")
	case smt.BV:
		return tr.dest.MakeValueFromString(strings.TrimPrefix(str, "#b"), destSort, 2)
	case smt.Int, smt.Real:
		return tr.dest.MakeValueFromString(str, destSort, 10)
	default:
		return nil, smt.NewNotImplementedError("value_from_smt2 unsupported for sort kind %s", destSort.Info.Kind())
	}
}

// castTerm coerces t to expectedKind if it isn't already, per the small
// coercion table spec §4.6 defines: Bool<->BV(1), Int<->Real. Any other
// mismatch surfaces NotImplementedError rather than guessing. Indices are
// never examined here: coerceForOp only casts the children of the Bool
// and BV operator families below, none of which is indexed, so an
// indexed operator such as Extract is always rebuilt over children of
// their source width.
func (tr *Translator) castTerm(t *logging.Term, expectedKind smt.SortKind) (*logging.Term, error) {
	kind := t.SortVal.Info.Kind()
	if kind == expectedKind {
		return t, nil
	}

	switch {
	case kind == smt.Bool && expectedKind == smt.BV:
		bvSort, err := tr.dest.MakeBVSort(1)
		if err != nil {
			return nil, err
		}
		one, err := tr.dest.MakeValueFromInt64(1, bvSort)
		if err != nil {
			return nil, err
		}
		zero, err := tr.dest.MakeValueFromInt64(0, bvSort)
		if err != nil {
			return nil, err
		}
		return tr.dest.MakeTerm(smt.NewOp(smt.Ite), t, one, zero)

	case kind == smt.BV && expectedKind == smt.Bool:
		if t.SortVal.Info.Width() != 1 {
			return nil, smt.NewNotImplementedError("cannot coerce BV(%d) to Bool, only BV(1)", t.SortVal.Info.Width())
		}
		one, err := tr.dest.MakeValueFromInt64(1, t.SortVal)
		if err != nil {
			return nil, err
		}
		return tr.dest.MakeTerm(smt.NewOp(smt.Equal), t, one)

	case kind == smt.Int && expectedKind == smt.Real:
		return tr.dest.MakeTerm(smt.NewOp(smt.ToReal), t)

	case kind == smt.Real && expectedKind == smt.Int:
		return tr.dest.MakeTerm(smt.NewOp(smt.ToInt), t)

	default:
		return nil, smt.NewNotImplementedError("no coercion from %s to %s", kind, expectedKind)
	}
}

// boolOps/bvOps identify the operator families cast_op unifies children
// sorts for, mirroring term_translator.h's cast_op: an operator built
// from children translated out of backends with different native
// theories (e.g. one backend has no Bool, only BV(1)) needs its children
// brought back to a single sort before the destination backend will
// accept them.
var boolOps = map[smt.PrimOp]bool{
	smt.And: true, smt.Or: true, smt.Xor: true, smt.Not: true,
	smt.Implies: true, smt.Iff: true,
}

var bvOps = map[smt.PrimOp]bool{
	smt.BVAnd: true, smt.BVOr: true, smt.BVXor: true, smt.BVNot: true,
	smt.BVNand: true, smt.BVNor: true, smt.BVXnor: true, smt.BVNeg: true,
	smt.BVAdd: true, smt.BVSub: true, smt.BVMul: true,
	smt.BVUdiv: true, smt.BVSdiv: true, smt.BVUrem: true, smt.BVSrem: true, smt.BVSmod: true,
	smt.BVShl: true, smt.BVAshr: true, smt.BVLshr: true, smt.BVComp: true,
	smt.BVUlt: true, smt.BVUle: true, smt.BVUgt: true, smt.BVUge: true,
	smt.BVSlt: true, smt.BVSle: true, smt.BVSgt: true, smt.BVSge: true,
}

func (tr *Translator) coerceForOp(op smt.Op, children []*logging.Term) ([]*logging.Term, error) {
	var target smt.SortKind
	switch {
	case boolOps[op.PrimOp]:
		target = smt.Bool
	case bvOps[op.PrimOp]:
		target = smt.BV
	default:
		return children, nil
	}
	out := make([]*logging.Term, len(children))
	for i, c := range children {
		coerced, err := tr.castTerm(c, target)
		if err != nil {
			return nil, err
		}
		out[i] = coerced
	}
	return out, nil
}
