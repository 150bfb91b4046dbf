package smt

// Utility functions for checking sortedness and computing the expected
// sort when building a term. Ported from smt-switch's sort_inference.cpp:
// a process-wide immutable dispatch table maps each PrimOp family to a
// pure predicate over the argument sort vector, consulted after a single
// arity check ahead of dispatch.

type sortPredicate func(sorts []Sort) bool

var sortCheckDispatch = map[PrimOp]sortPredicate{
	And: boolSorts, Or: boolSorts, Xor: boolSorts, Not: boolSorts,
	Implies: boolSorts, Iff: boolSorts, Ite: checkIteSorts,
	Equal: equalSorts, Distinct: equalSorts, Apply: checkApplySorts,

	Plus: arithmeticSorts, Minus: arithmeticSorts, Negate: arithmeticSorts,
	Mult: arithmeticSorts, Div: arithmeticSorts,
	Lt: arithmeticSorts, Le: arithmeticSorts, Gt: arithmeticSorts, Ge: arithmeticSorts,
	Mod: intSorts, Abs: intSorts, Pow: intSorts, IntDiv: intSorts,
	ToReal: intSorts, ToInt: realSorts, IsInt: intSorts,

	Concat: bvSorts, Extract: bvSorts, ZeroExtend: bvSorts, SignExtend: bvSorts,
	Repeat: bvSorts, RotateLeft: bvSorts, RotateRight: bvSorts, BVToNat: bvSorts,
	BVNot: bvSorts, BVNeg: bvSorts,
	BVAnd: eqBVSorts, BVOr: eqBVSorts, BVXor: eqBVSorts, BVNand: eqBVSorts,
	BVNor: eqBVSorts, BVXnor: eqBVSorts, BVAdd: eqBVSorts, BVSub: eqBVSorts,
	BVMul: eqBVSorts, BVUdiv: eqBVSorts, BVSdiv: eqBVSorts, BVUrem: eqBVSorts,
	BVSrem: eqBVSorts, BVSmod: eqBVSorts, BVShl: eqBVSorts, BVAshr: eqBVSorts,
	BVLshr: eqBVSorts, BVComp: eqBVSorts, BVUlt: eqBVSorts, BVUle: eqBVSorts,
	BVUgt: eqBVSorts, BVUge: eqBVSorts, BVSlt: eqBVSorts, BVSle: eqBVSorts,
	BVSgt: eqBVSorts, BVSge: eqBVSorts,
	IntToBV: intSorts,

	Select: checkSelectSorts, Store: checkStoreSorts,
}

// CheckSortedness reports whether op applied to terms of the given sorts
// (in order) is well-sorted: arity in range, and the operator family's
// sortedness predicate accepts the argument sort vector.
func CheckSortedness(op Op, argSorts []Sort) (bool, error) {
	min, max, ok := GetArity(op.PrimOp)
	if !ok {
		return false, NewNotImplementedError("sort checking for operator %s is not implemented", op)
	}
	n := len(argSorts)
	if n < min || n > max {
		return false, nil
	}
	pred, ok := sortCheckDispatch[op.PrimOp]
	if !ok {
		return false, NewNotImplementedError("sort checking for operator %s is not implemented", op)
	}
	return pred(argSorts), nil
}

// ComputeSort computes the result sort of op applied to arguments of
// argSorts. backendSort, the sort the backend itself reported for the
// built term, is not examined: the result depends only on op and argSorts,
// so the logging layer's sorts survive backend simplification.
func ComputeSort(op Op, argSorts []Sort, backendSort Sort) (Sort, error) {
	switch op.PrimOp {
	case And, Or, Xor, Not, Implies, Iff, Equal, Distinct,
		Lt, Le, Gt, Ge, IsInt,
		BVUlt, BVUle, BVUgt, BVUge, BVSlt, BVSle, BVSgt, BVSge, BVComp:
		return NewBoolSort(), nil

	case Plus, Minus, Negate, Mult, Div, Mod, Abs, Pow, IntDiv:
		if len(argSorts) == 0 {
			return Sort{}, NewSortError("%s requires at least one argument", op)
		}
		return argSorts[0], nil

	case ToReal:
		return NewRealSort(), nil
	case ToInt:
		return NewIntSort(), nil

	case BVNot, BVNeg, BVAnd, BVOr, BVXor, BVNand, BVNor, BVXnor,
		BVAdd, BVSub, BVMul, BVUdiv, BVSdiv, BVUrem, BVSrem, BVSmod,
		BVShl, BVAshr, BVLshr, RotateLeft, RotateRight:
		if len(argSorts) == 0 {
			return Sort{}, NewSortError("%s requires at least one argument", op)
		}
		return argSorts[0], nil

	case Concat:
		var width uint32
		for _, s := range argSorts {
			width += s.Width()
		}
		return NewBVSort(width)

	case Extract:
		if len(op.Indices) != 2 {
			return Sort{}, NewSortError("Extract requires exactly 2 indices")
		}
		hi, lo := op.Indices[0], op.Indices[1]
		if hi < lo || lo < 0 {
			return Sort{}, NewSortError("Extract(%d,%d) is not a valid range", hi, lo)
		}
		return NewBVSort(uint32(hi - lo + 1))

	case ZeroExtend, SignExtend:
		if len(op.Indices) != 1 {
			return Sort{}, NewSortError("%s requires exactly 1 index", op)
		}
		return NewBVSort(argSorts[0].Width() + uint32(op.Indices[0]))

	case Repeat:
		if len(op.Indices) != 1 {
			return Sort{}, NewSortError("Repeat requires exactly 1 index")
		}
		return NewBVSort(argSorts[0].Width() * uint32(op.Indices[0]))

	case BVToNat:
		return NewIntSort(), nil

	case IntToBV:
		if len(op.Indices) != 1 {
			return Sort{}, NewSortError("Int_To_BV requires exactly 1 index")
		}
		return NewBVSort(uint32(op.Indices[0]))

	case Select:
		if len(argSorts) != 2 {
			return Sort{}, NewSortError("Select requires exactly 2 arguments")
		}
		return argSorts[0].ElementSort(), nil

	case Store:
		if len(argSorts) != 3 {
			return Sort{}, NewSortError("Store requires exactly 3 arguments")
		}
		return argSorts[0], nil

	case Apply:
		if len(argSorts) == 0 {
			return Sort{}, NewSortError("Apply requires at least one argument")
		}
		return argSorts[0].Codomain(), nil

	case Ite:
		if len(argSorts) != 3 {
			return Sort{}, NewSortError("Ite requires exactly 3 arguments")
		}
		return argSorts[1], nil
	}
	return Sort{}, NewNotImplementedError("sort computation for operator %s is not implemented", op)
}

// helper predicates, mirroring sort_inference.cpp's free functions.

func boolSorts(sorts []Sort) bool {
	for _, s := range sorts {
		if s.Kind() != Bool {
			return false
		}
	}
	return true
}

func intSorts(sorts []Sort) bool {
	for _, s := range sorts {
		if s.Kind() != Int {
			return false
		}
	}
	return true
}

func realSorts(sorts []Sort) bool {
	for _, s := range sorts {
		if s.Kind() != Real {
			return false
		}
	}
	return true
}

func bvSorts(sorts []Sort) bool {
	for _, s := range sorts {
		if s.Kind() != BV {
			return false
		}
	}
	return true
}

func equalSorts(sorts []Sort) bool {
	if len(sorts) == 0 {
		return false
	}
	for _, s := range sorts[1:] {
		if !s.Equal(sorts[0]) {
			return false
		}
	}
	return true
}

func equalSortKinds(sorts []Sort) bool {
	if len(sorts) == 0 {
		return false
	}
	first := sorts[0].Kind()
	for _, s := range sorts[1:] {
		if s.Kind() != first {
			return false
		}
	}
	return true
}

// arithmeticSorts accepts all-Int or all-Real, consistent within one call.
func arithmeticSorts(sorts []Sort) bool {
	if len(sorts) == 0 {
		return false
	}
	first := sorts[0].Kind()
	if first != Int && first != Real {
		return false
	}
	return equalSortKinds(sorts)
}

func eqBVSorts(sorts []Sort) bool {
	if !bvSorts(sorts) {
		return false
	}
	if len(sorts) == 0 {
		return false
	}
	width := sorts[0].Width()
	for _, s := range sorts[1:] {
		if s.Width() != width {
			return false
		}
	}
	return true
}

func checkIteSorts(sorts []Sort) bool {
	if len(sorts) != 3 {
		return false
	}
	return sorts[0].Kind() == Bool && sorts[1].Equal(sorts[2])
}

func checkApplySorts(sorts []Sort) bool {
	if len(sorts) == 0 {
		return false
	}
	fn := sorts[0]
	if fn.Kind() != Function {
		return false
	}
	domain := fn.Domain()
	if len(domain) != len(sorts)-1 {
		return false
	}
	for i := range domain {
		if !domain[i].Equal(sorts[i+1]) {
			return false
		}
	}
	return true
}

func checkSelectSorts(sorts []Sort) bool {
	if len(sorts) != 2 {
		return false
	}
	arr := sorts[0]
	if arr.Kind() != Array {
		return false
	}
	return sorts[1].Equal(arr.IndexSort())
}

func checkStoreSorts(sorts []Sort) bool {
	if len(sorts) != 3 {
		return false
	}
	arr := sorts[0]
	if arr.Kind() != Array {
		return false
	}
	if !sorts[1].Equal(arr.IndexSort()) {
		return false
	}
	return sorts[2].Equal(arr.ElementSort())
}
