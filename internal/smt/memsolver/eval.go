package memsolver

import (
	"math/big"

	"github.com/pkg/errors"

	"smtcore/internal/smt"
)

var errKeyOfNonScalar = errors.New("cannot key an array value by a non-scalar index")

// evalTerm evaluates t under a symbol assignment. model maps a symbol's
// name to its assigned value; symbols absent from model are an error
// unless t itself is a literal or a subterm not reachable through any
// symbol.
func evalTerm(t *term, model map[string]value) (value, error) {
	if t.isSymbol {
		v, ok := model[t.name]
		if !ok {
			return value{}, errors.Errorf("symbol %q has no assignment", t.name)
		}
		return v, nil
	}
	if t.op.IsNull() {
		if len(t.children) == 0 {
			return t.val, nil
		}
		// constant-array leaf: one child holding the base value.
		base, err := evalTerm(t.children[0], model)
		if err != nil {
			return value{}, err
		}
		return value{arr: &arrayValue{entries: map[string]value{}, base: &base}}, nil
	}

	args := make([]value, len(t.children))
	for i, c := range t.children {
		v, err := evalTerm(c, model)
		if err != nil {
			return value{}, err
		}
		args[i] = v
	}
	return evalOp(t.op, t.children, args, t.sort)
}

func evalOp(op smt.Op, childTerms []*term, args []value, resultSort smt.Sort) (value, error) {
	b := func(i int) bool { return *args[i].boolVal }
	n := func(i int) *big.Int { return args[i].num }

	switch op.PrimOp {
	case smt.Not:
		return boolValue(!b(0)), nil
	case smt.And:
		for _, a := range args {
			if !*a.boolVal {
				return boolValue(false), nil
			}
		}
		return boolValue(true), nil
	case smt.Or:
		for _, a := range args {
			if *a.boolVal {
				return boolValue(true), nil
			}
		}
		return boolValue(false), nil
	case smt.Xor:
		res := false
		for _, a := range args {
			res = res != *a.boolVal
		}
		return boolValue(res), nil
	case smt.Implies:
		return boolValue(!b(0) || b(1)), nil
	case smt.Iff:
		return boolValue(b(0) == b(1)), nil
	case smt.Ite:
		if b(0) {
			return args[1], nil
		}
		return args[2], nil
	case smt.Equal:
		return boolValue(valuesEqual(args[0], args[1])), nil
	case smt.Distinct:
		for i := range args {
			for j := i + 1; j < len(args); j++ {
				if valuesEqual(args[i], args[j]) {
					return boolValue(false), nil
				}
			}
		}
		return boolValue(true), nil

	case smt.Plus:
		sum := big.NewInt(0)
		for _, a := range args {
			sum.Add(sum, a.num)
		}
		return numValue(sum), nil
	case smt.Minus:
		return numValue(new(big.Int).Sub(n(0), n(1))), nil
	case smt.Negate:
		return numValue(new(big.Int).Neg(n(0))), nil
	case smt.Mult:
		prod := big.NewInt(1)
		for _, a := range args {
			prod.Mul(prod, a.num)
		}
		return numValue(prod), nil
	case smt.IntDiv:
		if n(1).Sign() == 0 {
			return value{}, errors.New("division by zero")
		}
		return numValue(new(big.Int).Div(n(0), n(1))), nil
	case smt.Mod:
		if n(1).Sign() == 0 {
			return value{}, errors.New("mod by zero")
		}
		return numValue(new(big.Int).Mod(n(0), n(1))), nil
	case smt.Abs:
		return numValue(new(big.Int).Abs(n(0))), nil
	case smt.Lt:
		return boolValue(n(0).Cmp(n(1)) < 0), nil
	case smt.Le:
		return boolValue(n(0).Cmp(n(1)) <= 0), nil
	case smt.Gt:
		return boolValue(n(0).Cmp(n(1)) > 0), nil
	case smt.Ge:
		return boolValue(n(0).Cmp(n(1)) >= 0), nil
	case smt.ToReal, smt.ToInt:
		return numValue(new(big.Int).Set(n(0))), nil
	case smt.IsInt:
		return boolValue(true), nil

	case smt.BVNot:
		return numValue(bvMask(new(big.Int).Not(n(0)), childTerms[0].sort.Width())), nil
	case smt.BVNeg:
		return numValue(bvMask(new(big.Int).Neg(n(0)), childTerms[0].sort.Width())), nil
	case smt.BVAnd:
		return numValue(bvMask(new(big.Int).And(n(0), n(1)), childTerms[0].sort.Width())), nil
	case smt.BVOr:
		return numValue(bvMask(new(big.Int).Or(n(0), n(1)), childTerms[0].sort.Width())), nil
	case smt.BVXor:
		return numValue(bvMask(new(big.Int).Xor(n(0), n(1)), childTerms[0].sort.Width())), nil
	case smt.BVNand:
		return numValue(bvMask(new(big.Int).Not(new(big.Int).And(n(0), n(1))), childTerms[0].sort.Width())), nil
	case smt.BVNor:
		return numValue(bvMask(new(big.Int).Not(new(big.Int).Or(n(0), n(1))), childTerms[0].sort.Width())), nil
	case smt.BVXnor:
		return numValue(bvMask(new(big.Int).Not(new(big.Int).Xor(n(0), n(1))), childTerms[0].sort.Width())), nil
	case smt.BVAdd:
		return numValue(bvMask(new(big.Int).Add(n(0), n(1)), childTerms[0].sort.Width())), nil
	case smt.BVSub:
		return numValue(bvMask(new(big.Int).Sub(n(0), n(1)), childTerms[0].sort.Width())), nil
	case smt.BVMul:
		return numValue(bvMask(new(big.Int).Mul(n(0), n(1)), childTerms[0].sort.Width())), nil
	case smt.BVUdiv:
		if n(1).Sign() == 0 {
			return numValue(bvMask(new(big.Int).Lsh(big.NewInt(1), uint(childTerms[0].sort.Width())), childTerms[0].sort.Width())), nil
		}
		return numValue(bvMask(new(big.Int).Div(n(0), n(1)), childTerms[0].sort.Width())), nil
	case smt.BVUrem:
		if n(1).Sign() == 0 {
			return numValue(bvMask(n(0), childTerms[0].sort.Width())), nil
		}
		return numValue(bvMask(new(big.Int).Mod(n(0), n(1)), childTerms[0].sort.Width())), nil
	case smt.BVShl:
		return numValue(bvMask(new(big.Int).Lsh(n(0), uint(n(1).Uint64())), childTerms[0].sort.Width())), nil
	case smt.BVLshr:
		return numValue(bvMask(new(big.Int).Rsh(n(0), uint(n(1).Uint64())), childTerms[0].sort.Width())), nil
	case smt.BVUlt:
		return boolValue(n(0).Cmp(n(1)) < 0), nil
	case smt.BVUle:
		return boolValue(n(0).Cmp(n(1)) <= 0), nil
	case smt.BVUgt:
		return boolValue(n(0).Cmp(n(1)) > 0), nil
	case smt.BVUge:
		return boolValue(n(0).Cmp(n(1)) >= 0), nil
	case smt.BVComp:
		return boolValue(n(0).Cmp(n(1)) == 0), nil
	case smt.Concat:
		w1 := childTerms[1].sort.Width()
		res := new(big.Int).Lsh(n(0), uint(w1))
		res.Or(res, n(1))
		return numValue(bvMask(res, childTerms[0].sort.Width()+w1)), nil
	case smt.Extract:
		hi, lo := op.Indices[0], op.Indices[1]
		res := new(big.Int).Rsh(n(0), uint(lo))
		return numValue(bvMask(res, uint32(hi-lo+1))), nil
	case smt.ZeroExtend:
		return numValue(n(0)), nil
	case smt.SignExtend:
		w := childTerms[0].sort.Width()
		v := n(0)
		if v.Bit(int(w)-1) == 1 {
			ext := new(big.Int).Lsh(big.NewInt(1), uint(w)+uint(op.Indices[0]))
			ext.Sub(ext, big.NewInt(1))
			mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(w)), big.NewInt(1))
			return numValue(new(big.Int).Or(v, new(big.Int).AndNot(ext, mask))), nil
		}
		return numValue(v), nil
	case smt.BVToNat:
		return numValue(new(big.Int).Set(n(0))), nil
	case smt.IntToBV:
		return numValue(bvMask(n(0), uint32(op.Indices[0]))), nil

	case smt.Select:
		return selectFrom(args[0], args[1])
	case smt.Store:
		return storeInto(args[0], args[1], args[2])
	case smt.Apply:
		return value{}, errors.New("uninterpreted function application has no fixed interpretation in memsolver")
	}
	return value{}, errors.Errorf("memsolver: unsupported operator %s", op)
}

func bvMask(v *big.Int, width uint32) *big.Int {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return new(big.Int).Mod(v, mod)
}

func valuesEqual(a, b value) bool {
	if a.boolVal != nil && b.boolVal != nil {
		return *a.boolVal == *b.boolVal
	}
	if a.num != nil && b.num != nil {
		return a.num.Cmp(b.num) == 0
	}
	return false
}

func selectFrom(arr, idx value) (value, error) {
	key, err := valueKey(idx)
	if err != nil {
		return value{}, err
	}
	if v, ok := arr.arr.entries[key]; ok {
		return v, nil
	}
	if arr.arr.base != nil {
		return *arr.arr.base, nil
	}
	return value{}, errors.New("select on an unassigned array index with no default")
}

func storeInto(arr, idx, val value) (value, error) {
	key, err := valueKey(idx)
	if err != nil {
		return value{}, err
	}
	entries := make(map[string]value, len(arr.arr.entries)+1)
	for k, v := range arr.arr.entries {
		entries[k] = v
	}
	entries[key] = val
	return value{arr: &arrayValue{entries: entries, base: arr.arr.base}}, nil
}

// tryFold attempts to reduce a freshly-built applied term to a scalar
// literal when none of its transitive children reference a symbol.
// Array-sorted results are never folded, so GetArrayValues can keep
// walking an intact Store/constant-array chain.
func tryFold(t *term) (*term, bool) {
	if t.sort.Kind() == smt.Array {
		return nil, false
	}
	v, err := evalTerm(t, nil)
	if err != nil {
		return nil, false
	}
	return &term{sort: t.sort, val: v}, true
}
