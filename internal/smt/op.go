package smt

import (
	"fmt"
	"math"
	"strings"
)

// PrimOp is a primitive operator drawn from a closed enumeration.
type PrimOp int

const (
	// NoOp is the zero value of PrimOp; an Op carrying NoOp marks a leaf
	// term (value, symbol, or constant-array base) in the logging layer.
	NoOp PrimOp = iota
	And
	Or
	Xor
	Not
	Implies
	Iff
	Ite
	Equal
	Distinct
	Apply

	Plus
	Minus
	Negate
	Mult
	Div
	Lt
	Le
	Gt
	Ge
	Mod
	Abs
	Pow
	IntDiv
	IsInt
	ToReal
	ToInt

	BVNot
	BVNeg
	BVAnd
	BVOr
	BVXor
	BVNand
	BVNor
	BVXnor
	BVAdd
	BVSub
	BVMul
	BVUdiv
	BVSdiv
	BVUrem
	BVSrem
	BVSmod
	BVShl
	BVAshr
	BVLshr
	BVComp
	BVUlt
	BVUle
	BVUgt
	BVUge
	BVSlt
	BVSle
	BVSgt
	BVSge
	Concat
	Extract
	ZeroExtend
	SignExtend
	Repeat
	RotateLeft
	RotateRight
	BVToNat
	IntToBV

	Select
	Store
)

const infArity = math.MaxInt32

var primOpNames = map[PrimOp]string{
	NoOp: "NoOp",
	And:  "And", Or: "Or", Xor: "Xor", Not: "Not", Implies: "Implies", Iff: "Iff",
	Ite: "Ite", Equal: "Equal", Distinct: "Distinct", Apply: "Apply",
	Plus: "Plus", Minus: "Minus", Negate: "Negate", Mult: "Mult", Div: "Div",
	Lt: "Lt", Le: "Le", Gt: "Gt", Ge: "Ge", Mod: "Mod", Abs: "Abs", Pow: "Pow",
	IntDiv: "IntDiv", IsInt: "Is_Int", ToReal: "To_Real", ToInt: "To_Int",
	BVNot: "BVNot", BVNeg: "BVNeg", BVAnd: "BVAnd", BVOr: "BVOr", BVXor: "BVXor",
	BVNand: "BVNand", BVNor: "BVNor", BVXnor: "BVXnor", BVAdd: "BVAdd",
	BVSub: "BVSub", BVMul: "BVMul", BVUdiv: "BVUdiv", BVSdiv: "BVSdiv",
	BVUrem: "BVUrem", BVSrem: "BVSrem", BVSmod: "BVSmod", BVShl: "BVShl",
	BVAshr: "BVAshr", BVLshr: "BVLshr", BVComp: "BVComp", BVUlt: "BVUlt",
	BVUle: "BVUle", BVUgt: "BVUgt", BVUge: "BVUge", BVSlt: "BVSlt",
	BVSle: "BVSle", BVSgt: "BVSgt", BVSge: "BVSge", Concat: "Concat",
	Extract: "Extract", ZeroExtend: "Zero_Extend", SignExtend: "Sign_Extend",
	Repeat: "Repeat", RotateLeft: "Rotate_Left", RotateRight: "Rotate_Right",
	BVToNat: "BV_To_Nat", IntToBV: "Int_To_BV", Select: "Select", Store: "Store",
}

func (p PrimOp) String() string {
	if name, ok := primOpNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PrimOp(%d)", int(p))
}

// arityTable mirrors the original's get_arity: a closed (min, max) pair per
// PrimOp, consulted before any sortedness predicate runs.
var arityTable = map[PrimOp][2]int{
	And: {1, infArity}, Or: {1, infArity}, Xor: {2, infArity}, Not: {1, 1},
	Implies: {2, 2}, Iff: {2, 2}, Ite: {3, 3}, Equal: {1, infArity}, Distinct: {1, infArity},
	Apply: {1, infArity},

	Plus: {1, infArity}, Minus: {2, 2}, Negate: {1, 1}, Mult: {1, infArity}, Div: {2, 2},
	Lt: {2, 2}, Le: {2, 2}, Gt: {2, 2}, Ge: {2, 2}, Mod: {2, 2}, Abs: {1, 1},
	Pow: {2, 2}, IntDiv: {2, 2}, IsInt: {1, 1}, ToReal: {1, 1}, ToInt: {1, 1},

	BVNot: {1, 1}, BVNeg: {1, 1}, BVAnd: {1, infArity}, BVOr: {1, infArity},
	BVXor: {1, infArity}, BVNand: {2, 2}, BVNor: {2, 2}, BVXnor: {2, 2},
	BVAdd: {1, infArity}, BVSub: {2, 2}, BVMul: {1, infArity}, BVUdiv: {2, 2},
	BVSdiv: {2, 2}, BVUrem: {2, 2}, BVSrem: {2, 2}, BVSmod: {2, 2}, BVShl: {2, 2},
	BVAshr: {2, 2}, BVLshr: {2, 2}, BVComp: {2, 2}, BVUlt: {2, 2}, BVUle: {2, 2},
	BVUgt: {2, 2}, BVUge: {2, 2}, BVSlt: {2, 2}, BVSle: {2, 2}, BVSgt: {2, 2},
	BVSge: {2, 2}, Concat: {1, infArity}, Extract: {1, 1}, ZeroExtend: {1, 1},
	SignExtend: {1, 1}, Repeat: {1, 1}, RotateLeft: {1, 1}, RotateRight: {1, 1},
	BVToNat: {1, 1}, IntToBV: {1, 1},

	Select: {2, 2}, Store: {3, 3},
}

// GetArity returns the (min, max) argument-count bounds for a PrimOp. max
// may be math.MaxInt32 for associative operators.
func GetArity(p PrimOp) (min, max int, ok bool) {
	b, ok := arityTable[p]
	if !ok {
		return 0, 0, false
	}
	return b[0], b[1], true
}

// indexedOps is the set of PrimOps that carry integer indices.
var indexedOps = map[PrimOp]int{
	Extract:     2,
	ZeroExtend:  1,
	SignExtend:  1,
	Repeat:      1,
	RotateLeft:  1,
	RotateRight: 1,
	IntToBV:     1,
}

// Op is a PrimOp together with zero or more non-negative integer indices;
// only the operators in indexedOps carry a non-empty Indices slice.
type Op struct {
	PrimOp  PrimOp
	Indices []int
}

// NewOp builds a plain, index-free operator.
func NewOp(p PrimOp) Op { return Op{PrimOp: p} }

// NewIndexedOp builds an operator with the given indices, validating that
// this PrimOp is one that carries indices and that the count matches.
func NewIndexedOp(p PrimOp, indices ...int) (Op, error) {
	want, ok := indexedOps[p]
	if !ok {
		return Op{}, NewUsageError("%s does not take indices", p)
	}
	if len(indices) != want {
		return Op{}, NewUsageError("%s expects %d indices, got %d", p, want, len(indices))
	}
	for _, idx := range indices {
		if idx < 0 {
			return Op{}, NewUsageError("%s index must be non-negative, got %d", p, idx)
		}
	}
	idxCopy := make([]int, len(indices))
	copy(idxCopy, indices)
	return Op{PrimOp: p, Indices: idxCopy}, nil
}

func (op Op) String() string {
	if len(op.Indices) == 0 {
		return op.PrimOp.String()
	}
	parts := make([]string, len(op.Indices))
	for i, idx := range op.Indices {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	return fmt.Sprintf("(_ %s %s)", op.PrimOp, strings.Join(parts, " "))
}

func (op Op) Equal(o Op) bool {
	if op.PrimOp != o.PrimOp || len(op.Indices) != len(o.Indices) {
		return false
	}
	for i := range op.Indices {
		if op.Indices[i] != o.Indices[i] {
			return false
		}
	}
	return true
}

// IsNull reports whether this Op is the zero value, used to mark leaves
// (values, symbols, constant-array bases) in the logging layer.
func (op Op) IsNull() bool {
	return op.PrimOp == NoOp && len(op.Indices) == 0
}
