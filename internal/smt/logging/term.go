package logging

import "smtcore/internal/smt"

// Term is the structural record the logging layer keeps for every term
// built through a LoggingSolver (spec §3). Children is empty iff Op is
// empty, except for constant-array terms, which carry a null Op and a
// single child holding the array's base value.
type Term struct {
	Backend    smt.BackendTerm
	SortVal    *Sort
	Op         smt.Op
	Children   []*Term
	SymbolName string
	HasSymbol  bool
	IsValue    bool

	cachedHash uint64
	hashed     bool
}

func newLeaf(backend smt.BackendTerm, sort *Sort, isValue bool) *Term {
	return &Term{Backend: backend, SortVal: sort, IsValue: isValue}
}

func newSymbol(backend smt.BackendTerm, sort *Sort, name string) *Term {
	return &Term{Backend: backend, SortVal: sort, SymbolName: name, HasSymbol: true}
}

func newApplied(backend smt.BackendTerm, sort *Sort, op smt.Op, children []*Term) *Term {
	return &Term{Backend: backend, SortVal: sort, Op: op, Children: children}
}

// newConstArray builds the leaf-like constant-array term: op is null but a
// single child (the base value) is present, per spec §3's carve-out.
func newConstArray(backend smt.BackendTerm, sort *Sort, base *Term) *Term {
	return &Term{Backend: backend, SortVal: sort, Children: []*Term{base}}
}

// IsConstArray reports whether t is the constant-array leaf shape: a null
// op with exactly one child.
func (t *Term) IsConstArray() bool {
	return t.Op.IsNull() && len(t.Children) == 1 && t.SortVal.Info.Kind() == smt.Array
}

func (t *Term) Sort() *Sort { return t.SortVal }

// structurallyEqual compares two freshly-built candidate terms for the
// hash-cons index: same op, same sort, same symbol (if any), children
// compared by canonical identity (pointer equality, since children are
// hash-consed before their parent is built), and values compared through
// the backend's value hash equality (approximated here by requiring equal
// ValueHash, which TermHashTable already folded into the bucket key).
func (t *Term) structurallyEqual(o *Term, valueHashEqual func(a, b *Term) bool) bool {
	if t.HasSymbol != o.HasSymbol {
		return false
	}
	if t.HasSymbol && t.SymbolName != o.SymbolName {
		return false
	}
	if t.IsValue != o.IsValue {
		return false
	}
	if !t.Op.Equal(o.Op) {
		return false
	}
	if !t.SortVal.Equal(o.SortVal) {
		return false
	}
	if len(t.Children) != len(o.Children) {
		return false
	}
	for i := range t.Children {
		if t.Children[i] != o.Children[i] {
			// children must be the same canonical object; a candidate
			// built from non-canonical children is a caller bug per the
			// invariant in spec §4.4.
			return false
		}
	}
	if t.IsValue && len(t.Children) == 0 {
		return valueHashEqual(t, o)
	}
	return true
}
