package smt

import (
	"fmt"
	"strings"
)

// SortKind is the outer tag of a Sort, ignoring parameters.
type SortKind int

const (
	Bool SortKind = iota
	BV
	Int
	Real
	Array
	Function
	Uninterpreted
	UninterpretedCons
	UninterpretedApplied
)

var sortKindNames = map[SortKind]string{
	Bool:                 "Bool",
	BV:                   "BV",
	Int:                  "Int",
	Real:                 "Real",
	Array:                "Array",
	Function:             "Function",
	Uninterpreted:        "Uninterpreted",
	UninterpretedCons:    "UninterpretedCons",
	UninterpretedApplied: "UninterpretedApplied",
}

func (sk SortKind) String() string {
	if name, ok := sortKindNames[sk]; ok {
		return name
	}
	return fmt.Sprintf("SortKind(%d)", int(sk))
}

// Sort is a closed, structurally-equal, structurally-hashed SMT sort. It
// has no identity beyond its structure: two Sorts built independently with
// equal parameters compare and hash equal.
//
// Only the fields relevant to a Sort's SortKind are populated; callers use
// the accessor methods below rather than reaching into the struct.
type Sort struct {
	kind SortKind

	width uint32 // BV

	index   *Sort // Array
	element *Sort // Array

	domain    []Sort // Function
	codomain  *Sort  // Function

	name  string // Uninterpreted, UninterpretedCons
	arity int    // Uninterpreted, UninterpretedCons

	cons   *Sort  // UninterpretedApplied
	params []Sort // UninterpretedApplied
}

// NewBoolSort returns the Bool sort.
func NewBoolSort() Sort { return Sort{kind: Bool} }

// NewIntSort returns the Int sort.
func NewIntSort() Sort { return Sort{kind: Int} }

// NewRealSort returns the Real sort.
func NewRealSort() Sort { return Sort{kind: Real} }

// NewBVSort returns BV(width). width must be strictly positive.
func NewBVSort(width uint32) (Sort, error) {
	if width == 0 {
		return Sort{}, NewUsageError("BV width must be positive, got 0")
	}
	return Sort{kind: BV, width: width}, nil
}

// NewArraySort returns Array(index, element).
func NewArraySort(index, element Sort) Sort {
	idx := index
	elem := element
	return Sort{kind: Array, index: &idx, element: &elem}
}

// NewFunctionSort returns Function(domain..., codomain). domain must be
// non-empty.
func NewFunctionSort(domain []Sort, codomain Sort) (Sort, error) {
	if len(domain) == 0 {
		return Sort{}, NewUsageError("function sort requires a non-empty domain")
	}
	dom := make([]Sort, len(domain))
	copy(dom, domain)
	cod := codomain
	return Sort{kind: Function, domain: dom, codomain: &cod}, nil
}

// NewUninterpretedSort returns a nullary uninterpreted sort.
func NewUninterpretedSort(name string) Sort {
	return Sort{kind: Uninterpreted, name: name, arity: 0}
}

// NewUninterpretedConsSort returns an uninterpreted sort constructor of the
// given positive arity.
func NewUninterpretedConsSort(name string, arity int) (Sort, error) {
	if arity <= 0 {
		return Sort{}, NewUsageError("uninterpreted sort constructor %q must have positive arity, got %d", name, arity)
	}
	return Sort{kind: UninterpretedCons, name: name, arity: arity}, nil
}

// NewUninterpretedAppliedSort applies a sort constructor to params. len(params)
// must equal cons.Arity().
func NewUninterpretedAppliedSort(cons Sort, params []Sort) (Sort, error) {
	if cons.kind != UninterpretedCons {
		return Sort{}, NewUsageError("cannot apply non-constructor sort %s", cons)
	}
	if len(params) != cons.arity {
		return Sort{}, NewUsageError("sort constructor %q expects %d params, got %d", cons.name, cons.arity, len(params))
	}
	c := cons
	ps := make([]Sort, len(params))
	copy(ps, params)
	return Sort{kind: UninterpretedApplied, cons: &c, params: ps}, nil
}

func (s Sort) Kind() SortKind { return s.kind }

func (s Sort) Width() uint32 { return s.width }

func (s Sort) IndexSort() Sort {
	if s.index == nil {
		return Sort{}
	}
	return *s.index
}

func (s Sort) ElementSort() Sort {
	if s.element == nil {
		return Sort{}
	}
	return *s.element
}

func (s Sort) Domain() []Sort {
	out := make([]Sort, len(s.domain))
	copy(out, s.domain)
	return out
}

func (s Sort) Codomain() Sort {
	if s.codomain == nil {
		return Sort{}
	}
	return *s.codomain
}

func (s Sort) Name() string { return s.name }

func (s Sort) Arity() int {
	if s.kind == UninterpretedApplied {
		return 0
	}
	return s.arity
}

func (s Sort) Constructor() Sort {
	if s.cons == nil {
		return Sort{}
	}
	return *s.cons
}

func (s Sort) Params() []Sort {
	out := make([]Sort, len(s.params))
	copy(out, s.params)
	return out
}

// Equal reports structural equality: same tag and all parameters equal.
func (s Sort) Equal(o Sort) bool {
	if s.kind != o.kind {
		return false
	}
	switch s.kind {
	case Bool, Int, Real:
		return true
	case BV:
		return s.width == o.width
	case Array:
		return s.IndexSort().Equal(o.IndexSort()) && s.ElementSort().Equal(o.ElementSort())
	case Function:
		if len(s.domain) != len(o.domain) {
			return false
		}
		for i := range s.domain {
			if !s.domain[i].Equal(o.domain[i]) {
				return false
			}
		}
		return s.Codomain().Equal(o.Codomain())
	case Uninterpreted:
		return s.name == o.name
	case UninterpretedCons:
		return s.name == o.name && s.arity == o.arity
	case UninterpretedApplied:
		if !s.Constructor().Equal(o.Constructor()) {
			return false
		}
		if len(s.params) != len(o.params) {
			return false
		}
		for i := range s.params {
			if !s.params[i].Equal(o.params[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Hash returns a deterministic hash depending only on structure. It is not
// cryptographic; TermHashTable layers a stronger hash on top when values
// must be distinguished with high confidence.
func (s Sort) Hash() uint64 {
	h := fnvOffset
	h = fnvMix(h, uint64(s.kind))
	switch s.kind {
	case BV:
		h = fnvMix(h, uint64(s.width))
	case Array:
		h = fnvMixHash(h, s.IndexSort().Hash())
		h = fnvMixHash(h, s.ElementSort().Hash())
	case Function:
		for _, d := range s.domain {
			h = fnvMixHash(h, d.Hash())
		}
		h = fnvMixHash(h, s.Codomain().Hash())
	case Uninterpreted:
		h = fnvMixString(h, s.name)
	case UninterpretedCons:
		h = fnvMixString(h, s.name)
		h = fnvMix(h, uint64(s.arity))
	case UninterpretedApplied:
		h = fnvMixHash(h, s.Constructor().Hash())
		for _, p := range s.params {
			h = fnvMixHash(h, p.Hash())
		}
	}
	return h
}

func (s Sort) String() string {
	switch s.kind {
	case Bool, Int, Real:
		return s.kind.String()
	case BV:
		return fmt.Sprintf("(_ BitVec %d)", s.width)
	case Array:
		return fmt.Sprintf("(Array %s %s)", s.IndexSort(), s.ElementSort())
	case Function:
		parts := make([]string, len(s.domain))
		for i, d := range s.domain {
			parts[i] = d.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), s.Codomain())
	case Uninterpreted:
		return s.name
	case UninterpretedCons:
		return fmt.Sprintf("%s/%d", s.name, s.arity)
	case UninterpretedApplied:
		parts := make([]string, len(s.params))
		for i, p := range s.params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("(%s %s)", s.Constructor().Name(), strings.Join(parts, " "))
	}
	return "<unknown sort>"
}

// fnv-1a 64-bit, small local implementation so Sort.Hash needs no
// dependency beyond what the algebra itself requires.
const (
	fnvOffset uint64 = 14695981039346656037
	fnvPrime  uint64 = 1099511628211
)

func fnvMix(h uint64, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		h ^= v & 0xff
		h *= fnvPrime
		v >>= 8
	}
	return h
}

func fnvMixHash(h uint64, v uint64) uint64 { return fnvMix(h, v) }

func fnvMixString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime
	}
	return h
}
