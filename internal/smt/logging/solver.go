package logging

import (
	log "github.com/sirupsen/logrus"

	"smtcore/internal/smt"
)

// Solver wraps any smt.Backend and re-exports its operations, intercepting
// every sort/term-creating call to build a LoggingSort/Term recording the
// structure the caller provided and hash-consing the result (spec §4.3).
//
// Invariant: every Term this Solver ever produces is either present in
// hashTable or has been discarded in favour of the canonical term equal to
// it; no two distinct live Terms are structurally equal.
type Solver struct {
	backend   smt.Backend
	hashTable *TermHashTable
}

// New wraps backend in a logging Solver.
func New(backend smt.Backend) *Solver {
	return &Solver{backend: backend, hashTable: NewTermHashTable()}
}

// HashTable exposes the hash-cons index, e.g. for statistics or for the
// term translator to inspect while pre-populating its own cache.
func (s *Solver) HashTable() *TermHashTable { return s.hashTable }

func (s *Solver) SetOpt(key, value string) error {
	if err := s.backend.SetOpt(key, value); err != nil {
		return smt.WrapBackendError(err, "set_opt("+key+")")
	}
	return nil
}

func (s *Solver) SetLogic(name string) error {
	if err := s.backend.SetLogic(name); err != nil {
		return smt.WrapBackendError(err, "set_logic("+name+")")
	}
	return nil
}

// MakeSort builds a Bool/Int/Real/Array/Function sort, collapsing the
// original API's five param-count overloads (SPEC_FULL §6) into one
// variadic call keyed on kind. BV sorts and uninterpreted sorts/
// constructors have their own special-shaped constructors below since
// their parameters (a width, a name+arity) are not themselves Sorts.
func (s *Solver) MakeSort(kind smt.SortKind, params ...*Sort) (*Sort, error) {
	switch kind {
	case smt.Bool:
		bs, err := s.backend.MakeBoolSort()
		if err != nil {
			return nil, smt.WrapBackendError(err, "make_sort(Bool)")
		}
		return newSort(bs, smt.NewBoolSort()), nil

	case smt.Int:
		bs, err := s.backend.MakeIntSort()
		if err != nil {
			return nil, smt.WrapBackendError(err, "make_sort(Int)")
		}
		return newSort(bs, smt.NewIntSort()), nil

	case smt.Real:
		bs, err := s.backend.MakeRealSort()
		if err != nil {
			return nil, smt.WrapBackendError(err, "make_sort(Real)")
		}
		return newSort(bs, smt.NewRealSort()), nil

	case smt.Array:
		if len(params) != 2 {
			return nil, smt.NewUsageError("make_sort(Array, ...) expects 2 params, got %d", len(params))
		}
		idx, elem := params[0], params[1]
		bs, err := s.backend.MakeArraySort(idx.Backend, elem.Backend)
		if err != nil {
			return nil, smt.WrapBackendError(err, "make_sort(Array)")
		}
		return newSort(bs, smt.NewArraySort(idx.Info, elem.Info)), nil

	case smt.Function:
		if len(params) < 2 {
			return nil, smt.NewUsageError("make_sort(Function, ...) expects a domain and a codomain")
		}
		domain := params[:len(params)-1]
		codomain := params[len(params)-1]
		backendDomain := make([]smt.BackendSort, len(domain))
		infoDomain := make([]smt.Sort, len(domain))
		for i, d := range domain {
			backendDomain[i] = d.Backend
			infoDomain[i] = d.Info
		}
		bs, err := s.backend.MakeFunctionSort(backendDomain, codomain.Backend)
		if err != nil {
			return nil, smt.WrapBackendError(err, "make_sort(Function)")
		}
		info, err := smt.NewFunctionSort(infoDomain, codomain.Info)
		if err != nil {
			return nil, err
		}
		return newSort(bs, info), nil
	}
	return nil, smt.NewNotImplementedError("make_sort for sort kind %s is not implemented via the variadic constructor", kind)
}

// MakeBVSort builds BV(width).
func (s *Solver) MakeBVSort(width uint32) (*Sort, error) {
	info, err := smt.NewBVSort(width)
	if err != nil {
		return nil, err
	}
	bs, err := s.backend.MakeBVSort(width)
	if err != nil {
		return nil, smt.WrapBackendError(err, "make_sort(BV)")
	}
	return newSort(bs, info), nil
}

// MakeUninterpretedSortCons declares a fresh uninterpreted sort (arity 0)
// or sort constructor (arity > 0).
func (s *Solver) MakeUninterpretedSortCons(name string, arity int) (*Sort, error) {
	bs, err := s.backend.MakeUninterpretedSort(name, arity)
	if err != nil {
		return nil, smt.WrapBackendError(err, "make_sort(Uninterpreted "+name+")")
	}
	if arity == 0 {
		return newSort(bs, smt.NewUninterpretedSort(name)), nil
	}
	info, err := smt.NewUninterpretedConsSort(name, arity)
	if err != nil {
		return nil, err
	}
	return newSort(bs, info), nil
}

// MakeUninterpretedAppliedSort applies an uninterpreted sort constructor.
func (s *Solver) MakeUninterpretedAppliedSort(cons *Sort, params []*Sort) (*Sort, error) {
	backendParams := make([]smt.BackendSort, len(params))
	infoParams := make([]smt.Sort, len(params))
	for i, p := range params {
		backendParams[i] = p.Backend
		infoParams[i] = p.Info
	}
	bs, err := s.backend.MakeUninterpretedAppliedSort(cons.Backend, backendParams)
	if err != nil {
		return nil, smt.WrapBackendError(err, "make_sort(UninterpretedApplied "+cons.Info.Name()+")")
	}
	info, err := smt.NewUninterpretedAppliedSort(cons.Info, infoParams)
	if err != nil {
		return nil, err
	}
	return newSort(bs, info), nil
}

func (s *Solver) leafFromBackend(backend smt.BackendTerm, sort *Sort) *Term {
	isValue := s.backend.IsValue(backend)
	candidate := newLeaf(backend, sort, isValue)
	var valueHash uint64
	if isValue {
		valueHash = s.backend.ValueHash(backend)
	}
	canonical, _ := s.hashTable.LookupOrInsert(candidate, valueHash, s.valueHashEqual)
	return canonical
}

func (s *Solver) valueHashEqual(a, b *Term) bool {
	return s.backend.ValueHash(a.Backend) == s.backend.ValueHash(b.Backend)
}

// MakeSymbol declares a fresh symbol; fails if name is already declared
// (symbols are process-wide within a solver, per spec §4.2).
func (s *Solver) MakeSymbol(name string, sort *Sort) (*Term, error) {
	bt, err := s.backend.MakeSymbol(name, sort.Backend)
	if err != nil {
		return nil, smt.WrapBackendError(err, "make_symbol("+name+")")
	}
	candidate := newSymbol(bt, sort, name)
	canonical, inserted := s.hashTable.LookupOrInsert(candidate, 0, s.valueHashEqual)
	if inserted {
		log.Debugf("declared symbol %s: %s", name, sort)
	}
	return canonical, nil
}

// MakeBoolValue builds a Bool value.
func (s *Solver) MakeBoolValue(v bool) (*Term, error) {
	bt, err := s.backend.MakeBoolValue(v)
	if err != nil {
		return nil, smt.WrapBackendError(err, "make_term(bool)")
	}
	bs, err := s.backend.MakeBoolSort()
	if err != nil {
		return nil, smt.WrapBackendError(err, "make_sort(Bool)")
	}
	return s.leafFromBackend(bt, newSort(bs, smt.NewBoolSort())), nil
}

// MakeValueFromInt64 builds a value term of the given sort from a small
// integer (Int, Real, or BV).
func (s *Solver) MakeValueFromInt64(i int64, sort *Sort) (*Term, error) {
	bt, err := s.backend.MakeValueFromInt64(i, sort.Backend)
	if err != nil {
		return nil, smt.WrapBackendError(err, "make_term(int64)")
	}
	return s.leafFromBackend(bt, sort), nil
}

// MakeValueFromString builds a value term from a numeral string in the
// given base (meaningful for BV: 2, 10, or 16).
func (s *Solver) MakeValueFromString(val string, sort *Sort, base int) (*Term, error) {
	bt, err := s.backend.MakeValueFromString(val, sort.Backend, base)
	if err != nil {
		return nil, smt.WrapBackendError(err, "make_term(string)")
	}
	return s.leafFromBackend(bt, sort), nil
}

// MakeConstantArray builds a constant array over the given array sort with
// base as its default element (spec §3, §9's "constant arrays" note). base
// must belong to this Solver and have the array's element sort.
func (s *Solver) MakeConstantArray(sort *Sort, base *Term) (*Term, error) {
	if sort.Info.Kind() != smt.Array {
		return nil, smt.NewUsageError("make_term(value, sort) is for creating constant arrays; expected Array sort, got %s", sort.Info.Kind())
	}
	if !base.SortVal.Info.Equal(sort.Info.ElementSort()) {
		return nil, smt.NewUsageError("constant array base has sort %s, expected element sort %s", base.SortVal, sort.Info.ElementSort())
	}
	bt, err := s.backend.MakeConstantArray(sort.Backend, base.Backend)
	if err != nil {
		return nil, smt.WrapBackendError(err, "make_term(const array)")
	}
	candidate := newConstArray(bt, sort, base)
	canonical, _ := s.hashTable.LookupOrInsert(candidate, 0, s.valueHashEqual)
	return canonical, nil
}

// MakeTerm builds an applied term: checks sortedness, forwards to the
// backend, computes the result sort with the logging layer's own
// inference, and hash-conses the result.
func (s *Solver) MakeTerm(op smt.Op, args ...*Term) (*Term, error) {
	argSorts := make([]smt.Sort, len(args))
	backendArgs := make([]smt.BackendTerm, len(args))
	for i, a := range args {
		argSorts[i] = a.SortVal.Info
		backendArgs[i] = a.Backend
	}

	ok, err := smt.CheckSortedness(op, argSorts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, smt.NewSortError("%s is not well-sorted for argument sorts %v", op, argSorts)
	}

	bt, err := s.backend.ApplyOp(op, backendArgs)
	if err != nil {
		return nil, smt.WrapBackendError(err, "make_term("+op.String()+")")
	}

	// The backend's own reported sort is only ever a sanity aid; the
	// logging layer trusts its own inference so structure survives
	// backend-side simplification. The Backend interface deliberately
	// does not expose a way to reconstruct an abstract Sort from a
	// BackendSort, so there is nothing to cross-check against here.
	resultSort, err := smt.ComputeSort(op, argSorts, smt.Sort{})
	if err != nil {
		return nil, err
	}

	candidate := newApplied(bt, newSort(nil, resultSort), op, args)
	canonical, inserted := s.hashTable.LookupOrInsert(candidate, 0, s.valueHashEqual)
	if inserted {
		log.Debugf("built new term %s : %s", op, resultSort)
	}
	return canonical, nil
}

func (s *Solver) AssertFormula(t *Term) error {
	if err := s.backend.AssertFormula(t.Backend); err != nil {
		return smt.WrapBackendError(err, "assert_formula")
	}
	return nil
}

func (s *Solver) CheckSat() (smt.Result, error) {
	r, err := s.backend.CheckSat()
	if err != nil {
		return smt.Unknown, smt.WrapBackendError(err, "check_sat")
	}
	return r, nil
}

func (s *Solver) CheckSatAssuming(assumptions []*Term) (smt.Result, error) {
	backendAssumptions := make([]smt.BackendTerm, len(assumptions))
	for i, a := range assumptions {
		backendAssumptions[i] = a.Backend
	}
	r, err := s.backend.CheckSatAssuming(backendAssumptions)
	if err != nil {
		return smt.Unknown, smt.WrapBackendError(err, "check_sat_assuming")
	}
	return r, nil
}

func (s *Solver) Push(n uint64) error {
	if err := s.backend.Push(n); err != nil {
		return smt.WrapBackendError(err, "push")
	}
	return nil
}

func (s *Solver) Pop(n uint64) error {
	if err := s.backend.Pop(n); err != nil {
		return smt.WrapBackendError(err, "pop")
	}
	return nil
}

// GetValue retrieves a model value for t; must follow a Sat result (spec
// §4.7 — undefined otherwise, and left to the backend to enforce).
func (s *Solver) GetValue(t *Term) (*Term, error) {
	bt, err := s.backend.GetValue(t.Backend)
	if err != nil {
		return nil, smt.WrapBackendError(err, "get_value")
	}
	return s.leafFromBackend(bt, t.SortVal), nil
}

// GetArrayValues wraps each returned index/value pair (and the optional
// constant base) in a value Term, hash-consed like every other Term this
// Solver builds. Multidimensional constant
// bases are rejected with NotImplementedError, per spec §4.3.
func (s *Solver) GetArrayValues(arr *Term) (map[*Term]*Term, *Term, error) {
	idxSort := newSort(nil, arr.SortVal.Info.IndexSort())
	elemSort := newSort(nil, arr.SortVal.Info.ElementSort())

	backendAssignments, backendBase, err := s.backend.GetArrayValues(arr.Backend)
	if err != nil {
		return nil, nil, smt.WrapBackendError(err, "get_array_values")
	}

	var base *Term
	if backendBase != nil {
		if baseSort, err := s.backend.SortOf(backendBase); err == nil && s.backend.IsArraySort(baseSort) {
			return nil, nil, smt.NewNotImplementedError("const base for multidimensional array not implemented in logging solver")
		}
		base = s.leafFromBackend(backendBase, elemSort)
	}

	assignments := make(map[*Term]*Term, len(backendAssignments))
	for backendIdx, backendVal := range backendAssignments {
		idx := s.leafFromBackend(backendIdx, idxSort)
		val := s.leafFromBackend(backendVal, elemSort)
		assignments[idx] = val
	}
	return assignments, base, nil
}

// Reset destroys all non-declared state including the hash-cons table.
func (s *Solver) Reset() error {
	if err := s.backend.Reset(); err != nil {
		return smt.WrapBackendError(err, "reset")
	}
	s.hashTable.Clear()
	log.Debug("solver reset: hash table cleared")
	return nil
}

// ResetAssertions clears only the asserted formulas; declarations and the
// hash-cons table are preserved.
func (s *Solver) ResetAssertions() error {
	if err := s.backend.ResetAssertions(); err != nil {
		return smt.WrapBackendError(err, "reset_assertions")
	}
	return nil
}
