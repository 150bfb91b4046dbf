package smt

// Result is the outcome of a satisfiability query.
type Result int

const (
	Unknown Result = iota
	Sat
	Unsat
)

func (r Result) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// BackendSort is an opaque handle to a sort owned by a concrete backend.
// The core never inspects it; it is only ever passed back to the backend
// that produced it.
type BackendSort interface{}

// BackendTerm is an opaque handle to a term owned by a concrete backend.
type BackendTerm interface{}

// Backend is the narrow, polymorphic contract every concrete SMT engine
// adapter must satisfy (spec §4.2). All operations are synchronous; a
// Backend is not safe for concurrent use by multiple goroutines.
type Backend interface {
	SetOpt(key, value string) error
	SetLogic(name string) error

	MakeBoolSort() (BackendSort, error)
	MakeIntSort() (BackendSort, error)
	MakeRealSort() (BackendSort, error)
	MakeBVSort(width uint32) (BackendSort, error)
	MakeArraySort(index, element BackendSort) (BackendSort, error)
	MakeFunctionSort(domain []BackendSort, codomain BackendSort) (BackendSort, error)
	MakeUninterpretedSort(name string, arity int) (BackendSort, error)
	MakeUninterpretedAppliedSort(cons BackendSort, params []BackendSort) (BackendSort, error)

	MakeSymbol(name string, sort BackendSort) (BackendTerm, error)
	MakeBoolValue(v bool) (BackendTerm, error)
	MakeValueFromInt64(i int64, sort BackendSort) (BackendTerm, error)
	// MakeValueFromString builds a value term from a base-`base` numeral
	// string (base is meaningful for BV sorts: 2, 10, or 16).
	MakeValueFromString(val string, sort BackendSort, base int) (BackendTerm, error)
	MakeConstantArray(sort BackendSort, base BackendTerm) (BackendTerm, error)
	ApplyOp(op Op, args []BackendTerm) (BackendTerm, error)

	AssertFormula(t BackendTerm) error
	CheckSat() (Result, error)
	CheckSatAssuming(assumptions []BackendTerm) (Result, error)
	Push(n uint64) error
	Pop(n uint64) error
	GetValue(t BackendTerm) (BackendTerm, error)
	// GetArrayValues returns the finite explicit index->value mapping for
	// a (possibly symbolic) array value, plus an optional default/base
	// value term when the backend can report one.
	GetArrayValues(arr BackendTerm) (assignments map[BackendTerm]BackendTerm, constBase BackendTerm, err error)

	Reset() error
	ResetAssertions() error

	SortOf(t BackendTerm) (BackendSort, error)
	// IsArraySort reports whether a BackendSort handle (as returned by
	// SortOf) denotes an array sort. Used only to detect the
	// multidimensional constant-array base case the logging layer must
	// reject (spec §4.3); the core otherwise never inspects BackendSort.
	IsArraySort(s BackendSort) bool
	IsValue(t BackendTerm) bool
	// PrintValue renders a value term in canonical SMT-LIB2 surface syntax
	// (spec §6): Bool -> true/false, BV -> #b.../#x..., Int/Real -> decimal.
	PrintValue(t BackendTerm) (string, error)
	// ValueHash returns a hash that distinguishes numerically distinct
	// value terms of the same sort; used by TermHashTable so literals
	// never collide with each other.
	ValueHash(t BackendTerm) uint64
}
