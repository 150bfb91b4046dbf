// Package memsolver is an in-process reference smt.Backend with no native
// SMT engine or cgo dependency. It exists only so the logging layer and
// the term translator have at least one concrete backend to run against
// in tests and in the CLI demo — per spec.md §1, backend adapters are
// external collaborators to the core, out of the core's own spec surface.
//
// Its "solving" is a bounded brute-force search over free Bool/BV/Int
// variables, not a sound decision procedure: it is grounded on the
// teacher's own internal/smt package, which likewise never implements a
// solving algorithm itself and defers entirely to the wrapped engine.
// Here there is no engine to defer to, so CheckSat enumerates a small
// assignment space — sufficient for the BV(4)/BV(8)-sized scenarios this
// module is built to exercise, never claimed to be complete.
package memsolver

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"smtcore/internal/smt"
)

// Backend is the reference smt.Backend implementation.
type Backend struct {
	symbols map[string]*term
	logic   string
	opts    map[string]string

	frames [][]*term // assertion stack; frames[0] is the base frame
	model  map[string]value
}

// allowedOptions/allowedLogics are the small fixed allow-list referenced
// in SPEC_FULL.md §6, so set_opt/set_logic rejection is exercisable
// without a real engine behind this backend.
var allowedOptions = map[string]bool{
	"produce-models":  true,
	"incremental":     true,
	"produce-unsat-cores": true,
}

var allowedLogics = map[string]bool{
	"QF_BV": true, "QF_ABV": true, "QF_AUFBV": true,
	"QF_LIA": true, "QF_LRA": true, "QF_UF": true, "ALL": true,
}

// New returns a fresh Backend with an empty base assertion frame.
func New() *Backend {
	return &Backend{
		symbols: make(map[string]*term),
		opts:    make(map[string]string),
		frames:  [][]*term{{}},
	}
}

func (b *Backend) SetOpt(key, value string) error {
	if !allowedOptions[key] {
		return errors.Errorf("unrecognized option %q", key)
	}
	b.opts[key] = value
	return nil
}

func (b *Backend) SetLogic(name string) error {
	if !allowedLogics[name] {
		return errors.Errorf("unsupported logic %q", name)
	}
	b.logic = name
	return nil
}

func (b *Backend) MakeBoolSort() (smt.BackendSort, error) { return smt.NewBoolSort(), nil }
func (b *Backend) MakeIntSort() (smt.BackendSort, error)  { return smt.NewIntSort(), nil }
func (b *Backend) MakeRealSort() (smt.BackendSort, error) { return smt.NewRealSort(), nil }

func (b *Backend) MakeBVSort(width uint32) (smt.BackendSort, error) {
	s, err := smt.NewBVSort(width)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (b *Backend) MakeArraySort(index, element smt.BackendSort) (smt.BackendSort, error) {
	return smt.NewArraySort(index.(smt.Sort), element.(smt.Sort)), nil
}

func (b *Backend) MakeFunctionSort(domain []smt.BackendSort, codomain smt.BackendSort) (smt.BackendSort, error) {
	dom := make([]smt.Sort, len(domain))
	for i, d := range domain {
		dom[i] = d.(smt.Sort)
	}
	s, err := smt.NewFunctionSort(dom, codomain.(smt.Sort))
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (b *Backend) MakeUninterpretedSort(name string, arity int) (smt.BackendSort, error) {
	if arity == 0 {
		return smt.NewUninterpretedSort(name), nil
	}
	s, err := smt.NewUninterpretedConsSort(name, arity)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (b *Backend) MakeUninterpretedAppliedSort(cons smt.BackendSort, params []smt.BackendSort) (smt.BackendSort, error) {
	ps := make([]smt.Sort, len(params))
	for i, p := range params {
		ps[i] = p.(smt.Sort)
	}
	s, err := smt.NewUninterpretedAppliedSort(cons.(smt.Sort), ps)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (b *Backend) MakeSymbol(name string, sort smt.BackendSort) (smt.BackendTerm, error) {
	if _, exists := b.symbols[name]; exists {
		return nil, errors.Errorf("symbol %q already declared", name)
	}
	t := &term{sort: sort.(smt.Sort), name: name, isSymbol: true}
	b.symbols[name] = t
	log.Debugf("memsolver: declared %s : %s", name, t.sort)
	return t, nil
}

func (b *Backend) MakeBoolValue(v bool) (smt.BackendTerm, error) {
	return &term{sort: smt.NewBoolSort(), val: value{boolVal: &v}}, nil
}

func (b *Backend) MakeValueFromInt64(i int64, sort smt.BackendSort) (smt.BackendTerm, error) {
	s := sort.(smt.Sort)
	switch s.Kind() {
	case smt.Int, smt.Real, smt.BV:
		return &term{sort: s, val: value{num: big.NewInt(i)}}, nil
	}
	return nil, errors.Errorf("cannot build an int64 value of sort %s", s)
}

func (b *Backend) MakeValueFromString(val string, sort smt.BackendSort, base int) (smt.BackendTerm, error) {
	s := sort.(smt.Sort)
	n := new(big.Int)
	if _, ok := n.SetString(val, base); !ok {
		return nil, errors.Errorf("cannot parse %q in base %d", val, base)
	}
	switch s.Kind() {
	case smt.Int, smt.Real, smt.BV:
		return &term{sort: s, val: value{num: n}}, nil
	}
	return nil, errors.Errorf("cannot build a string value of sort %s", s)
}

func (b *Backend) MakeConstantArray(sort smt.BackendSort, base smt.BackendTerm) (smt.BackendTerm, error) {
	s := sort.(smt.Sort)
	if s.Kind() != smt.Array {
		return nil, errors.Errorf("expected array sort, got %s", s)
	}
	return &term{sort: s, children: []*term{base.(*term)}}, nil
}

func (b *Backend) ApplyOp(op smt.Op, args []smt.BackendTerm) (smt.BackendTerm, error) {
	children := make([]*term, len(args))
	argSorts := make([]smt.Sort, len(args))
	for i, a := range args {
		children[i] = a.(*term)
		argSorts[i] = children[i].sort
	}
	ok, err := smt.CheckSortedness(op, argSorts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, smt.NewSortError("%s is not well-sorted for %v", op, argSorts)
	}
	resultSort, err := smt.ComputeSort(op, argSorts, smt.Sort{})
	if err != nil {
		return nil, err
	}
	t := &term{sort: resultSort, op: op, children: children}
	if folded, ok := tryFold(t); ok {
		return folded, nil
	}
	return t, nil
}

func (b *Backend) AssertFormula(t smt.BackendTerm) error {
	frame := &b.frames[len(b.frames)-1]
	*frame = append(*frame, t.(*term))
	return nil
}

func (b *Backend) allAssertions() []*term {
	var all []*term
	for _, f := range b.frames {
		all = append(all, f...)
	}
	return all
}

func (b *Backend) CheckSat() (smt.Result, error) {
	return b.checkSatWith(nil)
}

func (b *Backend) CheckSatAssuming(assumptions []smt.BackendTerm) (smt.Result, error) {
	extra := make([]*term, len(assumptions))
	for i, a := range assumptions {
		extra[i] = a.(*term)
	}
	return b.checkSatWith(extra)
}

func (b *Backend) Push(n uint64) error {
	for i := uint64(0); i < n; i++ {
		b.frames = append(b.frames, []*term{})
	}
	return nil
}

func (b *Backend) Pop(n uint64) error {
	if n >= uint64(len(b.frames)) {
		return errors.Errorf("pop(%d) exceeds stack depth %d", n, len(b.frames))
	}
	b.frames = b.frames[:uint64(len(b.frames))-n]
	return nil
}

func (b *Backend) GetValue(t smt.BackendTerm) (smt.BackendTerm, error) {
	if b.model == nil {
		return nil, errors.New("get_value called without a satisfiable model")
	}
	v, err := evalTerm(t.(*term), b.model)
	if err != nil {
		return nil, err
	}
	return &term{sort: t.(*term).sort, val: v}, nil
}

func (b *Backend) GetArrayValues(arr smt.BackendTerm) (map[smt.BackendTerm]smt.BackendTerm, smt.BackendTerm, error) {
	t := arr.(*term)
	assignments := make(map[smt.BackendTerm]smt.BackendTerm)
	var base *term
	seen := make(map[string]bool)

	cur := t
	for {
		if cur.op.IsNull() {
			if len(cur.children) == 1 {
				// constant array base
				base = cur.children[0]
			}
			break
		}
		if cur.op.PrimOp != smt.Store {
			break
		}
		arrChild, idxChild, valChild := cur.children[0], cur.children[1], cur.children[2]
		idxVal, err := evalTerm(idxChild, b.model)
		if err != nil {
			return nil, nil, err
		}
		valVal, err := evalTerm(valChild, b.model)
		if err != nil {
			return nil, nil, err
		}
		key, err := valueKey(idxVal)
		if err != nil {
			return nil, nil, err
		}
		// the outermost Store of an index is the one that holds.
		if !seen[key] {
			seen[key] = true
			assignments[&term{sort: idxChild.sort, val: idxVal}] = &term{sort: valChild.sort, val: valVal}
		}
		cur = arrChild
	}
	if base != nil {
		return assignments, base, nil
	}
	return assignments, nil, nil
}

func (b *Backend) Reset() error {
	b.symbols = make(map[string]*term)
	b.frames = [][]*term{{}}
	b.model = nil
	return nil
}

func (b *Backend) ResetAssertions() error {
	b.frames = [][]*term{{}}
	b.model = nil
	return nil
}

func (b *Backend) SortOf(t smt.BackendTerm) (smt.BackendSort, error) {
	return t.(*term).sort, nil
}

func (b *Backend) IsArraySort(s smt.BackendSort) bool {
	sort, ok := s.(smt.Sort)
	return ok && sort.Kind() == smt.Array
}

func (b *Backend) IsValue(t smt.BackendTerm) bool {
	tm := t.(*term)
	return tm.val.boolVal != nil || tm.val.num != nil
}

func (b *Backend) PrintValue(t smt.BackendTerm) (string, error) {
	tm := t.(*term)
	return printValue(tm.sort, tm.val)
}

func (b *Backend) ValueHash(t smt.BackendTerm) uint64 {
	tm := t.(*term)
	s, err := printValue(tm.sort, tm.val)
	if err != nil {
		return 0
	}
	h := uint64(14695981039346656037)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h ^ tm.sort.Hash()
}

func printValue(sort smt.Sort, v value) (string, error) {
	switch sort.Kind() {
	case smt.Bool:
		if v.boolVal == nil {
			return "", errors.New("not a bool value")
		}
		if *v.boolVal {
			return "true", nil
		}
		return "false", nil
	case smt.BV:
		if v.num == nil {
			return "", errors.New("not a bv value")
		}
		mod := new(big.Int).Lsh(big.NewInt(1), uint(sort.Width()))
		n := new(big.Int).Mod(v.num, mod)
		return fmt.Sprintf("#b%0*s", sort.Width(), n.Text(2)), nil
	case smt.Int, smt.Real:
		if v.num == nil {
			return "", errors.New("not a numeric value")
		}
		return v.num.String(), nil
	}
	return "", errors.Errorf("cannot print value of sort %s", sort)
}
