package memsolver

import (
	"math/big"

	"smtcore/internal/smt"
)

// maxBoundedWidth is the largest BV width memsolver will brute-force
// enumerate. Wider free variables make the search space unmanageable, so
// CheckSat reports Unknown instead of guessing.
const maxBoundedWidth = 10

// intSearchBound is the symmetric range memsolver enumerates for a free
// Int variable: [-intSearchBound, intSearchBound].
const intSearchBound = 8

// maxAssignments caps the size of the cartesian product memsolver will
// walk before giving up and reporting Unknown.
const maxAssignments = 200000

// checkSatWith is the shared implementation behind CheckSat and
// CheckSatAssuming. It is a bounded, exhaustive search over the free
// Bool/BV/Int symbols appearing in the current assertions (plus any
// extra assumption terms), not a general decision procedure — see the
// package doc comment.
func (b *Backend) checkSatWith(extra []*term) (smt.Result, error) {
	assertions := append(append([]*term{}, b.allAssertions()...), extra...)

	symbols := map[string]smt.Sort{}
	for _, a := range assertions {
		collectSymbols(a, symbols)
	}

	names := make([]string, 0, len(symbols))
	domains := make([][]value, 0, len(symbols))
	total := 1
	for name, sort := range symbols {
		d, ok := domainFor(sort)
		if !ok {
			return smt.Unknown, nil
		}
		names = append(names, name)
		domains = append(domains, d)
		total *= len(d)
		if total > maxAssignments {
			return smt.Unknown, nil
		}
	}

	model := make(map[string]value, len(names))
	if searchAssignment(assertions, names, domains, 0, model) {
		b.model = model
		return smt.Sat, nil
	}
	return smt.Unsat, nil
}

func searchAssignment(assertions []*term, names []string, domains [][]value, i int, model map[string]value) bool {
	if i == len(names) {
		for _, a := range assertions {
			v, err := evalTerm(a, model)
			if err != nil || v.boolVal == nil || !*v.boolVal {
				return false
			}
		}
		return true
	}
	for _, v := range domains[i] {
		model[names[i]] = v
		if searchAssignment(assertions, names, domains, i+1, model) {
			return true
		}
	}
	delete(model, names[i])
	return false
}

func domainFor(sort smt.Sort) ([]value, bool) {
	switch sort.Kind() {
	case smt.Bool:
		return []value{boolValue(false), boolValue(true)}, true
	case smt.BV:
		if sort.Width() > maxBoundedWidth {
			return nil, false
		}
		n := int64(1) << sort.Width()
		vals := make([]value, n)
		for i := int64(0); i < n; i++ {
			vals[i] = numValue(big.NewInt(i))
		}
		return vals, true
	case smt.Int:
		vals := make([]value, 0, 2*intSearchBound+1)
		for i := -intSearchBound; i <= intSearchBound; i++ {
			vals = append(vals, numValue(big.NewInt(int64(i))))
		}
		return vals, true
	default:
		return nil, false
	}
}

// collectSymbols walks t recording every free symbol it references, by
// name, into out.
func collectSymbols(t *term, out map[string]smt.Sort) {
	if t.isSymbol {
		out[t.name] = t.sort
		return
	}
	for _, c := range t.children {
		collectSymbols(c, out)
	}
}
