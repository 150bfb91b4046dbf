// Package logging wraps a smt.Backend to materialise a faithful,
// hash-consed record of every sort and term constructed through the
// uniform API, independent of whatever the backend itself retains after
// simplification. Ported from smt-switch's LoggingSolver/LoggingSort/
// LoggingTerm/TermHashTable (see original_source/src/logging_solver.cpp).
package logging

import (
	"smtcore/internal/smt"
)

// Sort pairs a backend sort handle with the abstract description the
// logging layer trusts (spec §3/§4.3): Kind and parameters are read from
// Info, never re-derived from the backend.
type Sort struct {
	Backend smt.BackendSort
	Info    smt.Sort
}

func newSort(backend smt.BackendSort, info smt.Sort) *Sort {
	return &Sort{Backend: backend, Info: info}
}

// Equal is structural equality on the abstract description, matching
// smt.Sort.Equal — two Sorts wrapping different backend handles for the
// same structure still compare equal.
func (s *Sort) Equal(o *Sort) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Info.Equal(o.Info)
}

func (s *Sort) String() string { return s.Info.String() }
