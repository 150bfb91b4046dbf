package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smtcore/internal/smt"
	"smtcore/internal/smt/logging"
	"smtcore/internal/smt/memsolver"
)

func Test_TransferSortRebuildsStructure(t *testing.T) {
	srcBackend := memsolver.New()
	src := logging.New(srcBackend)
	dest := logging.New(memsolver.New())
	tr := New(srcBackend, dest)

	bv8, err := src.MakeBVSort(8)
	assert.Nil(t, err)

	transferred, err := tr.TransferSort(bv8)
	assert.Nil(t, err)
	assert.True(t, transferred.Equal(bv8))
}

func Test_TransferTermCachesRepeatedSubterms(t *testing.T) {
	srcBackend := memsolver.New()
	src := logging.New(srcBackend)
	dest := logging.New(memsolver.New())
	tr := New(srcBackend, dest)

	bv4, err := src.MakeBVSort(4)
	assert.Nil(t, err)
	x, err := src.MakeSymbol("x", bv4)
	assert.Nil(t, err)
	sum, err := src.MakeTerm(smt.NewOp(smt.BVAdd), x, x)
	assert.Nil(t, err)

	translated, err := tr.TransferTerm(sum)
	assert.Nil(t, err)
	assert.True(t, translated.SortVal.Equal(bv4))

	// x appears twice as a child of sum; the translator must only build one
	// destination symbol for it.
	assert.Equal(t, 2, len(tr.Cache()))

	again, err := tr.TransferTerm(sum)
	assert.Nil(t, err)
	assert.True(t, again == translated)
}

func Test_TransferValuePreservesNumeral(t *testing.T) {
	srcBackend := memsolver.New()
	src := logging.New(srcBackend)
	destBackend := memsolver.New()
	dest := logging.New(destBackend)
	tr := New(srcBackend, dest)

	bv8, err := src.MakeBVSort(8)
	assert.Nil(t, err)
	seven, err := src.MakeValueFromInt64(7, bv8)
	assert.Nil(t, err)

	translated, err := tr.TransferTerm(seven)
	assert.Nil(t, err)

	str, err := destBackend.PrintValue(translated.Backend)
	assert.Nil(t, err)
	assert.Equal(t, "#b00000111", str)
}

func Test_TransferBoolOpKeepsBoolSort(t *testing.T) {
	srcBackend := memsolver.New()
	src := logging.New(srcBackend)
	dest := logging.New(memsolver.New())
	tr := New(srcBackend, dest)

	boolSort, err := src.MakeSort(smt.Bool)
	assert.Nil(t, err)
	x, err := src.MakeSymbol("x", boolSort)
	assert.Nil(t, err)

	// And(true, x) is a Bool term built in the source world; translating it
	// as-is keeps it Bool, exercising the plain (non-coercing) path.
	tru, err := src.MakeBoolValue(true)
	assert.Nil(t, err)
	andTerm, err := src.MakeTerm(smt.NewOp(smt.And), tru, x)
	assert.Nil(t, err)

	translated, err := tr.TransferTerm(andTerm)
	assert.Nil(t, err)
	assert.Equal(t, smt.Bool, translated.SortVal.Info.Kind())
}

func Test_TransferTermAsKindCoercesBoolToBV1(t *testing.T) {
	srcBackend := memsolver.New()
	src := logging.New(srcBackend)
	dest := logging.New(memsolver.New())
	tr := New(srcBackend, dest)

	boolSort, err := src.MakeSort(smt.Bool)
	assert.Nil(t, err)
	x, err := src.MakeSymbol("x", boolSort)
	assert.Nil(t, err)

	coerced, err := tr.TransferTermAsKind(x, smt.BV)
	assert.Nil(t, err)
	assert.Equal(t, smt.BV, coerced.SortVal.Info.Kind())
	assert.Equal(t, uint32(1), coerced.SortVal.Info.Width())
}

func Test_TransferTermAsKindCoercesBV1ToBool(t *testing.T) {
	srcBackend := memsolver.New()
	src := logging.New(srcBackend)
	dest := logging.New(memsolver.New())
	tr := New(srcBackend, dest)

	bv1, err := src.MakeBVSort(1)
	assert.Nil(t, err)
	x, err := src.MakeSymbol("x", bv1)
	assert.Nil(t, err)

	coerced, err := tr.TransferTermAsKind(x, smt.Bool)
	assert.Nil(t, err)
	assert.Equal(t, smt.Bool, coerced.SortVal.Info.Kind())
}

func Test_TransferTermAsKindRejectsWideBVToBool(t *testing.T) {
	srcBackend := memsolver.New()
	src := logging.New(srcBackend)
	dest := logging.New(memsolver.New())
	tr := New(srcBackend, dest)

	bv8, err := src.MakeBVSort(8)
	assert.Nil(t, err)
	x, err := src.MakeSymbol("x", bv8)
	assert.Nil(t, err)

	_, err = tr.TransferTermAsKind(x, smt.Bool)
	assert.NotNil(t, err)
	assert.True(t, smt.IsNotImplemented(err))
}

func Test_TransferTermAsKindCoercesIntReal(t *testing.T) {
	srcBackend := memsolver.New()
	src := logging.New(srcBackend)
	dest := logging.New(memsolver.New())
	tr := New(srcBackend, dest)

	intSort, err := src.MakeSort(smt.Int)
	assert.Nil(t, err)
	x, err := src.MakeSymbol("x", intSort)
	assert.Nil(t, err)

	asReal, err := tr.TransferTermAsKind(x, smt.Real)
	assert.Nil(t, err)
	assert.Equal(t, smt.Real, asReal.SortVal.Info.Kind())

	realSort, err := src.MakeSort(smt.Real)
	assert.Nil(t, err)
	y, err := src.MakeSymbol("y", realSort)
	assert.Nil(t, err)

	backToInt, err := tr.TransferTermAsKind(y, smt.Int)
	assert.Nil(t, err)
	assert.Equal(t, smt.Int, backToInt.SortVal.Info.Kind())
}
