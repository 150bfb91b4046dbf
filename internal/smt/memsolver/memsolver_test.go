package memsolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smtcore/internal/smt"
)

func Test_MakeSymbolRejectsRedeclaration(t *testing.T) {
	b := New()
	bv8, err := b.MakeBVSort(8)
	assert.Nil(t, err)

	_, err = b.MakeSymbol("x", bv8)
	assert.Nil(t, err)

	_, err = b.MakeSymbol("x", bv8)
	assert.NotNil(t, err)
}

func Test_SetOptAndSetLogicRejectUnknown(t *testing.T) {
	b := New()
	assert.Nil(t, b.SetOpt("produce-models", "true"))
	assert.NotNil(t, b.SetOpt("not-a-real-option", "true"))

	assert.Nil(t, b.SetLogic("QF_BV"))
	assert.NotNil(t, b.SetLogic("QF_NOT_A_LOGIC"))
}

func Test_ApplyOpFoldsGroundArithmetic(t *testing.T) {
	b := New()
	bv8, err := b.MakeBVSort(8)
	assert.Nil(t, err)
	three, err := b.MakeValueFromInt64(3, bv8)
	assert.Nil(t, err)
	four, err := b.MakeValueFromInt64(4, bv8)
	assert.Nil(t, err)

	sum, err := b.ApplyOp(smt.NewOp(smt.BVAdd), []smt.BackendTerm{three, four})
	assert.Nil(t, err)
	assert.True(t, b.IsValue(sum))

	str, err := b.PrintValue(sum)
	assert.Nil(t, err)
	assert.Equal(t, "#b00000111", str)
}

func Test_ApplyOpDoesNotFoldOverFreeSymbol(t *testing.T) {
	b := New()
	bv8, err := b.MakeBVSort(8)
	assert.Nil(t, err)
	x, err := b.MakeSymbol("x", bv8)
	assert.Nil(t, err)
	one, err := b.MakeValueFromInt64(1, bv8)
	assert.Nil(t, err)

	sum, err := b.ApplyOp(smt.NewOp(smt.BVAdd), []smt.BackendTerm{x, one})
	assert.Nil(t, err)
	assert.False(t, b.IsValue(sum))
}

func Test_ApplyOpRejectsIllSortedArgs(t *testing.T) {
	b := New()
	bv8, _ := b.MakeBVSort(8)
	bv4, _ := b.MakeBVSort(4)
	a, _ := b.MakeSymbol("a", bv8)
	c, _ := b.MakeSymbol("c", bv4)

	_, err := b.ApplyOp(smt.NewOp(smt.BVAdd), []smt.BackendTerm{a, c})
	assert.NotNil(t, err)
	assert.True(t, smt.IsSortError(err))
}

func Test_CheckSatFindsSatisfyingAssignment(t *testing.T) {
	b := New()
	bv4, err := b.MakeBVSort(4)
	assert.Nil(t, err)
	x, err := b.MakeSymbol("x", bv4)
	assert.Nil(t, err)
	three, err := b.MakeValueFromInt64(3, bv4)
	assert.Nil(t, err)

	formula, err := b.ApplyOp(smt.NewOp(smt.Equal), []smt.BackendTerm{x, three})
	assert.Nil(t, err)
	assert.Nil(t, b.AssertFormula(formula))

	result, err := b.CheckSat()
	assert.Nil(t, err)
	assert.Equal(t, smt.Sat, result)

	v, err := b.GetValue(x)
	assert.Nil(t, err)
	str, err := b.PrintValue(v)
	assert.Nil(t, err)
	assert.Equal(t, "#b0011", str)
}

func Test_CheckSatDetectsUnsat(t *testing.T) {
	b := New()
	boolSort, err := b.MakeBoolSort()
	assert.Nil(t, err)
	x, err := b.MakeSymbol("x", boolSort)
	assert.Nil(t, err)
	notX, err := b.ApplyOp(smt.NewOp(smt.Not), []smt.BackendTerm{x})
	assert.Nil(t, err)

	assert.Nil(t, b.AssertFormula(x))
	assert.Nil(t, b.AssertFormula(notX))

	result, err := b.CheckSat()
	assert.Nil(t, err)
	assert.Equal(t, smt.Unsat, result)
}

func Test_PushPopRestoresAssertionStack(t *testing.T) {
	b := New()
	boolSort, _ := b.MakeBoolSort()
	x, _ := b.MakeSymbol("x", boolSort)

	assert.Nil(t, b.Push(1))
	assert.Nil(t, b.AssertFormula(x))
	result, err := b.CheckSat()
	assert.Nil(t, err)
	assert.Equal(t, smt.Sat, result)

	assert.Nil(t, b.Pop(1))
	notX, _ := b.ApplyOp(smt.NewOp(smt.Not), []smt.BackendTerm{x})
	assert.Nil(t, b.AssertFormula(notX))
	result, err = b.CheckSat()
	assert.Nil(t, err)
	assert.Equal(t, smt.Sat, result)
}

func Test_ArraySelectStoreRoundTrip(t *testing.T) {
	b := New()
	bv8, _ := b.MakeBVSort(8)
	bv32, _ := b.MakeBVSort(32)
	arrSort, err := b.MakeArraySort(bv32, bv8)
	assert.Nil(t, err)

	zero32, _ := b.MakeValueFromInt64(0, bv32)
	base, _ := b.MakeValueFromInt64(9, bv8)
	constArr, err := b.MakeConstantArray(arrSort, base)
	assert.Nil(t, err)

	five8, _ := b.MakeValueFromInt64(5, bv8)
	stored, err := b.ApplyOp(smt.NewOp(smt.Store), []smt.BackendTerm{constArr, zero32, five8})
	assert.Nil(t, err)

	selected, err := b.ApplyOp(smt.NewOp(smt.Select), []smt.BackendTerm{stored, zero32})
	assert.Nil(t, err)
	str, err := b.PrintValue(selected)
	assert.Nil(t, err)
	assert.Equal(t, "#b00000101", str)

	one32, _ := b.MakeValueFromInt64(1, bv32)
	untouched, err := b.ApplyOp(smt.NewOp(smt.Select), []smt.BackendTerm{stored, one32})
	assert.Nil(t, err)
	str, err = b.PrintValue(untouched)
	assert.Nil(t, err)
	assert.Equal(t, "#b00001001", str)
}

func Test_ResetClearsAssertionsAndDeclarations(t *testing.T) {
	b := New()
	boolSort, _ := b.MakeBoolSort()
	x, err := b.MakeSymbol("x", boolSort)
	assert.Nil(t, err)
	assert.Nil(t, b.AssertFormula(x))

	assert.Nil(t, b.Reset())

	// x was forgotten, so redeclaring it must succeed.
	_, err = b.MakeSymbol("x", boolSort)
	assert.Nil(t, err)
}
