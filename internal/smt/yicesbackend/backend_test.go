//go:build cgo

package yicesbackend

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

func Test_EqualityCheckSatAndGetValue(t *testing.T) {
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

func Test_MakeConstantArrayIsNotImplemented(t *testing.T) {
	b := New()
	bv8, _ := b.MakeBVSort(8)
	bv32, _ := b.MakeBVSort(32)
	arrSort, err := b.MakeArraySort(bv32, bv8)
	assert.Nil(t, err)
	base, _ := b.MakeValueFromInt64(0, bv8)

	_, err = b.MakeConstantArray(arrSort, base)
	assert.NotNil(t, err)
	assert.True(t, smt.IsNotImplemented(err))
}

func Test_UninterpretedAppliedSortIsNotImplemented(t *testing.T) {
	b := New()
	bv8, _ := b.MakeBVSort(8)

	_, err := b.MakeUninterpretedAppliedSort(bv8, nil)
	assert.NotNil(t, err)
	assert.True(t, smt.IsNotImplemented(err))
}
