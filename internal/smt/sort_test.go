package smt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_BVSortRejectsZeroWidth(t *testing.T) {
	_, err := NewBVSort(0)
	assert.NotNil(t, err)
	_, isUsage := err.(*UsageError)
	assert.True(t, isUsage)
}

func Test_BVSortsOfEqualWidthAreEqual(t *testing.T) {
	a, err := NewBVSort(4)
	assert.Nil(t, err)
	b, err := NewBVSort(4)
	assert.Nil(t, err)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
}

func Test_BVSortsOfDifferentWidthAreNotEqual(t *testing.T) {
	a, _ := NewBVSort(4)
	b, _ := NewBVSort(8)
	assert.False(t, a.Equal(b))
}

func Test_ArraySortEquality(t *testing.T) {
	bv8, _ := NewBVSort(8)
	bv32, _ := NewBVSort(32)
	a1 := NewArraySort(bv32, bv8)
	a2 := NewArraySort(bv32, bv8)
	assert.True(t, a1.Equal(a2))
	assert.Equal(t, a1.Hash(), a2.Hash())

	other := NewArraySort(bv8, bv8)
	assert.False(t, a1.Equal(other))
}

func Test_FunctionSortRequiresNonEmptyDomain(t *testing.T) {
	_, err := NewFunctionSort(nil, NewBoolSort())
	assert.NotNil(t, err)
}

func Test_FunctionSortEquality(t *testing.T) {
	f1, err := NewFunctionSort([]Sort{NewIntSort(), NewIntSort()}, NewBoolSort())
	assert.Nil(t, err)
	f2, err := NewFunctionSort([]Sort{NewIntSort(), NewIntSort()}, NewBoolSort())
	assert.Nil(t, err)
	assert.True(t, f1.Equal(f2))

	f3, err := NewFunctionSort([]Sort{NewIntSort()}, NewBoolSort())
	assert.Nil(t, err)
	assert.False(t, f1.Equal(f3))
}

func Test_UninterpretedConsRequiresPositiveArity(t *testing.T) {
	_, err := NewUninterpretedConsSort("Set", 0)
	assert.NotNil(t, err)
}

func Test_UninterpretedAppliedSort(t *testing.T) {
	cons, err := NewUninterpretedConsSort("Pair", 2)
	assert.Nil(t, err)

	applied, err := NewUninterpretedAppliedSort(cons, []Sort{NewIntSort(), NewBoolSort()})
	assert.Nil(t, err)
	assert.Equal(t, UninterpretedApplied, applied.Kind())
	assert.Equal(t, 0, applied.Arity())

	sameParams, err := NewUninterpretedAppliedSort(cons, []Sort{NewIntSort(), NewBoolSort()})
	assert.Nil(t, err)
	assert.True(t, applied.Equal(sameParams))

	_, err = NewUninterpretedAppliedSort(cons, []Sort{NewIntSort()})
	assert.NotNil(t, err)

	_, err = NewUninterpretedAppliedSort(NewIntSort(), []Sort{NewIntSort(), NewBoolSort()})
	assert.NotNil(t, err)
}

func Test_UninterpretedSortNamesDistinguish(t *testing.T) {
	a := NewUninterpretedSort("A")
	b := NewUninterpretedSort("B")
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(NewUninterpretedSort("A")))
}

func Test_SortStringForms(t *testing.T) {
	bv8, _ := NewBVSort(8)
	assert.Equal(t, "(_ BitVec 8)", bv8.String())
	assert.Equal(t, "Bool", NewBoolSort().String())
	arr := NewArraySort(bv8, bv8)
	assert.Equal(t, "(Array (_ BitVec 8) (_ BitVec 8))", arr.String())
}
