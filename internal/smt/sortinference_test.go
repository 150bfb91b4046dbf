package smt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_CheckSortednessBoolOps(t *testing.T) {
	ok, err := CheckSortedness(NewOp(And), []Sort{NewBoolSort(), NewBoolSort()})
	assert.Nil(t, err)
	assert.True(t, ok)

	ok, err = CheckSortedness(NewOp(And), []Sort{NewBoolSort(), NewIntSort()})
	assert.Nil(t, err)
	assert.False(t, ok)
}

func Test_CheckSortednessArityOutOfRange(t *testing.T) {
	ok, err := CheckSortedness(NewOp(Not), []Sort{NewBoolSort(), NewBoolSort()})
	assert.Nil(t, err)
	assert.False(t, ok)
}

func Test_CheckSortednessUnknownOpIsNotImplemented(t *testing.T) {
	_, err := CheckSortedness(NewOp(PrimOp(9999)), []Sort{NewBoolSort()})
	assert.NotNil(t, err)
	assert.True(t, IsNotImplemented(err))
}

func Test_CheckIteSorts(t *testing.T) {
	bv8, _ := NewBVSort(8)
	ok, err := CheckSortedness(NewOp(Ite), []Sort{NewBoolSort(), bv8, bv8})
	assert.Nil(t, err)
	assert.True(t, ok)

	bv4, _ := NewBVSort(4)
	ok, err = CheckSortedness(NewOp(Ite), []Sort{NewBoolSort(), bv8, bv4})
	assert.Nil(t, err)
	assert.False(t, ok)
}

func Test_CheckEqBVSorts(t *testing.T) {
	bv8, _ := NewBVSort(8)
	bv4, _ := NewBVSort(4)
	ok, err := CheckSortedness(NewOp(BVAdd), []Sort{bv8, bv8})
	assert.Nil(t, err)
	assert.True(t, ok)

	ok, err = CheckSortedness(NewOp(BVAdd), []Sort{bv8, bv4})
	assert.Nil(t, err)
	assert.False(t, ok)
}

func Test_CheckSelectStoreSorts(t *testing.T) {
	bv8, _ := NewBVSort(8)
	bv32, _ := NewBVSort(32)
	arr := NewArraySort(bv32, bv8)

	ok, err := CheckSortedness(NewOp(Select), []Sort{arr, bv32})
	assert.Nil(t, err)
	assert.True(t, ok)

	ok, err = CheckSortedness(NewOp(Store), []Sort{arr, bv32, bv8})
	assert.Nil(t, err)
	assert.True(t, ok)

	ok, err = CheckSortedness(NewOp(Store), []Sort{arr, bv32, bv32})
	assert.Nil(t, err)
	assert.False(t, ok)
}

func Test_ComputeSortBoolResult(t *testing.T) {
	bv8, _ := NewBVSort(8)
	s, err := ComputeSort(NewOp(BVUlt), []Sort{bv8, bv8}, Sort{})
	assert.Nil(t, err)
	assert.Equal(t, Bool, s.Kind())
}

func Test_ComputeSortExtract(t *testing.T) {
	bv8, _ := NewBVSort(8)
	op, err := NewIndexedOp(Extract, 5, 2)
	assert.Nil(t, err)
	s, err := ComputeSort(op, []Sort{bv8}, Sort{})
	assert.Nil(t, err)
	assert.Equal(t, uint32(4), s.Width())
}

func Test_ComputeSortExtractRejectsInvalidRange(t *testing.T) {
	bv8, _ := NewBVSort(8)
	op, err := NewIndexedOp(Extract, 1, 5)
	assert.Nil(t, err)
	_, err = ComputeSort(op, []Sort{bv8}, Sort{})
	assert.NotNil(t, err)
	assert.True(t, IsSortError(err))
}

func Test_ComputeSortConcat(t *testing.T) {
	bv4, _ := NewBVSort(4)
	bv8, _ := NewBVSort(8)
	s, err := ComputeSort(NewOp(Concat), []Sort{bv4, bv8}, Sort{})
	assert.Nil(t, err)
	assert.Equal(t, uint32(12), s.Width())
}

func Test_ComputeSortSelectAndStore(t *testing.T) {
	bv8, _ := NewBVSort(8)
	bv32, _ := NewBVSort(32)
	arr := NewArraySort(bv32, bv8)

	s, err := ComputeSort(NewOp(Select), []Sort{arr, bv32}, Sort{})
	assert.Nil(t, err)
	assert.True(t, s.Equal(bv8))

	s, err = ComputeSort(NewOp(Store), []Sort{arr, bv32, bv8}, Sort{})
	assert.Nil(t, err)
	assert.True(t, s.Equal(arr))
}

func Test_ComputeSortApply(t *testing.T) {
	fn, err := NewFunctionSort([]Sort{NewIntSort(), NewIntSort()}, NewBoolSort())
	assert.Nil(t, err)
	s, err := ComputeSort(NewOp(Apply), []Sort{fn, NewIntSort(), NewIntSort()}, Sort{})
	assert.Nil(t, err)
	assert.Equal(t, Bool, s.Kind())
}
