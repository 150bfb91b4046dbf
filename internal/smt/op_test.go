package smt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_GetArityKnownAndUnknownOps(t *testing.T) {
	min, max, ok := GetArity(Not)
	assert.True(t, ok)
	assert.Equal(t, 1, min)
	assert.Equal(t, 1, max)

	min, max, ok = GetArity(And)
	assert.True(t, ok)
	assert.Equal(t, 1, min)
	assert.Equal(t, infArity, max)

	_, _, ok = GetArity(PrimOp(9999))
	assert.False(t, ok)
}

func Test_NewIndexedOpValidatesCount(t *testing.T) {
	op, err := NewIndexedOp(Extract, 7, 0)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(op.Indices))

	_, err = NewIndexedOp(Extract, 7)
	assert.NotNil(t, err)

	_, err = NewIndexedOp(And, 1)
	assert.NotNil(t, err)
}

func Test_NewIndexedOpRejectsNegativeIndices(t *testing.T) {
	_, err := NewIndexedOp(ZeroExtend, -1)
	assert.NotNil(t, err)
}

func Test_OpEqual(t *testing.T) {
	a, err := NewIndexedOp(Extract, 7, 0)
	assert.Nil(t, err)
	b, err := NewIndexedOp(Extract, 7, 0)
	assert.Nil(t, err)
	assert.True(t, a.Equal(b))

	c, err := NewIndexedOp(Extract, 6, 0)
	assert.Nil(t, err)
	assert.False(t, a.Equal(c))

	assert.True(t, NewOp(And).Equal(NewOp(And)))
	assert.False(t, NewOp(And).Equal(NewOp(Or)))
}

func Test_OpIsNull(t *testing.T) {
	assert.True(t, Op{}.IsNull())
	assert.False(t, NewOp(And).IsNull())
}

func Test_OpStringIndexed(t *testing.T) {
	op, err := NewIndexedOp(Extract, 7, 0)
	assert.Nil(t, err)
	assert.Equal(t, "(_ Extract 7 0)", op.String())
	assert.Equal(t, "And", NewOp(And).String())
}
