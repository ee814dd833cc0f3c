package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rox/internal/value"
)

func TestGetLineWithUniformLines(t *testing.T) {
	c := New("test")
	c.Write(OpNil, 0, 1)
	c.Write(OpNil, 0, 1)
	c.Write(OpNil, 0, 2)

	assert.Equal(t, 1, c.GetLine(0))
	assert.Equal(t, 1, c.GetLine(1))
	assert.Equal(t, 2, c.GetLine(2))
}

func TestGetLineWithSkippedLines(t *testing.T) {
	c := New("test")
	c.Write(OpNil, 0, 1)
	c.Write(OpNil, 0, 5)

	assert.Equal(t, 1, c.GetLine(0))
	assert.Equal(t, 5, c.GetLine(1))
}

func TestAddConstantAppendsAndReturnsIndex(t *testing.T) {
	c := New("test")
	i0 := c.AddConstant(value.NumberVal(1))
	i1 := c.AddConstant(value.NumberVal(2))
	assert.Equal(t, 0, i0)
	assert.Equal(t, 1, i1)
	assert.Len(t, c.Constants, 2)
}

func TestWriteReturnsSequentialIndices(t *testing.T) {
	c := New("test")
	i0 := c.Write(OpTrue, 0, 1)
	i1 := c.Write(OpFalse, 0, 1)
	assert.Equal(t, 0, i0)
	assert.Equal(t, 1, i1)
}

func TestHasOperand(t *testing.T) {
	assert.True(t, OpConstant.HasOperand())
	assert.True(t, OpGetLocal.HasOperand())
	assert.True(t, OpJump.HasOperand())
	assert.False(t, OpAdd.HasOperand())
	assert.False(t, OpReturn.HasOperand())
}
