package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFalseyness(t *testing.T) {
	assert.True(t, Nil().Falsey())
	assert.True(t, Bool(false).Falsey())
	assert.False(t, Bool(true).Falsey())
	assert.False(t, NumberVal(0).Falsey())
	assert.False(t, NewStringValue("").Falsey())
}

func TestEqualCrossKindIsFalse(t *testing.T) {
	assert.True(t, Nil().Equal(Nil()))
	assert.False(t, Nil().Equal(Bool(false)))
	assert.False(t, NumberVal(1).Equal(NewStringValue("1")))
	assert.True(t, NumberVal(1).Equal(NumberVal(1)))
	assert.True(t, NewStringValue("ab").Equal(NewStringValue("ab")))
	assert.False(t, NewStringValue("ab").Equal(NewStringValue("ac")))
}

func TestStringFormatsWithoutTrailingZeros(t *testing.T) {
	assert.Equal(t, "3", NumberVal(3).String())
	assert.Equal(t, "3.5", NumberVal(3.5).String())
	assert.Equal(t, "nil", Nil().String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "false", Bool(false).String())
}

func TestDebugStringQuotesStrings(t *testing.T) {
	assert.Equal(t, `"hi"`, NewStringValue("hi").DebugString())
	assert.Equal(t, "3", NumberVal(3).DebugString())
}

func TestAsStringOnNonObjectFails(t *testing.T) {
	_, ok := NumberVal(1).AsString()
	assert.False(t, ok)
	assert.False(t, NumberVal(1).IsString())
}
