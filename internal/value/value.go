// Package value implements the VM's tagged value union and its string
// object model.
package value

import (
	"math"
	"strconv"
)

type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObj
)

// Value is the tagged union pushed onto the operand stack, stored in
// globals, and held in a Chunk's constant pool.
//
// Equality and ordering follow the specification precisely: Nil == Nil,
// cross-kind comparisons are always false (equality) or a runtime error
// (ordering), and only Number supports <, >.
type Value struct {
	kind   Kind
	number float64
	b      bool
	obj    Obj
}

// Obj is the interface satisfied by heap-allocated value payloads. The
// language currently has exactly one: *ObjString.
type Obj interface {
	objMarker()
}

func Nil() Value             { return Value{kind: KindNil} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func NumberVal(n float64) Value { return Value{kind: KindNumber, number: n} }
func Object(o Obj) Value     { return Value{kind: KindObj, obj: o} }

func (v Value) Kind() Kind        { return v.kind }
func (v Value) IsNil() bool       { return v.kind == KindNil }
func (v Value) IsBool() bool      { return v.kind == KindBool }
func (v Value) IsNumber() bool    { return v.kind == KindNumber }
func (v Value) IsObj() bool       { return v.kind == KindObj }
func (v Value) AsBool() bool      { return v.b }
func (v Value) AsNumber() float64 { return v.number }
func (v Value) AsObj() Obj        { return v.obj }

// AsString reports whether v holds a string object and, if so, returns it.
func (v Value) AsString() (*ObjString, bool) {
	if v.kind != KindObj {
		return nil, false
	}
	s, ok := v.obj.(*ObjString)
	return s, ok
}

// IsString reports whether v is a string object value.
func (v Value) IsString() bool {
	_, ok := v.AsString()
	return ok
}

// Falsey reports falseyness: Nil and Bool(false) are falsey, everything
// else (including Number(0)) is truthy.
func (v Value) Falsey() bool {
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return !v.b
	default:
		return false
	}
}

// Equal implements value equality: same-kind payload equality, cross-kind
// always false, Nil == Nil.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.number == other.number
	case KindObj:
		if a, ok := v.AsString(); ok {
			if b, ok := other.AsString(); ok {
				return a.Chars == b.Chars
			}
			return false
		}
		return v.obj == other.obj
	default:
		return false
	}
}

// String renders v's textual form per the VM's Print conventions: numbers
// without trailing zeros, booleans as true/false, nil as "nil", strings
// unquoted.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.number)
	case KindObj:
		if s, ok := v.AsString(); ok {
			return s.Chars
		}
		return "<obj>"
	default:
		return "<invalid>"
	}
}

// DebugString is String but with strings double-quoted, used by the
// bytecode disassembler and DEBUG trace.
func (v Value) DebugString() string {
	if s, ok := v.AsString(); ok {
		return strconv.Quote(s.Chars)
	}
	return v.String()
}

func formatNumber(n float64) string {
	if math.IsInf(n, 1) {
		return "inf"
	}
	if math.IsInf(n, -1) {
		return "-inf"
	}
	if math.IsNaN(n) {
		return "NaN"
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// ObjString is an immutable string payload. Two ObjStrings are equal iff
// their bytes are equal. Strings are not interned: every NewString call
// allocates its own payload, and Value.Equal compares contents.
type ObjString struct {
	Chars string
}

func (*ObjString) objMarker() {}

func NewString(s string) *ObjString {
	return &ObjString{Chars: s}
}

// NewStringValue is a convenience wrapper: Object(NewString(s)).
func NewStringValue(s string) Value {
	return Object(NewString(s))
}
