// Package value implements Nilan's runtime value representation: a closed
// tagged variant shared by the compiler's constant pool and the VM's stack
// and globals table.
package value

import "fmt"

// Kind tags which case of Value is populated.
type Kind byte

const (
	KindNil Kind = iota
	KindBoolean
	KindNumber
	KindObject
)

// ObjKind tags which case of Obj is populated. String is the only case
// this dialect needs.
type ObjKind byte

const (
	ObjString ObjKind = iota
)

// Obj is a heap-allocated object. Values that wrap a string hold a pointer
// to one, so copies of a Value share the same underlying string without
// any refcount bookkeeping — Go's garbage collector frees it once nothing
// references it.
type Obj struct {
	Kind ObjKind
	Str  string
}

// Value is Nilan's tagged runtime value: Nil, Boolean, Number(int64), or
// Object(*Obj). Exactly one of the payload fields is meaningful, selected
// by Kind.
type Value struct {
	Kind    Kind
	Boolean bool
	Number  int64
	Obj     *Obj
}

// Nil is the singleton nil value.
var Nil = Value{Kind: KindNil}

// Bool constructs a Boolean value.
func Bool(b bool) Value {
	return Value{Kind: KindBoolean, Boolean: b}
}

// Num constructs a Number value.
func Num(n int64) Value {
	return Value{Kind: KindNumber, Number: n}
}

// Str constructs an Object(String) value.
func Str(s string) Value {
	return Value{Kind: KindObject, Obj: &Obj{Kind: ObjString, Str: s}}
}

// IsString reports whether v is a string object.
func (v Value) IsString() bool {
	return v.Kind == KindObject && v.Obj != nil && v.Obj.Kind == ObjString
}

// IsNumber reports whether v is a Number.
func (v Value) IsNumber() bool {
	return v.Kind == KindNumber
}

// Falsey reports whether v is Nil or Boolean(false); every other value,
// including Number(0), is truthy.
func (v Value) Falsey() bool {
	switch v.Kind {
	case KindNil:
		return true
	case KindBoolean:
		return !v.Boolean
	default:
		return false
	}
}

// Equal implements Nilan's cross-variant equality rule: values of
// different kinds are never equal; booleans, numbers, and nil compare by
// value; strings compare by text.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNil:
		return true
	case KindBoolean:
		return v.Boolean == other.Boolean
	case KindNumber:
		return v.Number == other.Number
	case KindObject:
		if v.Obj == nil || other.Obj == nil {
			return v.Obj == other.Obj
		}
		if v.Obj.Kind != other.Obj.Kind {
			return false
		}
		return v.Obj.Str == other.Obj.Str
	default:
		return false
	}
}

// String formats v for `print` and for disassembly/debug output.
func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBoolean:
		if v.Boolean {
			return "true"
		}
		return "false"
	case KindNumber:
		return fmt.Sprintf("%d", v.Number)
	case KindObject:
		if v.Obj != nil && v.Obj.Kind == ObjString {
			return v.Obj.Str
		}
		return "<object>"
	default:
		return "<invalid value>"
	}
}
