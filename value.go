package lkit

import (
	"encoding/binary"
	"hash/fnv"
	"io"
	"math"
	"strconv"

	"github.com/zephyrtronium/lkit/timeutil"
)

// Kind identifies the variant a Value currently holds.
type Kind int

const (
	// KindUndefined is the variant of the zero Value and of any value to
	// which nothing has been assigned, or which a poisoning operation has
	// cleared.
	KindUndefined Kind = iota
	// KindBool is the boolean variant.
	KindBool
	// KindInt is the signed 64-bit integer variant.
	KindInt
	// KindDouble is the 64-bit floating-point variant.
	KindDouble
	// KindTime is the timestamp variant, microseconds since the Unix epoch
	// in an unsigned 64-bit counter.
	KindTime
)

var kindNames = [...]string{"undefined", "bool", "int", "double", "time"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// Value is a tagged scalar. The zero Value is undefined.
//
// Values mutate in place under the compound operations Add, Sub, Mul, and
// Div, always staying in the domain of the receiver: the right operand is
// coerced into the receiver's variant before combining. An undefined right
// operand is ignored by Add, Sub, and Mul, but Div by undefined clears the
// receiver. Division by zero also clears the receiver rather than erroring.
type Value struct {
	kind Kind
	b    bool
	i    int64
	d    float64
	t    uint64
}

// Bool creates a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int creates an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Double creates a floating-point Value.
func Double(d float64) Value { return Value{kind: KindDouble, d: d} }

// Time creates a timestamp Value from microseconds since the Unix epoch.
func Time(t uint64) Value { return Value{kind: KindTime, t: t} }

// Kind reports the variant v currently holds.
func (v *Value) Kind() Kind { return v.kind }

// IsUndefined reports whether v holds no defined value.
func (v *Value) IsUndefined() bool { return v.kind == KindUndefined }

// IsInt reports whether v holds an integer.
func (v *Value) IsInt() bool { return v.kind == KindInt }

// IsDouble reports whether v holds a double.
func (v *Value) IsDouble() bool { return v.kind == KindDouble }

// IsTime reports whether v holds a timestamp.
func (v *Value) IsTime() bool { return v.kind == KindTime }

// SetBool assigns a boolean to v.
func (v *Value) SetBool(b bool) { *v = Bool(b) }

// SetInt assigns an integer to v.
func (v *Value) SetInt(i int64) { *v = Int(i) }

// SetDouble assigns a double to v.
func (v *Value) SetDouble(d float64) { *v = Double(d) }

// SetTime assigns a timestamp to v.
func (v *Value) SetTime(t uint64) { *v = Time(t) }

// Clear resets v to undefined.
func (v *Value) Clear() { *v = Value{} }

// Eval returns a copy of v. It implements Operand.
func (v *Value) Eval() Value { return *v }

// AsBool reads v as a boolean. Numeric variants are truthy when nonzero;
// undefined reads as false.
func (v *Value) AsBool() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindDouble:
		return v.d != 0
	case KindTime:
		return v.t != 0
	}
	return false
}

// AsInt reads v as an integer, truncating a double toward zero. Undefined
// reads as 0.
func (v *Value) AsInt() int64 {
	switch v.kind {
	case KindBool:
		return b2i(v.b)
	case KindInt:
		return v.i
	case KindDouble:
		return int64(v.d)
	case KindTime:
		return int64(v.t)
	}
	return 0
}

// AsDouble reads v as a double. Undefined reads as NaN.
func (v *Value) AsDouble() float64 {
	switch v.kind {
	case KindBool:
		return float64(b2i(v.b))
	case KindInt:
		return float64(v.i)
	case KindDouble:
		return v.d
	case KindTime:
		return float64(v.t)
	}
	return math.NaN()
}

// AsTime reads v as a timestamp counter. Undefined reads as 0.
func (v *Value) AsTime() uint64 {
	switch v.kind {
	case KindBool:
		return b2u(v.b)
	case KindInt:
		return uint64(v.i)
	case KindDouble:
		return uint64(v.d)
	case KindTime:
		return v.t
	}
	return 0
}

// Equal reports whether v and u hold the same variant and the same payload.
// Two undefined values are equal. Values of different variants are never
// equal, even when their payloads would coerce equal.
func (v *Value) Equal(o Operand) bool {
	u, ok := o.(*Value)
	if !ok {
		return false
	}
	if v.kind != u.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == u.b
	case KindInt:
		return v.i == u.i
	case KindDouble:
		return v.d == u.d
	case KindTime:
		return v.t == u.t
	}
	return true
}

// Hash returns a hash consistent with Equal.
func (v *Value) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte{byte(v.kind)})
	var bits uint64
	switch v.kind {
	case KindBool:
		bits = b2u(v.b)
	case KindInt:
		bits = uint64(v.i)
	case KindDouble:
		if v.d != 0 {
			// -0 hashes as 0, since -0 == 0.
			bits = math.Float64bits(v.d)
		}
	case KindTime:
		bits = v.t
	}
	mix64(h, bits)
	return h.Sum64()
}

// mix64 writes v little-endian into a running hash.
func mix64(w io.Writer, v uint64) {
	var p [8]byte
	binary.LittleEndian.PutUint64(p[:], v)
	w.Write(p[:])
}

// Less reports whether v orders before u. The comparison dispatches on the
// variant of the right operand; if either side is undefined the result is
// false.
func (v *Value) Less(u Value) bool {
	switch u.kind {
	case KindBool:
		return v.lessInt(b2i(u.b))
	case KindInt:
		return v.lessInt(u.i)
	case KindDouble:
		return v.lessDouble(u.d)
	case KindTime:
		return v.lessTime(u.t)
	}
	return false
}

// Greater reports whether v orders after u, with the same dispatch and
// undefined handling as Less.
func (v *Value) Greater(u Value) bool {
	switch u.kind {
	case KindBool:
		return v.greaterInt(b2i(u.b))
	case KindInt:
		return v.greaterInt(u.i)
	case KindDouble:
		return v.greaterDouble(u.d)
	case KindTime:
		return v.greaterTime(u.t)
	}
	return false
}

// LessEq reports !v.Greater(u). Note that this makes an undefined operand
// satisfy LessEq against anything.
func (v *Value) LessEq(u Value) bool { return !v.Greater(u) }

// GreaterEq reports !v.Less(u).
func (v *Value) GreaterEq(u Value) bool { return !v.Less(u) }

func (v *Value) lessInt(i int64) bool {
	switch v.kind {
	case KindBool:
		return b2i(v.b) < i
	case KindInt:
		return v.i < i
	case KindDouble:
		return v.d < float64(i)
	case KindTime:
		return v.t < uint64(i)
	}
	return false
}

func (v *Value) lessDouble(d float64) bool {
	switch v.kind {
	case KindBool:
		return float64(b2i(v.b)) < d
	case KindInt:
		return float64(v.i) < d
	case KindDouble:
		return v.d < d
	case KindTime:
		return v.t < uint64(d)
	}
	return false
}

func (v *Value) lessTime(t uint64) bool {
	switch v.kind {
	case KindBool:
		return b2u(v.b) < t
	case KindInt:
		return v.i < int64(t)
	case KindDouble:
		return v.d < float64(t)
	case KindTime:
		return v.t < t
	}
	return false
}

func (v *Value) greaterInt(i int64) bool {
	switch v.kind {
	case KindBool:
		return b2i(v.b) > i
	case KindInt:
		return v.i > i
	case KindDouble:
		return v.d > float64(i)
	case KindTime:
		return v.t > uint64(i)
	}
	return false
}

func (v *Value) greaterDouble(d float64) bool {
	switch v.kind {
	case KindBool:
		return float64(b2i(v.b)) > d
	case KindInt:
		return float64(v.i) > d
	case KindDouble:
		return v.d > d
	case KindTime:
		return v.t > uint64(d)
	}
	return false
}

func (v *Value) greaterTime(t uint64) bool {
	switch v.kind {
	case KindBool:
		return b2u(v.b) > t
	case KindInt:
		return v.i > int64(t)
	case KindDouble:
		return v.d > float64(t)
	case KindTime:
		return v.t > t
	}
	return false
}

// Add accumulates u into v in v's domain. If v is undefined, it adopts u's
// variant and payload. If u is undefined, v is unchanged. A boolean receiver
// takes the truthiness of the arithmetic sum, except that bool plus bool is
// exclusive or.
func (v *Value) Add(u Value) {
	if u.kind == KindUndefined {
		return
	}
	switch v.kind {
	case KindUndefined:
		*v = u
	case KindBool:
		switch u.kind {
		case KindBool:
			v.b = v.b != u.b
		case KindInt:
			v.b = b2i(v.b)+u.i != 0
		case KindDouble:
			v.b = float64(b2i(v.b))+u.d != 0
		case KindTime:
			v.b = b2u(v.b)+u.t != 0
		}
	case KindInt:
		v.i += u.AsInt()
	case KindDouble:
		v.d += u.AsDouble()
	case KindTime:
		v.t += u.AsTime()
	}
}

// Sub subtracts u from v in v's domain. An undefined receiver adopts the
// negation of u; negating a timestamp wraps the unsigned counter. Bool minus
// bool is exclusive or, like Add.
func (v *Value) Sub(u Value) {
	if u.kind == KindUndefined {
		return
	}
	switch v.kind {
	case KindUndefined:
		switch u.kind {
		case KindBool:
			v.SetBool(!u.b)
		case KindInt:
			v.SetInt(-u.i)
		case KindDouble:
			v.SetDouble(-u.d)
		case KindTime:
			v.SetTime(-u.t)
		}
	case KindBool:
		switch u.kind {
		case KindBool:
			v.b = v.b != u.b
		case KindInt:
			v.b = b2i(v.b)-u.i != 0
		case KindDouble:
			v.b = float64(b2i(v.b))-u.d != 0
		case KindTime:
			v.b = b2u(v.b)-u.t != 0
		}
	case KindInt:
		v.i -= u.AsInt()
	case KindDouble:
		v.d -= u.AsDouble()
	case KindTime:
		v.t -= u.AsTime()
	}
}

// Mul multiplies v by u in v's domain. An undefined receiver stays
// undefined. Bool times anything is logical and with u's truthiness.
func (v *Value) Mul(u Value) {
	if u.kind == KindUndefined {
		return
	}
	switch v.kind {
	case KindBool:
		v.b = v.b && u.AsBool()
	case KindInt:
		v.i *= u.AsInt()
	case KindDouble:
		v.d *= u.AsDouble()
	case KindTime:
		v.t *= u.AsTime()
	}
}

// Div divides v by u in v's domain. Dividing by undefined clears v, and so
// does any divisor that is zero once coerced into v's domain. Bool divided
// by bool is logical equivalence.
func (v *Value) Div(u Value) {
	if u.kind == KindUndefined {
		v.Clear()
		return
	}
	switch v.kind {
	case KindBool:
		if u.kind == KindBool {
			v.b = v.b == u.b
			return
		}
		r := u.AsInt()
		if r == 0 {
			v.Clear()
			return
		}
		v.b = b2i(v.b)/r != 0
	case KindInt:
		r := u.AsInt()
		if r == 0 {
			v.Clear()
			return
		}
		v.i /= r
	case KindDouble:
		r := u.AsDouble()
		if r == 0 {
			v.Clear()
			return
		}
		v.d /= r
	case KindTime:
		r := u.AsTime()
		if r == 0 {
			v.Clear()
			return
		}
		v.t /= r
	}
}

// String formats v as its variant tag followed by its payload, e.g.
// "(int) 6" or "(undefined)".
func (v *Value) String() string {
	switch v.kind {
	case KindBool:
		return "(bool) " + strconv.FormatBool(v.b)
	case KindInt:
		return "(int) " + strconv.FormatInt(v.i, 10)
	case KindDouble:
		return "(double) " + strconv.FormatFloat(v.d, 'g', -1, 64)
	case KindTime:
		return "(time) " + timeutil.Format(v.t, true)
	}
	return "(undefined)"
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
