package lkit

// Operand is a node in the tree of an expression: a constant *Value, a
// *Variable reference, or a nested *Expression.
//
// Eval produces the operand's current value, forcing re-evaluation of any
// expression or expression-backed variable beneath it. The As accessors are
// shorthand for coercing the result of Eval; each call re-evaluates.
type Operand interface {
	// Eval computes and returns the operand's value.
	Eval() Value
	// AsBool evaluates and coerces to boolean truthiness.
	AsBool() bool
	// AsInt evaluates and coerces to an integer.
	AsInt() int64
	// AsDouble evaluates and coerces to a double, NaN when undefined.
	AsDouble() float64
	// AsTime evaluates and coerces to a timestamp counter.
	AsTime() uint64
	// IsUndefined reports whether the operand currently holds no value. It
	// inspects stored state and does not re-evaluate.
	IsUndefined() bool
	// Equal reports structural equality with another operand. Operands of
	// different concrete types are never equal.
	Equal(Operand) bool
	// Hash returns a hash consistent with Equal.
	Hash() uint64
	// String renders the operand for diagnostics.
	String() string
}

var (
	_ Operand = (*Value)(nil)
	_ Operand = (*Expression)(nil)
	_ Operand = (*Variable)(nil)
)
