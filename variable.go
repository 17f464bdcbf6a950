package lkit

import (
	"hash/fnv"
	"sync"
)

// Variable is a named slot referenced by expressions. It holds either a
// plain scalar assigned by the host or an owned backing expression; an
// expression-backed variable recomputes its value on every read, so updates
// anywhere beneath it are observed immediately.
//
// A Variable is safe for concurrent use.
type Variable struct {
	mu   sync.Mutex
	name string
	expr *Expression
	val  Value
}

// NewVariable creates a variable holding v. The zero-value placeholder
// form NewVariable(name, Value{}) is what a parser creates for a name
// referenced before it is defined.
func NewVariable(name string, v Value) *Variable {
	return &Variable{name: name, val: v}
}

// Name returns the variable's name.
func (a *Variable) Name() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.name
}

// SetName renames the variable. Registries key variables by name, so a
// registered variable should be renamed through its parser instead.
func (a *Variable) SetName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.name = name
}

// Set assigns a scalar value, dropping any backing expression.
func (a *Variable) Set(v Value) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.expr = nil
	a.val = v
}

// SetExpression backs the variable with e, which the variable owns
// exclusively from then on. A nil e clears the backing expression and
// leaves the current scalar in place. The backing expression must not
// refer back to the variable; evaluating such a cycle deadlocks.
func (a *Variable) SetExpression(e *Expression) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.expr = e
}

// Expression returns the backing expression, or nil when the variable is a
// plain scalar.
func (a *Variable) Expression() *Expression {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.expr
}

// Clear resets the variable to an undefined scalar, dropping any backing
// expression.
func (a *Variable) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.expr = nil
	a.val.Clear()
}

// Eval returns the variable's current value, re-evaluating the backing
// expression when there is one.
func (a *Variable) Eval() Value {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.expr != nil {
		a.val = a.expr.Eval()
	}
	return a.val
}

// AsBool evaluates and coerces to boolean truthiness.
func (a *Variable) AsBool() bool {
	v := a.Eval()
	return v.AsBool()
}

// AsInt evaluates and coerces to an integer.
func (a *Variable) AsInt() int64 {
	v := a.Eval()
	return v.AsInt()
}

// AsDouble evaluates and coerces to a double.
func (a *Variable) AsDouble() float64 {
	v := a.Eval()
	return v.AsDouble()
}

// AsTime evaluates and coerces to a timestamp counter.
func (a *Variable) AsTime() uint64 {
	v := a.Eval()
	return v.AsTime()
}

// IsUndefined reports whether the variable's stored value is undefined. It
// does not re-evaluate a backing expression.
func (a *Variable) IsUndefined() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.val.IsUndefined()
}

// Equal reports whether o is a *Variable with the same name and an equal
// current value. Whether either side is expression-backed is ignored.
func (a *Variable) Equal(o Operand) bool {
	u, ok := o.(*Variable)
	if !ok {
		return false
	}
	if a == u {
		return true
	}
	av, uv := a.Eval(), u.Eval()
	return a.Name() == u.Name() && av.Equal(&uv)
}

// Hash returns a hash consistent with Equal, combining the name with the
// current value.
func (a *Variable) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(a.Name()))
	v := a.Eval()
	mix64(h, v.Hash())
	return h.Sum64()
}

// String renders the variable as its name and stored value, without
// re-evaluating, e.g. "pi=(double) 3.14159265".
func (a *Variable) String() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.name + "=" + a.val.String()
}
