package lkit

import (
	"hash/fnv"
	"strings"
	"sync"
)

// Expression applies a Function to an ordered argument list. Arguments may
// be constant values, variables, or nested expressions, and slots may be
// nil; the function skips missing slots.
//
// Evaluating an expression recomputes the whole subtree. The result of the
// most recent evaluation is retained and read back by IsUndefined and
// String without recomputing.
//
// An Expression is safe for concurrent use. Distinct expressions in one
// tree lock independently, so concurrent evaluations of overlapping trees
// serialize only where they share nodes.
type Expression struct {
	mu   sync.Mutex
	name string
	fn   Function
	args []Operand
	val  Value
}

// NewExpression creates an expression applying fn to args. Nil slots in
// args are kept; the function skips them during evaluation.
func NewExpression(fn Function, args ...Operand) *Expression {
	return &Expression{fn: fn, args: args}
}

// Name returns the expression's diagnostic name.
func (e *Expression) Name() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.name
}

// SetName assigns a diagnostic name.
func (e *Expression) SetName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.name = name
}

// Function returns the applied function, or nil when none is assigned.
func (e *Expression) Function() Function {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fn
}

// SetFunction replaces the applied function.
func (e *Expression) SetFunction(fn Function) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fn = fn
}

// Args returns a copy of the argument list, including nil slots.
func (e *Expression) Args() []Operand {
	e.mu.Lock()
	defer e.mu.Unlock()
	args := make([]Operand, len(e.args))
	copy(args, e.args)
	return args
}

// SetArgs replaces the argument list.
func (e *Expression) SetArgs(args ...Operand) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.args = args
}

// AddArg appends an argument.
func (e *Expression) AddArg(arg Operand) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.args = append(e.args, arg)
}

// RemoveArg removes the first argument identical to arg and reports
// whether one was found.
func (e *Expression) RemoveArg(arg Operand) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for k, a := range e.args {
		if a == arg {
			e.args = append(e.args[:k], e.args[k+1:]...)
			return true
		}
	}
	return false
}

// ClearArgs removes every argument.
func (e *Expression) ClearArgs() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.args = nil
}

// Eval applies the function to the current arguments and returns the
// result. With no function assigned, the result of the previous evaluation
// is returned unchanged, undefined if there was none.
func (e *Expression) Eval() Value {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fn != nil {
		e.val = e.fn.Eval(e.args)
	}
	return e.val
}

// AsBool evaluates and coerces to boolean truthiness.
func (e *Expression) AsBool() bool {
	v := e.Eval()
	return v.AsBool()
}

// AsInt evaluates and coerces to an integer.
func (e *Expression) AsInt() int64 {
	v := e.Eval()
	return v.AsInt()
}

// AsDouble evaluates and coerces to a double.
func (e *Expression) AsDouble() float64 {
	v := e.Eval()
	return v.AsDouble()
}

// AsTime evaluates and coerces to a timestamp counter.
func (e *Expression) AsTime() uint64 {
	v := e.Eval()
	return v.AsTime()
}

// IsUndefined reports whether the most recent evaluation was undefined. It
// does not re-evaluate; an expression that has never been evaluated is
// undefined.
func (e *Expression) IsUndefined() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.val.IsUndefined()
}

// Equal reports whether o is an *Expression with the same name, the same
// function by identity, and structurally equal arguments.
func (e *Expression) Equal(o Operand) bool {
	u, ok := o.(*Expression)
	if !ok {
		return false
	}
	if e == u {
		return true
	}
	if e.Name() != u.Name() || e.Function() != u.Function() {
		return false
	}
	ea, ua := e.Args(), u.Args()
	if len(ea) != len(ua) {
		return false
	}
	for k := range ea {
		switch {
		case ea[k] == nil || ua[k] == nil:
			if ea[k] != ua[k] {
				return false
			}
		case !ea[k].Equal(ua[k]):
			return false
		}
	}
	return true
}

// Hash returns a hash consistent with Equal, combining the name, the
// function token, and every argument.
func (e *Expression) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(e.Name()))
	mix64(h, fnHash(e.Function()))
	for _, arg := range e.Args() {
		if arg == nil {
			mix64(h, 0)
			continue
		}
		mix64(h, arg.Hash())
	}
	return h.Sum64()
}

// String renders the expression as its function token applied to its
// arguments, e.g. "(<+> (int) 1 (int) 2)". The rendering reflects current
// argument values without re-evaluating.
func (e *Expression) String() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var b strings.Builder
	b.WriteByte('(')
	if e.fn != nil {
		b.WriteString(e.fn.String())
	} else {
		b.WriteByte('?')
	}
	for _, arg := range e.args {
		b.WriteByte(' ')
		if arg == nil {
			b.WriteString("(nil)")
			continue
		}
		b.WriteString(arg.String())
	}
	b.WriteByte(')')
	return b.String()
}
