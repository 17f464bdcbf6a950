package lkit

import "hash/fnv"

// Function is a capability invoked at the head of an expression.
//
// Eval receives the expression's argument list. Slots may be nil; an
// implementation must skip them. Each non-nil argument should be evaluated
// exactly once per call, in order. Eval reports problems by returning an
// undefined Value rather than by panicking or erroring.
//
// Functions compare by identity: two expressions share a function only when
// their heads are the same Function instance. String returns the function's
// debug token, e.g. "<max>" or "<.and.>".
type Function interface {
	Eval(args []Operand) Value
	String() string
}

// Max returns the variadic maximum function. Its result is the largest
// defined argument, or undefined when there are none.
func Max() Function { return builtinMax }

// Min returns the variadic minimum function.
func Min() Function { return builtinMin }

// Sum returns the variadic addition function. The first present argument
// seeds the accumulator and fixes the arithmetic domain; remaining defined
// arguments fold in with Value.Add.
func Sum() Function { return builtinSum }

// Diff returns the variadic subtraction function. With exactly one
// argument it negates instead.
func Diff() Function { return builtinDiff }

// Prod returns the variadic multiplication function.
func Prod() Function { return builtinProd }

// Quot returns the variadic division function.
func Quot() Function { return builtinQuot }

// CompareOp selects the relation tested by a comparison function.
type CompareOp int

const (
	Eq CompareOp = iota
	Ne
	Lt
	Gt
	Le
	Ge
)

// Comparison returns the chain comparison function for op. The first
// defined argument seeds a threshold; each later defined argument must
// satisfy the relation against the threshold, and for the ordering
// relations a satisfying argument becomes the new threshold, so
// "(< 1 2 3)" tests strict ascent. The result is undefined when no
// argument is defined, false on the first failed test, and true otherwise.
func Comparison(op CompareOp) Function { return builtinComps[op] }

// LogicOp selects the operation performed by a boolean function.
type LogicOp int

const (
	And LogicOp = iota
	Or
	Not
)

// Logical returns the boolean function for op. And and Or fold the
// truthiness of defined arguments with short-circuiting; Not negates the
// truthiness of the first defined argument. The result is undefined when no
// argument is defined.
func Logical(op LogicOp) Function { return builtinLogics[op] }

// Functions returns the default function table keyed by canonical source
// name. The map is a fresh copy; callers may add or remove entries without
// affecting other parsers.
func Functions() map[string]Function {
	m := make(map[string]Function, len(defaultFuncs))
	for name, fn := range defaultFuncs {
		m[name] = fn
	}
	return m
}

var (
	builtinMax  = &extremum{token: "<max>", better: (*Value).Greater}
	builtinMin  = &extremum{token: "<min>", better: (*Value).Less}
	builtinSum  = &fold{token: "<+>", op: (*Value).Add}
	builtinDiff = &fold{token: "<->", op: (*Value).Sub, unaryNegates: true}
	builtinProd = &fold{token: "<*>", op: (*Value).Mul}
	builtinQuot = &fold{token: "</>", op: (*Value).Div}

	builtinComps = [...]*comparison{
		Eq: {token: "<.eq.>", op: Eq},
		Ne: {token: "<.ne.>", op: Ne},
		Lt: {token: "<.lt.>", op: Lt},
		Gt: {token: "<.gt.>", op: Gt},
		Le: {token: "<.le.>", op: Le},
		Ge: {token: "<.ge.>", op: Ge},
	}

	builtinLogics = [...]*logical{
		And: {token: "<.and.>", op: And},
		Or:  {token: "<.or.>", op: Or},
		Not: {token: "<.not.>", op: Not},
	}

	defaultFuncs = map[string]Function{
		"max": builtinMax,
		"min": builtinMin,
		"+":   builtinSum,
		"-":   builtinDiff,
		"*":   builtinProd,
		"/":   builtinQuot,
		"==":  builtinComps[Eq],
		"!=":  builtinComps[Ne],
		"<":   builtinComps[Lt],
		">":   builtinComps[Gt],
		"<=":  builtinComps[Le],
		">=":  builtinComps[Ge],
		"and": builtinLogics[And],
		"or":  builtinLogics[Or],
		"not": builtinLogics[Not],
	}
)

// extremum implements max and min. better reports whether its receiver
// should replace the current answer.
type extremum struct {
	token  string
	better func(*Value, Value) bool
}

func (f *extremum) Eval(args []Operand) Value {
	var ans Value
	seeded := false
	for _, arg := range args {
		if arg == nil {
			continue
		}
		v := arg.Eval()
		if v.IsUndefined() {
			continue
		}
		if !seeded || f.better(&v, ans) {
			ans = v
			seeded = true
		}
	}
	return ans
}

func (f *extremum) String() string { return f.token }

// fold implements the variadic arithmetic reductions. The first present
// argument seeds the accumulator, even when it evaluates undefined, so the
// seed's variant governs the domain of the whole reduction.
type fold struct {
	token        string
	op           func(*Value, Value)
	unaryNegates bool
}

func (f *fold) Eval(args []Operand) Value {
	var ans Value
	rest := args
	for k, arg := range args {
		if arg != nil {
			ans = arg.Eval()
			rest = args[k+1:]
			break
		}
	}
	if f.unaryNegates && len(args) == 1 {
		var neg Value
		neg.Sub(ans)
		return neg
	}
	for _, arg := range rest {
		if arg == nil {
			continue
		}
		v := arg.Eval()
		if v.IsUndefined() {
			continue
		}
		f.op(&ans, v)
	}
	return ans
}

func (f *fold) String() string { return f.token }

// comparison implements the chain relations.
type comparison struct {
	token string
	op    CompareOp
}

func (f *comparison) Eval(args []Operand) Value {
	var threshold Value
	seeded := false
	for _, arg := range args {
		if arg == nil {
			continue
		}
		v := arg.Eval()
		if v.IsUndefined() {
			continue
		}
		if !seeded {
			threshold = v
			seeded = true
			continue
		}
		var ok bool
		switch f.op {
		case Eq:
			ok = v.Equal(&threshold)
		case Ne:
			ok = !v.Equal(&threshold)
		case Lt:
			ok = threshold.Less(v)
		case Gt:
			ok = threshold.Greater(v)
		case Le:
			ok = threshold.LessEq(v)
		case Ge:
			ok = threshold.GreaterEq(v)
		}
		if !ok {
			return Bool(false)
		}
		switch f.op {
		case Lt, Gt, Le, Ge:
			threshold = v
		}
	}
	if !seeded {
		return Value{}
	}
	return Bool(true)
}

func (f *comparison) String() string { return f.token }

// logical implements and, or, and not.
type logical struct {
	token string
	op    LogicOp
}

func (f *logical) Eval(args []Operand) Value {
	seen := false
	for _, arg := range args {
		if arg == nil {
			continue
		}
		v := arg.Eval()
		if v.IsUndefined() {
			continue
		}
		switch f.op {
		case And:
			if !v.AsBool() {
				return Bool(false)
			}
		case Or:
			if v.AsBool() {
				return Bool(true)
			}
		case Not:
			return Bool(!v.AsBool())
		}
		seen = true
	}
	if !seen {
		return Value{}
	}
	if f.op == Or {
		// No truthy argument appeared, and the last write wins.
		return Bool(false)
	}
	return Bool(true)
}

func (f *logical) String() string { return f.token }

// fnHash hashes a function by its debug token, which is consistent with
// identity comparison because distinct builtins carry distinct tokens.
func fnHash(fn Function) uint64 {
	h := fnv.New64a()
	if fn != nil {
		h.Write([]byte(fn.String()))
	}
	return h.Sum64()
}
