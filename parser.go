package lkit

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/zephyrtronium/lkit/timeutil"
)

// Parser compiles prefix-notation source into an expression tree and owns
// the registries the tree references: the function table, the variable
// table, the constants parsed from source, and the nested sub-expressions.
//
// Compilation is idempotent: once a source string has compiled, further
// calls to Compile and Eval reuse the tree until SetSource, Clear, or
// Reset drops it. Evaluation re-evaluates the whole tree every time, so
// host updates to registered variables are observed by the next Eval.
//
// A Parser is safe for concurrent use. Each registry locks independently,
// so variable updates do not contend with function lookups.
type Parser struct {
	mu   sync.Mutex // guards src and root
	src  string
	root Operand

	fnMu sync.Mutex
	fns  map[string]Function

	varMu sync.Mutex
	vars  map[string]*Variable

	constMu sync.Mutex
	consts  []*Value

	subMu sync.Mutex
	subs  []*Expression
}

// NewParser creates a parser with the default functions and variables
// registered, then applies opts in order.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		fns:  Functions(),
		vars: Variables(),
	}
	for _, opt := range opts {
		opt.apply(p)
	}
	return p
}

// Parse is shorthand for creating a parser and compiling src.
func Parse(src string, opts ...Option) (*Parser, error) {
	p := NewParser(opts...)
	p.src = src
	if err := p.Compile(); err != nil {
		return nil, err
	}
	return p, nil
}

// Variables returns the default variable table: e and pi. The map and the
// variables in it are fresh on every call.
func Variables() map[string]*Variable {
	return map[string]*Variable{
		"e":  NewVariable("e", Double(2.71828183)),
		"pi": NewVariable("pi", Double(3.14159265)),
	}
}

// Source returns the current source text.
func (p *Parser) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.src
}

// SetSource replaces the source text and drops the compiled tree. The
// registries survive, so variables defined or referenced by earlier
// sources keep their values for the next compilation.
func (p *Parser) SetSource(src string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.src = src
	p.root = nil
}

// Compiled reports whether the current source has been compiled.
func (p *Parser) Compiled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.root != nil
}

// Root returns the root of the compiled tree, or nil before compilation.
// The root is an *Expression, or a *Variable when the source was a
// set-form.
func (p *Parser) Root() Operand {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.root
}

// Compile builds the expression tree from the current source. It is a
// no-op when the source is already compiled. Every error it returns
// implements SyntaxError.
func (p *Parser) Compile() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.compile()
}

// Eval compiles if necessary and evaluates the tree. Evaluation itself
// cannot fail; an erroneous computation yields an undefined Value.
func (p *Parser) Eval() (Value, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.compile(); err != nil {
		return Value{}, err
	}
	return p.root.Eval(), nil
}

// Clear empties the parser: source, tree, and every registry, including
// the default functions and variables. Most callers want Reset.
func (p *Parser) Clear() {
	p.mu.Lock()
	p.src = ""
	p.root = nil
	p.mu.Unlock()
	p.fnMu.Lock()
	p.fns = make(map[string]Function)
	p.fnMu.Unlock()
	p.varMu.Lock()
	p.vars = make(map[string]*Variable)
	p.varMu.Unlock()
	p.constMu.Lock()
	p.consts = nil
	p.constMu.Unlock()
	p.subMu.Lock()
	p.subs = nil
	p.subMu.Unlock()
}

// Reset clears the parser and restores the default functions and
// variables.
func (p *Parser) Reset() {
	p.Clear()
	p.fnMu.Lock()
	p.fns = Functions()
	p.fnMu.Unlock()
	p.varMu.Lock()
	p.vars = Variables()
	p.varMu.Unlock()
}

// AddFunction registers fn under name, replacing any existing entry.
func (p *Parser) AddFunction(name string, fn Function) {
	p.fnMu.Lock()
	defer p.fnMu.Unlock()
	p.fns[name] = fn
}

// Function returns the function registered under name.
func (p *Parser) Function(name string) (Function, bool) {
	p.fnMu.Lock()
	defer p.fnMu.Unlock()
	fn, ok := p.fns[name]
	return fn, ok
}

// RemoveFunction unregisters name and reports whether it was registered.
func (p *Parser) RemoveFunction(name string) bool {
	p.fnMu.Lock()
	defer p.fnMu.Unlock()
	_, ok := p.fns[name]
	delete(p.fns, name)
	return ok
}

// FunctionNames returns the registered function names, sorted.
func (p *Parser) FunctionNames() []string {
	p.fnMu.Lock()
	names := make([]string, 0, len(p.fns))
	for name := range p.fns {
		names = append(names, name)
	}
	p.fnMu.Unlock()
	sort.Strings(names)
	return names
}

// AddVariable registers v. If a variable of the same name already exists,
// the existing variable adopts v's payload instead, so references from
// compiled trees stay valid; the registered variable is returned either
// way.
func (p *Parser) AddVariable(v *Variable) *Variable {
	p.varMu.Lock()
	defer p.varMu.Unlock()
	return p.addVariable(v)
}

func (p *Parser) addVariable(v *Variable) *Variable {
	old, ok := p.vars[v.Name()]
	if !ok {
		p.vars[v.Name()] = v
		return v
	}
	if old == v {
		return old
	}
	if e := v.Expression(); e != nil {
		old.SetExpression(e)
	} else {
		old.Set(v.Eval())
	}
	return old
}

// SetVariable assigns v to the variable called name, creating it if
// needed, and returns the registered variable.
func (p *Parser) SetVariable(name string, v Value) *Variable {
	p.varMu.Lock()
	defer p.varMu.Unlock()
	a, ok := p.vars[name]
	if !ok {
		a = NewVariable(name, v)
		p.vars[name] = a
		return a
	}
	a.Set(v)
	return a
}

// Variable returns the variable registered under name.
func (p *Parser) Variable(name string) (*Variable, bool) {
	p.varMu.Lock()
	defer p.varMu.Unlock()
	v, ok := p.vars[name]
	return v, ok
}

// RemoveVariable unregisters name and reports whether it was registered.
// Compiled trees referencing the variable keep their reference; the
// variable merely stops being reachable by name.
func (p *Parser) RemoveVariable(name string) bool {
	p.varMu.Lock()
	defer p.varMu.Unlock()
	_, ok := p.vars[name]
	delete(p.vars, name)
	return ok
}

// VariableNames returns the registered variable names, sorted.
func (p *Parser) VariableNames() []string {
	p.varMu.Lock()
	names := make([]string, 0, len(p.vars))
	for name := range p.vars {
		names = append(names, name)
	}
	p.varMu.Unlock()
	sort.Strings(names)
	return names
}

// Constants returns the constants parsed from source, in order of
// appearance.
func (p *Parser) Constants() []*Value {
	p.constMu.Lock()
	defer p.constMu.Unlock()
	consts := make([]*Value, len(p.consts))
	copy(consts, p.consts)
	return consts
}

// Subexpressions returns the nested expressions parsed from source, in
// order of appearance. The root is not included.
func (p *Parser) Subexpressions() []*Expression {
	p.subMu.Lock()
	defer p.subMu.Unlock()
	subs := make([]*Expression, len(p.subs))
	copy(subs, p.subs)
	return subs
}

func (p *Parser) lookupFunction(name string) Function {
	p.fnMu.Lock()
	defer p.fnMu.Unlock()
	return p.fns[name]
}

// lookupVariable finds the variable called name, creating an undefined
// placeholder when the name has not been seen. A later set-form or host
// assignment fills the placeholder in.
func (p *Parser) lookupVariable(name string) *Variable {
	p.varMu.Lock()
	defer p.varMu.Unlock()
	v, ok := p.vars[name]
	if !ok {
		v = NewVariable(name, Value{})
		p.vars[name] = v
	}
	return v
}

func (p *Parser) addConst(v *Value) {
	p.constMu.Lock()
	defer p.constMu.Unlock()
	p.consts = append(p.consts, v)
}

func (p *Parser) addSub(e *Expression) {
	p.subMu.Lock()
	defer p.subMu.Unlock()
	p.subs = append(p.subs, e)
}

// compile builds the tree. The caller holds p.mu.
func (p *Parser) compile() error {
	if p.root != nil {
		return nil
	}
	pos := strings.IndexByte(p.src, '(')
	if pos < 0 {
		return &BracketError{Col: 1}
	}
	root, err := p.parseExpr(p.src, &pos)
	if err != nil {
		return err
	}
	p.root = root
	return nil
}

// parseExpr parses one parenthesized form starting at *pos, which must
// index an opening parenthesis, and leaves *pos just past the matching
// close. The result is an *Expression, or a *Variable for a set-form.
func (p *Parser) parseExpr(src string, pos *int) (Operand, error) {
	open := *pos
	*pos++
	expr := &Expression{}
	start := -1
	flush := func() error {
		tok := src[start:*pos]
		start = -1
		return p.handleToken(expr, tok, *pos-len(tok))
	}
	for *pos < len(src) {
		switch c := src[*pos]; {
		case c == ')':
			if start >= 0 {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			*pos++
			return expr, nil
		case c == '(':
			if start >= 0 {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			if expr.fn == nil {
				return nil, &FuncNameError{Col: *pos + 1}
			}
			sub, err := p.parseExpr(src, pos)
			if err != nil {
				return nil, err
			}
			expr.args = append(expr.args, sub)
			if e, ok := sub.(*Expression); ok {
				p.addSub(e)
			}
		case c == '\'':
			// A quoted literal is one token even across spaces.
			j := strings.IndexByte(src[*pos+1:], '\'')
			if j < 0 {
				return nil, &ConstError{Col: *pos + 1, Text: src[*pos:]}
			}
			if start < 0 {
				start = *pos
			}
			*pos += j + 2
		case isSpace(c):
			if start >= 0 {
				tok := src[start:*pos]
				if tok == "set" && expr.fn == nil && len(expr.args) == 0 {
					*pos++
					return p.parseSet(src, pos, open)
				}
				if err := flush(); err != nil {
					return nil, err
				}
			}
			*pos++
		default:
			if start < 0 {
				start = *pos
			}
			*pos++
		}
	}
	return nil, &BracketError{Col: open + 1, Left: "("}
}

// handleToken classifies a token inside a form: the first token must name
// a function; later tokens are constants when they parse as literals and
// variable references otherwise.
func (p *Parser) handleToken(expr *Expression, tok string, at int) error {
	if expr.fn == nil {
		fn := p.lookupFunction(tok)
		if fn == nil {
			return &FuncNameError{Col: at + 1, Name: tok}
		}
		expr.fn = fn
		return nil
	}
	if v, ok := parseLiteral(tok); ok {
		c := new(Value)
		*c = v
		p.addConst(c)
		expr.args = append(expr.args, c)
		return nil
	}
	expr.args = append(expr.args, p.lookupVariable(tok))
	return nil
}

// parseSet parses the tail of "(set name value)": a variable name and then
// exactly one value, which may be a literal, a reference to another
// variable (copied by value), or a nested form that becomes the variable's
// backing expression.
func (p *Parser) parseSet(src string, pos *int, open int) (Operand, error) {
	var v *Variable
	assigned := false
	start := -1
	flush := func() error {
		tok := src[start:*pos]
		at := *pos - len(tok)
		start = -1
		switch {
		case v == nil:
			v = NewVariable(tok, Value{})
		case !assigned:
			if val, ok := parseLiteral(tok); ok {
				v.Set(val)
			} else {
				ref := p.lookupVariable(tok)
				v.Set(ref.Eval())
			}
			assigned = true
		default:
			return &SetFormError{Col: at + 1, Token: tok}
		}
		return nil
	}
	for *pos < len(src) {
		switch c := src[*pos]; {
		case c == ')':
			if start >= 0 {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			*pos++
			if v == nil || !assigned {
				return nil, &SetFormError{Col: *pos}
			}
			return p.registerSet(v), nil
		case c == '(':
			if start >= 0 {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			if v == nil {
				return nil, &FuncNameError{Col: *pos + 1}
			}
			if assigned {
				return nil, &SetFormError{Col: *pos + 1, Token: "("}
			}
			sub, err := p.parseExpr(src, pos)
			if err != nil {
				return nil, err
			}
			switch sub := sub.(type) {
			case *Expression:
				v.SetExpression(sub)
			default:
				v.Set(sub.Eval())
			}
			assigned = true
		case c == '\'':
			j := strings.IndexByte(src[*pos+1:], '\'')
			if j < 0 {
				return nil, &ConstError{Col: *pos + 1, Text: src[*pos:]}
			}
			if start < 0 {
				start = *pos
			}
			*pos += j + 2
		case isSpace(c):
			if start >= 0 {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			*pos++
		default:
			if start < 0 {
				start = *pos
			}
			*pos++
		}
	}
	return nil, &BracketError{Col: open + 1, Left: "("}
}

func (p *Parser) registerSet(v *Variable) *Variable {
	p.varMu.Lock()
	defer p.varMu.Unlock()
	return p.addVariable(v)
}

// Literal reads tok as a constant literal using the same classification
// the compiler applies to source tokens, and reports whether tok is one.
func Literal(tok string) (Value, bool) {
	return parseLiteral(tok)
}

// parseLiteral attempts to read tok as a constant: a quoted timestamp,
// true or false, a signed integer, or a float containing at least one of
// '.', 'e', or 'E'. Tokens that resemble none of these, including numeric
// text that fails to parse, are variable identifiers instead.
func parseLiteral(tok string) (Value, bool) {
	if len(tok) >= 2 && tok[0] == '\'' && tok[len(tok)-1] == '\'' {
		return Time(timeutil.Parse(tok[1 : len(tok)-1])), true
	}
	switch tok {
	case "true":
		return Bool(true), true
	case "false":
		return Bool(false), true
	}
	float := false
	for k := 0; k < len(tok); k++ {
		switch c := tok[k]; {
		case c >= '0' && c <= '9', c == '+', c == '-':
		case c == '.', c == 'e', c == 'E':
			float = true
		default:
			return Value{}, false
		}
	}
	if float {
		d, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return Value{}, false
		}
		return Double(d), true
	}
	i, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return Value{}, false
	}
	return Int(i), true
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
