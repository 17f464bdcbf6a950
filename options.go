package lkit

// An Option configures a Parser at construction.
type Option interface {
	apply(*Parser)
}

type (
	sourceOpt string
	funcOpt   struct {
		name string
		fn   Function
	}
	funcsOpt map[string]Function
	varOpt   struct {
		name string
		val  Value
	}
	bareOpt struct {
		fns, vars bool
	}
)

// WithSource sets the parser's initial source text.
func WithSource(src string) Option {
	return sourceOpt(src)
}

func (o sourceOpt) apply(p *Parser) {
	p.src = string(o)
}

// WithFunction registers fn under name, replacing any default of the same
// name. A nil fn removes the name instead.
func WithFunction(name string, fn Function) Option {
	return &funcOpt{name, fn}
}

func (o *funcOpt) apply(p *Parser) {
	if o.fn == nil {
		delete(p.fns, o.name)
		return
	}
	p.fns[o.name] = o.fn
}

// WithFunctions registers a group of functions. Nil entries remove their
// names.
func WithFunctions(fns map[string]Function) Option {
	return funcsOpt(fns)
}

func (o funcsOpt) apply(p *Parser) {
	for name, fn := range o {
		if fn == nil {
			delete(p.fns, name)
			continue
		}
		p.fns[name] = fn
	}
}

// WithVariable registers a variable holding v, replacing any default of
// the same name.
func WithVariable(name string, v Value) Option {
	return &varOpt{name, v}
}

func (o *varOpt) apply(p *Parser) {
	p.vars[o.name] = NewVariable(o.name, o.val)
}

// WithoutDefaultFunctions removes every default function, so that only
// functions registered by later options or by AddFunction are callable.
func WithoutDefaultFunctions() Option {
	return &bareOpt{fns: true}
}

// WithoutDefaultVariables removes the default variables e and pi.
func WithoutDefaultVariables() Option {
	return &bareOpt{vars: true}
}

func (o *bareOpt) apply(p *Parser) {
	if o.fns {
		p.fns = make(map[string]Function)
	}
	if o.vars {
		p.vars = make(map[string]*Variable)
	}
}
