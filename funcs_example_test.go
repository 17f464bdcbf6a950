package lkit_test

import (
	"fmt"

	"github.com/zephyrtronium/lkit"
)

func Example() {
	p, _ := lkit.Parse("(+ (+ 1 2) (+ 3 4 5) 6)")
	v, _ := p.Eval()
	fmt.Println(v.String())

	// Output:
	// (int) 21
}

func ExampleParser_SetVariable() {
	p, _ := lkit.Parse("(< x 10)")
	for _, x := range []int64{5, 10, 15} {
		p.SetVariable("x", lkit.Int(x))
		v, _ := p.Eval()
		fmt.Println(x, v.String())
	}

	// Output:
	// 5 (bool) true
	// 10 (bool) false
	// 15 (bool) false
}

type nargin struct{}

func (nargin) Eval(args []lkit.Operand) lkit.Value {
	var n int64
	for _, a := range args {
		if a != nil {
			n++
		}
	}
	return lkit.Int(n)
}

func (nargin) String() string { return "<nargin>" }

func ExampleFunction() {
	p := lkit.NewParser(lkit.WithFunction("nargin", nargin{}))
	p.SetSource("(nargin 3 2 1)")
	v, _ := p.Eval()
	fmt.Println(v.String())

	// Output:
	// (int) 3
}

func ExampleVariable_SetExpression() {
	x := lkit.NewVariable("x", lkit.Int(4))
	one := lkit.Int(1)
	next := lkit.NewVariable("next", lkit.Value{})
	next.SetExpression(lkit.NewExpression(lkit.Sum(), x, &one))
	fmt.Println(next.AsInt())
	x.Set(lkit.Int(10))
	fmt.Println(next.AsInt())

	// Output:
	// 5
	// 11
}
