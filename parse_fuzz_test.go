package lkit_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/lkit"
)

func FuzzCompile(f *testing.F) {
	f.Add("(+ 1 2 3)")
	f.Add("(set x (+ 1 2))")
	f.Add("(< '2013-07-15 10:45:25.5' x)")
	f.Add("(and (or 1 0) (not false))")
	f.Add("((")
	f.Fuzz(func(t *testing.T, s string) {
		p := lkit.NewParser(lkit.WithSource(s))
		if err := p.Compile(); err != nil {
			var se lkit.SyntaxError
			if !errors.As(err, &se) {
				t.Errorf("%q: error %#v is not a SyntaxError", s, err)
			}
			return
		}
		// Compiled source must evaluate without error.
		if _, err := p.Eval(); err != nil {
			t.Errorf("%q compiled but failed to evaluate: %v", s, err)
		}
	})
}
