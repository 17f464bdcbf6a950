package lkit_test

import (
	"math"
	"testing"

	"github.com/zephyrtronium/lkit"
)

func TestValueCoerce(t *testing.T) {
	cases := []struct {
		name string
		v    lkit.Value
		b    bool
		i    int64
		d    float64
		t    uint64
	}{
		{"true", lkit.Bool(true), true, 1, 1, 1},
		{"false", lkit.Bool(false), false, 0, 0, 0},
		{"int", lkit.Int(-7), true, -7, -7, 0xfffffffffffffff9},
		{"int-zero", lkit.Int(0), false, 0, 0, 0},
		{"double", lkit.Double(2.9), true, 2, 2.9, 2},
		{"double-neg", lkit.Double(-2.9), true, -2, -2.9, 0},
		{"time", lkit.Time(1373884725000000), true, 1373884725000000, 1373884725000000, 1373884725000000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.AsBool(); got != c.b {
				t.Errorf("AsBool: want %v, got %v", c.b, got)
			}
			if got := c.v.AsInt(); got != c.i {
				t.Errorf("AsInt: want %d, got %d", c.i, got)
			}
			if got := c.v.AsDouble(); got != c.d {
				t.Errorf("AsDouble: want %g, got %g", c.d, got)
			}
			if c.name == "double-neg" {
				// Converting a negative double to uint64 is
				// platform-defined; skip the time read.
				return
			}
			if got := c.v.AsTime(); got != c.t {
				t.Errorf("AsTime: want %d, got %d", c.t, got)
			}
		})
	}
}

func TestUndefinedCoerce(t *testing.T) {
	var v lkit.Value
	if !v.IsUndefined() {
		t.Error("zero Value is not undefined")
	}
	if v.AsBool() {
		t.Error("undefined reads true")
	}
	if got := v.AsInt(); got != 0 {
		t.Errorf("undefined reads int %d", got)
	}
	if got := v.AsDouble(); !math.IsNaN(got) {
		t.Errorf("undefined reads double %g, not NaN", got)
	}
	if got := v.AsTime(); got != 0 {
		t.Errorf("undefined reads time %d", got)
	}
}

func TestValueEqual(t *testing.T) {
	cases := []struct {
		name string
		l, r lkit.Value
		eq   bool
	}{
		{"undef-undef", lkit.Value{}, lkit.Value{}, true},
		{"undef-int", lkit.Value{}, lkit.Int(0), false},
		{"int-int", lkit.Int(4), lkit.Int(4), true},
		{"int-int-ne", lkit.Int(4), lkit.Int(5), false},
		{"int-double", lkit.Int(4), lkit.Double(4), false},
		{"int-time", lkit.Int(4), lkit.Time(4), false},
		{"bool-bool", lkit.Bool(true), lkit.Bool(true), true},
		{"bool-int", lkit.Bool(true), lkit.Int(1), false},
		{"double-double", lkit.Double(1.5), lkit.Double(1.5), true},
		{"time-time", lkit.Time(9), lkit.Time(9), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.l.Equal(&c.r); got != c.eq {
				t.Errorf("%v == %v: want %v, got %v", &c.l, &c.r, c.eq, got)
			}
			if got := c.r.Equal(&c.l); got != c.eq {
				t.Errorf("%v == %v: want %v, got %v", &c.r, &c.l, c.eq, got)
			}
			if c.eq {
				if c.l.Hash() != c.r.Hash() {
					t.Errorf("%v and %v are equal but hash differently", &c.l, &c.r)
				}
			}
		})
	}
}

func TestValueOrder(t *testing.T) {
	cases := []struct {
		name   string
		l, r   lkit.Value
		lt, gt bool
	}{
		{"int-int", lkit.Int(1), lkit.Int(2), true, false},
		{"int-int-eq", lkit.Int(2), lkit.Int(2), false, false},
		{"int-double", lkit.Int(1), lkit.Double(1.5), true, false},
		{"double-int", lkit.Double(2.5), lkit.Int(2), false, true},
		{"time-time", lkit.Time(5), lkit.Time(9), true, false},
		{"bool-int", lkit.Bool(false), lkit.Int(1), true, false},
		{"undef-int", lkit.Value{}, lkit.Int(1), false, false},
		{"int-undef", lkit.Int(1), lkit.Value{}, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.l.Less(c.r); got != c.lt {
				t.Errorf("%v < %v: want %v, got %v", &c.l, &c.r, c.lt, got)
			}
			if got := c.l.Greater(c.r); got != c.gt {
				t.Errorf("%v > %v: want %v, got %v", &c.l, &c.r, c.gt, got)
			}
			if got := c.l.LessEq(c.r); got != !c.gt {
				t.Errorf("%v <= %v: want %v, got %v", &c.l, &c.r, !c.gt, got)
			}
			if got := c.l.GreaterEq(c.r); got != !c.lt {
				t.Errorf("%v >= %v: want %v, got %v", &c.l, &c.r, !c.lt, got)
			}
		})
	}
}

func TestValueAdd(t *testing.T) {
	cases := []struct {
		name string
		l, r lkit.Value
		want lkit.Value
	}{
		{"int-int", lkit.Int(4), lkit.Int(5), lkit.Int(9)},
		{"int-double", lkit.Int(10), lkit.Double(5.5), lkit.Int(15)},
		{"double-int", lkit.Double(5.5), lkit.Int(10), lkit.Double(15.5)},
		{"double-double", lkit.Double(1.25), lkit.Double(0.75), lkit.Double(2)},
		{"time-int", lkit.Time(100), lkit.Int(5), lkit.Time(105)},
		{"bool-bool", lkit.Bool(true), lkit.Bool(true), lkit.Bool(false)},
		{"bool-bool-mixed", lkit.Bool(true), lkit.Bool(false), lkit.Bool(true)},
		{"bool-int", lkit.Bool(false), lkit.Int(2), lkit.Bool(true)},
		{"undef-adopts", lkit.Value{}, lkit.Double(2.5), lkit.Double(2.5)},
		{"rhs-undef", lkit.Int(4), lkit.Value{}, lkit.Int(4)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := c.l
			v.Add(c.r)
			if !v.Equal(&c.want) {
				t.Errorf("%v + %v: want %v, got %v", &c.l, &c.r, &c.want, &v)
			}
		})
	}
}

func TestValueSub(t *testing.T) {
	cases := []struct {
		name string
		l, r lkit.Value
		want lkit.Value
	}{
		{"int-int", lkit.Int(4), lkit.Int(5), lkit.Int(-1)},
		{"int-double", lkit.Int(10), lkit.Double(5.5), lkit.Int(5)},
		{"double-int", lkit.Double(5.5), lkit.Int(10), lkit.Double(-4.5)},
		{"time-int", lkit.Time(100), lkit.Int(5), lkit.Time(95)},
		{"bool-bool", lkit.Bool(true), lkit.Bool(true), lkit.Bool(false)},
		{"undef-negates-int", lkit.Value{}, lkit.Int(6), lkit.Int(-6)},
		{"undef-negates-double", lkit.Value{}, lkit.Double(2.5), lkit.Double(-2.5)},
		{"undef-negates-bool", lkit.Value{}, lkit.Bool(false), lkit.Bool(true)},
		{"undef-negates-time", lkit.Value{}, lkit.Time(1), lkit.Time(0xffffffffffffffff)},
		{"rhs-undef", lkit.Int(4), lkit.Value{}, lkit.Int(4)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := c.l
			v.Sub(c.r)
			if !v.Equal(&c.want) {
				t.Errorf("%v - %v: want %v, got %v", &c.l, &c.r, &c.want, &v)
			}
		})
	}
}

func TestValueMul(t *testing.T) {
	cases := []struct {
		name string
		l, r lkit.Value
		want lkit.Value
	}{
		{"int-int", lkit.Int(4), lkit.Int(5), lkit.Int(20)},
		{"int-double", lkit.Int(10), lkit.Double(2.5), lkit.Int(20)},
		{"double-int", lkit.Double(2.5), lkit.Int(10), lkit.Double(25)},
		{"bool-bool", lkit.Bool(true), lkit.Bool(true), lkit.Bool(true)},
		{"bool-int-zero", lkit.Bool(true), lkit.Int(0), lkit.Bool(false)},
		{"undef-stays", lkit.Value{}, lkit.Int(5), lkit.Value{}},
		{"rhs-undef", lkit.Int(4), lkit.Value{}, lkit.Int(4)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := c.l
			v.Mul(c.r)
			if !v.Equal(&c.want) {
				t.Errorf("%v * %v: want %v, got %v", &c.l, &c.r, &c.want, &v)
			}
		})
	}
}

func TestValueDiv(t *testing.T) {
	cases := []struct {
		name string
		l, r lkit.Value
		want lkit.Value
	}{
		{"int-int", lkit.Int(20), lkit.Int(5), lkit.Int(4)},
		{"int-trunc", lkit.Int(7), lkit.Int(2), lkit.Int(3)},
		{"double-double", lkit.Double(10), lkit.Double(4), lkit.Double(2.5)},
		{"time-int", lkit.Time(100), lkit.Int(4), lkit.Time(25)},
		{"bool-bool", lkit.Bool(true), lkit.Bool(true), lkit.Bool(true)},
		{"bool-bool-ne", lkit.Bool(true), lkit.Bool(false), lkit.Bool(false)},
		{"by-zero-int", lkit.Int(5), lkit.Int(0), lkit.Value{}},
		{"by-zero-double", lkit.Double(5), lkit.Double(0), lkit.Value{}},
		{"by-undef", lkit.Int(5), lkit.Value{}, lkit.Value{}},
		{"undef-stays", lkit.Value{}, lkit.Int(5), lkit.Value{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := c.l
			v.Div(c.r)
			if !v.Equal(&c.want) {
				t.Errorf("%v / %v: want %v, got %v", &c.l, &c.r, &c.want, &v)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		v    lkit.Value
		want string
	}{
		{lkit.Value{}, "(undefined)"},
		{lkit.Bool(true), "(bool) true"},
		{lkit.Int(6), "(int) 6"},
		{lkit.Double(1.5), "(double) 1.5"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("want %q, got %q", c.want, got)
		}
	}
}
