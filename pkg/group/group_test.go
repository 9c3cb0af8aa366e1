package group

import (
	stderrors "errors"
	"math/cmplx"
	"testing"

	kerrors "github.com/matzehuels/kleinian/pkg/errors"
	"github.com/matzehuels/kleinian/pkg/mobius"
)

const tol = 1e-9

func near(a, b complex128) bool {
	return cmplx.Abs(a-b) <= tol
}

func commutatorTrace(g Group) complex128 {
	a, b, ia, ib := g[0], g[1], g[2], g[3]
	return a.Mul(b).Mul(ia).Mul(ib).Trace()
}

func TestMake(t *testing.T) {
	m := mobius.New(1, 2, 3, 4)
	n := mobius.Translate(1i)
	g := Make(m, n)

	if len(g) != 4 {
		t.Fatalf("len = %d, want 4", len(g))
	}
	if g[0] != m || g[1] != n {
		t.Errorf("generators = %v, %v, want %v, %v", g[0], g[1], m, n)
	}
	if g[2] != m.Inverse() || g[3] != n.Inverse() {
		t.Errorf("inverses = %v, %v, want %v, %v", g[2], g[3], m.Inverse(), n.Inverse())
	}
	if gens := g.Generators(); len(gens) != 2 || gens[0] != m {
		t.Errorf("Generators() = %v, want [%v %v]", gens, m, n)
	}
}

func TestMakeEmpty(t *testing.T) {
	if g := Make(); len(g) != 0 {
		t.Errorf("Make() = %v, want empty", g)
	}
}

func TestApollonianGasket(t *testing.T) {
	g := ApollonianGasket()
	if len(g) != 4 {
		t.Fatalf("len = %d, want 4", len(g))
	}
	// Both generators are parabolic and so is their commutator.
	for i, m := range g.Generators() {
		if c := m.Classify(); c != mobius.Parabolic {
			t.Errorf("generator %d is %v, want parabolic", i, c)
		}
	}
	if tr := commutatorTrace(g); !near(tr, -2) {
		t.Errorf("commutator trace = %v, want -2", tr)
	}
}

func TestTraceAB(t *testing.T) {
	tests := []struct {
		name   string
		ta, tb complex128
		root   Root
		want   complex128
	}{
		{"2,2 plus", 2, 2, PlusRoot, 2 + 2i},
		{"2,2 minus", 2, 2, MinusRoot, 2 - 2i},
		{"3,3 plus", 3, 3, PlusRoot, 6},
		{"3,3 minus", 3, 3, MinusRoot, 3},
		{"0,0", 0, 0, PlusRoot, 0},
		{"1,0 minus", 1, 0, MinusRoot, -1i},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TraceAB(tt.ta, tt.tb, tt.root)
			if err != nil {
				t.Fatalf("TraceAB error: %v", err)
			}
			if !near(got, tt.want) {
				t.Errorf("TraceAB = %v, want %v", got, tt.want)
			}
			// Either root solves the quadratic.
			p, q := tt.ta*tt.tb, tt.ta*tt.ta+tt.tb*tt.tb
			if res := got*got - p*got + q; !near(res, 0) {
				t.Errorf("residual = %v, want 0", res)
			}
		})
	}
}

func TestGrandmasRecipe(t *testing.T) {
	g, err := GrandmasRecipe(2, 2, MinusRoot)
	if err != nil {
		t.Fatalf("GrandmasRecipe error: %v", err)
	}
	if len(g) != 4 {
		t.Fatalf("len = %d, want 4", len(g))
	}

	a, b := g[0], g[1]
	if !near(a.Trace(), 2) {
		t.Errorf("tr a = %v, want 2", a.Trace())
	}
	if !near(b.Trace(), 2) {
		t.Errorf("tr b = %v, want 2", b.Trace())
	}
	if tr := a.Mul(b).Trace(); !near(tr, 2-2i) {
		t.Errorf("tr ab = %v, want 2-2i", tr)
	}
	if tr := commutatorTrace(g); !near(tr, -2) {
		t.Errorf("commutator trace = %v, want -2", tr)
	}
	if g[2] != a.Inverse() || g[3] != b.Inverse() {
		t.Error("group should end with a⁻¹, b⁻¹")
	}
}

func TestGrandmasRecipeInvariants(t *testing.T) {
	tests := []struct {
		ta, tb complex128
		root   Root
	}{
		{2, 2, PlusRoot},
		{3, 3, PlusRoot},
		{3, 3, MinusRoot},
		{1.87 + 0.1i, 1.87 - 0.1i, PlusRoot},
		{1.91 + 0.05i, 2, MinusRoot},
		{2, 3 - 1i, PlusRoot},
	}

	for _, tt := range tests {
		g, err := GrandmasRecipe(tt.ta, tt.tb, tt.root)
		if err != nil {
			t.Errorf("GrandmasRecipe(%v, %v, %v) error: %v", tt.ta, tt.tb, tt.root, err)
			continue
		}
		tab, _ := TraceAB(tt.ta, tt.tb, tt.root)

		for i, m := range g {
			if !near(m.Det(), 1) {
				t.Errorf("(%v, %v) det g[%d] = %v, want 1", tt.ta, tt.tb, i, m.Det())
			}
		}
		if !near(g[0].Trace(), tt.ta) {
			t.Errorf("(%v, %v) tr a = %v", tt.ta, tt.tb, g[0].Trace())
		}
		if !near(g[1].Trace(), tt.tb) {
			t.Errorf("(%v, %v) tr b = %v", tt.ta, tt.tb, g[1].Trace())
		}
		if tr := g[0].Mul(g[1]).Trace(); !near(tr, tab) {
			t.Errorf("(%v, %v) tr ab = %v, want %v", tt.ta, tt.tb, tr, tab)
		}
		if tr := commutatorTrace(g); !near(tr, -2) {
			t.Errorf("(%v, %v) commutator trace = %v, want -2", tt.ta, tt.tb, tr)
		}
	}
}

func TestGrandmasRecipeInvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		ta, tb complex128
		root   Root
	}{
		// tab = 0 and both terms of z0's denominator vanish.
		{"origin plus", 0, 0, PlusRoot},
		{"origin minus", 0, 0, MinusRoot},
		// tab = -i, so 0·tab - 2 + 2i·(-i) = 0.
		{"1,0 minus", 1, 0, MinusRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := GrandmasRecipe(tt.ta, tt.tb, tt.root)
			if err == nil {
				t.Fatalf("GrandmasRecipe = %v, want error", g)
			}
			if g != nil {
				t.Errorf("group = %v, want nil", g)
			}
			if !kerrors.Is(err, kerrors.ErrCodeInvalidParameters) {
				t.Errorf("error = %v, want INVALID_PARAMETERS", err)
			}
			if !kerrors.Is(err, kerrors.ErrCodeDivideByZero) {
				t.Errorf("error = %v, want DIVIDE_BY_ZERO cause", err)
			}
			if code := kerrors.GetCode(err); code != kerrors.ErrCodeInvalidParameters {
				t.Errorf("GetCode = %v, want INVALID_PARAMETERS", code)
			}

			var pe *ParameterError
			if !stderrors.As(err, &pe) {
				t.Fatalf("error type = %T, want *ParameterError", err)
			}
			if pe.TraceA != tt.ta || pe.TraceB != tt.tb {
				t.Errorf("ParameterError traces = (%v, %v), want (%v, %v)", pe.TraceA, pe.TraceB, tt.ta, tt.tb)
			}
		})
	}
}

func TestGrandmasRecipeRequiresRoot(t *testing.T) {
	_, err := GrandmasRecipe(2, 2, Root(0))
	if !kerrors.Is(err, kerrors.ErrCodeInvalidInput) {
		t.Errorf("zero root error = %v, want INVALID_INPUT", err)
	}
	var pe *ParameterError
	if stderrors.As(err, &pe) {
		t.Error("missing root should not be reported as invalid parameters")
	}
}

func TestParseRoot(t *testing.T) {
	tests := []struct {
		in      string
		want    Root
		wantErr bool
	}{
		{"plus", PlusRoot, false},
		{"Minus", MinusRoot, false},
		{" + ", PlusRoot, false},
		{"-", MinusRoot, false},
		{"", 0, true},
		{"both", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseRoot(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRoot(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRoot(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRootString(t *testing.T) {
	if PlusRoot.String() != "plus" || MinusRoot.String() != "minus" || Root(0).String() != "invalid" {
		t.Errorf("Root strings = %q, %q, %q", PlusRoot, MinusRoot, Root(0))
	}
}
