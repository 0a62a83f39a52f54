package bessel

import (
	"math"
	"testing"
)

func TestForwardAccurateAtLowOrders(t *testing.T) {
	r, err := New(Forward, 10)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	x := 5.0
	s0, s1 := Seeds(Forward, x, 10)
	tab, err := r.Compute(x, s0, s1)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	// orders below the argument stay well conditioned
	for n := 0; n <= 4; n++ {
		if math.Abs(tab.Residual[n]) > 1e-12 {
			t.Errorf("J_%d(%g): residual %g", n, x, tab.Residual[n])
		}
	}
}

func TestForwardResidualGrowsPastArgument(t *testing.T) {
	r, err := New(Forward, 25)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	x := 2.0
	s0, s1 := Seeds(Forward, x, 25)
	tab, err := r.Compute(x, s0, s1)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	// the dominant solution Y_n amplifies rounding error roughly by
	// (2n/x) per order once n > x, so the tail residuals explode
	if math.Abs(tab.Residual[24]) < 1.0 {
		t.Errorf("J_24(%g): residual %g, expected gross instability", x, tab.Residual[24])
	}
	if math.Abs(tab.Residual[24]) <= math.Abs(tab.Residual[10]) {
		t.Error("residual magnitude should grow with order in the forward direction")
	}
}

func TestBackwardStaysAccurate(t *testing.T) {
	r, err := New(Backward, 25)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	x := 2.0
	s0, s1 := Seeds(Backward, x, 25)
	tab, err := r.Compute(x, s0, s1)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	for n := range tab.Residual {
		if math.Abs(tab.Residual[n]) > 1e-10 {
			t.Errorf("J_%d(%g): residual %g", n, x, tab.Residual[n])
		}
	}
}

func TestComputeMatchesReferenceLayout(t *testing.T) {
	r, _ := New(Forward, 6)
	tab, err := r.Compute(3.0, math.J0(3.0), math.J1(3.0))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	ref := Reference(3.0, 6)
	if len(tab.Computed) != len(ref) {
		t.Fatalf("computed %d orders, reference %d", len(tab.Computed), len(ref))
	}
	for i := range ref {
		if math.Abs(tab.Computed[i]-ref[i]) > 1e-11 {
			t.Errorf("order %d: computed %g, reference %g", i, tab.Computed[i], ref[i])
		}
	}
}

func TestRejectsDegenerateInput(t *testing.T) {
	if _, err := New(Forward, 2); err == nil {
		t.Error("2 orders accepted")
	}
	r, _ := New(Forward, 5)
	if _, err := r.Compute(0, 1, 0); err == nil {
		t.Error("x=0 accepted")
	}
}
