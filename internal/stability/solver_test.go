package stability

import (
	"errors"
	"math"
	"testing"

	"github.com/tbraden/numlab/internal/odes"
)

func decay(lambda float64) Rate {
	return func(_, w float64) float64 { return -lambda * w }
}

func TestSolverTracksDecay(t *testing.T) {
	rate := decay(1.0)
	w1 := SeedRK4(rate, 0, 1.0, 0.05)
	s, err := NewSolver(rate, 0, 1.0, 0.05, 1.0, w1)
	if err != nil {
		t.Fatalf("solver: %v", err)
	}
	s.Run()

	ts := s.Times()
	ws := s.Values()
	if len(ws) != len(ts) {
		t.Fatalf("%d values for %d times", len(ws), len(ts))
	}
	for i, w := range ws {
		exact := math.Exp(-ts[i])
		if math.Abs(w-exact) > 1e-4 {
			t.Errorf("t=%g: w=%g, exact %g", ts[i], w, exact)
		}
	}
}

func TestSolverRerunIsIdentical(t *testing.T) {
	rate := decay(2.0)
	s, err := NewSolver(rate, 0, 2.0, 0.1, 1.0, SeedRK4(rate, 0, 1.0, 0.1))
	if err != nil {
		t.Fatalf("solver: %v", err)
	}
	s.Run()
	first := s.Values()
	s.Run()
	second := s.Values()

	if len(first) != len(second) {
		t.Fatalf("rerun changed length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("rerun differs at index %d: %g vs %g", i, first[i], second[i])
		}
	}
}

func TestSolverUnstableOutsideStabilityRange(t *testing.T) {
	// h*lambda = 7.5 is far outside the AB2/AM2 stability region; the
	// magnitudes must be allowed to grow, not clamp
	rate := decay(15.0)
	s, err := NewSolver(rate, 0, 10.0, 0.5, 1.0, SeedRK4(rate, 0, 1.0, 0.5))
	if err != nil {
		t.Fatalf("solver: %v", err)
	}
	s.Run()

	if s.MaxAbs() < 100.0 {
		t.Errorf("expected divergence, max |w| = %g", s.MaxAbs())
	}
	final := s.Values()
	if math.Abs(final[len(final)-1]) < math.Abs(final[2]) {
		t.Error("magnitude should grow step over step in the unstable regime")
	}
}

func TestSeedRK4MatchesExact(t *testing.T) {
	w1 := SeedRK4(decay(1.0), 0, 1.0, 0.1)
	exact := math.Exp(-0.1)
	if math.Abs(w1-exact) > 1e-7 {
		t.Errorf("seed %g, exact %g", w1, exact)
	}
}

func TestSolverRejectsBadConfig(t *testing.T) {
	rate := decay(1.0)
	if _, err := NewSolver(nil, 0, 1, 0.1, 1, 1); err == nil {
		t.Error("nil rate accepted")
	}
	if _, err := NewSolver(rate, 0, 1, -0.1, 1, 1); !errors.Is(err, odes.ErrStepSize) {
		t.Errorf("negative h: %v", err)
	}
	if _, err := NewSolver(rate, 1, 0, 0.1, 1, 1); !errors.Is(err, odes.ErrDomainLength) {
		t.Errorf("reversed interval: %v", err)
	}
	if _, err := NewSolver(rate, 0, 0.15, 0.1, 1, 1); !errors.Is(err, odes.ErrGridTooShort) {
		t.Errorf("single interval: %v", err)
	}
}
