// Package stability provides the scalar 2-step Adams-Bashforth /
// Adams-Moulton predictor-corrector used to probe the stability range of the
// multistep scheme on prototype problems. It shares the shooting engine's
// scaffolding — seed history, predict, evaluate, correct, re-evaluate — in
// its simplest scalar form, and deliberately never clamps: divergence is the
// observable of interest.
package stability

import (
	"fmt"
	"math"

	"github.com/tbraden/numlab/internal/odes"
)

// Rate is the scalar right-hand side w' = f(t, w).
type Rate func(t, w float64) float64

// Solver advances a scalar initial-value problem with AB2 prediction and one
// AM2 corrector pass over a fixed uniform grid. It needs two seed values;
// SeedRK4 can generate the second from the first.
type Solver struct {
	rate   Rate
	h      float64
	ts     []float64
	ws     []float64
	w0, w1 float64
	f      [2]float64 // rolling window: previous and latest rate
}

// NewSolver builds a solver on [t0, tf] with spacing h, seeded with w(t0)=w0
// and w(t0+h)=w1.
func NewSolver(rate Rate, t0, tf, h, w0, w1 float64) (*Solver, error) {
	if rate == nil {
		return nil, fmt.Errorf("stability: nil rate function")
	}
	if h <= 0 {
		return nil, fmt.Errorf("%w: got %g", odes.ErrStepSize, h)
	}
	if tf <= t0 {
		return nil, fmt.Errorf("%w: [%g, %g]", odes.ErrDomainLength, t0, tf)
	}
	n := int(math.Floor((tf - t0) / h))
	if n < 2 {
		return nil, fmt.Errorf("%w: %d intervals", odes.ErrGridTooShort, n)
	}
	ts := make([]float64, n+1)
	for i := range ts {
		ts[i] = t0 + float64(i)*h
	}
	return &Solver{
		rate: rate,
		h:    h,
		ts:   ts,
		ws:   make([]float64, 0, n+1),
		w0:   w0,
		w1:   w1,
	}, nil
}

// Run computes the full trajectory. Re-running truncates back to the two
// seed values first, so repeated runs are identical.
func (s *Solver) Run() {
	s.ws = append(s.ws[:0], s.w0, s.w1)
	s.f[0] = s.rate(s.ts[0], s.w0)
	s.f[1] = s.rate(s.ts[1], s.w1)

	for i := 2; i < len(s.ts); i++ {
		t := s.ts[i]
		w := s.ws[len(s.ws)-1]

		wpred := w + 0.5*s.h*(3.0*s.f[1]-s.f[0])
		fpred := s.rate(t, wpred)
		wcorr := w + (s.h/12.0)*(5.0*fpred+8.0*s.f[1]-s.f[0])
		fcorr := s.rate(t, wcorr)

		s.f[0], s.f[1] = s.f[1], fcorr
		s.ws = append(s.ws, wcorr)
	}
}

// Values returns the computed trajectory, seeds included.
func (s *Solver) Values() []float64 {
	ws := make([]float64, len(s.ws))
	copy(ws, s.ws)
	return ws
}

// Times returns the grid.
func (s *Solver) Times() []float64 {
	ts := make([]float64, len(s.ts))
	copy(ts, s.ts)
	return ts
}

// MaxAbs reports the largest magnitude reached, a convenient divergence
// indicator for stability sweeps. NaN values propagate.
func (s *Solver) MaxAbs() float64 {
	max := 0.0
	for _, w := range s.ws {
		if math.IsNaN(w) {
			return math.NaN()
		}
		if a := math.Abs(w); a > max {
			max = a
		}
	}
	return max
}

// SeedRK4 produces the second seed value one classical RK4 step from the
// first, the same bootstrap idea the multistep shooting engine uses.
func SeedRK4(rate Rate, t0, w0, h float64) float64 {
	k1 := h * rate(t0, w0)
	k2 := h * rate(t0+0.5*h, w0+0.5*k1)
	k3 := h * rate(t0+0.5*h, w0+0.5*k2)
	k4 := h * rate(t0+h, w0+k3)
	return w0 + (k1+2.0*k2+2.0*k3+k4)/6.0
}
