package convergence

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tbraden/numlab/internal/odes"
	"github.com/tbraden/numlab/internal/shooting"
)

// Point records the relative error of one step size against the finest-grid
// reference solve. The boundary value y(L) is pinned to beta by the Newton
// tolerance at every resolution, so its error sits at the tolerance floor;
// the truncation order of the scheme shows in the boundary slope and in the
// converged initial slope u.
type Point struct {
	H        float64
	RelErrY  float64 // relative error of the boundary value y(L)
	RelErrDy float64 // relative error of the boundary slope y'(L)
	RelErrU  float64 // relative error of the converged initial slope
}

// Report is the output of a harness run.
type Report struct {
	Points    []Point
	Reference odes.State // boundary state of the reference solve
	RefU      float64    // converged initial slope of the reference solve
	RefH      float64

	// Observed convergence orders, fit by least squares on log(h) vs
	// log(relative error).
	OrderY  float64
	OrderDy float64
	OrderU  float64
}

// Harness re-runs a full shooting solve at several step sizes and measures
// relative boundary error against the finest step as reference. Each
// resolution gets its own driver instance; nothing is shared across solves.
type Harness struct {
	sys   shooting.System
	cfg   shooting.Config
	steps []float64
}

// New validates and orders the step sizes, coarsest first. At least two are
// required: the finest one serves as the reference solution.
func New(sys shooting.System, cfg shooting.Config, steps []float64) (*Harness, error) {
	if len(steps) < 2 {
		return nil, fmt.Errorf("convergence: need at least 2 step sizes, got %d", len(steps))
	}
	ordered := make([]float64, len(steps))
	copy(ordered, steps)
	sort.Float64s(ordered)
	floats.Reverse(ordered)
	for _, h := range ordered {
		if h <= 0 {
			return nil, fmt.Errorf("%w: got %g", odes.ErrStepSize, h)
		}
	}
	return &Harness{sys: sys, cfg: cfg, steps: ordered}, nil
}

// DyadicSteps builds levels step sizes halving down to base: the coarsest is
// base*2^(levels-1), the finest (the reference) is base.
func DyadicSteps(base float64, levels int) []float64 {
	steps := make([]float64, levels)
	for i := range steps {
		steps[i] = base * float64(int(1)<<(levels-1-i))
	}
	return steps
}

// Run solves the problem at every resolution and fits the observed order.
// A resolution that fails to converge aborts the whole report.
func (h *Harness) Run(ctx context.Context) (*Report, error) {
	boundary := make([]odes.State, len(h.steps))
	slopes := make([]float64, len(h.steps))
	for i, step := range h.steps {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		cfg := h.cfg
		cfg.H = step
		drv, err := shooting.NewDriver(h.sys, cfg)
		if err != nil {
			return nil, err
		}
		res, err := drv.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("convergence: h=%g: %w", step, err)
		}
		if res.Outcome != shooting.Converged {
			return nil, fmt.Errorf("convergence: h=%g: no convergence after %d iterations", step, res.Iterations)
		}
		traj, err := drv.Trajectory()
		if err != nil {
			return nil, err
		}
		boundary[i] = traj[len(traj)-1]
		slopes[i] = res.U
	}

	last := len(h.steps) - 1
	ref := boundary[last]
	report := &Report{
		Points:    make([]Point, 0, last),
		Reference: ref,
		RefU:      slopes[last],
		RefH:      h.steps[last],
	}

	for i := 0; i < last; i++ {
		report.Points = append(report.Points, Point{
			H:        h.steps[i],
			RelErrY:  relErr(boundary[i].Y, ref.Y),
			RelErrDy: relErr(boundary[i].Dy, ref.Dy),
			RelErrU:  relErr(slopes[i], report.RefU),
		})
	}

	report.OrderY = fitOrder(report.Points, func(p Point) float64 { return p.RelErrY })
	report.OrderDy = fitOrder(report.Points, func(p Point) float64 { return p.RelErrDy })
	report.OrderU = fitOrder(report.Points, func(p Point) float64 { return p.RelErrU })
	return report, nil
}

// relErr falls back to absolute error when the reference is zero, which
// happens whenever the target boundary value is itself zero.
func relErr(v, ref float64) float64 {
	d := math.Abs(v - ref)
	if r := math.Abs(ref); r > 0 {
		return d / r
	}
	return d
}

// fitOrder estimates the convergence order of one error series as the slope
// of log(err) over log(h). Zero errors (exact agreement with the reference)
// carry no order information and are skipped.
func fitOrder(points []Point, errOf func(Point) float64) float64 {
	logH := make([]float64, 0, len(points))
	logErr := make([]float64, 0, len(points))
	for _, p := range points {
		if e := errOf(p); e > 0 {
			logH = append(logH, math.Log(p.H))
			logErr = append(logErr, math.Log(e))
		}
	}
	if len(logH) < 2 {
		return 0
	}
	_, slope := stat.LinearRegression(logH, logErr, nil, false)
	return slope
}
