package shooting

import (
	"context"
	"fmt"
	"math"

	"github.com/tbraden/numlab/internal/odes"
)

const (
	// EPS is the boundary mismatch tolerance for Newton convergence.
	EPS = 1e-9

	// MaxIter caps the number of Newton iterations per solve.
	MaxIter = 1000
)

// Phase reports where the driver is in a solve.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseBootstrapping
	PhaseAdvancing
	PhaseConverged
	PhaseExhausted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseBootstrapping:
		return "bootstrapping"
	case PhaseAdvancing:
		return "advancing"
	case PhaseConverged:
		return "converged"
	case PhaseExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Outcome tags how a solve terminated. Tolerance is checked before the
// iteration cap, so a solve that meets tolerance on its last permitted
// iteration reports Converged, never Exhausted.
type Outcome int

const (
	Converged Outcome = iota + 1
	Exhausted
)

func (o Outcome) String() string {
	switch o {
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// Shot is the full primary trajectory of one Newton iteration, immutable
// once archived.
type Shot struct {
	U          float64
	Trajectory []odes.State
}

// Config holds the boundary-value problem parameters for one driver.
type Config struct {
	Alpha float64 // value at x=0
	Beta  float64 // target value at x=L
	Guess float64 // initial guess for the unknown slope u at x=0
	H     float64 // grid spacing

	// SensitivityInit seeds the variational trajectory. The zero value
	// selects (0, 1): d/du of the initial state.
	SensitivityInit odes.State

	// Observer, when set, is called once per Newton iteration with the
	// attempted guess and the achieved boundary mismatch.
	Observer func(iter int, u, mismatch float64)
}

// Result is the tagged outcome of a solve.
type Result struct {
	U          float64 // slope that satisfied (or last attempted) the boundary
	BetaEst    float64 // achieved boundary value at x=L
	Iterations int
	Outcome    Outcome
}

// Driver owns one shooting solve: grid, trajectory buffers, rate windows and
// the shot archive. It is not safe for concurrent use; each problem instance
// gets its own driver.
type Driver struct {
	sys  System
	cfg  Config
	grid *odes.Grid
	st   stepper

	zs, vs []odes.State
	shots  []Shot

	phase  Phase
	uStar  float64
	solved bool
}

// NewDriver validates the configuration and pre-sizes all trajectory buffers
// to the grid length. Malformed configuration is rejected here, never deep
// inside the integrator.
func NewDriver(sys System, cfg Config) (*Driver, error) {
	grid, err := odes.NewGrid(sys.Length(), cfg.H)
	if err != nil {
		return nil, err
	}
	if cfg.SensitivityInit == (odes.State{}) {
		cfg.SensitivityInit = odes.State{Y: 0, Dy: 1}
	}
	d := &Driver{
		sys:  sys,
		cfg:  cfg,
		grid: grid,
		zs:   make([]odes.State, 0, grid.Len()),
		vs:   make([]odes.State, 0, grid.Len()),
	}
	d.st = stepper{sys: sys, grid: grid}
	return d, nil
}

// Run iterates Newton's method over the unknown initial slope until the
// boundary mismatch is within EPS or MaxIter is reached. Every attempted
// trajectory is archived as a Shot before the next guess is computed.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	d.shots = d.shots[:0]
	d.solved = false

	u := d.cfg.Guess
	iter := 0
	for {
		select {
		case <-ctx.Done():
			d.phase = PhaseIdle
			return nil, ctx.Err()
		default:
		}

		if err := d.integrate(u); err != nil {
			d.phase = PhaseExhausted
			return nil, err
		}

		betaEst := d.zs[len(d.zs)-1].Y
		sensFinal := d.vs[len(d.vs)-1].Y
		mismatch := betaEst - d.cfg.Beta

		d.shots = append(d.shots, Shot{U: u, Trajectory: odes.Clone(d.zs)})
		if d.cfg.Observer != nil {
			d.cfg.Observer(iter, u, mismatch)
		}
		iter++

		if math.Abs(mismatch) <= EPS {
			d.phase = PhaseConverged
			d.uStar = u
			d.solved = true
			return &Result{U: u, BetaEst: betaEst, Iterations: iter, Outcome: Converged}, nil
		}
		if iter >= MaxIter {
			d.phase = PhaseExhausted
			return &Result{U: u, BetaEst: betaEst, Iterations: iter, Outcome: Exhausted}, nil
		}

		// Scalar Newton step: the sensitivity terminal value is the exact
		// derivative of the boundary map with respect to u.
		u -= mismatch / sensFinal
		if math.IsNaN(u) || math.IsInf(u, 0) {
			d.phase = PhaseExhausted
			return nil, fmt.Errorf("%w: newton update (sensitivity %g)", odes.ErrDiverged, sensFinal)
		}
	}
}

// integrate replays one full initial-value solve for the given slope:
// truncate the buffers back to the initial entry, bootstrap, then advance.
func (d *Driver) integrate(u float64) error {
	z0 := odes.State{Y: d.cfg.Alpha, Dy: u}
	v0 := d.cfg.SensitivityInit

	d.zs = append(d.zs[:0], z0)
	d.vs = append(d.vs[:0], v0)
	d.st.reset(z0, v0)

	d.phase = PhaseBootstrapping
	d.st.bootstrap(func(z, v odes.State) {
		d.zs = append(d.zs, z)
		d.vs = append(d.vs, v)
	})
	if !d.st.z.IsValid() || !d.st.v.IsValid() {
		return fmt.Errorf("%w: during bootstrap", odes.ErrDiverged)
	}

	d.phase = PhaseAdvancing
	return d.st.advance(func(z, v odes.State) {
		d.zs = append(d.zs, z)
		d.vs = append(d.vs, v)
	})
}

// Trajectory returns the grid-aligned primary trajectory for the converged
// slope. If the buffers were left in an intermediate state, the solve is
// replayed deterministically from the stored optimum.
func (d *Driver) Trajectory() ([]odes.State, error) {
	if err := d.ensureOptimal(); err != nil {
		return nil, err
	}
	return odes.Clone(d.zs), nil
}

// Sensitivity returns the converged sensitivity trajectory.
func (d *Driver) Sensitivity() ([]odes.State, error) {
	if err := d.ensureOptimal(); err != nil {
		return nil, err
	}
	return odes.Clone(d.vs), nil
}

func (d *Driver) ensureOptimal() error {
	if !d.solved {
		return odes.ErrNotSolved
	}
	if len(d.zs) != d.grid.Len() || d.zs[0].Dy != d.uStar {
		if err := d.integrate(d.uStar); err != nil {
			return err
		}
		d.phase = PhaseConverged
	}
	return nil
}

// Shots returns the archive of attempted trajectories, in Newton iteration
// order. The slice header is fresh; the shots themselves are immutable.
func (d *Driver) Shots() []Shot {
	shots := make([]Shot, len(d.shots))
	copy(shots, d.shots)
	return shots
}

func (d *Driver) Grid() *odes.Grid { return d.grid }
func (d *Driver) Phase() Phase     { return d.phase }
