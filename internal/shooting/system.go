package shooting

import "github.com/tbraden/numlab/internal/odes"

// System is the coupled pair of right-hand sides integrated by the driver.
//
// Rate evaluates the physical ODE: given the primary state z = (y, y') at
// position x it returns (y', y''). Sensitivity evaluates the variational
// equation: given the sensitivity state v = (g, g') and the primary state z
// at the same position, it returns (g', g''), the linearization of Rate with
// respect to the unknown initial slope. Both must be pure functions.
type System interface {
	Rate(z odes.State, x float64) odes.State
	Sensitivity(v, z odes.State, x float64) odes.State

	// Length is the domain length L; the boundary condition is applied at x=L.
	Length() float64
}

// rateWindow holds the four most recent rate evaluations, oldest first.
// The multistep stencils only ever look this far back, so the full rate
// history is never retained.
type rateWindow struct {
	f [4]odes.State
}

func (w *rateWindow) push(s odes.State) {
	w.f[0], w.f[1], w.f[2] = w.f[1], w.f[2], w.f[3]
	w.f[3] = s
}
