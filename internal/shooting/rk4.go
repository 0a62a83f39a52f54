package shooting

import "github.com/tbraden/numlab/internal/odes"

// stepper advances the primary and sensitivity trajectories in lockstep over
// a fixed grid. It keeps only the current states and the 4-deep rate windows;
// recording full trajectories is the caller's concern via the emit callback.
type stepper struct {
	sys  System
	grid *odes.Grid

	z, v   odes.State
	fw, gw rateWindow
}

// reset seeds the stepper at x=0. The windows are cleared and primed with the
// initial rate of each trajectory.
func (s *stepper) reset(z0, v0 odes.State) {
	s.z, s.v = z0, v0
	s.fw = rateWindow{}
	s.gw = rateWindow{}
	x0 := s.grid.At(0)
	s.fw.push(s.sys.Rate(z0, x0))
	s.gw.push(s.sys.Sensitivity(v0, z0, x0))
}

// bootstrap generates the three extra samples a 4-step method needs, using
// classical RK4 applied identically to both trajectories. Each sensitivity
// stage is linearized at the matching in-progress primary stage state.
func (s *stepper) bootstrap(emit func(z, v odes.State)) {
	h := s.grid.H()
	for i := 0; i < 3; i++ {
		x := s.grid.At(i)

		z1, v1 := s.z, s.v
		kz1 := s.sys.Rate(z1, x).Scale(h)
		kv1 := s.sys.Sensitivity(v1, z1, x).Scale(h)

		z2 := z1.Add(kz1.Scale(0.5))
		v2 := v1.Add(kv1.Scale(0.5))
		kz2 := s.sys.Rate(z2, x+0.5*h).Scale(h)
		kv2 := s.sys.Sensitivity(v2, z2, x+0.5*h).Scale(h)

		z3 := z1.Add(kz2.Scale(0.5))
		v3 := v1.Add(kv2.Scale(0.5))
		kz3 := s.sys.Rate(z3, x+0.5*h).Scale(h)
		kv3 := s.sys.Sensitivity(v3, z3, x+0.5*h).Scale(h)

		z4 := z1.Add(kz3)
		v4 := v1.Add(kv3)
		kz4 := s.sys.Rate(z4, x+h).Scale(h)
		kv4 := s.sys.Sensitivity(v4, z4, x+h).Scale(h)

		s.z = z1.Add(kz1.Add(kz2.Scale(2)).Add(kz3.Scale(2)).Add(kz4).Scale(1.0 / 6.0))
		s.v = v1.Add(kv1.Add(kv2.Scale(2)).Add(kv3.Scale(2)).Add(kv4).Scale(1.0 / 6.0))

		s.fw.push(s.sys.Rate(s.z, x+h))
		s.gw.push(s.sys.Sensitivity(s.v, s.z, x+h))
		emit(s.z, s.v)
	}
}
