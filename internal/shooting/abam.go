package shooting

import (
	"fmt"

	"github.com/tbraden/numlab/internal/odes"
)

// bashforth extrapolates one step with the explicit 4-step Adams-Bashforth
// stencil over the given rate window.
func (s *stepper) bashforth(z odes.State, w *rateWindow) odes.State {
	u := w.f[3].Scale(55).Sub(w.f[2].Scale(59)).Add(w.f[1].Scale(37)).Sub(w.f[0].Scale(9))
	return z.Add(u.Scale(s.grid.H() / 24))
}

// moulton refines one step with the implicit 4-step Adams-Moulton stencil,
// using the predicted rate plus the four stored rates.
func (s *stepper) moulton(z odes.State, w *rateWindow, fpred odes.State) odes.State {
	u := fpred.Scale(251).Add(w.f[3].Scale(646)).Sub(w.f[2].Scale(264)).
		Add(w.f[1].Scale(106)).Sub(w.f[0].Scale(19))
	return z.Add(u.Scale(s.grid.H() / 720))
}

// advance runs the predictor-corrector from grid index 4 to the far boundary.
// One corrector pass per step, no fixed-point iteration. Both rate windows
// hold exactly four entries on entry (bootstrap invariant). A non-finite
// corrected state surfaces as ErrDiverged; nothing is clamped.
func (s *stepper) advance(emit func(z, v odes.State)) error {
	for i := 4; i < s.grid.Len(); i++ {
		x := s.grid.At(i)

		zpred := s.bashforth(s.z, &s.fw)
		fpred := s.sys.Rate(zpred, x)
		vpred := s.bashforth(s.v, &s.gw)
		gpred := s.sys.Sensitivity(vpred, zpred, x)

		zcorr := s.moulton(s.z, &s.fw, fpred)
		fcorr := s.sys.Rate(zcorr, x)
		vcorr := s.moulton(s.v, &s.gw, gpred)
		gcorr := s.sys.Sensitivity(vcorr, zcorr, x)

		if !zcorr.IsValid() || !vcorr.IsValid() {
			return fmt.Errorf("%w: at x=%g", odes.ErrDiverged, x)
		}

		s.z, s.v = zcorr, vcorr
		s.fw.push(fcorr)
		s.gw.push(gcorr)
		emit(zcorr, vcorr)
	}
	return nil
}
