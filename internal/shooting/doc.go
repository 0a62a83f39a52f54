// Package shooting solves two-point boundary-value problems by the shooting
// method: repeated initial-value solves with Newton's method over the unknown
// initial slope.
//
// Each Newton iteration integrates the physical ODE and its sensitivity
// (variational) equation in lockstep over a fixed uniform grid: an RK4
// bootstrap seeds the first four samples, then a 4-step Adams-Bashforth /
// Adams-Moulton predictor-corrector advances both trajectories to the far
// boundary. The terminal sensitivity value is the exact Jacobian of the
// boundary map, so the outer iteration is a plain scalar Newton step.
//
// The multistep stencils read from fixed 4-deep rate windows; full-history
// trajectories are recorded only by the Driver, which archives every attempt
// as a Shot for post-hoc error analysis.
package shooting
