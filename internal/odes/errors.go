package odes

import "errors"

// Domain errors for solver construction and advancement.
var (
	// ErrStepSize indicates a non-positive step size.
	ErrStepSize = errors.New("odes: step size must be positive")

	// ErrDomainLength indicates a non-positive integration domain.
	ErrDomainLength = errors.New("odes: domain length must be positive")

	// ErrGridTooShort indicates too few grid points for a 4-step method.
	ErrGridTooShort = errors.New("odes: grid too short for multistep advancement")

	// ErrDiverged indicates a non-finite state was produced during integration.
	ErrDiverged = errors.New("odes: trajectory diverged (NaN or Inf)")

	// ErrNotSolved indicates a trajectory accessor was called before a
	// successful solve.
	ErrNotSolved = errors.New("odes: no converged solve available")
)
